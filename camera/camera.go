// Package camera maps the board onto the window: pan, zoom and conversion
// between board pixels and screen pixels.
package camera

import "math"

// Camera controls the viewport onto the board.
type Camera struct {
	// Position is the camera center in board pixels
	X, Y float32

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification)
	Zoom float32

	// Viewport dimensions (screen area the board is drawn in)
	ViewportW, ViewportH float32

	// Board dimensions in pixels
	BoardW, BoardH float32

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// New creates a camera centered on the board, zoomed so the whole board fits.
func New(viewportW, viewportH, boardW, boardH float32) *Camera {
	c := &Camera{
		ViewportW: viewportW,
		ViewportH: viewportH,
		BoardW:    boardW,
		BoardH:    boardH,
		MaxZoom:   4.0,
	}
	c.MinZoom = c.fitZoom()
	c.Reset()
	return c
}

// fitZoom is the zoom at which the whole board just fits the viewport.
func (c *Camera) fitZoom() float32 {
	return min(c.ViewportW/c.BoardW, c.ViewportH/c.BoardH, 1)
}

// WorldToScreen converts board pixels to screen pixels.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	sx = c.ViewportW/2 + (wx-c.X)*c.Zoom
	sy = c.ViewportH/2 + (wy-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen pixels to board pixels.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	wx = c.X + (sx-c.ViewportW/2)/c.Zoom
	wy = c.Y + (sy-c.ViewportH/2)/c.Zoom
	return wx, wy
}

// ScreenToCell returns the board cell under a screen point for cells of
// cellSize board pixels. ok is false off the board.
func (c *Camera) ScreenToCell(sx, sy, cellSize float32) (x, y int, ok bool) {
	wx, wy := c.ScreenToWorld(sx, sy)
	if wx < 0 || wy < 0 || wx >= c.BoardW || wy >= c.BoardH {
		return 0, 0, false
	}
	return int(math.Floor(float64(wx / cellSize))), int(math.Floor(float64(wy / cellSize))), true
}

// IsVisible returns true if a square of the given half-size centered at
// (wx, wy) overlaps the viewport.
func (c *Camera) IsVisible(wx, wy, half float32) bool {
	halfW := c.ViewportW/(2*c.Zoom) + half
	halfH := c.ViewportH/(2*c.Zoom) + half
	return absf(wx-c.X) <= halfW && absf(wy-c.Y) <= halfH
}

// Resize updates viewport dimensions and recalculates zoom constraints.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.MinZoom = c.fitZoom()
	c.SetZoom(c.Zoom)
}

// Pan moves the camera by the given delta in screen pixels. The center
// stays on the board.
func (c *Camera) Pan(dx, dy float32) {
	c.X = clamp(c.X+dx/c.Zoom, 0, c.BoardW)
	c.Y = clamp(c.Y+dy/c.Zoom, 0, c.BoardH)
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Reset centers the board and zooms to fit.
func (c *Camera) Reset() {
	c.X = c.BoardW / 2
	c.Y = c.BoardH / 2
	c.Zoom = c.MinZoom
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// clamp restricts a value to a range.
func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
