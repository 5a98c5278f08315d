package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.01
}

func TestNewFitsBoard(t *testing.T) {
	// 20x10 cells of 32px in a 320x320 viewport: width limits the zoom.
	cam := New(320, 320, 640, 320)

	if cam.X != 320 || cam.Y != 160 {
		t.Errorf("expected camera at (320, 160), got (%f, %f)", cam.X, cam.Y)
	}
	if !near(cam.Zoom, 0.5) {
		t.Errorf("expected zoom 0.5, got %f", cam.Zoom)
	}
}

func TestSmallBoardNotMagnified(t *testing.T) {
	cam := New(800, 600, 160, 96)
	if cam.Zoom != 1 {
		t.Errorf("expected zoom 1, got %f", cam.Zoom)
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := New(640, 480, 640, 480)

	sx, sy := cam.WorldToScreen(320, 240)
	if !near(sx, 320) || !near(sy, 240) {
		t.Errorf("expected screen center (320, 240), got (%f, %f)", sx, sy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(640, 480, 1280, 960)
	cam.SetZoom(2)
	cam.Pan(100, -50)

	testPoints := [][2]float32{{0, 0}, {100, 200}, {639, 479}}
	for _, pt := range testPoints {
		wx, wy := cam.ScreenToWorld(pt[0], pt[1])
		sx, sy := cam.WorldToScreen(wx, wy)
		if !near(sx, pt[0]) || !near(sy, pt[1]) {
			t.Errorf("roundtrip failed: (%f, %f) -> (%f, %f)", pt[0], pt[1], sx, sy)
		}
	}
}

func TestScreenToCell(t *testing.T) {
	// 4x3 board of 32px cells, drawn 1:1.
	cam := New(128, 96, 128, 96)

	x, y, ok := cam.ScreenToCell(40, 70, 32)
	if !ok || x != 1 || y != 2 {
		t.Errorf("ScreenToCell(40, 70) = (%d, %d, %v), want (1, 2, true)", x, y, ok)
	}
	if _, _, ok := cam.ScreenToCell(-1, 10, 32); ok {
		t.Error("point left of the board should be off the board")
	}
	if _, _, ok := cam.ScreenToCell(10, 96, 32); ok {
		t.Error("point below the board should be off the board")
	}
}

func TestPanClampedToBoard(t *testing.T) {
	cam := New(100, 100, 100, 100)
	cam.Pan(1000, -1000)
	if cam.X != 100 || cam.Y != 0 {
		t.Errorf("expected camera clamped to (100, 0), got (%f, %f)", cam.X, cam.Y)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(200, 200, 400, 400)

	cam.SetZoom(0.1)
	if !near(cam.Zoom, cam.MinZoom) {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MinZoom, cam.Zoom)
	}
	cam.ZoomBy(100)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MaxZoom, cam.Zoom)
	}
}

func TestResizeRaisesMinZoom(t *testing.T) {
	cam := New(100, 100, 400, 400)
	cam.Resize(200, 200)
	if !near(cam.MinZoom, 0.5) || cam.Zoom < cam.MinZoom {
		t.Errorf("after resize: min %f zoom %f", cam.MinZoom, cam.Zoom)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(100, 100, 400, 400)
	cam.SetZoom(1)

	if !cam.IsVisible(200, 200, 0) {
		t.Error("center should be visible")
	}
	if cam.IsVisible(10, 10, 5) {
		t.Error("far corner should not be visible at zoom 1")
	}
}
