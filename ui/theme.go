// Package ui draws a running game in a raylib window: the board, a heat
// layer, agents and flares, plus a side panel with raygui controls.
package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Theme holds UI styling constants.
type Theme struct {
	Background    rl.Color
	PanelBg       rl.Color
	PanelBorder   rl.Color
	SectionHeader rl.Color
	LabelColor    rl.Color
	ValueColor    rl.Color
	BarBg         rl.Color

	Empty  rl.Color
	Wall   rl.Color
	Box    rl.Color
	Seeker rl.Color
	Hider  rl.Color
	Flare  rl.Color
	Cold   rl.Color // Heat layer, lowest value
	Hot    rl.Color // Heat layer, highest value

	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		Background:    rl.Color{R: 15, G: 18, B: 22, A: 255},
		PanelBg:       rl.Color{R: 20, G: 25, B: 30, A: 240},
		PanelBorder:   rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader: rl.Yellow,
		LabelColor:    rl.LightGray,
		ValueColor:    rl.LightGray,
		BarBg:         rl.Color{R: 40, G: 40, B: 40, A: 255},

		Empty:  rl.Color{R: 200, G: 200, B: 190, A: 255},
		Wall:   rl.Color{R: 50, G: 50, B: 60, A: 255},
		Box:    rl.Color{R: 150, G: 110, B: 60, A: 255},
		Seeker: rl.Color{R: 210, G: 50, B: 50, A: 255},
		Hider:  rl.Color{R: 40, G: 110, B: 210, A: 255},
		Flare:  rl.Color{R: 255, G: 200, B: 0, A: 255},
		Cold:   rl.Color{R: 60, G: 120, B: 255, A: 150},
		Hot:    rl.Color{R: 255, G: 60, B: 30, A: 150},

		Padding:        10,
		LineHeight:     16,
		LabelWidth:     80,
		BarHeight:      12,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}

// Renderer handles panel drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a section header and returns the new Y position.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight
}

// DrawLabelValue draws a label and value on the same line and returns the
// new Y position.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawBar draws a progress bar for a value in [0, 1].
func (r *Renderer) DrawBar(x, y int32, label string, value float32, width int32) int32 {
	value = min(max(value, 0), 1)

	barX := x + r.Theme.LabelWidth
	barWidth := width - r.Theme.LabelWidth - 50

	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(barX, y+2, barWidth, r.Theme.BarHeight, r.Theme.BarBg)
	rl.DrawRectangle(barX, y+2, int32(float32(barWidth)*value), r.Theme.BarHeight, lerpColor(r.Theme.Cold, r.Theme.Hot, value))
	rl.DrawText(fmt.Sprintf("%.0f%%", value*100), barX+barWidth+5, y, r.Theme.FontSize, r.Theme.ValueColor)

	return y + r.Theme.LineHeight + 2
}
