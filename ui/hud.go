package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds what the side panel reports about the game.
type HUDData struct {
	Title      string
	HidersLeft int
	Elapsed    int
	TimeLimit  int
	Score      int
	Flares     int
	Outcome    string
	Paused     bool
	Selected   string // Agent whose heat layer is shown
	HeatLo     int
	HeatHi     int
}

// HUD renders the game summary at the top of the side panel.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD(r *Renderer) *HUD {
	return &HUD{renderer: r}
}

// Draw renders the HUD at (x, y) and returns the Y position below it.
func (h *HUD) Draw(x, y, width int32, data HUDData) int32 {
	r := h.renderer

	rl.DrawText(data.Title, x, y, 20, rl.White)
	y += 28

	y = r.DrawLabelValue(x, y, "Hiders", fmt.Sprintf("%d left", data.HidersLeft))
	y = r.DrawLabelValue(x, y, "Time", fmt.Sprintf("%d / %d", data.Elapsed, data.TimeLimit))
	y = r.DrawLabelValue(x, y, "Score", fmt.Sprintf("%d", data.Score))
	y = r.DrawLabelValue(x, y, "Flares", fmt.Sprintf("%d live", data.Flares))
	if data.TimeLimit > 0 {
		y = r.DrawBar(x, y, "Elapsed", float32(data.Elapsed)/float32(data.TimeLimit), width)
	}
	y += 4

	status := "Running"
	color := rl.Green
	switch {
	case data.Outcome != "running":
		status = data.Outcome
		color = rl.Orange
	case data.Paused:
		status = "Paused"
		color = rl.Yellow
	}
	rl.DrawText(status, x, y, 16, color)
	y += 24

	y = r.DrawSectionHeader(x, y, "Heat Layer")
	y = r.DrawLabelValue(x, y, "Agent", data.Selected)
	if data.Selected != "none" {
		y = r.DrawLabelValue(x, y, "Range", fmt.Sprintf("%d .. %d", data.HeatLo, data.HeatHi))
	}
	return y + 6
}

// DrawControls renders the key legend at the bottom of the panel.
func (h *HUD) DrawControls(x, y int32, lines []string) {
	for _, l := range lines {
		rl.DrawText(l, x, y, 12, rl.Gray)
		y += 14
	}
}
