package ui

import (
	"fmt"
	"log/slog"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/hideseek/camera"
	"github.com/pthm-cable/hideseek/components"
	"github.com/pthm-cable/hideseek/config"
	"github.com/pthm-cable/hideseek/game"
	"github.com/pthm-cable/hideseek/systems"
)

// Viewer steps a game and draws it. The window must be open before
// NewViewer is called.
type Viewer struct {
	game     *game.Game
	cfg      *config.Config
	cam      *camera.Camera
	overlays *OverlayRegistry
	renderer *Renderer
	hud      *HUD

	cellSize   float32
	panelWidth int32

	running        bool
	ticksPerSecond float32
	tickAcc        float32
	selected       int // Hider index for the hider heat layer
}

// WindowSize returns the window size that fits the board of g at full zoom
// plus the side panel.
func WindowSize(g *game.Game, cfg *config.Config) (w, h int32) {
	cell := int32(cfg.Screen.CellSize)
	w = int32(g.Grid().Width())*cell + int32(cfg.Screen.PanelWidth)
	h = max(int32(g.Grid().Height())*cell, 480)
	return w, h
}

// NewViewer creates a viewer for g, paused on the initial board.
func NewViewer(g *game.Game, cfg *config.Config) *Viewer {
	cell := float32(cfg.Screen.CellSize)
	panel := int32(cfg.Screen.PanelWidth)
	viewW := float32(int32(rl.GetScreenWidth()) - panel)
	viewH := float32(rl.GetScreenHeight())

	r := NewRenderer()
	return &Viewer{
		game:     g,
		cfg:      cfg,
		cam:      camera.New(viewW, viewH, float32(g.Grid().Width())*cell, float32(g.Grid().Height())*cell),
		overlays: NewOverlayRegistry(),
		renderer: r,
		hud:      NewHUD(r),

		cellSize:       cell,
		panelWidth:     panel,
		ticksPerSecond: float32(cfg.Screen.TicksPerSecond),
	}
}

// Update handles input and advances the game when running.
func (v *Viewer) Update() {
	v.game.RecordFrame()
	v.handleInput()

	if !v.running {
		return
	}
	v.tickAcc += rl.GetFrameTime() * v.ticksPerSecond
	for v.tickAcc >= 1 && v.running {
		v.tickAcc--
		v.step()
	}
}

// step advances one tick and stops auto-run when the game ends.
func (v *Viewer) step() {
	if err := v.game.Tick(); err != nil {
		slog.Error("game aborted", "error", err)
	}
	if v.game.Outcome() != game.Running {
		v.running = false
	}
}

func (v *Viewer) handleInput() {
	if rl.IsWindowResized() {
		v.cam.Resize(float32(int32(rl.GetScreenWidth())-v.panelWidth), float32(rl.GetScreenHeight()))
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		v.toggleRun()
	}
	if rl.IsKeyPressed(rl.KeyN) && !v.running {
		v.step()
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		v.nextHider()
	}
	if key := rl.GetKeyPressed(); key != 0 {
		v.overlays.HandleKeyPress(key)
	}

	// Camera
	if wheel := rl.GetMouseWheelMove(); wheel != 0 && v.overBoard() {
		if wheel > 0 {
			v.cam.ZoomBy(1.25)
		} else {
			v.cam.ZoomBy(0.8)
		}
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		v.cam.Pan(-d.X, -d.Y)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		v.cam.Reset()
	}

	// Click a hider to show its heat
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && v.overBoard() {
		m := rl.GetMousePosition()
		if x, y, ok := v.cam.ScreenToCell(m.X, m.Y, v.cellSize); ok {
			for i, h := range v.game.Hiders() {
				if h.Position() == components.Pos(x, y) {
					v.selected = i
					v.overlays.SetEnabled(OverlayHiderHeat, true)
				}
			}
		}
	}
}

func (v *Viewer) overBoard() bool {
	return rl.GetMouseX() < int32(rl.GetScreenWidth())-v.panelWidth
}

func (v *Viewer) toggleRun() {
	if v.game.Outcome() != game.Running {
		return
	}
	v.running = !v.running
	v.tickAcc = 0
}

func (v *Viewer) nextHider() {
	if n := v.game.HidersLeft(); n > 0 {
		v.selected = (v.selected + 1) % n
	}
}

// heatAgent returns the agent whose heat layer is enabled, if any.
func (v *Viewer) heatAgent() (*systems.Agent, string) {
	if v.overlays.IsEnabled(OverlaySeekerHeat) {
		return v.game.Seeker(), "seeker"
	}
	if v.overlays.IsEnabled(OverlayHiderHeat) {
		hiders := v.game.Hiders()
		if len(hiders) == 0 {
			return nil, "none"
		}
		i := v.selected % len(hiders)
		return hiders[i], fmt.Sprintf("hider %d", i)
	}
	return nil, "none"
}

// Draw renders one frame.
func (v *Viewer) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(v.renderer.Theme.Background)

	agent, name := v.heatAgent()
	lo, hi := 0, 0
	if agent != nil {
		lo, hi = HeatRange(v.game.Grid(), agent.Heat())
	}

	v.drawBoard(agent, lo, hi)
	v.drawPanel(name, lo, hi)

	rl.EndDrawing()
}

// cellRect returns the screen rectangle of cell p.
func (v *Viewer) cellRect(p components.Position) rl.Rectangle {
	sx, sy := v.cam.WorldToScreen(float32(p.X)*v.cellSize, float32(p.Y)*v.cellSize)
	size := v.cellSize * v.cam.Zoom
	return rl.Rectangle{X: sx, Y: sy, Width: size, Height: size}
}

func (v *Viewer) drawBoard(heatAgent *systems.Agent, lo, hi int) {
	theme := v.renderer.Theme
	grid := v.game.Grid()
	seeker := v.game.Seeker()

	var goals map[components.Position]struct{}
	if v.overlays.IsEnabled(OverlayGoals) {
		if heatAgent != nil {
			goals = heatAgent.Goals()
		} else {
			goals = seeker.Goals()
		}
	}

	half := v.cellSize / 2
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			p := components.Pos(x, y)
			if !v.cam.IsVisible(float32(x)*v.cellSize+half, float32(y)*v.cellSize+half, half) {
				continue
			}
			rect := v.cellRect(p)

			switch grid.CellAt(p) {
			case systems.CellWall:
				rl.DrawRectangleRec(rect, theme.Wall)
				continue
			case systems.CellBox:
				rl.DrawRectangleRec(rect, theme.Box)
			default:
				rl.DrawRectangleRec(rect, theme.Empty)
				if heatAgent != nil {
					rl.DrawRectangleRec(rect, HeatColor(heatAgent.Heat().At(p), lo, hi, theme.Cold, theme.Hot))
				}
			}

			if v.overlays.IsEnabled(OverlayVision) && seeker.CanSee(p) {
				rl.DrawRectangleRec(rect, rl.Fade(theme.Seeker, 0.15))
			}
			if _, ok := goals[p]; ok {
				rl.DrawRectangleLinesEx(rect, 2, rl.White)
			}
			if v.overlays.IsEnabled(OverlayGridLines) {
				rl.DrawRectangleLinesEx(rect, 1, rl.Fade(rl.Black, 0.2))
			}
		}
	}

	fr := v.cfg.Flare.Range
	for _, f := range v.game.Flares() {
		if v.overlays.IsEnabled(OverlayFlareArea) {
			corner := v.cellRect(f.Pos.Add(components.Pos(-fr, -fr)))
			side := float32(v.cfg.Derived.FlareSide) * v.cellSize * v.cam.Zoom
			rl.DrawRectangleLinesEx(rl.Rectangle{X: corner.X, Y: corner.Y, Width: side, Height: side}, 2, theme.Flare)
		}
		v.drawMarker(f.Pos, 0.2, theme.Flare)
	}

	for _, h := range v.game.Hiders() {
		v.drawMarker(h.Position(), 0.35, theme.Hider)
	}
	v.drawMarker(seeker.Position(), 0.4, theme.Seeker)
}

// drawMarker draws a disc of radius frac cells at the center of p.
func (v *Viewer) drawMarker(p components.Position, frac float32, color rl.Color) {
	rect := v.cellRect(p)
	center := rl.Vector2{X: rect.X + rect.Width/2, Y: rect.Y + rect.Height/2}
	rl.DrawCircleV(center, rect.Width*frac, color)
}

func (v *Viewer) drawPanel(heatName string, lo, hi int) {
	r := v.renderer
	x := int32(rl.GetScreenWidth()) - v.panelWidth
	h := int32(rl.GetScreenHeight())
	r.DrawPanel(x, 0, v.panelWidth, h)

	pad := r.Theme.Padding
	x += pad
	width := v.panelWidth - 2*pad

	y := v.hud.Draw(x, pad, width, HUDData{
		Title:      "Hide and Seek",
		HidersLeft: v.game.HidersLeft(),
		Elapsed:    v.game.Elapsed(),
		TimeLimit:  v.game.TimeLimit(),
		Score:      v.game.Score(),
		Flares:     len(v.game.Flares()),
		Outcome:    v.game.Outcome().String(),
		Paused:     !v.running,
		Selected:   heatName,
		HeatLo:     lo,
		HeatHi:     hi,
	})

	fx, fy, fw := float32(x), float32(y), float32(width)
	half := (fw - 8) / 2

	if gui.Button(rl.Rectangle{X: fx, Y: fy, Width: half, Height: 28}, "Step") && !v.running {
		v.step()
	}
	if gui.Button(rl.Rectangle{X: fx + half + 8, Y: fy, Width: half, Height: 28}, toggleText(v.running, "Pause", "Run")) {
		v.toggleRun()
	}
	fy += 36

	if gui.Button(rl.Rectangle{X: fx, Y: fy, Width: half, Height: 28}, "Layer") {
		v.cycleHeatLayer()
	}
	if gui.Button(rl.Rectangle{X: fx + half + 8, Y: fy, Width: half, Height: 28}, "Next hider") {
		v.nextHider()
	}
	fy += 40

	rl.DrawText("Ticks per second", x, int32(fy), 12, r.Theme.LabelColor)
	fy += 16
	v.ticksPerSecond = gui.SliderBar(
		rl.Rectangle{X: fx, Y: fy, Width: fw - 40, Height: 16},
		"", fmt.Sprintf("%.0f", v.ticksPerSecond),
		v.ticksPerSecond, 1, 30,
	)
	fy += 30

	y = r.DrawSectionHeader(x, int32(fy), "Overlays")
	for _, desc := range v.overlays.All() {
		color := r.Theme.LabelColor
		mark := "[ ]"
		if v.overlays.IsEnabled(desc.ID) {
			color = rl.Green
			mark = "[x]"
		}
		rl.DrawText(fmt.Sprintf("%s %s  (%s)", mark, desc.Name, desc.KeyLabel), x, y, r.Theme.FontSize, color)
		y += r.Theme.LineHeight
	}

	v.hud.DrawControls(x, h-4*14-pad, []string{
		"Space run/pause, N step",
		"Tab next hider, click to pick",
		"Wheel zoom, right-drag pan",
		"Home reset view",
	})
}

// cycleHeatLayer rotates seeker heat, hider heat and no heat layer.
func (v *Viewer) cycleHeatLayer() {
	switch {
	case v.overlays.IsEnabled(OverlaySeekerHeat):
		v.overlays.SetEnabled(OverlayHiderHeat, true)
	case v.overlays.IsEnabled(OverlayHiderHeat):
		v.overlays.SetEnabled(OverlayHiderHeat, false)
	default:
		v.overlays.SetEnabled(OverlaySeekerHeat, true)
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
