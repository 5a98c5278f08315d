package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/hideseek/components"
	"github.com/pthm-cable/hideseek/systems"
)

// HeatRange returns the lowest and highest heat over the Empty cells of g.
func HeatRange(g *systems.Grid, h *systems.HeatMap) (lo, hi int) {
	first := true
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			p := components.Pos(x, y)
			if g.CellAt(p) != systems.CellEmpty {
				continue
			}
			v := h.At(p)
			if first {
				lo, hi, first = v, v, false
				continue
			}
			lo, hi = min(lo, v), max(hi, v)
		}
	}
	return lo, hi
}

// HeatColor maps v within [lo, hi] onto the cold..hot gradient. A flat map
// is drawn at the midpoint.
func HeatColor(v, lo, hi int, cold, hot rl.Color) rl.Color {
	if hi <= lo {
		return lerpColor(cold, hot, 0.5)
	}
	t := float32(v-lo) / float32(hi-lo)
	return lerpColor(cold, hot, min(max(t, 0), 1))
}

func lerpColor(a, b rl.Color, t float32) rl.Color {
	mix := func(x, y uint8) uint8 {
		return uint8(float32(x) + (float32(y)-float32(x))*t + 0.5)
	}
	return rl.Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}
