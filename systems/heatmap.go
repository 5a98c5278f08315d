package systems

import (
	"math"

	"github.com/pthm-cable/hideseek/components"
)

// HeatMap is an agent's private memory of observed activity, one signed
// integer per cell. Values are unbounded; only their relative order matters.
type HeatMap struct {
	values []int
	width  int
	height int
}

// NewHeatMap creates a zeroed heatmap of the given size.
func NewHeatMap(width, height int) *HeatMap {
	return &HeatMap{
		values: make([]int, width*height),
		width:  width,
		height: height,
	}
}

// Width returns the heatmap width.
func (h *HeatMap) Width() int { return h.width }

// Height returns the heatmap height.
func (h *HeatMap) Height() int { return h.height }

func (h *HeatMap) inBounds(p components.Position) bool {
	return p.X >= 0 && p.X < h.width && p.Y >= 0 && p.Y < h.height
}

// At returns the heat at p, or 0 off the map.
func (h *HeatMap) At(p components.Position) int {
	if !h.inBounds(p) {
		return 0
	}
	return h.values[p.Y*h.width+p.X]
}

// Set forces the heat at p to v. Off-map writes are ignored.
func (h *HeatMap) Set(p components.Position, v int) {
	if !h.inBounds(p) {
		return
	}
	h.values[p.Y*h.width+p.X] = v
}

// Add adds delta to the heat at p. Off-map writes are ignored.
func (h *HeatMap) Add(p components.Position, delta int) {
	if !h.inBounds(p) {
		return
	}
	h.values[p.Y*h.width+p.X] += delta
}

// Values returns a row-major copy of the heat values.
func (h *HeatMap) Values() []int {
	out := make([]int, len(h.values))
	copy(out, h.values)
	return out
}

// Floats returns a row-major copy of the heat values as float64, for stats.
func (h *HeatMap) Floats() []float64 {
	out := make([]float64, len(h.values))
	for i, v := range h.values {
		out[i] = float64(v)
	}
	return out
}

// Extremum returns the best heat value among Empty cells of g, where better
// is decided by role (max for the seeker, min for the hider). ok is false when
// the board has no Empty cell.
func (h *HeatMap) Extremum(g *Grid, role components.Role) (best int, ok bool) {
	best = math.MinInt
	if role == components.RoleHider {
		best = math.MaxInt
	}
	for i, v := range h.values {
		if g.cells[i] != CellEmpty {
			continue
		}
		if role == components.RoleHider {
			if v < best {
				best = v
			}
		} else if v > best {
			best = v
		}
		ok = true
	}
	return best, ok
}

// Goals returns every Empty cell attaining the role's extremum heat. Ties
// are left for the pathfinder to resolve.
func (h *HeatMap) Goals(g *Grid, role components.Role) map[components.Position]struct{} {
	goals := make(map[components.Position]struct{})
	best, ok := h.Extremum(g, role)
	if !ok {
		return goals
	}
	for i, v := range h.values {
		if v == best && g.cells[i] == CellEmpty {
			goals[g.position(i)] = struct{}{}
		}
	}
	return goals
}
