package systems

import "github.com/pthm-cable/hideseek/components"

// CanSee reports whether an observer at from with the given vision range has
// line of sight to target.
//
// Vision is a square of side 2*vision+1. The ray is sampled once per
// Chebyshev step and each sample is snapped to the nearest cell, halves
// going to even. A wall before the last sample blocks sight; a wall on the
// target itself does not, so walls are visible but not transparent. Walking off the board ends the
// ray successfully since nothing beyond the edge can occlude.
func CanSee(g *Grid, from components.Position, vision int, target components.Position) bool {
	steps := from.Chebyshev(target)
	if steps > vision {
		return false
	}
	if steps == 0 {
		return true
	}

	d := target.Sub(from)
	step := d.Float().Div(float64(steps))
	cur := from.Float()

	for i := 0; i < steps; i++ {
		cur = cur.Add(step)
		switch g.CellAt(cur.Snap()) {
		case CellWall:
			if i != steps-1 {
				return false
			}
		case CellBorder:
			return true
		}
	}
	return true
}

// Perceivable returns every position in the square vision window around
// from, including off-board positions. Callers filter with CellAt / CanSee.
func Perceivable(from components.Position, vision int) []components.Position {
	side := 2*vision + 1
	out := make([]components.Position, 0, side*side)
	for x := from.X - vision; x <= from.X+vision; x++ {
		for y := from.Y - vision; y <= from.Y+vision; y++ {
			out = append(out, components.Position{X: x, Y: y})
		}
	}
	return out
}
