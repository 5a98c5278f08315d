package systems

import "github.com/pthm-cable/hideseek/components"

// Steps returns the legal one-step moves from p: the 8 neighbours whose cell
// is neither Wall nor Border. Diagonals cost the same as orthogonals and may
// cut corners. Shared by Moveset and the pathfinder so a planned route is
// always walkable.
func Steps(g *Grid, p components.Position) []components.Position {
	out := make([]components.Position, 0, len(components.Directions))
	for _, d := range components.Directions {
		n := p.Add(d)
		if g.Walkable(n) {
			out = append(out, n)
		}
	}
	return out
}

// Moveset returns the cells reachable from `from` in at most maxStep unit
// moves. It is a flood fill, not a box: cells behind walls are excluded even
// when they lie within Chebyshev distance maxStep. `from` is always included.
func Moveset(g *Grid, from components.Position, maxStep int) map[components.Position]struct{} {
	reached := map[components.Position]struct{}{from: {}}
	frontier := []components.Position{from}

	for i := 0; i < maxStep && len(frontier) > 0; i++ {
		var next []components.Position
		for _, p := range frontier {
			for _, n := range Steps(g, p) {
				if _, ok := reached[n]; ok {
					continue
				}
				reached[n] = struct{}{}
				next = append(next, n)
			}
		}
		frontier = next
	}
	return reached
}
