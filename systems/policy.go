package systems

import (
	"math"

	"github.com/pthm-cable/hideseek/components"
)

// Policy parameterises the shared search for one role: how a step is priced
// and how the distance to the goal set is estimated.
type Policy struct {
	Role      components.Role
	StepCost  func(h *HeatMap) CostFunc
	Heuristic func(goals map[components.Position]struct{}) HeuristicFunc
}

// PolicyFor returns the search policy of role.
//
// The seeker pays 1 per step and estimates with the taxicab distance to the
// nearest goal, so it heads for the closest hottest cell.
//
// The hider pays the heat of each cell it enters and estimates with the
// taxicab distance to the farthest goal. That estimate is not admissible:
// the hider looks for a cold path to some goal, not a shortest one.
func PolicyFor(role components.Role) Policy {
	if role == components.RoleHider {
		return Policy{Role: role, StepCost: heatCost, Heuristic: farthestGoal}
	}
	return Policy{Role: role, StepCost: unitCost, Heuristic: nearestGoal}
}

func unitCost(*HeatMap) CostFunc {
	return func(components.Position) int { return 1 }
}

func heatCost(h *HeatMap) CostFunc {
	return h.At
}

func nearestGoal(goals map[components.Position]struct{}) HeuristicFunc {
	list := make([]components.Position, 0, len(goals))
	for g := range goals {
		list = append(list, g)
	}
	return func(p components.Position) int {
		best := math.MaxInt
		for _, g := range list {
			if d := p.Taxicab(g); d < best {
				best = d
			}
		}
		return best
	}
}

// farthestGoal uses the rotated coordinates s = x+y and t = x-y, in which
// the largest taxicab distance to a set is the largest gap to its bounding
// box. O(1) per call.
func farthestGoal(goals map[components.Position]struct{}) HeuristicFunc {
	minS, maxS := math.MaxInt, math.MinInt
	minT, maxT := math.MaxInt, math.MinInt
	for g := range goals {
		s, t := g.X+g.Y, g.X-g.Y
		minS, maxS = min(minS, s), max(maxS, s)
		minT, maxT = min(minT, t), max(maxT, t)
	}
	return func(p components.Position) int {
		s, t := p.X+p.Y, p.X-p.Y
		return max(s-minS, maxS-s, t-minT, maxT-t)
	}
}
