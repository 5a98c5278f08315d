package systems

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/hideseek/components"
)

// ErrNoFlareSite is returned when no empty cell around a hider can take a flare.
var ErrNoFlareSite = errors.New("no empty cell for flare")

// Board answers occupancy questions during perception. It is supplied by
// the turn driver.
type Board interface {
	HiderAt(p components.Position) bool
	SeekerAt(p components.Position) bool
	// SeekerReach is the seeker's per-turn step budget.
	SeekerReach() int
}

// HeatParams holds the constants of the additive heat rules.
type HeatParams struct {
	Sighting            int // Seeker: forced heat of a cell holding a hider
	Cooling             int // Seeker: decrement for a seen, empty cell
	HiderAmbient        int // Hider: increment for a seen cell without the seeker
	HiderAlarm          int // Hider: increment over the seeker's reach when sighted
	FlareRange          int // Half-side of the square a flare affects
	FlareSeekerLevel    int // Seeker: heat forced inside a flare square
	FlareHiderIncrement int // Hider: heat added inside a flare square
}

// DefaultHeatParams returns the stock heat constants.
func DefaultHeatParams() HeatParams {
	return HeatParams{
		Sighting:            10,
		Cooling:             1,
		HiderAmbient:        1,
		HiderAlarm:          5,
		FlareRange:          2,
		FlareSeekerLevel:    1,
		FlareHiderIncrement: 5,
	}
}

// Agent is a seeker or hider: a position, a vision range, a step budget and
// a private heatmap. The role selects heat polarity and search policy.
type Agent struct {
	role    components.Role
	pos     components.Position
	vision  int
	maxStep int

	grid    *Grid
	heat    *HeatMap
	planner *Planner
	policy  Policy
	params  HeatParams
}

// NewAgent places an agent of the given role on g at pos.
func NewAgent(g *Grid, role components.Role, pos components.Position, vision, maxStep int, params HeatParams) (*Agent, error) {
	if vision < 0 {
		return nil, fmt.Errorf("%s: negative vision range %d", role, vision)
	}
	if maxStep < 0 {
		return nil, fmt.Errorf("%s: negative step budget %d", role, maxStep)
	}
	if !g.Walkable(pos) {
		return nil, fmt.Errorf("%s: start %v is %s", role, pos, g.CellAt(pos))
	}
	return &Agent{
		role:    role,
		pos:     pos,
		vision:  vision,
		maxStep: maxStep,
		grid:    g,
		heat:    NewHeatMap(g.Width(), g.Height()),
		planner: NewPlanner(g),
		policy:  PolicyFor(role),
		params:  params,
	}, nil
}

// Role returns the agent's role.
func (a *Agent) Role() components.Role { return a.role }

// Position returns the agent's current cell.
func (a *Agent) Position() components.Position { return a.pos }

// VisionRange returns the half-side of the agent's vision square.
func (a *Agent) VisionRange() int { return a.vision }

// MaxStep returns the agent's per-turn step budget.
func (a *Agent) MaxStep() int { return a.maxStep }

// Heat returns the agent's heatmap. Callers must treat it as read-only.
func (a *Agent) Heat() *HeatMap { return a.heat }

// CanSee reports whether the agent has line of sight to target.
func (a *Agent) CanSee(target components.Position) bool {
	return CanSee(a.grid, a.pos, a.vision, target)
}

// Perceive updates the heatmap from every visible on-board cell.
func (a *Agent) Perceive(b Board) {
	for _, cell := range Perceivable(a.pos, a.vision) {
		if a.grid.CellAt(cell) == CellBorder || !a.CanSee(cell) {
			continue
		}
		switch a.role {
		case components.RoleSeeker:
			if b.HiderAt(cell) {
				a.heat.Set(cell, a.params.Sighting)
			} else {
				a.heat.Add(cell, -a.params.Cooling)
			}
		case components.RoleHider:
			if b.SeekerAt(cell) {
				for reach := range Moveset(a.grid, cell, b.SeekerReach()) {
					a.heat.Add(reach, a.params.HiderAlarm)
				}
			} else {
				a.heat.Add(cell, a.params.HiderAmbient)
			}
		}
	}
}

// NotifyFlare applies a flare stimulus at p to the Empty cells of the
// surrounding square. The seeker takes the flare as a lead and forces a low
// heat; the hider heats the area up to steer away from it.
func (a *Agent) NotifyFlare(p components.Position) {
	r := a.params.FlareRange
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			cell := p.Add(components.Position{X: dx, Y: dy})
			if a.grid.CellAt(cell) != CellEmpty {
				continue
			}
			if a.role == components.RoleSeeker {
				a.heat.Set(cell, a.params.FlareSeekerLevel)
			} else {
				a.heat.Add(cell, a.params.FlareHiderIncrement)
			}
		}
	}
}

// Forget overwrites the heat at p. The turn driver uses it to clear the
// seeker's memory of a cell where a hider was just caught.
func (a *Agent) Forget(p components.Position, v int) {
	a.heat.Set(p, v)
}

// Goals returns the current goal set: Empty cells at the role's heat extremum.
func (a *Agent) Goals() map[components.Position]struct{} {
	return a.heat.Goals(a.grid, a.role)
}

// Decide returns the next-step offset toward the goal set. ErrUnreachable
// means no goal can be reached from the current cell and the agent cannot
// continue.
func (a *Agent) Decide() (components.Position, error) {
	goals := a.Goals()
	dir, err := a.planner.Route(a.pos, goals, a.policy.StepCost(a.heat), a.policy.Heuristic(goals))
	if err != nil {
		slog.Debug("no route to goals", "role", a.role, "pos", a.pos, "goals", len(goals))
		return components.Position{}, fmt.Errorf("%s at %v: %w", a.role, a.pos, err)
	}
	return dir, nil
}

// SearchCost returns the cells expanded by the last Decide.
func (a *Agent) SearchCost() int { return a.planner.Expanded() }

// ApplyMove moves the agent by dir unless the destination is Wall or Border.
// Reports whether the agent moved.
func (a *Agent) ApplyMove(dir components.Position) bool {
	dest := a.pos.Add(dir)
	if !a.grid.Walkable(dest) {
		slog.Debug("move blocked", "role", a.role, "from", a.pos, "to", dest, "cell", a.grid.CellAt(dest))
		return false
	}
	a.pos = dest
	return true
}

// ChooseFlareSite picks a random Empty cell within the flare range around
// the agent, excluding its own cell.
func (a *Agent) ChooseFlareSite(rng *rand.Rand) (components.Position, error) {
	r := a.params.FlareRange
	var candidates []components.Position
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			p := a.pos.Add(components.Position{X: dx, Y: dy})
			if a.grid.CellAt(p) == CellEmpty {
				candidates = append(candidates, p)
			}
		}
	}
	if len(candidates) == 0 {
		return components.Position{}, fmt.Errorf("%s at %v: %w", a.role, a.pos, ErrNoFlareSite)
	}
	return candidates[rng.Intn(len(candidates))], nil
}
