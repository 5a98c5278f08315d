package game

import (
	"github.com/pthm-cable/hideseek/components"
	"github.com/pthm-cable/hideseek/systems"
)

// boardView is the occupancy an agent perceives: where the seeker and the
// hiders stand at the moment its turn starts.
type boardView struct {
	seeker components.Position
	hiders map[components.Position]int
	reach  int
}

func (b boardView) HiderAt(p components.Position) bool { return b.hiders[p] > 0 }

func (b boardView) SeekerAt(p components.Position) bool { return b.seeker == p }

func (b boardView) SeekerReach() int { return b.reach }

// snapshotBoard captures current occupancy for one agent's perception.
func (g *Game) snapshotBoard() systems.Board {
	b := boardView{
		seeker: g.seeker.Position(),
		hiders: make(map[components.Position]int),
		reach:  g.seeker.MaxStep(),
	}
	query := g.hiderFilter.Query()
	for query.Next() {
		a, _ := query.Get()
		b.hiders[a.Agent.Position()]++
	}
	return b
}

// emptyCellHeat returns a's heat over the Empty cells of the board.
func (g *Game) emptyCellHeat(a *systems.Agent) []float64 {
	heat := a.Heat()
	out := make([]float64, 0, g.grid.Width()*g.grid.Height())
	for y := 0; y < g.grid.Height(); y++ {
		for x := 0; x < g.grid.Width(); x++ {
			p := components.Pos(x, y)
			if g.grid.CellAt(p) == systems.CellEmpty {
				out = append(out, float64(heat.At(p)))
			}
		}
	}
	return out
}
