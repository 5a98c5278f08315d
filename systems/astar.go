package systems

import (
	"container/heap"
	"errors"

	"github.com/pthm-cable/hideseek/components"
)

// ErrUnreachable is returned when the open set empties before any goal is
// reached: the goal set is cut off from the start by walls.
var ErrUnreachable = errors.New("goal set unreachable")

// CostFunc returns the cost of stepping onto cell to.
type CostFunc func(to components.Position) int

// HeuristicFunc estimates the remaining cost from p to the goal set.
type HeuristicFunc func(p components.Position) int

// Planner runs multi-goal best-first searches over a grid. It keeps its
// working sets between calls; a Planner must not be shared between goroutines.
type Planner struct {
	grid *Grid

	// Reusable data structures (cleared between searches)
	openHeap  *nodeHeap
	closedSet map[int]struct{}
	cameFrom  map[int]int
	gScore    map[int]int

	expanded int // Cells expanded by the last Route call
}

// searchNode is a node in the open set.
type searchNode struct {
	id    int // Row-major cell index
	f     int // f = g + h (priority)
	index int // Heap index
}

// nodeHeap implements heap.Interface for the open set.
type nodeHeap []*searchNode

func (h nodeHeap) Len() int           { return len(h) }
func (h nodeHeap) Less(i, j int) bool { return h[i].f < h[j].f }
func (h nodeHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *nodeHeap) Push(x any) {
	n := x.(*searchNode)
	n.index = len(*h)
	*h = append(*h, n)
}

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*h = old[0 : n-1]
	return node
}

// NewPlanner creates a planner for g.
func NewPlanner(g *Grid) *Planner {
	return &Planner{
		grid:      g,
		openHeap:  &nodeHeap{},
		closedSet: make(map[int]struct{}, 64),
		cameFrom:  make(map[int]int, 64),
		gScore:    make(map[int]int, 64),
	}
}

func (a *Planner) reset() {
	*a.openHeap = (*a.openHeap)[:0]
	clear(a.closedSet)
	clear(a.cameFrom)
	clear(a.gScore)
}

// Route searches from start toward any cell of goals and returns the offset
// from start to the first cell of the discovered path. The zero offset is
// returned when start is itself a goal.
//
// Neighbours come from Steps, so every returned offset is a legal move.
// Each cell is expanded at most once; with an inconsistent heuristic the
// result is a valid path but not necessarily the cheapest. Ties on f resolve
// in heap order.
func (a *Planner) Route(start components.Position, goals map[components.Position]struct{}, cost CostFunc, h HeuristicFunc) (components.Position, error) {
	a.expanded = 0
	if _, ok := goals[start]; ok {
		return components.Position{}, nil
	}
	if len(goals) == 0 || !a.grid.InBounds(start) {
		return components.Position{}, ErrUnreachable
	}

	a.reset()
	g := a.grid
	startID := g.index(start)
	a.gScore[startID] = 0
	heap.Push(a.openHeap, &searchNode{id: startID, f: h(start)})

	for a.openHeap.Len() > 0 {
		current := heap.Pop(a.openHeap).(*searchNode)
		if _, done := a.closedSet[current.id]; done {
			continue
		}
		pos := g.position(current.id)

		if _, ok := goals[pos]; ok {
			return a.firstStep(startID, current.id).Sub(start), nil
		}
		a.closedSet[current.id] = struct{}{}
		a.expanded++

		for _, n := range Steps(g, pos) {
			nid := g.index(n)
			if _, done := a.closedSet[nid]; done {
				continue
			}

			tentativeG := a.gScore[current.id] + cost(n)
			if existing, ok := a.gScore[nid]; ok && tentativeG >= existing {
				continue
			}

			a.cameFrom[nid] = current.id
			a.gScore[nid] = tentativeG
			heap.Push(a.openHeap, &searchNode{id: nid, f: tentativeG + h(n)})
		}
	}

	return components.Position{}, ErrUnreachable
}

// Expanded returns the number of cells the last Route call expanded. A
// route from a goal cell expands none.
func (a *Planner) Expanded() int { return a.expanded }

// firstStep walks parent links back from goalID and returns the cell
// adjacent to the start.
func (a *Planner) firstStep(startID, goalID int) components.Position {
	current := goalID
	for {
		parent, ok := a.cameFrom[current]
		if !ok || parent == startID {
			break
		}
		current = parent
	}
	return a.grid.position(current)
}
