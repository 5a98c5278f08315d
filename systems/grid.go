// Package systems holds the board model and the rules every agent plays by:
// line of sight, reachable moves, heat memory and goal-directed search.
package systems

import (
	"fmt"

	"github.com/pthm-cable/hideseek/components"
)

// CellType is the terrain stored in a grid cell.
type CellType uint8

const (
	CellEmpty  CellType = iota
	CellWall            // Impassable, blocks sight
	CellBox             // Passable terrain; pushing is not modelled
	CellBorder          // Never stored; synthesized for out-of-range queries
)

func (c CellType) String() string {
	switch c {
	case CellEmpty:
		return "empty"
	case CellWall:
		return "wall"
	case CellBox:
		return "box"
	case CellBorder:
		return "border"
	default:
		return fmt.Sprintf("CellType(%d)", uint8(c))
	}
}

// Blocking reports whether agents can neither stand on nor see through c.
func (c CellType) Blocking() bool {
	return c == CellWall || c == CellBorder
}

// Grid is an immutable width x height board stored row-major.
// It is read-only during a game and safe to share between agents.
type Grid struct {
	cells  []CellType
	width  int
	height int
}

// NewGrid builds a grid from rows of cells. All rows must have the same,
// non-zero length.
func NewGrid(rows [][]CellType) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("grid: empty board")
	}
	w, h := len(rows[0]), len(rows)
	g := &Grid{
		cells:  make([]CellType, 0, w*h),
		width:  w,
		height: h,
	}
	for y, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("grid: row %d has %d cells, want %d", y, len(row), w)
		}
		for x, c := range row {
			if c == CellBorder {
				return nil, fmt.Errorf("grid: border cell stored at (%d, %d)", x, y)
			}
		}
		g.cells = append(g.cells, row...)
	}
	return g, nil
}

// Width returns the grid width in cells.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height in cells.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether p lies on the board.
func (g *Grid) InBounds(p components.Position) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// CellAt returns the cell at p, or CellBorder for any position off the board.
func (g *Grid) CellAt(p components.Position) CellType {
	if !g.InBounds(p) {
		return CellBorder
	}
	return g.cells[p.Y*g.width+p.X]
}

// Walkable reports whether an agent may stand on p.
func (g *Grid) Walkable(p components.Position) bool {
	return !g.CellAt(p).Blocking()
}

// index converts an in-bounds position to its row-major slot.
func (g *Grid) index(p components.Position) int {
	return p.Y*g.width + p.X
}

// position is the inverse of index.
func (g *Grid) position(i int) components.Position {
	return components.Position{X: i % g.width, Y: i / g.width}
}
