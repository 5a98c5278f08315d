package components

import (
	"fmt"
	"math"
)

// Position is an integer grid coordinate. Used for cells and agents.
type Position struct {
	X, Y int
}

// Pos is shorthand for Position{X: x, Y: y}.
func Pos(x, y int) Position {
	return Position{X: x, Y: y}
}

// Add returns p + o.
func (p Position) Add(o Position) Position {
	return Position{X: p.X + o.X, Y: p.Y + o.Y}
}

// Sub returns p - o.
func (p Position) Sub(o Position) Position {
	return Position{X: p.X - o.X, Y: p.Y - o.Y}
}

// IsZero reports whether p is the zero offset.
func (p Position) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// Taxicab returns the Manhattan distance between p and o.
func (p Position) Taxicab(o Position) int {
	return Abs(p.X-o.X) + Abs(p.Y-o.Y)
}

// Chebyshev returns the chessboard distance between p and o.
func (p Position) Chebyshev(o Position) int {
	dx, dy := Abs(p.X-o.X), Abs(p.Y-o.Y)
	if dx > dy {
		return dx
	}
	return dy
}

// Float lifts p into real-valued coordinates.
func (p Position) Float() Vec {
	return Vec{X: float64(p.X), Y: float64(p.Y)}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Vec is a real-valued 2D coordinate. Only used transiently for raycasting;
// never store one as agent or board state.
type Vec struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Div returns v / s.
func (v Vec) Div(s float64) Vec {
	return Vec{X: v.X / s, Y: v.Y / s}
}

// Snap rounds v to the nearest cell. Halves go to the even coordinate, so a
// ray through (1, 0.5) samples (1, 0).
func (v Vec) Snap() Position {
	return Position{X: int(math.RoundToEven(v.X)), Y: int(math.RoundToEven(v.Y))}
}

// Directions lists the eight unit moves, orthogonal first.
var Directions = [8]Position{
	{X: -1, Y: 0},  // W
	{X: 1, Y: 0},   // E
	{X: 0, Y: -1},  // N
	{X: 0, Y: 1},   // S
	{X: -1, Y: -1}, // NW
	{X: 1, Y: -1},  // NE
	{X: -1, Y: 1},  // SW
	{X: 1, Y: 1},   // SE
}

// IsDirection reports whether d is the zero offset or one of Directions.
func IsDirection(d Position) bool {
	return Abs(d.X) <= 1 && Abs(d.Y) <= 1
}

// Abs returns the absolute value of x.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
