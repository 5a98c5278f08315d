package systems

import (
	"testing"

	"github.com/pthm-cable/hideseek/components"
)

func TestMovesetZeroSteps(t *testing.T) {
	g := openGrid(t, 5, 5)
	from := components.Pos(2, 2)
	got := Moveset(g, from, 0)
	if len(got) != 1 {
		t.Fatalf("Moveset(0) has %d cells, want 1", len(got))
	}
	if _, ok := got[from]; !ok {
		t.Error("Moveset(0) should contain the start cell")
	}
}

func TestMovesetOpenGridIsChebyshevBall(t *testing.T) {
	g := openGrid(t, 11, 11)
	from := components.Pos(5, 5)

	for k := 0; k <= 4; k++ {
		got := Moveset(g, from, k)
		side := 2*k + 1
		if len(got) != side*side {
			t.Errorf("Moveset(%d) has %d cells, want %d", k, len(got), side*side)
		}
		for p := range got {
			if from.Chebyshev(p) > k {
				t.Errorf("Moveset(%d) contains %v outside the ball", k, p)
			}
		}
	}
}

func TestMovesetClippedAtBorder(t *testing.T) {
	g := openGrid(t, 5, 5)
	got := Moveset(g, components.Pos(0, 0), 1)
	if len(got) != 4 {
		t.Errorf("corner Moveset(1) has %d cells, want 4", len(got))
	}
}

func TestMovesetExcludesCellsBehindWalls(t *testing.T) {
	g := gridFromRows(t,
		"..X..",
		"..X..",
		"..X..",
	)
	got := Moveset(g, components.Pos(1, 1), 2)
	for p := range got {
		if p.X >= 2 {
			t.Errorf("Moveset reached %v across a full wall", p)
		}
	}
	if _, ok := got[components.Pos(0, 0)]; !ok {
		t.Error("Moveset should reach (0, 0)")
	}
}

func TestMovesetFollowsWindingPath(t *testing.T) {
	// The only way to (2, 0) from (0, 0) is down, across and back up.
	g := gridFromRows(t,
		".X.",
		".X.",
		"...",
	)
	from := components.Pos(0, 0)
	if _, ok := Moveset(g, from, 3)[components.Pos(2, 0)]; ok {
		t.Error("(2, 0) should not be reachable in 3 steps")
	}
	if _, ok := Moveset(g, from, 4)[components.Pos(2, 0)]; !ok {
		t.Error("(2, 0) should be reachable in 4 steps")
	}
}

func TestStepsSkipBlocked(t *testing.T) {
	g := gridFromRows(t,
		".X",
		"B.",
	)
	steps := Steps(g, components.Pos(0, 0))
	if len(steps) != 2 {
		t.Fatalf("Steps returned %d moves, want 2: %v", len(steps), steps)
	}
	for _, s := range steps {
		if !g.Walkable(s) {
			t.Errorf("Steps returned blocked cell %v", s)
		}
	}
}
