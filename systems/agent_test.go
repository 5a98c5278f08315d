package systems

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/pthm-cable/hideseek/components"
)

// fakeBoard places hiders and a seeker at fixed cells.
type fakeBoard struct {
	hiders map[components.Position]bool
	seeker components.Position
	reach  int
}

func (b fakeBoard) HiderAt(p components.Position) bool  { return b.hiders[p] }
func (b fakeBoard) SeekerAt(p components.Position) bool { return b.seeker == p }
func (b fakeBoard) SeekerReach() int                    { return b.reach }

func newTestAgent(t *testing.T, g *Grid, role components.Role, pos components.Position, vision, step int) *Agent {
	t.Helper()
	a, err := NewAgent(g, role, pos, vision, step, DefaultHeatParams())
	if err != nil {
		t.Fatalf("NewAgent: %v", err)
	}
	return a
}

func TestNewAgentValidation(t *testing.T) {
	g := gridFromRows(t, ".X")
	params := DefaultHeatParams()

	if _, err := NewAgent(g, components.RoleSeeker, components.Pos(0, 0), -1, 1, params); err == nil {
		t.Error("expected error for negative vision")
	}
	if _, err := NewAgent(g, components.RoleSeeker, components.Pos(0, 0), 1, -1, params); err == nil {
		t.Error("expected error for negative step budget")
	}
	if _, err := NewAgent(g, components.RoleSeeker, components.Pos(1, 0), 1, 1, params); err == nil {
		t.Error("expected error for start on a wall")
	}
	if _, err := NewAgent(g, components.RoleSeeker, components.Pos(5, 0), 1, 1, params); err == nil {
		t.Error("expected error for start off the board")
	}
}

func TestApplyMove(t *testing.T) {
	g := gridFromRows(t,
		".X",
		"..",
	)
	a := newTestAgent(t, g, components.RoleSeeker, components.Pos(0, 0), 1, 1)

	if a.ApplyMove(components.Pos(1, 0)) {
		t.Error("move onto a wall should fail")
	}
	if a.ApplyMove(components.Pos(-1, 0)) {
		t.Error("move off the board should fail")
	}
	if a.Position() != components.Pos(0, 0) {
		t.Errorf("position after failed moves = %v, want (0, 0)", a.Position())
	}
	if !a.ApplyMove(components.Pos(1, 1)) {
		t.Error("diagonal move onto an empty cell should succeed")
	}
	if a.Position() != components.Pos(1, 1) {
		t.Errorf("position = %v, want (1, 1)", a.Position())
	}
}

func TestSeekerPerceiveCoolsAndSights(t *testing.T) {
	g := openGrid(t, 3, 3)
	a := newTestAgent(t, g, components.RoleSeeker, components.Pos(0, 0), 3, 1)
	hider := components.Pos(2, 2)
	b := fakeBoard{hiders: map[components.Position]bool{hider: true}}

	a.Heat().Set(hider, -40)
	var prev []int
	for tick := 0; tick < 4; tick++ {
		a.Perceive(b)
		if got := a.Heat().At(hider); got != DefaultHeatParams().Sighting {
			t.Fatalf("tick %d: hider cell heat = %d, want %d", tick, got, DefaultHeatParams().Sighting)
		}
		cur := a.Heat().Values()
		for i := range prev {
			if g.position(i) != hider && cur[i] > prev[i] {
				t.Errorf("tick %d: cell %v warmed from %d to %d", tick, g.position(i), prev[i], cur[i])
			}
		}
		prev = cur
	}
	if got := a.Heat().At(components.Pos(1, 1)); got != -4 {
		t.Errorf("cooled cell heat = %d, want -4", got)
	}
}

func TestSeekerPerceiveRespectsWalls(t *testing.T) {
	g := gridFromRows(t, ".X.")
	a := newTestAgent(t, g, components.RoleSeeker, components.Pos(0, 0), 2, 1)
	a.Perceive(fakeBoard{})

	if got := a.Heat().At(components.Pos(2, 0)); got != 0 {
		t.Errorf("hidden cell heat = %d, want 0", got)
	}
	if got := a.Heat().At(components.Pos(1, 0)); got != -1 {
		t.Errorf("visible wall heat = %d, want -1", got)
	}
}

func TestHiderPerceiveWarms(t *testing.T) {
	g := openGrid(t, 7, 1)
	a := newTestAgent(t, g, components.RoleHider, components.Pos(0, 0), 6, 1)
	b := fakeBoard{seeker: components.Pos(6, 0), reach: 1}
	a.Perceive(b)

	p := DefaultHeatParams()
	if got := a.Heat().At(components.Pos(2, 0)); got != p.HiderAmbient {
		t.Errorf("ambient cell heat = %d, want %d", got, p.HiderAmbient)
	}
	// (5, 0) is seen and within the seeker's reach.
	if got := a.Heat().At(components.Pos(5, 0)); got != p.HiderAmbient+p.HiderAlarm {
		t.Errorf("cell in seeker reach = %d, want %d", got, p.HiderAmbient+p.HiderAlarm)
	}
	if got := a.Heat().At(components.Pos(6, 0)); got != p.HiderAlarm {
		t.Errorf("seeker cell = %d, want %d", got, p.HiderAlarm)
	}
}

func TestNotifyFlareBoundedSquare(t *testing.T) {
	g := openGrid(t, 9, 9)
	p := DefaultHeatParams()
	flare := components.Pos(4, 4)

	for _, role := range []components.Role{components.RoleSeeker, components.RoleHider} {
		a := newTestAgent(t, g, role, components.Pos(0, 0), 1, 1)
		a.NotifyFlare(flare)

		want := p.FlareSeekerLevel
		if role == components.RoleHider {
			want = p.FlareHiderIncrement
		}
		for x := 0; x < 9; x++ {
			for y := 0; y < 9; y++ {
				c := components.Pos(x, y)
				got := a.Heat().At(c)
				if flare.Chebyshev(c) <= p.FlareRange {
					if got != want {
						t.Errorf("%s: heat at %v = %d, want %d", role, c, got, want)
					}
				} else if got != 0 {
					t.Errorf("%s: heat outside flare at %v = %d, want 0", role, c, got)
				}
			}
		}
	}
}

func TestNotifyFlareSkipsWalls(t *testing.T) {
	g := gridFromRows(t, ".X.")
	a := newTestAgent(t, g, components.RoleHider, components.Pos(0, 0), 1, 1)
	a.NotifyFlare(components.Pos(1, 0))
	if got := a.Heat().At(components.Pos(1, 0)); got != 0 {
		t.Errorf("wall heat after flare = %d, want 0", got)
	}
}

func TestChooseFlareSite(t *testing.T) {
	g := openGrid(t, 5, 5)
	a := newTestAgent(t, g, components.RoleHider, components.Pos(2, 2), 1, 1)
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		site, err := a.ChooseFlareSite(rng)
		if err != nil {
			t.Fatalf("ChooseFlareSite: %v", err)
		}
		if site == a.Position() || site.Chebyshev(a.Position()) > DefaultHeatParams().FlareRange {
			t.Fatalf("flare site %v out of range", site)
		}
		if g.CellAt(site) != CellEmpty {
			t.Fatalf("flare site %v is %s", site, g.CellAt(site))
		}
	}
}

func TestChooseFlareSiteNoCandidate(t *testing.T) {
	g := gridFromRows(t,
		"XXX",
		"X.X",
		"XXX",
	)
	a := newTestAgent(t, g, components.RoleHider, components.Pos(1, 1), 1, 1)
	_, err := a.ChooseFlareSite(rand.New(rand.NewSource(1)))
	if !errors.Is(err, ErrNoFlareSite) {
		t.Errorf("err = %v, want ErrNoFlareSite", err)
	}
}

// TestSeekerScenarioOpenMap: one perceive/decide cycle points at the hider.
func TestSeekerScenarioOpenMap(t *testing.T) {
	g := openGrid(t, 5, 5)
	a := newTestAgent(t, g, components.RoleSeeker, components.Pos(0, 0), 5, 1)
	b := fakeBoard{hiders: map[components.Position]bool{components.Pos(4, 4): true}}

	a.Perceive(b)
	dir, err := a.Decide()
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if dir != components.Pos(1, 1) {
		t.Errorf("Decide = %v, want (1, 1)", dir)
	}
}

// TestSeekerScenarioWallColumn: the hider is hidden behind a full wall and
// the seeker keeps choosing legal moves on its own side.
func TestSeekerScenarioWallColumn(t *testing.T) {
	g := gridFromRows(t,
		"..X..",
		"..X..",
		"..X..",
		"..X..",
		"..X..",
	)
	hider := components.Pos(4, 2)
	b := fakeBoard{hiders: map[components.Position]bool{hider: true}}

	far := newTestAgent(t, g, components.RoleSeeker, components.Pos(0, 2), 5, 1)
	if far.CanSee(hider) {
		t.Fatal("seeker should not see through the wall column")
	}

	a := newTestAgent(t, g, components.RoleSeeker, components.Pos(0, 2), 1, 1)
	for tick := 0; tick < 3; tick++ {
		a.Perceive(b)
		dir, err := a.Decide()
		if err != nil {
			t.Fatalf("tick %d: Decide: %v", tick, err)
		}
		if !components.IsDirection(dir) {
			t.Fatalf("tick %d: Decide = %v, not a unit step", tick, dir)
		}
		if !dir.IsZero() && !a.ApplyMove(dir) {
			t.Fatalf("tick %d: Decide returned illegal move %v from %v", tick, dir, a.Position())
		}
	}
}

func TestDecideUnreachable(t *testing.T) {
	g := gridFromRows(t, ".X.")
	a := newTestAgent(t, g, components.RoleSeeker, components.Pos(0, 0), 2, 1)
	// Own cell cooled, the far cell stays the hottest but is sealed off.
	a.Perceive(fakeBoard{})
	if _, err := a.Decide(); !errors.Is(err, ErrUnreachable) {
		t.Errorf("Decide err = %v, want ErrUnreachable", err)
	}
}

func TestHiderDecideFleesHeat(t *testing.T) {
	g := openGrid(t, 7, 1)
	a := newTestAgent(t, g, components.RoleHider, components.Pos(3, 0), 1, 1)
	// Seeker just left of the hider.
	a.Perceive(fakeBoard{seeker: components.Pos(2, 0), reach: 1})
	dir, err := a.Decide()
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if dir.X <= 0 {
		t.Errorf("hider moved %v, want away from the seeker", dir)
	}
}
