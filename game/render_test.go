package game

import (
	"strings"
	"testing"

	"github.com/pthm-cable/hideseek/components"
)

func TestRender(t *testing.T) {
	g := newTestGame(t, "10\n3 1\n0 0\nSH.\n", nil)

	var sb strings.Builder
	if err := g.Render(&sb); err != nil {
		t.Fatal(err)
	}
	want := "1 left, 0s elapsed\nSH-\n"
	if sb.String() != want {
		t.Errorf("Render =\n%q\nwant\n%q", sb.String(), want)
	}
}

func TestRenderTerrain(t *testing.T) {
	g := newTestGame(t, "10\n0 1\n0 0\nS.X\n..B\n", nil)

	var sb strings.Builder
	if err := g.Render(&sb); err != nil {
		t.Fatal(err)
	}
	want := "0 left, 0s elapsed\nS.X\n..☐\n"
	if sb.String() != want {
		t.Errorf("Render =\n%q\nwant\n%q", sb.String(), want)
	}
}

func TestRenderFlare(t *testing.T) {
	g := newTestGame(t, "10\n0 1\n0 0\nS...H\n", nil)
	g.ShootFlare(components.Pos(2, 0), 5, 1)

	var sb strings.Builder
	if err := g.Render(&sb); err != nil {
		t.Fatal(err)
	}
	want := "1 left, 0s elapsed\nS.*.H\n"
	if sb.String() != want {
		t.Errorf("Render =\n%q\nwant\n%q", sb.String(), want)
	}
}

func TestRenderHeat(t *testing.T) {
	g := newTestGame(t, "10\n1 1\n0 0\nS..\n", nil)
	g.Seeker().Forget(components.Pos(0, 0), -3)
	g.Seeker().Forget(components.Pos(2, 0), 12)

	var sb strings.Builder
	if err := RenderHeat(&sb, g.Seeker()); err != nil {
		t.Fatal(err)
	}
	want := "   -3    0   12\n"
	if sb.String() != want {
		t.Errorf("RenderHeat = %q, want %q", sb.String(), want)
	}
}
