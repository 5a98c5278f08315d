package game

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/hideseek/components"
	"github.com/pthm-cable/hideseek/systems"
)

const sampleMap = `30
3 1
2 1

S..X
.☐.H
..BH
`

func TestParseMap(t *testing.T) {
	layout, err := ParseMap(strings.NewReader(sampleMap))
	if err != nil {
		t.Fatalf("ParseMap: %v", err)
	}

	if layout.TimeLimit != 30 {
		t.Errorf("TimeLimit = %d, want 30", layout.TimeLimit)
	}
	if layout.SeekerVision != 3 || layout.SeekerStep != 1 {
		t.Errorf("seeker = (%d, %d), want (3, 1)", layout.SeekerVision, layout.SeekerStep)
	}
	if layout.HiderVision != 2 || layout.HiderStep != 1 {
		t.Errorf("hider = (%d, %d), want (2, 1)", layout.HiderVision, layout.HiderStep)
	}
	if layout.Seeker != components.Pos(0, 0) {
		t.Errorf("Seeker = %v, want (0, 0)", layout.Seeker)
	}
	wantHiders := []components.Position{components.Pos(3, 1), components.Pos(3, 2)}
	if len(layout.Hiders) != len(wantHiders) {
		t.Fatalf("Hiders = %v, want %v", layout.Hiders, wantHiders)
	}
	for i, h := range wantHiders {
		if layout.Hiders[i] != h {
			t.Errorf("Hiders[%d] = %v, want %v", i, layout.Hiders[i], h)
		}
	}

	if len(layout.Cells) != 3 || len(layout.Cells[0]) != 4 {
		t.Fatalf("board is %dx%d, want 4x3", len(layout.Cells[0]), len(layout.Cells))
	}
	checks := []struct {
		x, y int
		want systems.CellType
	}{
		{0, 0, systems.CellEmpty}, // seeker start
		{3, 0, systems.CellWall},
		{1, 1, systems.CellBox},
		{2, 2, systems.CellBox}, // ASCII box
		{3, 1, systems.CellEmpty}, // hider start
	}
	for _, c := range checks {
		if got := layout.Cells[c.y][c.x]; got != c.want {
			t.Errorf("cell (%d, %d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestParseMapErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"missing header", "10\n1 1\n"},
		{"bad time limit", "ten\n1 1\n1 1\nS.\n"},
		{"bad pair", "10\n1\n1 1\nS.\n"},
		{"negative vision", "10\n-1 1\n1 1\nS.\n"},
		{"no rows", "10\n1 1\n1 1\n\n"},
		{"ragged", "10\n1 1\n1 1\nS..\n..\n"},
		{"blank row between rows", "10\n1 1\n1 1\nS..\n\n..H\n"},
		{"two seekers", "10\n1 1\n1 1\nS.S\n"},
		{"bad character", "10\n1 1\n1 1\nS.?\n"},
		{"no seeker", "10\n1 1\n1 1\n.H.\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMap(strings.NewReader(tt.text))
			if !errors.Is(err, ErrInvalidMap) {
				t.Errorf("err = %v, want ErrInvalidMap", err)
			}
		})
	}
}

func TestParseMapSkipsOuterBlankLines(t *testing.T) {
	layout, err := ParseMap(strings.NewReader("10\n1 1\n1 1\n\n\nS.\n.H\n\n\n"))
	if err != nil {
		t.Fatalf("ParseMap: %v", err)
	}
	if len(layout.Cells) != 2 {
		t.Errorf("got %d rows, want 2", len(layout.Cells))
	}
	if len(layout.Hiders) != 1 || layout.Hiders[0] != components.Pos(1, 1) {
		t.Errorf("Hiders = %v, want [(1, 1)]", layout.Hiders)
	}
}

func TestLoadMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "level.txt")
	if err := os.WriteFile(path, []byte(sampleMap), 0644); err != nil {
		t.Fatal(err)
	}

	layout, err := LoadMap(path)
	if err != nil {
		t.Fatalf("LoadMap: %v", err)
	}
	if len(layout.Hiders) != 2 {
		t.Errorf("got %d hiders, want 2", len(layout.Hiders))
	}

	if _, err := LoadMap(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}
