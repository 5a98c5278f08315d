package game

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pthm-cable/hideseek/components"
	"github.com/pthm-cable/hideseek/systems"
)

// ErrInvalidMap wraps every map file validation failure.
var ErrInvalidMap = errors.New("invalid map file")

// Map symbols.
const (
	SymbolEmpty  = '.'
	SymbolWall   = 'X'
	SymbolHider  = 'H'
	SymbolSeeker = 'S'
	SymbolBox    = '☐'
	SymbolBoxAlt = 'B' // ASCII stand-in for SymbolBox
)

// MapSpec is a parsed map file: time limit, agent parameters, terrain and
// starting positions.
type MapSpec struct {
	TimeLimit    int
	SeekerVision int
	SeekerStep   int
	HiderVision  int
	HiderStep    int

	Cells  [][]systems.CellType
	Seeker components.Position
	Hiders []components.Position
}

// LoadMap reads and parses a map file.
func LoadMap(path string) (*MapSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening map: %w", err)
	}
	defer f.Close()

	layout, err := ParseMap(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return layout, nil
}

// ParseMap parses the map format:
//
//	<time limit>
//	<seeker vision> <seeker step>
//	<hider vision> <hider step>
//	<rows of . X H S ☐>
//
// Blank lines before the first row and after the last are skipped; a blank
// line between rows is an error. Rows are measured in runes.
func ParseMap(r io.Reader) (*MapSpec, error) {
	sc := bufio.NewScanner(r)
	var lines []string
	for sc.Scan() {
		lines = append(lines, strings.TrimSpace(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading map: %w", err)
	}
	if len(lines) < 3 {
		return nil, fmt.Errorf("%w: missing header lines", ErrInvalidMap)
	}

	layout := &MapSpec{}
	var err error
	if layout.TimeLimit, err = strconv.Atoi(lines[0]); err != nil {
		return nil, fmt.Errorf("%w: time limit %q", ErrInvalidMap, lines[0])
	}
	if layout.SeekerVision, layout.SeekerStep, err = parsePair(lines[1]); err != nil {
		return nil, fmt.Errorf("%w: seeker line: %v", ErrInvalidMap, err)
	}
	if layout.HiderVision, layout.HiderStep, err = parsePair(lines[2]); err != nil {
		return nil, fmt.Errorf("%w: hider line: %v", ErrInvalidMap, err)
	}

	rows := lines[3:]
	for len(rows) > 0 && rows[0] == "" {
		rows = rows[1:]
	}
	for len(rows) > 0 && rows[len(rows)-1] == "" {
		rows = rows[:len(rows)-1]
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no map rows", ErrInvalidMap)
	}

	width := -1
	seekerFound := false
	for y, row := range rows {
		if row == "" {
			return nil, fmt.Errorf("%w: blank line at row %d", ErrInvalidMap, y)
		}
		runes := []rune(row)
		if width < 0 {
			width = len(runes)
		} else if len(runes) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidMap, y, len(runes), width)
		}

		cells := make([]systems.CellType, 0, width)
		for x, c := range runes {
			switch c {
			case SymbolEmpty:
				cells = append(cells, systems.CellEmpty)
			case SymbolWall:
				cells = append(cells, systems.CellWall)
			case SymbolBox, SymbolBoxAlt:
				cells = append(cells, systems.CellBox)
			case SymbolHider:
				cells = append(cells, systems.CellEmpty)
				layout.Hiders = append(layout.Hiders, components.Pos(x, y))
			case SymbolSeeker:
				if seekerFound {
					return nil, fmt.Errorf("%w: second seeker at (%d, %d)", ErrInvalidMap, x, y)
				}
				seekerFound = true
				cells = append(cells, systems.CellEmpty)
				layout.Seeker = components.Pos(x, y)
			default:
				return nil, fmt.Errorf("%w: invalid character %q at (%d, %d)", ErrInvalidMap, c, x, y)
			}
		}
		layout.Cells = append(layout.Cells, cells)
	}

	if !seekerFound {
		return nil, fmt.Errorf("%w: seeker not found", ErrInvalidMap)
	}
	return layout, nil
}

// parsePair parses "<vision> <step>" as two non-negative integers.
func parsePair(line string) (vision, step int, err error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("want 2 numbers, got %q", line)
	}
	if vision, err = strconv.Atoi(fields[0]); err != nil {
		return 0, 0, fmt.Errorf("vision %q: %w", fields[0], err)
	}
	if step, err = strconv.Atoi(fields[1]); err != nil {
		return 0, 0, fmt.Errorf("step %q: %w", fields[1], err)
	}
	if vision < 0 || step < 0 {
		return 0, 0, fmt.Errorf("negative value in %q", line)
	}
	return vision, step, nil
}
