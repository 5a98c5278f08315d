package game

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pthm-cable/hideseek/components"
	"github.com/pthm-cable/hideseek/systems"
)

// Board glyphs used by Render.
const (
	glyphFlare     = '*'
	glyphPerceived = '-'
)

// Render writes a text view of the board: a header with the number of
// hiders left and the elapsed ticks, then one line per row. Cells the seeker
// can currently see are drawn as '-'.
func (g *Game) Render(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d left, %ds elapsed\n", g.HidersLeft(), g.elapsed)

	hiders := make(map[components.Position]struct{})
	for _, h := range g.Hiders() {
		hiders[h.Position()] = struct{}{}
	}
	flares := make(map[components.Position]struct{})
	for _, f := range g.Flares() {
		flares[f.Pos] = struct{}{}
	}

	for y := 0; y < g.grid.Height(); y++ {
		for x := 0; x < g.grid.Width(); x++ {
			p := components.Pos(x, y)
			bw.WriteRune(g.glyph(p, hiders, flares))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func (g *Game) glyph(p components.Position, hiders, flares map[components.Position]struct{}) rune {
	if p == g.seeker.Position() {
		return SymbolSeeker
	}
	if _, ok := hiders[p]; ok {
		return SymbolHider
	}
	if _, ok := flares[p]; ok {
		return glyphFlare
	}
	switch g.grid.CellAt(p) {
	case systems.CellWall:
		return SymbolWall
	case systems.CellBox:
		return SymbolBox
	}
	if g.seeker.CanSee(p) {
		return glyphPerceived
	}
	return SymbolEmpty
}

// RenderHeat writes an agent's heatmap, one row per line.
func RenderHeat(w io.Writer, a *systems.Agent) error {
	bw := bufio.NewWriter(w)
	heat := a.Heat()
	for y := 0; y < heat.Height(); y++ {
		for x := 0; x < heat.Width(); x++ {
			fmt.Fprintf(bw, "%5d", heat.At(components.Pos(x, y)))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
