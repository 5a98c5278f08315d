package game

import (
	"log/slog"

	"github.com/pthm-cable/hideseek/telemetry"
)

// flushTelemetry flushes the stats window when it is due.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.elapsed) {
		return
	}

	stats := g.collector.Flush(g.sampleSnapshot())
	perfStats := g.perf.Stats()

	if g.opts.OnStats != nil {
		g.opts.OnStats(stats)
	}

	if g.opts.LogStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.output.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}

// sampleSnapshot collects the state recorded at the end of a window.
func (g *Game) sampleSnapshot() telemetry.Snapshot {
	pos := g.seeker.Position()
	s := telemetry.Snapshot{
		Tick:        g.elapsed,
		Score:       g.score,
		SeekerX:     pos.X,
		SeekerY:     pos.Y,
		SeekerHeat:  g.emptyCellHeat(g.seeker),
		SeekerGoals: len(g.seeker.Goals()),
	}

	for _, h := range g.Hiders() {
		s.HidersLeft++
		s.HiderHeat = append(s.HiderHeat, g.emptyCellHeat(h))
	}

	query := g.flareFilter.Query()
	for query.Next() {
		s.LiveFlares++
	}
	return s
}
