package telemetry

import "testing"

func TestCollectorFlushResetsWindow(t *testing.T) {
	c := NewCollector(5)

	c.RecordCatch()
	c.RecordFlare()
	c.RecordFlare()
	c.RecordBlockedMove()
	c.RecordSeekerIdle()

	if c.ShouldFlush(4) {
		t.Error("ShouldFlush(4) = true, want false with a 5 tick window")
	}
	if !c.ShouldFlush(5) {
		t.Error("ShouldFlush(5) = false, want true")
	}

	stats := c.Flush(Snapshot{
		Tick:       5,
		Score:      40,
		HidersLeft: 1,
		SeekerHeat: []float64{-1, -1, 10, 0},
		HiderHeat:  [][]float64{{1, 3}, {5, 7}},
	})

	if stats.WindowEndTick != 5 || stats.WindowStartTick != 0 {
		t.Errorf("window = [%d, %d], want [0, 5]", stats.WindowStartTick, stats.WindowEndTick)
	}
	if stats.Catches != 1 || stats.FlaresShot != 2 || stats.MovesBlocked != 1 || stats.SeekerIdle != 1 {
		t.Errorf("event counts = %+v", stats)
	}
	if stats.SeekerHeatMean != 2 {
		t.Errorf("SeekerHeatMean = %v, want 2", stats.SeekerHeatMean)
	}
	if stats.HiderHeatMean != 4 {
		t.Errorf("HiderHeatMean = %v, want 4", stats.HiderHeatMean)
	}

	if c.ShouldFlush(9) {
		t.Error("window should restart at the flushed tick")
	}
	next := c.Flush(Snapshot{Tick: 10})
	if next.Catches != 0 || next.FlaresShot != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
	if c.TotalCaught() != 1 || c.TotalFlares() != 2 {
		t.Errorf("totals = %d caught, %d flares, want 1, 2", c.TotalCaught(), c.TotalFlares())
	}
}

func TestNewCollectorMinimumWindow(t *testing.T) {
	c := NewCollector(0)
	if !c.ShouldFlush(1) {
		t.Error("a zero window should flush every tick")
	}
}
