package telemetry

// Snapshot is the game state the caller samples when a window is flushed.
type Snapshot struct {
	Tick        int
	Score       int
	HidersLeft  int
	SeekerX     int
	SeekerY     int
	LiveFlares  int
	SeekerHeat  []float64
	SeekerGoals int
	HiderHeat   [][]float64 // One slice per remaining hider
}

// Collector accumulates events within tick windows and produces WindowStats.
type Collector struct {
	windowTicks int

	// Current window tracking
	windowStartTick int

	// Event counters for current window
	catches      int
	flaresShot   int
	movesBlocked int
	seekerIdle   int

	// Running totals for the summary
	totalCaught int
	totalFlares int
}

// NewCollector creates a stats collector flushing every windowTicks ticks.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowTicks: windowTicks}
}

// RecordCatch records a caught hider.
func (c *Collector) RecordCatch() {
	c.catches++
	c.totalCaught++
}

// RecordFlare records a flare shot by a hider.
func (c *Collector) RecordFlare() {
	c.flaresShot++
	c.totalFlares++
}

// RecordBlockedMove records a move rejected by the board.
func (c *Collector) RecordBlockedMove() {
	c.movesBlocked++
}

// RecordSeekerIdle records a tick in which the seeker chose not to move.
func (c *Collector) RecordSeekerIdle() {
	c.seekerIdle++
}

// TotalCaught returns the number of catches since the collector was created.
func (c *Collector) TotalCaught() int { return c.totalCaught }

// TotalFlares returns the number of flares since the collector was created.
func (c *Collector) TotalFlares() int { return c.totalFlares }

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// Flush produces a WindowStats from the window's counters and the sampled
// state, then resets the counters for the next window.
func (c *Collector) Flush(s Snapshot) WindowStats {
	mean, std, p10, p50, p90 := HeatStats(s.SeekerHeat)

	hiderMeans := make([]float64, 0, len(s.HiderHeat))
	for _, h := range s.HiderHeat {
		hiderMeans = append(hiderMeans, Mean(h))
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   s.Tick,

		Score:      s.Score,
		HidersLeft: s.HidersLeft,
		SeekerX:    s.SeekerX,
		SeekerY:    s.SeekerY,
		LiveFlares: s.LiveFlares,

		Catches:      c.catches,
		FlaresShot:   c.flaresShot,
		MovesBlocked: c.movesBlocked,
		SeekerIdle:   c.seekerIdle,

		SeekerHeatMean: mean,
		SeekerHeatStd:  std,
		SeekerHeatP10:  p10,
		SeekerHeatP50:  p50,
		SeekerHeatP90:  p90,
		SeekerGoals:    s.SeekerGoals,

		HiderHeatMean: Mean(hiderMeans),
	}

	// Reset for next window
	c.windowStartTick = s.Tick
	c.catches = 0
	c.flaresShot = 0
	c.movesBlocked = 0
	c.seekerIdle = 0

	return stats
}
