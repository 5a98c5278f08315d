package telemetry

import (
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/hideseek/components"
)

// Phase is a timed slice of a tick. Perception and decisions are split by
// role so the seeker's single search can be compared with the hiders' work.
type Phase uint8

const (
	PhaseSeekerPerceive Phase = iota
	PhaseSeekerDecide
	PhaseHiderPerceive
	PhaseHiderDecide
	PhaseMove      // Applying moves
	PhaseWorld     // Catches, flare expiry and flare shots
	PhaseTelemetry // Window flushes and CSV output
	numPhases
)

var phaseNames = [numPhases]string{
	"seeker_perceive", "seeker_decide", "hider_perceive", "hider_decide", "move", "world", "telemetry",
}

func (p Phase) String() string {
	if p < numPhases {
		return phaseNames[p]
	}
	return "unknown"
}

// tickCost is the time and route-search work of one tick.
type tickCost struct {
	total    time.Duration
	phases   [numPhases]time.Duration
	decides  [2]int // Indexed by roleSlot
	expanded [2]int
}

func roleSlot(r components.Role) int {
	if r == components.RoleHider {
		return 1
	}
	return 0
}

// PerfCollector times the phases of each tick and counts planner expansions
// over a ring of the last window ticks.
type PerfCollector struct {
	now func() time.Time

	ring  []tickCost
	next  int
	count int

	cur        tickCost
	tickStart  time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool

	lastFrame time.Time
	frame     time.Duration
}

// NewPerfCollector creates a collector averaging over window ticks.
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 60
	}
	return &PerfCollector{now: time.Now, ring: make([]tickCost, window)}
}

// StartTick begins a new tick.
func (p *PerfCollector) StartTick() {
	p.cur = tickCost{}
	p.tickStart = p.now()
	p.inPhase = false
}

// StartPhase closes the running phase, if any, and starts timing ph.
func (p *PerfCollector) StartPhase(ph Phase) {
	now := p.now()
	p.closePhase(now)
	p.phase, p.phaseStart, p.inPhase = ph, now, true
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase {
		p.cur.phases[p.phase] += now.Sub(p.phaseStart)
	}
}

// RecordSearch records one decision by an agent of role that expanded
// the given number of cells.
func (p *PerfCollector) RecordSearch(role components.Role, expanded int) {
	i := roleSlot(role)
	p.cur.decides[i]++
	p.cur.expanded[i] += expanded
}

// EndTick closes the tick and stores it in the ring.
func (p *PerfCollector) EndTick() {
	now := p.now()
	p.closePhase(now)
	p.inPhase = false
	p.cur.total = now.Sub(p.tickStart)

	p.ring[p.next] = p.cur
	p.next = (p.next + 1) % len(p.ring)
	p.count = min(p.count+1, len(p.ring))
}

// RecordFrame marks a rendered viewer frame.
func (p *PerfCollector) RecordFrame() {
	now := p.now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats summarises the ticks in the window.
type PerfStats struct {
	Ticks    int
	MeanTick time.Duration
	P90Tick  time.Duration
	MaxTick  time.Duration

	// Share of total tick time spent in each phase, 0..1.
	PhaseShare [numPhases]float64

	// Mean cells expanded per decision.
	SeekerExpanded float64
	HiderExpanded  float64

	Frame time.Duration // Last viewer frame, 0 when headless
}

// Stats aggregates the window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{Ticks: p.count, Frame: p.frame}
	if p.count == 0 {
		return s
	}

	totals := make([]float64, p.count)
	var phases [numPhases]time.Duration
	var decides, expanded [2]int
	var sum time.Duration
	for i, c := range p.ring[:p.count] {
		totals[i] = float64(c.total)
		sum += c.total
		s.MaxTick = max(s.MaxTick, c.total)
		for ph, d := range c.phases {
			phases[ph] += d
		}
		for r := range decides {
			decides[r] += c.decides[r]
			expanded[r] += c.expanded[r]
		}
	}

	s.MeanTick = time.Duration(stat.Mean(totals, nil))
	sort.Float64s(totals)
	s.P90Tick = time.Duration(stat.Quantile(0.9, stat.Empirical, totals, nil))
	if sum > 0 {
		for ph, d := range phases {
			s.PhaseShare[ph] = float64(d) / float64(sum)
		}
	}
	if decides[0] > 0 {
		s.SeekerExpanded = float64(expanded[0]) / float64(decides[0])
	}
	if decides[1] > 0 {
		s.HiderExpanded = float64(expanded[1]) / float64(decides[1])
	}
	return s
}

// LogStats logs the window via slog.
func (s PerfStats) LogStats() {
	attrs := []any{
		"ticks", s.Ticks,
		"mean_tick_us", s.MeanTick.Microseconds(),
		"p90_tick_us", s.P90Tick.Microseconds(),
		"seeker_expanded", s.SeekerExpanded,
		"hider_expanded", s.HiderExpanded,
	}
	for ph := Phase(0); ph < numPhases; ph++ {
		if share := s.PhaseShare[ph]; share >= 0.01 {
			attrs = append(attrs, ph.String()+"_share", share)
		}
	}
	slog.Info("perf", attrs...)
}

// PerfStatsCSV is one row of perf.csv.
type PerfStatsCSV struct {
	WindowEnd      int     `csv:"window_end"`
	Ticks          int     `csv:"ticks"`
	MeanTickUS     int64   `csv:"mean_tick_us"`
	P90TickUS      int64   `csv:"p90_tick_us"`
	MaxTickUS      int64   `csv:"max_tick_us"`
	SeekerPerceive float64 `csv:"seeker_perceive_share"`
	SeekerDecide   float64 `csv:"seeker_decide_share"`
	HiderPerceive  float64 `csv:"hider_perceive_share"`
	HiderDecide    float64 `csv:"hider_decide_share"`
	Move           float64 `csv:"move_share"`
	World          float64 `csv:"world_share"`
	Telemetry      float64 `csv:"telemetry_share"`
	SeekerExpanded float64 `csv:"seeker_expanded"`
	HiderExpanded  float64 `csv:"hider_expanded"`
	FrameMS        float64 `csv:"frame_ms"`
}

// ToCSV flattens s for a window ending at windowEnd.
func (s PerfStats) ToCSV(windowEnd int) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:      windowEnd,
		Ticks:          s.Ticks,
		MeanTickUS:     s.MeanTick.Microseconds(),
		P90TickUS:      s.P90Tick.Microseconds(),
		MaxTickUS:      s.MaxTick.Microseconds(),
		SeekerPerceive: s.PhaseShare[PhaseSeekerPerceive],
		SeekerDecide:   s.PhaseShare[PhaseSeekerDecide],
		HiderPerceive:  s.PhaseShare[PhaseHiderPerceive],
		HiderDecide:    s.PhaseShare[PhaseHiderDecide],
		Move:           s.PhaseShare[PhaseMove],
		World:          s.PhaseShare[PhaseWorld],
		Telemetry:      s.PhaseShare[PhaseTelemetry],
		SeekerExpanded: s.SeekerExpanded,
		HiderExpanded:  s.HiderExpanded,
		FrameMS:        float64(s.Frame) / float64(time.Millisecond),
	}
}
