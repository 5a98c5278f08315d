// Package game drives a hide-and-seek episode: it owns the board, the agents
// and the flares, sequences perceive/decide/move for every agent each tick,
// and keeps score.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/hideseek/components"
	"github.com/pthm-cable/hideseek/config"
	"github.com/pthm-cable/hideseek/systems"
	"github.com/pthm-cable/hideseek/telemetry"
)

// Outcome is the state of an episode.
type Outcome uint8

const (
	Running    Outcome = iota
	SeekerWins         // Every hider was caught
	HidersWin          // The time limit ran out
	Aborted            // An agent could not continue
)

func (o Outcome) String() string {
	switch o {
	case Running:
		return "running"
	case SeekerWins:
		return "seeker_wins"
	case HidersWin:
		return "hiders_win"
	case Aborted:
		return "aborted"
	default:
		return fmt.Sprintf("Outcome(%d)", uint8(o))
	}
}

// actor is the ECS component holding an agent.
type actor struct {
	ID    uint32
	Agent *systems.Agent
	Ticks int // Own ticks taken, drives the flare interval
}

// Options configures a game instance.
type Options struct {
	Seed      int64
	MapName   string // Recorded in the summary
	OutputDir string // CSV output directory ("" = disabled)
	LogStats  bool   // Log each telemetry window via slog

	// OnStats, if set, receives every flushed telemetry window.
	OnStats func(telemetry.WindowStats)
}

// Game is one episode on one map.
type Game struct {
	cfg  *config.Config
	grid *systems.Grid
	rng  *rand.Rand
	opts Options

	// ECS
	world        *ecs.World
	seekerMapper *ecs.Map2[actor, components.SeekerTag]
	hiderMapper  *ecs.Map2[actor, components.HiderTag]
	flareMapper  *ecs.Map1[components.Flare]
	actorMap     *ecs.Map1[actor]
	hiderFilter  *ecs.Filter2[actor, components.HiderTag]
	flareFilter  *ecs.Filter1[components.Flare]

	seeker *systems.Agent

	// Telemetry
	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	output    *telemetry.OutputManager

	// State
	nextID    uint32
	score     int
	elapsed   int
	timeLimit int
	outcome   Outcome
	abortErr  error
}

// NewGame builds a game from a parsed map.
func NewGame(layout *MapSpec, cfg *config.Config, opts Options) (*Game, error) {
	grid, err := systems.NewGrid(layout.Cells)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMap, err)
	}

	world := ecs.NewWorld()
	g := &Game{
		cfg:  cfg,
		grid: grid,
		rng:  rand.New(rand.NewSource(opts.Seed)),
		opts: opts,

		world:        world,
		seekerMapper: ecs.NewMap2[actor, components.SeekerTag](world),
		hiderMapper:  ecs.NewMap2[actor, components.HiderTag](world),
		flareMapper:  ecs.NewMap1[components.Flare](world),
		actorMap:     ecs.NewMap1[actor](world),
		hiderFilter:  ecs.NewFilter2[actor, components.HiderTag](world),
		flareFilter:  ecs.NewFilter1[components.Flare](world),

		collector: telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		perf:      telemetry.NewPerfCollector(cfg.Telemetry.StatsWindow),

		score:     cfg.Game.StartScore,
		timeLimit: layout.TimeLimit,
	}
	if cfg.Game.MaxTicksOverride > 0 {
		g.timeLimit = cfg.Game.MaxTicksOverride
	}

	params := heatParams(cfg)
	seeker, err := systems.NewAgent(grid, components.RoleSeeker, layout.Seeker, layout.SeekerVision, layout.SeekerStep, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMap, err)
	}
	g.seeker = seeker
	g.seekerMapper.NewEntity(&actor{ID: g.allocID(), Agent: seeker}, &components.SeekerTag{})

	for _, p := range layout.Hiders {
		h, err := systems.NewAgent(grid, components.RoleHider, p, layout.HiderVision, layout.HiderStep, params)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidMap, err)
		}
		g.hiderMapper.NewEntity(&actor{ID: g.allocID(), Agent: h}, &components.HiderTag{})
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	g.output = output
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	return g, nil
}

// heatParams maps the heat and flare config onto the agents' rule constants.
func heatParams(cfg *config.Config) systems.HeatParams {
	return systems.HeatParams{
		Sighting:            cfg.Heat.Sighting,
		Cooling:             cfg.Heat.Cooling,
		HiderAmbient:        cfg.Heat.HiderAmbient,
		HiderAlarm:          cfg.Heat.HiderAlarm,
		FlareRange:          cfg.Flare.Range,
		FlareSeekerLevel:    cfg.Flare.SeekerLevel,
		FlareHiderIncrement: cfg.Flare.HiderIncrement,
	}
}

func (g *Game) allocID() uint32 {
	id := g.nextID
	g.nextID++
	return id
}

// Grid returns the board.
func (g *Game) Grid() *systems.Grid { return g.grid }

// Seeker returns the seeker agent.
func (g *Game) Seeker() *systems.Agent { return g.seeker }

// Score returns the current score.
func (g *Game) Score() int { return g.score }

// Elapsed returns the number of ticks played.
func (g *Game) Elapsed() int { return g.elapsed }

// TimeLimit returns the tick limit after which the hiders win.
func (g *Game) TimeLimit() int { return g.timeLimit }

// RecordFrame records a viewer frame for the perf telemetry.
func (g *Game) RecordFrame() { g.perf.RecordFrame() }

// Err returns the error that aborted the game, if any.
func (g *Game) Err() error { return g.abortErr }

// Hiders returns the remaining hider agents.
func (g *Game) Hiders() []*systems.Agent {
	var out []*systems.Agent
	query := g.hiderFilter.Query()
	for query.Next() {
		a, _ := query.Get()
		out = append(out, a.Agent)
	}
	return out
}

// HidersLeft returns the number of hiders still in play.
func (g *Game) HidersLeft() int {
	n := 0
	query := g.hiderFilter.Query()
	for query.Next() {
		n++
	}
	return n
}

// Flares returns the live flares.
func (g *Game) Flares() []components.Flare {
	var out []components.Flare
	query := g.flareFilter.Query()
	for query.Next() {
		out = append(out, *query.Get())
	}
	return out
}

// Outcome reports whether the episode is over and who won. The time limit
// is checked first, matching the end-of-tick order.
func (g *Game) Outcome() Outcome {
	if g.outcome == Aborted {
		return Aborted
	}
	if g.elapsed > g.timeLimit {
		return HidersWin
	}
	if g.HidersLeft() == 0 {
		return SeekerWins
	}
	return Running
}

// Tick advances the game one turn: score, seeker turn, catches and flare
// expiry, then every hider's turn. It does nothing once the game is over.
// An error means an agent could not continue; the game is then Aborted.
func (g *Game) Tick() error {
	if g.Outcome() != Running {
		return nil
	}

	g.perf.StartTick()
	g.score -= g.cfg.Game.TickPenalty
	g.elapsed++

	if err := g.tickSeeker(); err != nil {
		return g.abort(err)
	}

	g.perf.StartPhase(telemetry.PhaseWorld)
	g.checkWorld()

	if err := g.tickHiders(); err != nil {
		return g.abort(err)
	}

	g.perf.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()
	g.perf.EndTick()
	return nil
}

func (g *Game) abort(err error) error {
	g.perf.EndTick()
	g.outcome = Aborted
	g.abortErr = err
	slog.Warn("agent cannot continue", "tick", g.elapsed, "error", err)
	return err
}

// tickSeeker runs the seeker's perceive, decide and move.
func (g *Game) tickSeeker() error {
	g.perf.StartPhase(telemetry.PhaseSeekerPerceive)
	g.seeker.Perceive(g.snapshotBoard())

	g.perf.StartPhase(telemetry.PhaseSeekerDecide)
	dir, err := g.seeker.Decide()
	g.perf.RecordSearch(components.RoleSeeker, g.seeker.SearchCost())
	if err != nil {
		return fmt.Errorf("seeker decide: %w", err)
	}

	g.perf.StartPhase(telemetry.PhaseMove)
	g.move(g.seeker, dir)
	if dir.IsZero() {
		g.collector.RecordSeekerIdle()
	}
	return nil
}

// checkWorld removes caught hiders and expired flares.
func (g *Game) checkWorld() {
	var caught []ecs.Entity
	query := g.hiderFilter.Query()
	for query.Next() {
		a, _ := query.Get()
		if a.Agent.Position() == g.seeker.Position() {
			caught = append(caught, query.Entity())
		}
	}

	for _, e := range caught {
		a := g.actorMap.Get(e)
		pos := a.Agent.Position()
		g.score += g.cfg.Game.CatchReward
		g.seeker.Forget(pos, g.cfg.Heat.Caught)
		g.collector.RecordCatch()
		slog.Info("hider caught", "tick", g.elapsed, "hider", a.ID, "pos", pos.String(), "score", g.score)
		g.world.RemoveEntity(e)
	}

	var expired []ecs.Entity
	flares := g.flareFilter.Query()
	for flares.Next() {
		if f := flares.Get(); f.ExpiresAt <= g.elapsed {
			expired = append(expired, flares.Entity())
		}
	}
	for _, e := range expired {
		g.world.RemoveEntity(e)
	}
}

// tickHiders runs every hider's perceive, flare, decide and move.
func (g *Game) tickHiders() error {
	// Collect first: shooting a flare creates entities.
	var hiders []ecs.Entity
	query := g.hiderFilter.Query()
	for query.Next() {
		hiders = append(hiders, query.Entity())
	}

	for _, e := range hiders {
		a := g.actorMap.Get(e)
		agent, id := a.Agent, a.ID

		g.perf.StartPhase(telemetry.PhaseHiderPerceive)
		agent.Perceive(g.snapshotBoard())

		g.perf.StartPhase(telemetry.PhaseWorld)
		a.Ticks++
		if a.Ticks%g.cfg.Flare.Interval == 0 {
			site, err := agent.ChooseFlareSite(g.rng)
			if err != nil {
				return fmt.Errorf("hider %d flare: %w", id, err)
			}
			g.ShootFlare(site, g.cfg.Flare.Interval, id)
		}

		g.perf.StartPhase(telemetry.PhaseHiderDecide)
		dir, err := agent.Decide()
		g.perf.RecordSearch(components.RoleHider, agent.SearchCost())
		if err != nil {
			return fmt.Errorf("hider %d decide: %w", id, err)
		}

		g.perf.StartPhase(telemetry.PhaseMove)
		g.move(agent, dir)
	}
	return nil
}

func (g *Game) move(a *systems.Agent, dir components.Position) {
	if dir.IsZero() {
		return
	}
	if !a.ApplyMove(dir) {
		g.collector.RecordBlockedMove()
	}
}

// ShootFlare notifies every agent of a flare at pos and keeps it on the
// board for interval ticks.
func (g *Game) ShootFlare(pos components.Position, interval int, firedBy uint32) {
	g.seeker.NotifyFlare(pos)
	for _, h := range g.Hiders() {
		h.NotifyFlare(pos)
	}

	g.flareMapper.NewEntity(&components.Flare{Pos: pos, ExpiresAt: g.elapsed + interval, FiredBy: firedBy})
	g.collector.RecordFlare()
	slog.Info("flare shot", "tick", g.elapsed, "pos", pos.String(), "by", firedBy)
}

// Result summarises a finished run.
type Result struct {
	Outcome Outcome
	Ticks   int
	Score   int
	Caught  int
	Err     error
}

// Run ticks until the game ends or maxTicks ticks have been played
// (0 = no cap), writes the summary and closes telemetry output.
func (g *Game) Run(maxTicks int) Result {
	slog.Info("starting game",
		"map", g.opts.MapName,
		"seed", g.opts.Seed,
		"size", []int{g.grid.Width(), g.grid.Height()},
		"hiders", g.HidersLeft(),
		"time_limit", g.timeLimit,
	)

	for g.Outcome() == Running {
		if maxTicks > 0 && g.elapsed >= maxTicks {
			slog.Info("max ticks reached", "tick", g.elapsed)
			break
		}
		if err := g.Tick(); err != nil {
			break
		}
	}
	return g.Finish()
}

// Finish writes the summary, closes output and returns the result. Safe to
// call more than once.
func (g *Game) Finish() Result {
	res := Result{
		Outcome: g.Outcome(),
		Ticks:   g.elapsed,
		Score:   g.score,
		Caught:  g.collector.TotalCaught(),
		Err:     g.abortErr,
	}

	summary := telemetry.Summary{
		Map:        g.opts.MapName,
		Seed:       g.opts.Seed,
		Outcome:    res.Outcome.String(),
		Ticks:      res.Ticks,
		Score:      res.Score,
		Caught:     res.Caught,
		HidersLeft: g.HidersLeft(),
		FlaresShot: g.collector.TotalFlares(),
	}
	if res.Err != nil {
		summary.Reason = res.Err.Error()
	}
	if err := g.output.WriteSummary(summary); err != nil {
		slog.Error("failed to write summary", "error", err)
	}
	if err := g.output.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	g.output = nil

	slog.Info("game over", "outcome", res.Outcome.String(), "ticks", res.Ticks, "score", res.Score, "caught", res.Caught)
	return res
}
