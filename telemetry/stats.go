// Package telemetry aggregates per-window game statistics and writes run
// output as CSV.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of ticks.
type WindowStats struct {
	WindowStartTick int `csv:"-"`
	WindowEndTick   int `csv:"window_end"`

	// Game state at window end
	Score      int `csv:"score"`
	HidersLeft int `csv:"hiders_left"`
	SeekerX    int `csv:"seeker_x"`
	SeekerY    int `csv:"seeker_y"`
	LiveFlares int `csv:"live_flares"`

	// Events during window
	Catches      int `csv:"catches"`
	FlaresShot   int `csv:"flares_shot"`
	MovesBlocked int `csv:"moves_blocked"`
	SeekerIdle   int `csv:"seeker_idle"` // Ticks the seeker stayed put

	// Seeker heat distribution (sampled at window end)
	SeekerHeatMean float64 `csv:"seeker_heat_mean"`
	SeekerHeatStd  float64 `csv:"seeker_heat_std"`
	SeekerHeatP10  float64 `csv:"seeker_heat_p10"`
	SeekerHeatP50  float64 `csv:"seeker_heat_p50"`
	SeekerHeatP90  float64 `csv:"seeker_heat_p90"`
	SeekerGoals    int     `csv:"seeker_goals"`

	// Mean over hiders of each hider's mean heat
	HiderHeatMean float64 `csv:"hider_heat_mean"`
}

// Summary is the one-row result of a finished game.
type Summary struct {
	Map        string `csv:"map"`
	Seed       int64  `csv:"seed"`
	Outcome    string `csv:"outcome"`
	Ticks      int    `csv:"ticks"`
	Score      int    `csv:"score"`
	Caught     int    `csv:"caught"`
	HidersLeft int    `csv:"hiders_left"`
	FlaresShot int    `csv:"flares_shot"`
	Reason     string `csv:"reason"` // Set when the game aborted
}

// HeatStats returns mean, standard deviation and the 10th, 50th and 90th
// percentiles of heat values. All zero for an empty slice.
func HeatStats(values []float64) (mean, std, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0, 0
	}
	mean, std = stat.PopMeanStdDev(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	return mean, std, p10, p50, p90
}

// Mean returns the arithmetic mean of values, or 0 when empty.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// LogStats logs the window as a single structured line.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"score", s.Score,
		"hiders_left", s.HidersLeft,
		"seeker", []int{s.SeekerX, s.SeekerY},
		"catches", s.Catches,
		"flares", s.FlaresShot,
		"blocked", s.MovesBlocked,
		"seeker_heat_mean", s.SeekerHeatMean,
		"seeker_heat_p90", s.SeekerHeatP90,
		"seeker_goals", s.SeekerGoals,
		"hider_heat_mean", s.HiderHeatMean,
	)
}
