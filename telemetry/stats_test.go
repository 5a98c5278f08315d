package telemetry

import (
	"math"
	"testing"
)

func TestHeatStats(t *testing.T) {
	values := []float64{-3, -2, -1, 0, 1, 2, 3, 4, 5, 6}
	mean, std, p10, p50, p90 := HeatStats(values)

	if math.Abs(mean-1.5) > 1e-9 {
		t.Errorf("mean = %v, want 1.5", mean)
	}
	// Population std of 10 evenly spaced values: sqrt((n^2-1)/12).
	if want := math.Sqrt(99.0 / 12.0); math.Abs(std-want) > 1e-9 {
		t.Errorf("std = %v, want %v", std, want)
	}
	if p10 != -3 {
		t.Errorf("p10 = %v, want -3", p10)
	}
	if p50 != 1 {
		t.Errorf("p50 = %v, want 1", p50)
	}
	if p90 != 5 {
		t.Errorf("p90 = %v, want 5", p90)
	}
}

func TestHeatStatsUnsortedInputUntouched(t *testing.T) {
	values := []float64{3, 1, 2}
	HeatStats(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("HeatStats reordered its input: %v", values)
	}
}

func TestHeatStatsEmpty(t *testing.T) {
	mean, std, p10, p50, p90 := HeatStats(nil)
	if mean != 0 || std != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("expected all zeros for empty input")
	}
}

func TestMean(t *testing.T) {
	if got := Mean(nil); got != 0 {
		t.Errorf("Mean(nil) = %v, want 0", got)
	}
	if got := Mean([]float64{2, 4}); got != 3 {
		t.Errorf("Mean = %v, want 3", got)
	}
}
