package main

import (
	"math"

	"github.com/pthm-cable/hideseek/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters. Every parameter
// is an integer heat constant; the optimizer searches a continuous space
// and values are rounded when applied.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "sighting", Path: "heat.sighting", Min: 1, Max: 50, Default: 10},
			{Name: "hider_alarm", Path: "heat.hider_alarm", Min: 0, Max: 30, Default: 5},
			{Name: "flare_seeker_level", Path: "flare.seeker_level", Min: -5, Max: 20, Default: 1},
			{Name: "flare_hider_increment", Path: "flare.hider_increment", Min: 0, Max: 30, Default: 5},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, ps := range pv.Specs {
		v[i] = ps.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, ps := range pv.Specs {
		normalized[i] = (raw[i] - ps.Min) / (ps.Max - ps.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, ps := range pv.Specs {
		raw[i] = ps.Min + normalized[i]*(ps.Max-ps.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds and rounds them to the
// integers the game uses.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, ps := range pv.Specs {
		clamped[i] = math.Round(min(max(v[i], ps.Min), ps.Max))
	}
	return clamped
}

// ApplyToConfig applies raw parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	c := pv.Clamp(values)
	cfg.Heat.Sighting = int(c[0])
	cfg.Heat.HiderAlarm = int(c[1])
	cfg.Flare.SeekerLevel = int(c[2])
	cfg.Flare.HiderIncrement = int(c[3])
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		float64(cfg.Heat.Sighting),
		float64(cfg.Heat.HiderAlarm),
		float64(cfg.Flare.SeekerLevel),
		float64(cfg.Flare.HiderIncrement),
	}
}
