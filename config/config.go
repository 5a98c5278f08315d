// Package config provides configuration loading and access for the game.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all game configuration parameters.
type Config struct {
	Game      GameConfig      `yaml:"game"`
	Heat      HeatConfig      `yaml:"heat"`
	Flare     FlareConfig     `yaml:"flare"`
	Screen    ScreenConfig    `yaml:"screen"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// GameConfig holds scoring and turn limits.
type GameConfig struct {
	StartScore       int `yaml:"start_score"`
	TickPenalty      int `yaml:"tick_penalty"`
	CatchReward      int `yaml:"catch_reward"`
	MaxTicksOverride int `yaml:"max_ticks_override"` // 0 = map file time limit
}

// HeatConfig holds the additive heat rule constants.
type HeatConfig struct {
	Sighting     int `yaml:"sighting"`
	Cooling      int `yaml:"cooling"`
	Caught       int `yaml:"caught"`
	HiderAmbient int `yaml:"hider_ambient"`
	HiderAlarm   int `yaml:"hider_alarm"`
}

// FlareConfig holds flare stimulus parameters.
type FlareConfig struct {
	Interval       int `yaml:"interval"`
	Range          int `yaml:"range"`
	SeekerLevel    int `yaml:"seeker_level"`
	HiderIncrement int `yaml:"hider_increment"`
}

// ScreenConfig holds viewer settings.
type ScreenConfig struct {
	CellSize       int     `yaml:"cell_size"`
	PanelWidth     int     `yaml:"panel_width"`
	TargetFPS      int     `yaml:"target_fps"`
	TicksPerSecond float64 `yaml:"ticks_per_second"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow int `yaml:"stats_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	FlareSide int // 2*Flare.Range + 1
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg, err := Defaults()
	if err != nil {
		return nil, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()
	return cfg, nil
}

// Defaults returns a fresh copy of the embedded defaults.
func Defaults() (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	cfg.computeDerived()
	return cfg, nil
}

// Validate rejects settings the game cannot run with.
func (c *Config) Validate() error {
	if c.Heat.Cooling < 0 {
		return fmt.Errorf("heat.cooling must be >= 0, got %d", c.Heat.Cooling)
	}
	if c.Heat.HiderAmbient < 0 || c.Heat.HiderAlarm < 0 || c.Flare.HiderIncrement < 0 {
		// Hider step costs are heat values and must stay non-negative.
		return fmt.Errorf("hider heat increments must be >= 0")
	}
	if c.Flare.Interval < 1 {
		return fmt.Errorf("flare.interval must be >= 1, got %d", c.Flare.Interval)
	}
	if c.Flare.Range < 0 {
		return fmt.Errorf("flare.range must be >= 0, got %d", c.Flare.Range)
	}
	if c.Game.MaxTicksOverride < 0 {
		return fmt.Errorf("game.max_ticks_override must be >= 0, got %d", c.Game.MaxTicksOverride)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.FlareSide = 2*c.Flare.Range + 1
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
