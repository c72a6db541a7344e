// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Camera    CameraConfig    `yaml:"camera"`
	Universe  UniverseConfig  `yaml:"universe"`
	Spawn     SpawnConfig     `yaml:"spawn"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Audio     AudioConfig     `yaml:"audio"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
	Stars     int `yaml:"stars"` // background star count
}

// CameraConfig places the perspective camera looking down at the ground plane.
type CameraConfig struct {
	Position [3]float64 `yaml:"position"`
	Target   [3]float64 `yaml:"target"`
	Up       [3]float64 `yaml:"up"`
	FovY     float64    `yaml:"fov_y"` // vertical field of view in degrees
}

// UniverseConfig holds the gameplay tunables.
type UniverseConfig struct {
	PushStrength      float64 `yaml:"push_strength"`
	VelocityDiffusion float64 `yaml:"velocity_diffusion"` // per-tick velocity multiplier (< 1)
	MergeFactor       float64 `yaml:"merge_factor"`       // fraction of absorbed diameter kept
	CollapseSize      float64 `yaml:"collapse_size"`      // diameter where the collapse pulse starts (x0.85)
	ScoreScale        float64 `yaml:"score_scale"`
	Attraction        float64 `yaml:"attraction"` // inverse-square strength between galaxies

	// Spatial lookup grid for spawn placement and picking
	GridHalfExtent float64 `yaml:"grid_half_extent"`
	GridCell       float64 `yaml:"grid_cell"`
}

// SpawnConfig holds galaxy spawning parameters.
type SpawnConfig struct {
	InitialCountdown float64 `yaml:"initial_countdown"` // seconds before the first spawn
	IntervalMin      float64 `yaml:"interval_min"`
	IntervalMax      float64 `yaml:"interval_max"`
	SizeMin          float64 `yaml:"size_min"`
	SizeMax          float64 `yaml:"size_max"`
	Attempts         int     `yaml:"attempts"` // placement retries per spawn
	Duration         float64 `yaml:"duration"` // growth-in animation length in seconds
	SpeedMin         float64 `yaml:"speed_min"`
	SpeedMax         float64 `yaml:"speed_max"` // rotation speed = rand[min,max) * diameter
}

// PhysicsConfig holds the fixed step used by headless runs.
type PhysicsConfig struct {
	DT float64 `yaml:"dt"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// AudioConfig holds audio cue parameters.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	SampleRate int     `yaml:"sample_rate"`
	MergeTone  float64 `yaml:"merge_tone"` // Hz
	PushTone   float64 `yaml:"push_tone"`  // Hz
	CueMillis  int     `yaml:"cue_millis"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW  float64 // Screen.Width as float64
	ScreenH  float64 // Screen.Height as float64
	RcpSpawn float64 // 1 / Spawn.Duration
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
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
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

	cfg.computeDerived()

	return cfg, nil
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW = float64(c.Screen.Width)
	c.Derived.ScreenH = float64(c.Screen.Height)

	if c.Spawn.Attempts <= 0 {
		c.Spawn.Attempts = 8
	}
	if c.Spawn.Duration <= 0 {
		c.Spawn.Duration = 1.5
	}
	if c.Spawn.IntervalMax < c.Spawn.IntervalMin {
		c.Spawn.IntervalMax = c.Spawn.IntervalMin
	}
	if c.Spawn.SizeMax < c.Spawn.SizeMin {
		c.Spawn.SizeMax = c.Spawn.SizeMin
	}
	if c.Universe.GridCell <= 0 {
		c.Universe.GridCell = 2
	}
	if c.Universe.GridHalfExtent <= 0 {
		c.Universe.GridHalfExtent = 24
	}
	if c.Physics.DT <= 0 {
		c.Physics.DT = 1.0 / 60.0
	}
	c.Derived.RcpSpawn = 1.0 / c.Spawn.Duration
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
