// Package config provides configuration loading and access for the engine.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all engine configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Scene     SceneConfig     `yaml:"scene"`
	Effects   EffectsConfig   `yaml:"effects"`
	Interact  InteractConfig  `yaml:"interact"`
	Overlays  OverlaysConfig  `yaml:"overlays"`
	Scenario  ScenarioConfig  `yaml:"scenario"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Capture   CaptureConfig   `yaml:"capture"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// SceneConfig holds reconciliation thresholds and capacities.
type SceneConfig struct {
	SmallBodyMass float64 `yaml:"small_body_mass"` // below this, bodies render batched
	BatchCapacity int     `yaml:"batch_capacity"`  // instanced small-body slots
	TrailPoolSize int     `yaml:"trail_pool_size"` // per-body trail buffers
}

// EffectsConfig holds effect pool capacities.
type EffectsConfig struct {
	ParticlePoolSize int `yaml:"particle_pool_size"`
	FlashPoolSize    int `yaml:"flash_pool_size"`
}

// InteractConfig holds interaction tunables and placement presets.
type InteractConfig struct {
	ImpulseScale    float64 `yaml:"impulse_scale"`    // drag displacement to velocity
	PredictionSteps int     `yaml:"prediction_steps"` // requested trajectory length

	PlaceMass   float64 `yaml:"place_mass"`
	PlaceRadius float64 `yaml:"place_radius"`
	CraftMass   float64 `yaml:"craft_mass"`
	CraftRadius float64 `yaml:"craft_radius"`
	CraftFuel   float64 `yaml:"craft_fuel"`
}

// OverlaysConfig holds the overlay layers enabled at startup.
type OverlaysConfig struct {
	Labels          bool `yaml:"labels"`
	Vectors         bool `yaml:"vectors"`
	Barycenter      bool `yaml:"barycenter"`
	OrbitalElements bool `yaml:"orbital_elements"`
	Lagrange        bool `yaml:"lagrange"`
	SweptArea       bool `yaml:"swept_area"`
	GravityField    bool `yaml:"gravity_field"`
	OrbitalPlanes   bool `yaml:"orbital_planes"`
	CometTails      bool `yaml:"comet_tails"`
	Prediction      bool `yaml:"prediction"`
}

// ScenarioConfig selects the startup system loaded into the local source.
type ScenarioConfig struct {
	Name        string  `yaml:"name"` // "sun_earth" or "procedural"
	Seed        int64   `yaml:"seed"` // 0 means time-seeded
	StarMass    float64 `yaml:"star_mass"`
	PlanetCount int     `yaml:"planet_count"`
	MinSpacing  float64 `yaml:"min_spacing"`
	MaxRadius   float64 `yaml:"max_radius"`
}

// TelemetryConfig holds diagnostics parameters.
type TelemetryConfig struct {
	Enabled       bool    `yaml:"enabled"`
	OutputDir     string  `yaml:"output_dir"`
	FlushInterval float64 `yaml:"flush_interval"` // seconds between CSV flushes
	PerfWindow    int     `yaml:"perf_window"`    // frames per perf summary window
}

// CaptureConfig holds screenshot and recording settings.
type CaptureConfig struct {
	Dir            string `yaml:"dir"`
	ScreenshotMult int    `yaml:"screenshot_mult"` // supersampling multiplier
	FrameStride    int    `yaml:"frame_stride"`    // record every Nth frame
}

// DerivedConfig holds values computed from the loaded configuration.
type DerivedConfig struct {
	FrameDT float64 // nominal frame delta from target FPS
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
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
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

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	if c.Screen.TargetFPS > 0 {
		c.Derived.FrameDT = 1.0 / float64(c.Screen.TargetFPS)
	} else {
		c.Derived.FrameDT = 1.0 / 60.0
	}
}

// WriteYAML writes the current configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
