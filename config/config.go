// Package config provides configuration loading and access for the race.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all race configuration parameters.
type Config struct {
	Landscape LandscapeConfig `yaml:"landscape"`
	Response  ResponseConfig  `yaml:"response"`
	Race      RaceConfig      `yaml:"race"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Designs   []DesignConfig  `yaml:"designs"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// LandscapeConfig holds the fitness terrain parameters.
type LandscapeConfig struct {
	Width           int           `yaml:"width"`
	Height          int           `yaml:"height"`
	RippleAmplitude float64       `yaml:"ripple_amplitude"` // sin*cos texture added to every cell
	RippleFrequency float64       `yaml:"ripple_frequency"`
	Peaks           []PeakConfig  `yaml:"peaks"`
	Texture         TextureConfig `yaml:"texture"`
	World           WorldConfig   `yaml:"world"`
}

// PeakConfig is one Gaussian bump of the terrain.
type PeakConfig struct {
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	Amplitude float64 `yaml:"amplitude"`
	Spread    float64 `yaml:"spread"`
}

// TextureConfig holds the optional simplex noise layer.
// Amplitude 0 disables it.
type TextureConfig struct {
	Seed      int64   `yaml:"seed"`
	Scale     float64 `yaml:"scale"`
	Amplitude float64 `yaml:"amplitude"`
}

// WorldConfig maps grid coordinates into renderer world space.
type WorldConfig struct {
	Extent      float64 `yaml:"extent"`       // world units spanned by the grid
	HeightScale float64 `yaml:"height_scale"` // world units per unit of fitness
}

// ResponseConfig holds the S11 synthesis parameters.
type ResponseConfig struct {
	StartFrequency  float64 `yaml:"start_frequency"`  // GHz at fitness 0
	TargetFrequency float64 `yaml:"target_frequency"` // GHz at fitness 1
	MinFrequency    float64 `yaml:"min_frequency"`
	MaxFrequency    float64 `yaml:"max_frequency"`
	Samples         int     `yaml:"samples"`
	BaselineDB      float64 `yaml:"baseline_db"`
	ShallowDepthDB  float64 `yaml:"shallow_depth_db"` // dip depth at fitness 0
	DeepDepthDB     float64 `yaml:"deep_depth_db"`    // dip depth at fitness 1
	WideBandwidth   float64 `yaml:"wide_bandwidth"`   // GHz at fitness 0
	NarrowBandwidth float64 `yaml:"narrow_bandwidth"` // GHz at fitness 1
	RippleDB        float64 `yaml:"ripple_db"`
	RippleFrequency float64 `yaml:"ripple_frequency"`
}

// RaceConfig holds timeline parameters.
type RaceConfig struct {
	Generations     int     `yaml:"generations"`
	JitterAmplitude float64 `yaml:"jitter_amplitude"`
	JitterPhaseStep float64 `yaml:"jitter_phase_step"` // radians per generation
	MutationRate    float64 `yaml:"mutation_rate"`     // flip probability at generation 0
	AnchorStart     bool    `yaml:"anchor_start"`      // generation 0 skips jitter and mutation
	TrailLength     int     `yaml:"trail_length"`
}

// TelemetryConfig holds output parameters.
type TelemetryConfig struct {
	LogStats          bool    `yaml:"log_stats"`
	WriteSnapshots    bool    `yaml:"write_snapshots"`
	SummitThreshold   float64 `yaml:"summit_threshold"`    // fitness that counts as reaching the summit
	PhotoFinishMargin float64 `yaml:"photo_finish_margin"` // final top-two gap that counts as a photo finish
}

// PointConfig is a grid coordinate.
type PointConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// DesignConfig describes one racing antenna design.
type DesignConfig struct {
	ID     string      `yaml:"id"`
	Name   string      `yaml:"name"`
	Color  string      `yaml:"color"` // presentation only
	Start  PointConfig `yaml:"start"`
	Target PointConfig `yaml:"target"`
	Pixels [][]int     `yaml:"pixels"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DesignIndex   map[string]int // id -> position in Designs
	FrequencyStep float64        // GHz between adjacent samples
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

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults invalid: %v", err))
	}
	return cfg
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
		// Only overwrites fields present in the file. Lists (peaks, designs)
		// are replaced wholesale.
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

// Validate reports configuration errors that make a race impossible to build.
func (c *Config) Validate() error {
	var errs []error

	if c.Landscape.Width < 2 || c.Landscape.Height < 2 {
		errs = append(errs, fmt.Errorf("landscape: grid %dx%d too small", c.Landscape.Width, c.Landscape.Height))
	}
	for i, p := range c.Landscape.Peaks {
		if p.Spread <= 0 {
			errs = append(errs, fmt.Errorf("landscape: peak %d has non-positive spread %v", i, p.Spread))
		}
	}
	if c.Response.Samples < 2 {
		errs = append(errs, fmt.Errorf("response: need at least 2 samples, got %d", c.Response.Samples))
	}
	if c.Response.MaxFrequency <= c.Response.MinFrequency {
		errs = append(errs, fmt.Errorf("response: empty band [%v, %v]", c.Response.MinFrequency, c.Response.MaxFrequency))
	}
	if c.Race.Generations <= 0 {
		errs = append(errs, fmt.Errorf("race: generations must be positive, got %d", c.Race.Generations))
	}
	if len(c.Designs) == 0 {
		errs = append(errs, errors.New("designs: at least one design is required"))
	}

	seen := make(map[string]bool, len(c.Designs))
	for i, d := range c.Designs {
		if d.ID == "" {
			errs = append(errs, fmt.Errorf("designs[%d]: missing id", i))
			continue
		}
		if seen[d.ID] {
			errs = append(errs, fmt.Errorf("designs[%d]: duplicate id %q", i, d.ID))
		}
		seen[d.ID] = true
	}

	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DesignIndex = make(map[string]int, len(c.Designs))
	for i, d := range c.Designs {
		c.Derived.DesignIndex[d.ID] = i
	}
	c.Derived.FrequencyStep = (c.Response.MaxFrequency - c.Response.MinFrequency) / float64(c.Response.Samples-1)

	if c.Race.TrailLength <= 0 {
		c.Race.TrailLength = 20
	}
	for i := range c.Designs {
		if c.Designs[i].Name == "" {
			c.Designs[i].Name = c.Designs[i].ID
		}
	}
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
