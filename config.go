package evergreen

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every configuration validation failure.
var ErrInvalidConfig = errors.New("evergreen: invalid config")

// Config controls particle generation and animation. It is supplied once at
// engine construction; counts are not mutable while ticking.
type Config struct {
	// Height is the vertical extent of the assembled cone.
	Height float64 `yaml:"height"`
	// Radius is the cone radius at its base.
	Radius float64 `yaml:"radius"`
	// BulkCount is the number of gift-box particles.
	BulkCount int `yaml:"bulkCount"`
	// GlowCount is the number of glowing ornament particles.
	GlowCount int `yaml:"glowCount"`
	// ScatterRadius is the radius of the sphere particles disperse into.
	ScatterRadius float64 `yaml:"scatterRadius"`
	// AnimationSpeed scales the per-tick step of the assembly factor.
	AnimationSpeed float64 `yaml:"animationSpeed"`

	// Seed fixes the random source. Zero seeds from the runtime.
	Seed uint64 `yaml:"seed"`
	// Workers splits the transform pass across goroutines when > 1.
	Workers int `yaml:"workers"`
	// Debug prints per-second tick stats to stderr.
	Debug bool `yaml:"debug"`
	// InitialState is the state the engine starts in.
	InitialState AssemblyState `yaml:"-"`
	// InitialFactor is the starting assembly factor, in [0, 1].
	InitialFactor float64 `yaml:"initialFactor"`
}

// DefaultConfig returns the stock tree: 12 units tall, 1500 boxes, 300
// ornaments, starting assembled.
func DefaultConfig() Config {
	return Config{
		Height:         12,
		Radius:         4.5,
		BulkCount:      1500,
		GlowCount:      300,
		ScatterRadius:  25,
		AnimationSpeed: 2.5,
		InitialState:   Assembled,
		InitialFactor:  0,
	}
}

// Validate reports the first invalid field. Values are never clamped.
func (c *Config) Validate() error {
	if err := c.validateGeometry(); err != nil {
		return err
	}
	if err := positive("animationSpeed", c.AnimationSpeed); err != nil {
		return err
	}
	if c.BulkCount < 0 {
		return fmt.Errorf("%w: bulkCount must be >= 0, got %d", ErrInvalidConfig, c.BulkCount)
	}
	if c.GlowCount < 0 {
		return fmt.Errorf("%w: glowCount must be >= 0, got %d", ErrInvalidConfig, c.GlowCount)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0, got %d", ErrInvalidConfig, c.Workers)
	}
	if c.InitialState != Assembled && c.InitialState != Scattered {
		return fmt.Errorf("%w: unknown initial state %d", ErrInvalidConfig, c.InitialState)
	}
	if !(c.InitialFactor >= 0 && c.InitialFactor <= 1) {
		return fmt.Errorf("%w: initialFactor must be in [0, 1], got %v", ErrInvalidConfig, c.InitialFactor)
	}
	return nil
}

// validateGeometry checks the fields the generator samples from.
func (c *Config) validateGeometry() error {
	if err := positive("height", c.Height); err != nil {
		return err
	}
	if err := positive("radius", c.Radius); err != nil {
		return err
	}
	return positive("scatterRadius", c.ScatterRadius)
}

func positive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return fmt.Errorf("%w: %s must be > 0, got %v", ErrInvalidConfig, name, v)
	}
	return nil
}

// configFile mirrors Config for YAML, with the initial state spelled out.
type configFile struct {
	Config       `yaml:",inline"`
	InitialState string `yaml:"initialState"`
}

// ParseConfig decodes YAML on top of DefaultConfig, so a partial document
// only overrides the fields it names, and validates the result.
func ParseConfig(data []byte) (Config, error) {
	f := configFile{Config: DefaultConfig()}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg := f.Config
	switch f.InitialState {
	case "", "assembled":
		cfg.InitialState = Assembled
	case "scattered":
		cfg.InitialState = Scattered
	default:
		return Config{}, fmt.Errorf("%w: unknown initialState %q", ErrInvalidConfig, f.InitialState)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}
