package utils

import (
	"bytes"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/sheikhrachel/go-gol3d/engine"
	"github.com/sheikhrachel/go-gol3d/model"
	"github.com/sheikhrachel/go-gol3d/rules"
)

// Config holds the configuration for the simulation and its terminal presenter
type Config struct {
	// Lattice
	Width   int     `yaml:"width"`
	Height  int     `yaml:"height"`
	Depth   int     `yaml:"depth"`
	Initial float64 `yaml:"initial"`
	Min     int     `yaml:"min"`
	Max     int     `yaml:"max"`
	Seed    int64   `yaml:"seed"` // 0 picks a seed from the clock

	// Step tuning
	Workers        int  `yaml:"workers"`
	UseBoundedGrid bool `yaml:"use_bounded_grid"`

	// Presenter
	FrameRate           time.Duration `yaml:"frame_rate"`
	FramesPerGeneration int           `yaml:"frames_per_generation"`
	MaxGenerations      int           `yaml:"max_generations"`
	AutoRestart         bool          `yaml:"auto_restart"`
	StagnationThreshold int           `yaml:"stagnation_threshold"`
	RefreshInterval     int           `yaml:"refresh_interval"` // reseed every N generations; 0 disables
	Mode                string        `yaml:"mode"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Width:               10,
		Height:              10,
		Depth:               10,
		Initial:             0.3,
		Min:                 5,
		Max:                 13,
		UseBoundedGrid:      true,
		FrameRate:           40 * time.Millisecond,
		FramesPerGeneration: 5,
		MaxGenerations:      1000,
		AutoRestart:         true,
		StagnationThreshold: 5,
		RefreshInterval:     200,
		Mode:                string(model.ModeSize),
	}
}

// LoadConfig loads configuration from a YAML or JSON file on top of the
// defaults. Unknown keys are rejected.
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err = decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	if err = config.Validate(); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] invalid configuration in file: %+v", filename)
	}

	return config, nil
}

// Rule returns the survival thresholds
func (c Config) Rule() rules.Rule {
	return rules.Rule{Min: c.Min, Max: c.Max}
}

// Settings projects the configuration onto the engine
func (c Config) Settings() engine.Settings {
	return engine.Settings{
		Width:   c.Width,
		Height:  c.Height,
		Depth:   c.Depth,
		Initial: c.Initial,
		Rule:    c.Rule(),
		Workers: c.Workers,
		Bounded: c.UseBoundedGrid,
	}
}

// Validate checks engine and presenter settings
func (c Config) Validate() error {
	if err := c.Settings().Validate(); err != nil {
		return errors.Wrap(err, "[Validate]")
	}
	if c.Workers < 0 {
		return errors.Errorf("[Validate] workers must be >= 0, got %d", c.Workers)
	}
	if c.FrameRate <= 0 {
		return errors.Errorf("[Validate] frame_rate must be positive, got %s", c.FrameRate)
	}
	if c.FramesPerGeneration < 1 {
		return errors.Errorf("[Validate] frames_per_generation must be >= 1, got %d", c.FramesPerGeneration)
	}
	if c.MaxGenerations < 0 {
		return errors.Errorf("[Validate] max_generations must be >= 0, got %d", c.MaxGenerations)
	}
	if c.StagnationThreshold < 1 {
		return errors.Errorf("[Validate] stagnation_threshold must be >= 1, got %d", c.StagnationThreshold)
	}
	if c.RefreshInterval < 0 {
		return errors.Errorf("[Validate] refresh_interval must be >= 0, got %d", c.RefreshInterval)
	}
	if _, err := model.ParseRenderMode(c.Mode); err != nil {
		return errors.Wrap(err, "[Validate]")
	}
	return nil
}
