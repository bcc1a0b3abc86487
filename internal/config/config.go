package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/advsampling/internal/sampler"
)

const (
	DefaultInitialPosition = 1.44908
	DefaultTrials          = 200
	DefaultMaxDisplacement = 0.8
	DefaultBeta            = 1.0
	DefaultOutput          = "energy_barrier.gif"
	DefaultFramesDir       = "images_barrier"
	DefaultFrameDelay      = 5
)

var ErrInvalid = errors.New("config: invalid value")

// Config drives one barrier run. A zero Seed means seed from the clock.
type Config struct {
	InitialPosition float64 `yaml:"initial_position"`
	Trials          int     `yaml:"trials"`
	MaxDisplacement float64 `yaml:"max_displacement"`
	Beta            float64 `yaml:"beta"`
	Seed            int64   `yaml:"seed"`
	MarkerRadius    float64 `yaml:"marker_radius"`
	Output          string  `yaml:"output"`
	FramesDir       string  `yaml:"frames_dir"`
	KeepFrames      bool    `yaml:"keep_frames"`
	FrameDelay      int     `yaml:"frame_delay"`
}

func DefaultConfig() *Config {
	return &Config{
		InitialPosition: DefaultInitialPosition,
		Trials:          DefaultTrials,
		MaxDisplacement: DefaultMaxDisplacement,
		Beta:            DefaultBeta,
		MarkerRadius:    sampler.DefaultMarkerRadius,
		Output:          DefaultOutput,
		FramesDir:       DefaultFramesDir,
		FrameDelay:      DefaultFrameDelay,
	}
}

// Load reads path over the defaults; keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	return loadOver(DefaultConfig(), path)
}

func loadOver(cfg *Config, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Resolve layers the defaults, the named preset and the file at path, each
// overriding the one before. Empty preset or path skips that layer.
func Resolve(preset, path string) (*Config, error) {
	cfg := DefaultConfig()
	if preset != "" {
		p := GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("config: unknown preset %q", preset)
		}
		cfg = p
	}
	if path == "" {
		return cfg, nil
	}
	return loadOver(cfg, path)
}

func (c *Config) Validate() error {
	switch {
	case c.Trials <= 0:
		return fmt.Errorf("%w: trials must be positive, got %d", ErrInvalid, c.Trials)
	case c.MaxDisplacement < 0:
		return fmt.Errorf("%w: max_displacement must be non-negative, got %g", ErrInvalid, c.MaxDisplacement)
	case c.MarkerRadius < 0:
		return fmt.Errorf("%w: marker_radius must be non-negative, got %g", ErrInvalid, c.MarkerRadius)
	case c.Beta <= 0:
		return fmt.Errorf("%w: beta must be positive, got %g", ErrInvalid, c.Beta)
	case c.FrameDelay < 0:
		return fmt.Errorf("%w: frame_delay must be non-negative, got %d", ErrInvalid, c.FrameDelay)
	}
	return nil
}

func (c *Config) Options() sampler.Options {
	return sampler.Options{
		Trials:          c.Trials,
		MaxDisplacement: c.MaxDisplacement,
		Beta:            c.Beta,
		MarkerRadius:    c.MarkerRadius,
	}
}
