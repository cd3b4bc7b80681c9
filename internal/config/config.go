package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/gassim/internal/gas"
)

const (
	DefaultDurationMS  = 10000.0
	DefaultSampleEvery = 10
)

// Config is the yaml-facing simulation configuration. World geometry,
// body count and timing are fixed for the lifetime of a run.
type Config struct {
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	Radius          float64 `yaml:"radius"`
	ColRadiusFactor float64 `yaml:"collision_radius_factor"`
	Bodies          int     `yaml:"bodies"`
	MaxSpeed        float64 `yaml:"max_speed"`
	TickMS          float64 `yaml:"tick_ms"`
	Seed            int64   `yaml:"seed"`
	DurationMS      float64 `yaml:"duration_ms"`
	SampleEvery     int     `yaml:"sample_every"`
}

func Default() *Config {
	return &Config{
		Width:           gas.DefaultWidth,
		Height:          gas.DefaultHeight,
		Radius:          gas.DefaultRadius,
		ColRadiusFactor: gas.DefaultColRadiusFactor,
		Bodies:          gas.DefaultBodies,
		MaxSpeed:        gas.DefaultMaxSpeed,
		TickMS:          gas.DefaultTickDuration,
		DurationMS:      DefaultDurationMS,
		SampleEvery:     DefaultSampleEvery,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
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

// World maps the config onto the simulation core's world parameters.
func (c *Config) World() gas.World {
	return gas.World{
		Width:        c.Width,
		Height:       c.Height,
		Radius:       c.Radius,
		ColRadius:    c.ColRadiusFactor * c.Radius,
		TickDuration: c.TickMS,
		MaxSpeed:     c.MaxSpeed,
	}
}

func (c *Config) Validate() error {
	if err := c.World().Validate(); err != nil {
		return err
	}
	if c.Bodies <= 0 {
		return gas.ErrBadCount
	}
	if c.DurationMS <= 0 {
		return fmt.Errorf("duration_ms must be positive, got %g", c.DurationMS)
	}
	if c.SampleEvery <= 0 {
		return fmt.Errorf("sample_every must be positive, got %d", c.SampleEvery)
	}
	return nil
}
