package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mastercactapus/gturtle/gcode"
	"github.com/mastercactapus/gturtle/printer"
	"github.com/mastercactapus/gturtle/turtle"
)

// Config holds the settings for a print session.
type Config struct {
	FeedRate     float64 `yaml:"feed_rate"`     // mm/min
	StepSize     float64 `yaml:"step_size"`     // layer height in mm
	Temperature  float64 `yaml:"temperature"`   // extruder target, C
	RetractSteps int     `yaml:"retract_steps"` // layers to lift when done
	Precision    int     `yaml:"precision"`     // decimals for X/Y/Z

	Output string `yaml:"output"` // see package output
	Baud   int    `yaml:"baud"`

	// Mesh is an optional JSON file of bed probe points.
	Mesh string `yaml:"mesh,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	opt := turtle.DefaultOptions()
	return &Config{
		FeedRate:     opt.FeedRate,
		StepSize:     opt.StepSize,
		Temperature:  opt.Temperature,
		RetractSteps: opt.RetractSteps,
		Precision:    opt.Precision,
		Baud:         printer.DefaultBaud,
	}
}

// Load reads a YAML file and returns the configuration.
// Missing fields take their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that every field is usable.
func (c *Config) Validate() error {
	if math.IsNaN(c.FeedRate) || math.IsInf(c.FeedRate, 0) || c.FeedRate <= 0 {
		return fmt.Errorf("feed_rate must be > 0, got %g", c.FeedRate)
	}
	if math.IsNaN(c.StepSize) || math.IsInf(c.StepSize, 0) || c.StepSize <= 0 {
		return fmt.Errorf("step_size must be > 0, got %g", c.StepSize)
	}
	if math.IsNaN(c.Temperature) || c.Temperature < 0 || c.Temperature > 400 {
		return fmt.Errorf("temperature must be between 0 and 400, got %g", c.Temperature)
	}
	if c.RetractSteps < 0 {
		return fmt.Errorf("retract_steps must be >= 0, got %d", c.RetractSteps)
	}
	if c.Precision < 0 || c.Precision > gcode.MaxPrecision {
		return fmt.Errorf("precision must be between 0 and %d, got %d", gcode.MaxPrecision, c.Precision)
	}
	if c.Baud <= 0 {
		return fmt.Errorf("baud must be > 0, got %d", c.Baud)
	}
	return nil
}

// Options converts the config to session options, without a leveler.
func (c *Config) Options() turtle.Options {
	return turtle.Options{
		FeedRate:     c.FeedRate,
		StepSize:     c.StepSize,
		Temperature:  c.Temperature,
		RetractSteps: c.RetractSteps,
		Precision:    c.Precision,
	}
}

