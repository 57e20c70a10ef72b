package utils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/pkg/errors"
)

// Config holds the configuration for the game
type Config struct {
	Width               int           `json:"width"`
	Height              int           `json:"height"`
	FrameRate           time.Duration `json:"frame_rate"`
	AutoRestart         bool          `json:"auto_restart"`
	StagnationThreshold int           `json:"stagnation_threshold"`
	Workers             int           `json:"workers"`
	UseMemoryPool       bool          `json:"use_memory_pool"`
	UseBoundedGrid      bool          `json:"use_bounded_grid"`
	MaxGenerations      int           `json:"max_generations"`
	RandomDensity       float64       `json:"random_density"`
	InjectionCount      int           `json:"injection_count"`
	Seed                int64         `json:"seed"`
	Boundary            string        `json:"boundary"`
	PatternFile         string        `json:"pattern_file"`
	LogLevel            string        `json:"log_level"`
	LogFormat           string        `json:"log_format"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Width:               60,
		Height:              30,
		FrameRate:           150 * time.Millisecond,
		AutoRestart:         true,
		StagnationThreshold: 5,
		Workers:             0, // 0 means one per CPU
		UseMemoryPool:       true,
		UseBoundedGrid:      false,
		MaxGenerations:      1000,
		RandomDensity:       0.2,
		InjectionCount:      3,
		Seed:                0, // 0 means seed from the clock
		Boundary:            "dead",
		LogLevel:            "info",
		LogFormat:           "text",
	}
}

// LoadConfig loads configuration from a JSON or, for a .hcl extension, HCL file.
// Keys missing from the file keep their default values.
func LoadConfig(filename string) (Config, error) {
	if strings.EqualFold(filepath.Ext(filename), ".hcl") {
		return loadHCLConfig(filename)
	}

	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// hclConfig mirrors Config for gohcl; durations are written as strings like "150ms".
type hclConfig struct {
	Width               int     `hcl:"width,optional"`
	Height              int     `hcl:"height,optional"`
	FrameRate           string  `hcl:"frame_rate,optional"`
	AutoRestart         bool    `hcl:"auto_restart,optional"`
	StagnationThreshold int     `hcl:"stagnation_threshold,optional"`
	Workers             int     `hcl:"workers,optional"`
	UseMemoryPool       bool    `hcl:"use_memory_pool,optional"`
	UseBoundedGrid      bool    `hcl:"use_bounded_grid,optional"`
	MaxGenerations      int     `hcl:"max_generations,optional"`
	RandomDensity       float64 `hcl:"random_density,optional"`
	InjectionCount      int     `hcl:"injection_count,optional"`
	Seed                int64   `hcl:"seed,optional"`
	Boundary            string  `hcl:"boundary,optional"`
	PatternFile         string  `hcl:"pattern_file,optional"`
	LogLevel            string  `hcl:"log_level,optional"`
	LogFormat           string  `hcl:"log_format,optional"`
}

func loadHCLConfig(filename string) (Config, error) {
	config := DefaultConfig()
	raw := hclConfig{
		Width:               config.Width,
		Height:              config.Height,
		FrameRate:           config.FrameRate.String(),
		AutoRestart:         config.AutoRestart,
		StagnationThreshold: config.StagnationThreshold,
		Workers:             config.Workers,
		UseMemoryPool:       config.UseMemoryPool,
		UseBoundedGrid:      config.UseBoundedGrid,
		MaxGenerations:      config.MaxGenerations,
		RandomDensity:       config.RandomDensity,
		InjectionCount:      config.InjectionCount,
		Seed:                config.Seed,
		Boundary:            config.Boundary,
		PatternFile:         config.PatternFile,
		LogLevel:            config.LogLevel,
		LogFormat:           config.LogFormat,
	}

	file, diags := hclparse.NewParser().ParseHCLFile(filename)
	if diags.HasErrors() {
		return config, errors.Wrapf(diags, "[LoadConfig] failed to parse HCL file: %+v", filename)
	}
	if diags = gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return config, errors.Wrapf(diags, "[LoadConfig] failed to decode HCL file: %+v", filename)
	}

	frameRate, err := time.ParseDuration(raw.FrameRate)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] invalid frame_rate in %+v", filename)
	}

	return Config{
		Width:               raw.Width,
		Height:              raw.Height,
		FrameRate:           frameRate,
		AutoRestart:         raw.AutoRestart,
		StagnationThreshold: raw.StagnationThreshold,
		Workers:             raw.Workers,
		UseMemoryPool:       raw.UseMemoryPool,
		UseBoundedGrid:      raw.UseBoundedGrid,
		MaxGenerations:      raw.MaxGenerations,
		RandomDensity:       raw.RandomDensity,
		InjectionCount:      raw.InjectionCount,
		Seed:                raw.Seed,
		Boundary:            raw.Boundary,
		PatternFile:         raw.PatternFile,
		LogLevel:            raw.LogLevel,
		LogFormat:           raw.LogFormat,
	}, nil
}

// Validate checks the settings the driver owns. Grid dimensions are left to the
// grid constructor so that they fail as a construction error.
func (c Config) Validate() error {
	if c.FrameRate < 0 {
		return errors.Errorf("[Validate] frame_rate must not be negative, got %v", c.FrameRate)
	}
	if c.RandomDensity < 0 || c.RandomDensity > 1 {
		return errors.Errorf("[Validate] random_density must be within [0, 1], got %v", c.RandomDensity)
	}
	if c.Workers < 0 || c.MaxGenerations < 0 || c.InjectionCount < 0 || c.StagnationThreshold < 0 {
		return errors.New("[Validate] workers, max_generations, injection_count and stagnation_threshold must not be negative")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return errors.Errorf("[Validate] invalid log_level %q: must be 'debug', 'info', 'warn', or 'error'", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return errors.Errorf("[Validate] invalid log_format %q: must be 'text' or 'json'", c.LogFormat)
	}
	return nil
}
