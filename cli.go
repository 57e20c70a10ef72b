package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/sheikhrachel/conway/utils"
)

const (
	exitConstruction = 1
	exitUsage        = 2
)

// ExitError is an error that carries the process exit code.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// parseFlags builds the run configuration: defaults, then the -config file, then
// any flags given explicitly. done is true when the program should exit cleanly.
func parseFlags(args []string, output io.Writer) (cfg utils.Config, done bool, err error) {
	flagSet := flag.NewFlagSet("gol", flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprint(output, `
gol - Conway's Game of Life in the terminal.

Usage:
  gol [options]

Options:
`)
		flagSet.PrintDefaults()
	}

	defaults := utils.DefaultConfig()
	var (
		configPath  = flagSet.String("config", "", "Path to a .json or .hcl config file.")
		width       = flagSet.Int("width", defaults.Width, "Grid width in cells.")
		height      = flagSet.Int("height", defaults.Height, "Grid height in cells.")
		seed        = flagSet.Int64("seed", defaults.Seed, "Random seed. 0 seeds from the clock.")
		density     = flagSet.Float64("density", defaults.RandomDensity, "Probability of a random cell starting alive.")
		boundary    = flagSet.String("boundary", defaults.Boundary, "Boundary policy: 'dead' or 'torus'.")
		pattern     = flagSet.String("pattern", defaults.PatternFile, "Plaintext pattern file to start from.")
		generations = flagSet.Int("generations", defaults.MaxGenerations, "Stop after this many generations. 0 runs until interrupted.")
		frameRate   = flagSet.Duration("frame-rate", defaults.FrameRate, "Delay between generations.")
		workers     = flagSet.Int("workers", defaults.Workers, "Goroutines per generation. 0 uses one per CPU.")
		bounded     = flagSet.Bool("bounded", defaults.UseBoundedGrid, "Only evaluate the region around live cells.")
		logLevel    = flagSet.String("log-level", defaults.LogLevel, "Logging level: 'debug', 'info', 'warn', 'error'.")
		logFormat   = flagSet.String("log-format", defaults.LogFormat, "Log output format: 'text' or 'json'.")
	)

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return cfg, true, nil
		}
		return cfg, false, &ExitError{Code: exitUsage, Message: err.Error()}
	}
	if flagSet.NArg() > 0 {
		return cfg, false, &ExitError{Code: exitUsage, Message: fmt.Sprintf("unexpected argument %q", flagSet.Arg(0))}
	}

	cfg = defaults
	if *configPath != "" {
		if cfg, err = utils.LoadConfig(*configPath); err != nil {
			return cfg, false, &ExitError{Code: exitUsage, Message: err.Error()}
		}
	}

	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "seed":
			cfg.Seed = *seed
		case "density":
			cfg.RandomDensity = *density
		case "boundary":
			cfg.Boundary = *boundary
		case "pattern":
			cfg.PatternFile = *pattern
		case "generations":
			cfg.MaxGenerations = *generations
		case "frame-rate":
			cfg.FrameRate = *frameRate
		case "workers":
			cfg.Workers = *workers
		case "bounded":
			cfg.UseBoundedGrid = *bounded
		case "log-level":
			cfg.LogLevel = *logLevel
		case "log-format":
			cfg.LogFormat = *logFormat
		}
	})

	if err := cfg.Validate(); err != nil {
		return cfg, false, &ExitError{Code: exitUsage, Message: err.Error()}
	}
	return cfg, false, nil
}
