package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sheikhrachel/conway/model"
	"github.com/sheikhrachel/conway/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// execute runs the program and returns the process exit code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	config, done, err := parseFlags(args, stderr)
	if err == nil && done {
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return exitCode(err)
	}

	logger := utils.NewLogger(config.LogLevel, config.LogFormat, stderr)
	if err := run(ctx, config, stdout, logger); err != nil {
		logger.Error("Simulation failed.", "error", err)
		return exitCode(err)
	}
	return 0
}

func exitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return exitConstruction
}

// run drives the simulation loop until the generation limit or ctx is done.
func run(ctx context.Context, config utils.Config, out io.Writer, logger *slog.Logger) error {
	grid, err := initializeGame(config)
	if err != nil {
		return err
	}

	var (
		renderer       = model.NewTerminalRenderer(out)
		stats          = utils.NewStats()
		generation     = 0
		stagnantCount  = 0
		lastRestartGen = 0
		lastFrameTime  = time.Now()
	)
	logger.Info("Starting simulation.",
		"width", grid.Width(), "height", grid.Height(),
		"boundary", grid.Boundary().String(), "living", grid.Population(),
		"pool", config.UseMemoryPool, "bounded", config.UseBoundedGrid)

	for {
		frameStart := time.Now()
		if err := renderer.Clear(); err != nil {
			return err
		}

		livingCells, density, status, isStagnant := updateGameState(grid, generation, frameStart.Sub(lastFrameTime), stats)
		lastFrameTime = frameStart

		if isStagnant {
			stagnantCount++
		} else {
			stagnantCount = 0
		}

		displayGameStatus(out, generation, livingCells, density, status, config, grid, stats, lastRestartGen)
		if err := renderer.Display(grid.Snapshot()); err != nil {
			return err
		}

		if config.MaxGenerations > 0 && generation >= config.MaxGenerations {
			logger.Info("Reached maximum generations.", "limit", config.MaxGenerations, "stats", stats)
			return nil
		}

		shouldRestart, restartReason := checkRestartConditions(livingCells, stagnantCount, generation, config)
		if shouldRestart && config.AutoRestart {
			if err := restartGame(grid, config, stats, logger, restartReason); err != nil {
				return err
			}
			lastRestartGen = generation
			stagnantCount = 0
		} else if isStagnant && stagnantCount >= 2 {
			logger.Debug("Injecting life to break stagnation.", "generation", generation, "cells", config.InjectionCount)
			grid.InjectRandomLife(config.InjectionCount)
		}

		if config.UseBoundedGrid {
			grid.AdvanceBounded()
		} else {
			grid.Advance()
		}
		generation++

		select {
		case <-ctx.Done():
			logger.Info("Shutting down gracefully.", "stats", stats)
			return nil
		case <-time.After(config.FrameRate):
		}
	}
}
