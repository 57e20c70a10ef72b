package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/conway/model"
	"github.com/sheikhrachel/conway/utils"
)

// refreshInterval forces a restart this many generations in, so long runs keep changing.
const refreshInterval = 200

// gridOptions translates the config into grid construction options
func gridOptions(config utils.Config, pool *model.GridPool) ([]model.Option, error) {
	boundary, err := model.ParseBoundary(config.Boundary)
	if err != nil {
		return nil, &ExitError{Code: exitUsage, Message: err.Error()}
	}

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	workers := config.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}

	opts := []model.Option{
		model.WithBoundary(boundary),
		model.WithWorkers(workers),
		model.WithSeed(seed),
	}
	if pool != nil {
		opts = append(opts, model.WithPool(pool))
	}
	return opts, nil
}

// initializeGame sets up the initial grid, from the pattern file when one is configured
func initializeGame(config utils.Config) (*model.Grid, error) {
	var pool *model.GridPool
	if config.UseMemoryPool {
		pool = model.NewGridPool()
	}
	opts, err := gridOptions(config, pool)
	if err != nil {
		return nil, err
	}

	if config.PatternFile != "" {
		f, err := os.Open(config.PatternFile)
		if err != nil {
			return nil, &ExitError{Code: exitUsage, Message: errors.Wrap(err, "[initializeGame] failed to open pattern").Error()}
		}
		defer f.Close()

		pattern, err := model.ParsePattern(f)
		if err != nil {
			return nil, &ExitError{Code: exitConstruction, Message: err.Error()}
		}
		grid, err := model.NewGridFromPattern(pattern, config.Width, config.Height, opts...)
		if err != nil {
			return nil, &ExitError{Code: exitConstruction, Message: err.Error()}
		}
		return grid, nil
	}

	grid, err := model.NewGrid(config.Width, config.Height, opts...)
	if err != nil {
		return nil, &ExitError{Code: exitConstruction, Message: err.Error()}
	}
	if err := grid.ResetWithInterestingPatterns(config.RandomDensity); err != nil {
		return nil, &ExitError{Code: exitConstruction, Message: err.Error()}
	}
	return grid, nil
}

// updateGameState records the frame and returns the population, density and status line
func updateGameState(
	grid *model.Grid,
	generation int,
	frameDuration time.Duration,
	stats *utils.Stats,
) (int, float64, string, bool) {
	livingCells := grid.Population()
	density := utils.Density(livingCells, grid.Width(), grid.Height())

	stats.Update(generation, livingCells, frameDuration)

	grid.UpdateHistory()
	isStagnant := grid.IsStagnant()

	status := "Active"
	if isStagnant {
		status = "Stagnant"
	}
	if livingCells == 0 {
		status = "Extinct"
	}

	return livingCells, density, status, isStagnant
}

// displayGameStatus writes the status header for the current frame
func displayGameStatus(
	out io.Writer,
	generation, livingCells int,
	density float64,
	status string,
	config utils.Config,
	grid *model.Grid,
	stats *utils.Stats,
	lastRestartGen int,
) {
	boundingInfo := ""
	if config.UseBoundedGrid {
		boundingInfo = fmt.Sprintf(" | Bounding box: %d cells", grid.BoundingBoxSize())
	}

	fmt.Fprintf(out, "Gen: %d | Living: %d | Density: %.1f%% | Status: %s%s\n",
		generation, livingCells, density, status, boundingInfo)
	fmt.Fprintf(out, "Performance: %.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs\n",
		stats.GenerationsPerSecond, stats.AveragePopulation, stats.Runtime().Seconds())

	if generation > lastRestartGen {
		fmt.Fprintf(out, "Generations since restart: %d\n", generation-lastRestartGen)
	}
	fmt.Fprintln(out)
}

// checkRestartConditions determines if the game should restart
func checkRestartConditions(
	livingCells, stagnantCount, generation int,
	config utils.Config,
) (bool, string) {
	if livingCells == 0 {
		return true, "extinction"
	}
	if config.StagnationThreshold > 0 && stagnantCount >= config.StagnationThreshold {
		return true, "stagnation detected"
	}
	if generation > 0 && generation%refreshInterval == 0 {
		return true, "periodic refresh"
	}
	return false, ""
}

// restartGame reseeds the grid in place with fresh patterns
func restartGame(grid *model.Grid, config utils.Config, stats *utils.Stats, logger *slog.Logger, reason string) error {
	if err := grid.ResetWithInterestingPatterns(config.RandomDensity); err != nil {
		return errors.WithMessage(err, "[restartGame]")
	}
	stats.RecordRestart()
	logger.Info("Restarted grid.", "reason", reason, "living", grid.Population(), "restarts", stats.Restarts)
	return nil
}
