package utils

import (
	"log/slog"
	"time"
)

// Stats for performance monitoring
type Stats struct {
	GenerationsPerSecond float64
	AveragePopulation    float64
	TotalGenerations     int
	Restarts             int
	StartTime            time.Time
}

func NewStats() *Stats {
	return &Stats{StartTime: time.Now()}
}

// Update records one frame. duration is the time the frame took.
func (s *Stats) Update(generation int, population int, duration time.Duration) {
	s.TotalGenerations = generation
	if duration > 0 {
		s.GenerationsPerSecond = 1.0 / duration.Seconds()
	}

	// Exponential moving average, seeded by the first sample
	if s.TotalGenerations == 0 || s.AveragePopulation == 0 {
		s.AveragePopulation = float64(population)
	} else {
		s.AveragePopulation = (s.AveragePopulation * 0.9) + (float64(population) * 0.1)
	}
}

func (s *Stats) RecordRestart() {
	s.Restarts++
}

// Runtime returns the time since the stats were created.
func (s *Stats) Runtime() time.Duration {
	return time.Since(s.StartTime)
}

// LogValue implements slog.LogValuer.
func (s *Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generations", s.TotalGenerations),
		slog.Float64("gen_per_sec", s.GenerationsPerSecond),
		slog.Float64("avg_population", s.AveragePopulation),
		slog.Int("restarts", s.Restarts),
		slog.Duration("runtime", s.Runtime()),
	)
}

// Density returns the percentage of live cells on a width x height board.
func Density(population, width, height int) float64 {
	if width <= 0 || height <= 0 {
		return 0
	}
	return float64(population) / float64(width*height) * 100
}
