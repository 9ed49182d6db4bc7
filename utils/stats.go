package utils

import (
	"time"

	"github.com/sheikhrachel/go-gol3d/model"
)

// Stats for performance monitoring
type Stats struct {
	GenerationsPerSecond float64
	AveragePopulation    float64
	TotalGenerations     int
	StartTime            time.Time
	ActiveCells          int
	BoundingBoxSize      int
	Density              float64 // percent of cells Alive
}

func NewStats() *Stats {
	return &Stats{StartTime: time.Now()}
}

func (s *Stats) Update(generation int, grid *model.Grid, duration time.Duration) {
	s.TotalGenerations = generation
	if duration > 0 {
		s.GenerationsPerSecond = 1.0 / duration.Seconds()
	}

	population := grid.CountLivingCells()
	s.ActiveCells = population
	s.BoundingBoxSize = grid.BoundingBoxVolume()
	s.Density = float64(population) / float64(grid.Size()) * 100

	// Simple moving average for population
	if s.AveragePopulation == 0 {
		s.AveragePopulation = float64(population)
	} else {
		s.AveragePopulation = (s.AveragePopulation * 0.9) + (float64(population) * 0.1)
	}
}
