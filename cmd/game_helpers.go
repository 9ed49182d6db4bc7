package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sheikhrachel/go-gol3d/engine"
	"github.com/sheikhrachel/go-gol3d/model"
	"github.com/sheikhrachel/go-gol3d/utils"
)

// presenter paces generation advances against a frame clock and draws each
// new generation
type presenter struct {
	config   utils.Config
	eng      *engine.Engine
	renderer *model.TerminalRenderer
	out      io.Writer
	stats    *utils.Stats

	tracker        utils.StagnationTracker
	stagnantCount  int
	frame          int
	generation     int // total across restarts
	lastRestartGen int
	lastAdvance    time.Time
	clearScreen    bool
}

func newPresenter(config utils.Config, eng *engine.Engine, renderer *model.TerminalRenderer, out io.Writer) *presenter {
	return &presenter{
		config:      config,
		eng:         eng,
		renderer:    renderer,
		out:         out,
		stats:       utils.NewStats(),
		lastAdvance: time.Now(),
	}
}

// run ticks frames until the context ends or the generation limit is reached
func (p *presenter) run(ctx context.Context) error {
	p.displayGameInfo()

	ticker := time.NewTicker(p.config.FrameRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(p.out, "\nShutting down gracefully...")
			p.displayFinalStats()
			return nil
		case <-ticker.C:
		}

		if done := p.tick(); done {
			p.displayFinalStats()
			return nil
		}
	}
}

// tick handles one frame; every FramesPerGeneration frames it advances the
// engine. It reports true once the generation limit is reached.
func (p *presenter) tick() bool {
	p.frame++
	if p.frame < p.config.FramesPerGeneration {
		return false
	}
	p.frame = 0

	grid := p.eng.AdvanceGeneration()
	p.generation++

	now := time.Now()
	p.stats.Update(p.generation, grid, now.Sub(p.lastAdvance))
	p.lastAdvance = now

	if p.tracker.Observe(grid.GetGridHash()) {
		p.stagnantCount++
	} else {
		p.stagnantCount = 0
	}

	if p.clearScreen {
		p.renderer.Clear()
	}
	p.displayGameStatus(grid)
	p.renderer.Display(grid)

	if p.config.MaxGenerations > 0 && p.generation >= p.config.MaxGenerations {
		fmt.Fprintf(p.out, "\nReached maximum generations limit (%d)\n", p.config.MaxGenerations)
		return true
	}

	restart, reason := checkRestartConditions(grid.CountLivingCells(), p.stagnantCount, p.eng.Generation(), p.config)
	if restart && p.config.AutoRestart {
		p.restartGame(reason)
	}
	return false
}

// checkRestartConditions determines if the game should restart
func checkRestartConditions(livingCells, stagnantCount, generation int, config utils.Config) (bool, string) {
	if livingCells == 0 {
		return true, "extinction"
	}
	if stagnantCount >= config.StagnationThreshold {
		return true, "stagnation detected"
	}
	if config.RefreshInterval > 0 && generation > 0 && generation%config.RefreshInterval == 0 {
		return true, "periodic refresh"
	}
	return false, ""
}

// restartGame reseeds the engine with its current settings
func (p *presenter) restartGame(reason string) {
	fmt.Fprintf(p.out, "Restarting due to %s...\n", reason)
	if err := p.eng.Reseed(); err != nil {
		logrus.WithError(err).Error("[restartGame] reseed failed")
		return
	}
	p.tracker.Reset()
	p.stagnantCount = 0
	p.lastRestartGen = p.generation
	logrus.WithFields(logrus.Fields{
		"reason":     reason,
		"generation": p.generation,
		"alive":      p.eng.CurrentGrid().CountLivingCells(),
	}).Info("grid reseeded")
}

// displayGameInfo shows the initial game information
func (p *presenter) displayGameInfo() {
	grid := p.eng.CurrentGrid()
	fmt.Fprintf(p.out, "Grid: %dx%dx%d | Rule: %d < n <= %d | Initial living cells: %d\n",
		grid.GetWidth(), grid.GetHeight(), grid.GetDepth(),
		p.config.Min, p.config.Max, grid.CountLivingCells())
	fmt.Fprintf(p.out, "Bounded: %v | Workers: %d | Seed: %d\n",
		p.config.UseBoundedGrid, p.config.Workers, p.config.Seed)
	fmt.Fprintln(p.out, "Press Ctrl+C to exit gracefully")
	fmt.Fprintln(p.out)
}

// displayGameStatus shows the current game status
func (p *presenter) displayGameStatus(grid *model.Grid) {
	status := "Active"
	if p.stagnantCount > 0 {
		status = fmt.Sprintf("Stagnant (%d)", p.stagnantCount)
	}
	if grid.CountLivingCells() == 0 {
		status = "Extinct"
	}

	fmt.Fprintf(p.out, "Gen: %d | Living: %d | Density: %.1f%% | Status: %s | Bounding box: %d cells\n",
		p.generation, p.stats.ActiveCells, p.stats.Density, status, p.stats.BoundingBoxSize)
	fmt.Fprintf(p.out, "Performance: %.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs\n",
		p.stats.GenerationsPerSecond, p.stats.AveragePopulation, time.Since(p.stats.StartTime).Seconds())

	// Show time since last restart
	if p.generation > p.lastRestartGen && p.lastRestartGen > 0 {
		fmt.Fprintf(p.out, "Generations since restart: %d\n", p.generation-p.lastRestartGen)
	}
	fmt.Fprintln(p.out)
}

func (p *presenter) displayFinalStats() {
	fmt.Fprintf(p.out, "Final stats: %d generations in %.1f seconds\n",
		p.generation, time.Since(p.stats.StartTime).Seconds())
	fmt.Fprintf(p.out, "Average: %.1f gen/sec, %.1f avg population\n",
		p.stats.GenerationsPerSecond, p.stats.AveragePopulation)
}
