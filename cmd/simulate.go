package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sheikhrachel/go-gol3d/engine"
)

var generations int // Generations to compute headlessly

// simulateCmd advances the lattice without rendering and prints a summary
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run generations headlessly and print a summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		if generations < 0 {
			return errors.Errorf("--generations must be >= 0, got %d", generations)
		}
		config, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		eng, err := newEngine(config)
		if err != nil {
			return err
		}
		simulate(eng, generations, cmd.OutOrStdout())
		return nil
	},
}

// simulate advances eng up to n generations, stopping early on extinction
func simulate(eng *engine.Engine, n int, out io.Writer) {
	start := time.Now()
	grid := eng.CurrentGrid()
	for i := 0; i < n; i++ {
		grid = eng.AdvanceGeneration()
		alive := grid.CountLivingCells()
		logrus.WithFields(logrus.Fields{
			"generation": eng.Generation(),
			"alive":      alive,
		}).Info("generation")
		if alive == 0 {
			logrus.WithField("generation", eng.Generation()).Warn("extinct, stopping early")
			break
		}
	}
	elapsed := time.Since(start)

	fmt.Fprintf(out, "Generations: %d | Living: %d/%d | Bounding box: %d cells\n",
		eng.Generation(), grid.CountLivingCells(), grid.Size(), grid.BoundingBoxVolume())
	fmt.Fprintf(out, "Hash: %s\n", grid.GetGridHash())
	fmt.Fprintf(out, "Elapsed: %s\n", elapsed)
}

func init() {
	simulateCmd.Flags().IntVar(&generations, "generations", 100, "Number of generations to compute")
}
