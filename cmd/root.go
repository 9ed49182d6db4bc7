package cmd

import (
	"math/rand"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sheikhrachel/go-gol3d/engine"
	"github.com/sheikhrachel/go-gol3d/utils"
)

var (
	configPath string // Optional YAML/JSON config file
	logLevel   string // Log verbosity level

	// Lattice
	width        int     // Cells along x
	height       int     // Cells along y
	depth        int     // Cells along z
	initial      float64 // Probability a seeded cell is Alive
	minNeighbors int     // Alive needs strictly more neighbours than this
	maxNeighbors int     // Alive needs at most this many neighbours
	seed         int64   // Seed for the initial grid; 0 uses the clock

	// Step tuning
	workers int  // Goroutines per step; 0 uses every CPU
	bounded bool // Only evaluate around living cells

	// Presenter
	frameRate           time.Duration // Time between frames
	framesPerGeneration int           // Frames drawn per generation advance
	maxGenerations      int           // Stop after this many generations; 0 runs forever
	autoRestart         bool          // Reseed on extinction or stagnation
	stagnationThreshold int           // Stagnant generations before a restart
	refreshInterval     int           // Reseed every N generations; 0 disables
	mode                string        // Render mode: size or color
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "gol3d",
	Short: "Three-dimensional Game of Life on an open-boundary lattice",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return errors.Wrapf(err, "invalid log level %q", logLevel)
		}
		logrus.SetLevel(level)
		return nil
	},
	SilenceUsage: true,
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig starts from the config file (or defaults) and applies only the
// flags the user actually set, so file values are not overwritten by flag
// defaults.
func loadConfig(cmd *cobra.Command) (utils.Config, error) {
	config := utils.DefaultConfig()
	if configPath != "" {
		var err error
		if config, err = utils.LoadConfig(configPath); err != nil {
			return config, err
		}
	}

	flags := cmd.Flags()
	overrides := []struct {
		name  string
		apply func()
	}{
		{"width", func() { config.Width = width }},
		{"height", func() { config.Height = height }},
		{"depth", func() { config.Depth = depth }},
		{"initial", func() { config.Initial = initial }},
		{"min", func() { config.Min = minNeighbors }},
		{"max", func() { config.Max = maxNeighbors }},
		{"seed", func() { config.Seed = seed }},
		{"workers", func() { config.Workers = workers }},
		{"bounded", func() { config.UseBoundedGrid = bounded }},
		{"frame-rate", func() { config.FrameRate = frameRate }},
		{"frames-per-generation", func() { config.FramesPerGeneration = framesPerGeneration }},
		{"max-generations", func() { config.MaxGenerations = maxGenerations }},
		{"auto-restart", func() { config.AutoRestart = autoRestart }},
		{"stagnation-threshold", func() { config.StagnationThreshold = stagnationThreshold }},
		{"refresh-interval", func() { config.RefreshInterval = refreshInterval }},
		{"mode", func() { config.Mode = mode }},
	}
	for _, o := range overrides {
		if flags.Changed(o.name) {
			o.apply()
		}
	}

	if config.Seed == 0 {
		config.Seed = time.Now().UnixNano()
	}
	if err := config.Validate(); err != nil {
		return config, errors.Wrap(err, "[loadConfig]")
	}
	return config, nil
}

// newEngine seeds an engine from the configuration
func newEngine(config utils.Config) (*engine.Engine, error) {
	logrus.WithFields(logrus.Fields{
		"width":   config.Width,
		"height":  config.Height,
		"depth":   config.Depth,
		"initial": config.Initial,
		"rule":    config.Rule(),
		"seed":    config.Seed,
	}).Info("starting simulation")
	return engine.New(config.Settings(), rand.New(rand.NewSource(config.Seed)))
}

// init sets up CLI flags and subcommands
func init() {
	defaults := utils.DefaultConfig()
	pf := rootCmd.PersistentFlags()

	pf.StringVar(&configPath, "config", "", "Path to a YAML or JSON config file")
	pf.StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	pf.IntVar(&width, "width", defaults.Width, "Grid width")
	pf.IntVar(&height, "height", defaults.Height, "Grid height")
	pf.IntVar(&depth, "depth", defaults.Depth, "Grid depth")
	pf.Float64Var(&initial, "initial", defaults.Initial, "Probability each cell starts Alive (clamped to [0,1])")
	pf.IntVar(&minNeighbors, "min", defaults.Min, "Alive when the neighbour count is strictly greater than min")
	pf.IntVar(&maxNeighbors, "max", defaults.Max, "Dead when the neighbour count is greater than max")
	pf.Int64Var(&seed, "seed", defaults.Seed, "Seed for the initial grid (0 uses the clock)")

	pf.IntVar(&workers, "workers", defaults.Workers, "Goroutines per step (0 uses every CPU)")
	pf.BoolVar(&bounded, "bounded", defaults.UseBoundedGrid, "Only evaluate the region around living cells")

	pf.DurationVar(&frameRate, "frame-rate", defaults.FrameRate, "Time between frames")
	pf.IntVar(&framesPerGeneration, "frames-per-generation", defaults.FramesPerGeneration, "Frames per generation advance")
	pf.IntVar(&maxGenerations, "max-generations", defaults.MaxGenerations, "Stop after this many generations (0 runs forever)")
	pf.BoolVar(&autoRestart, "auto-restart", defaults.AutoRestart, "Reseed on extinction or stagnation")
	pf.IntVar(&stagnationThreshold, "stagnation-threshold", defaults.StagnationThreshold, "Stagnant generations before a restart")
	pf.IntVar(&refreshInterval, "refresh-interval", defaults.RefreshInterval, "Reseed every N generations (0 disables)")
	pf.StringVar(&mode, "mode", defaults.Mode, "Render mode (size, color)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(simulateCmd)
}
