package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sheikhrachel/go-gol3d/model"
)

// runCmd animates the lattice in the terminal
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Animate the simulation in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		eng, err := newEngine(config)
		if err != nil {
			return err
		}
		renderMode, err := model.ParseRenderMode(config.Mode)
		if err != nil {
			return err
		}

		// Handle Ctrl+C gracefully
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		p := newPresenter(config, eng, model.NewTerminalRenderer(renderMode), os.Stdout)
		p.clearScreen = true
		return p.run(ctx)
	},
}
