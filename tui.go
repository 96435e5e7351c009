package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/garrett-1/portfolio/internal/config"
	"github.com/garrett-1/portfolio/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Render the portfolio in the terminal",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		content, err := loadContent(cmd, cfg.ContentPath)
		if err != nil {
			return fmt.Errorf("load content: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		return tui.Run(ctx, content, tui.Options{
			Window:         cfg.CarouselWindow,
			RevealInterval: cfg.RevealInterval,
		})
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
