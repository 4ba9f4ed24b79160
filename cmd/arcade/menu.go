package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gor-arcade/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game.
The menu shows the running tournament of the highlighted game.
After a game ends, press B to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select game
  Tab          - High scores
  Q            - Quit

Examples:
  arcade menu
  arcade menu --fps 30 --player Ann
  arcade menu --db ./scores.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var services tui.Services
	b, err := openBackend(ctx, io.Discard, "arcade")
	if err != nil {
		warn("could not open scores database: %v", err)
	} else {
		defer b.Close()
		services = tui.Services{Scores: b.scores, Tournaments: b.tournaments, Logger: b.logger}
	}

	return tui.RunSession(ctx, services, terminalConfig())
}
