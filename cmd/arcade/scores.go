package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gor-arcade/internal/core"
	"github.com/vovakirdan/gor-arcade/internal/platform/tui"
	"github.com/vovakirdan/gor-arcade/internal/registry"
)

var (
	flagLimit int
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores",
	Long: `Display the best players of a game. Without a game, opens the
interactive scoreboard.

Examples:
  arcade scores
  arcade scores tetris
  arcade scores minesweeper --limit 25
  arcade scores snake --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of entries to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every score of the game")
}

func runScores(_ *cobra.Command, args []string) error {
	ctx := context.Background()
	b, err := openBackend(ctx, io.Discard, "arcade")
	if err != nil {
		return fmt.Errorf("cannot open scores database: %w", err)
	}
	defer b.Close()

	if len(args) == 0 {
		cfg := terminalConfig()
		return tui.RunScoreboard(ctx, b.scores, cfg.ScreenW, cfg.ScreenH)
	}

	gameID := args[0]
	if err := requireGame(gameID); err != nil {
		return err
	}
	info, _ := registry.Info(gameID)

	if flagClear {
		if err := b.repo.Clear(ctx, gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared %s scores.\n", info.Title)
		return nil
	}

	entries, err := b.scores.Top(ctx, gameID, flagLimit)
	if err != nil {
		return fmt.Errorf("cannot retrieve scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", info.Title)
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' to set the first high score!\n", gameID)
		return nil
	}

	metric := "Score"
	if info.Order == core.LowerIsBetter {
		metric = "Time"
	}
	fmt.Printf("  %-4s  %-20s  %-8s  %s\n", "Rank", "Player", metric, "Date")
	fmt.Printf("  %-4s  %-20s  %-8s  %s\n", "----", "------", "-----", "----")

	for i, e := range entries {
		value := fmt.Sprintf("%d", e.Metric)
		if info.Order == core.LowerIsBetter {
			value += "s"
		}
		fmt.Printf("  %-4d  %-20s  %-8s  %s\n", i+1, e.Player, value, e.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
