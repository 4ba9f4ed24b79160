package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gor-arcade/internal/registry"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-game statistics",
	Long:  `Shows players, average result and last activity for every game.`,
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func runStats(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	b, err := openBackend(ctx, io.Discard, "arcade")
	if err != nil {
		return fmt.Errorf("cannot open scores database: %w", err)
	}
	defer b.Close()

	stats, err := b.repo.Stats(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("  %-12s  %-8s  %-10s  %s\n", "Game", "Players", "Average", "Last played")
	fmt.Printf("  %-12s  %-8s  %-10s  %s\n", "----", "-------", "-------", "-----------")
	for _, g := range registry.List() {
		st, ok := stats[g.ID]
		if !ok {
			fmt.Printf("  %-12s  %-8d  %-10s  %s\n", g.Title, 0, "-", "never")
			continue
		}
		fmt.Printf("  %-12s  %-8d  %-10.1f  %s\n", g.Title, st.Players, st.AvgScore, st.LastPlayed.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
