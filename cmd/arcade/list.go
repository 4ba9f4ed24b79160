package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gor-arcade/internal/core"
	"github.com/vovakirdan/gor-arcade/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows a list of all games registered in the arcade.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available games:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	fmt.Printf("  %-*s  %-12s  %s\n", maxIDLen, "ID", "Title", "Ranked by")
	fmt.Printf("  %-*s  %-12s  %s\n", maxIDLen, "--", "-----", "---------")

	for _, g := range games {
		ranked := "highest score"
		if g.Order == core.LowerIsBetter {
			ranked = "fastest time"
		}
		fmt.Printf("  %-*s  %-12s  %s\n", maxIDLen, g.ID, g.Title, ranked)
	}

	fmt.Println()
	fmt.Println("Run 'arcade play <id>' to play a game.")
}
