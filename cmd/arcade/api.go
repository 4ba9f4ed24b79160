package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gor-arcade/internal/api"
)

var flagAPIAddr string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Serve leaderboards and tournaments over HTTP",
	Long: `Start the HTTP API used by web front ends.

Endpoints:
  GET  /api/{game}/leaderboard   - Top 10 (?limit= up to 100)
  POST /api/{game}/score         - {playerName, score|time, walletAddress}
  GET  /api/tournaments?game=    - Running tournament of a game
  POST /api/tournaments/entry    - {game, playerWallet}
  GET  /health                   - Liveness probe
  GET  /metrics                  - Prometheus metrics

Examples:
  arcade api
  arcade api --addr 127.0.0.1:9000
  ARCADE_DATABASE_URL=postgres://... arcade api`,
	RunE: runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagAPIAddr, "addr", ":8080", "HTTP listen address (env ARCADE_API_ADDR)")
}

func runAPI(cmd *cobra.Command, _ []string) error {
	if !cmd.Flags().Changed("addr") {
		flagAPIAddr = env.APIAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b, err := openBackend(ctx, os.Stderr, "arcade-api")
	if err != nil {
		return fmt.Errorf("cannot open database: %w", err)
	}
	defer b.Close()

	server := api.NewServer(b.scores, b.tournaments, b.metrics, b.logger)
	return server.Run(ctx, flagAPIAddr)
}
