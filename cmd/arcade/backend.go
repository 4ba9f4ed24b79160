package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/vovakirdan/gor-arcade/internal/core"
	"github.com/vovakirdan/gor-arcade/internal/leaderboard"
	"github.com/vovakirdan/gor-arcade/internal/logging"
	"github.com/vovakirdan/gor-arcade/internal/registry"
	"github.com/vovakirdan/gor-arcade/internal/storage"
	"github.com/vovakirdan/gor-arcade/internal/tournament"
)

// repository is what both storage backends provide.
type repository interface {
	leaderboard.Repository
	tournament.Repository
	Clear(ctx context.Context, game string) error
	Stats(ctx context.Context) (map[string]storage.GameStats, error)
	Close() error
}

// backend bundles the store and the services built on it.
type backend struct {
	repo        repository
	scores      *leaderboard.Service
	tournaments *tournament.Service
	metrics     *prometheus.Registry
	logger      *log.Logger
}

// openBackend opens Postgres when a DSN is configured, sqlite otherwise.
// Log output goes to w; interactive commands pass io.Discard.
func openBackend(ctx context.Context, w io.Writer, prefix string) (*backend, error) {
	logger := logging.Discard()
	if w != io.Discard {
		logger = logging.New(w, prefix, flagLogLevel)
	}

	var (
		repo repository
		err  error
	)
	if flagDBURL != "" {
		repo, err = storage.OpenPostgres(ctx, flagDBURL)
		logger.Debug("using postgres")
	} else {
		repo, err = storage.Open(flagDBPath)
		logger.Debug("using sqlite", "path", flagDBPath)
	}
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &backend{
		repo: repo,
		scores: leaderboard.NewService(repo, catalog(),
			leaderboard.WithLogger(logger),
			leaderboard.WithMetrics(leaderboard.NewMetrics(reg)),
		),
		tournaments: tournament.NewService(repo, tournament.DefaultFees(),
			tournament.WithLogger(logger),
			tournament.WithRegisterer(reg),
		),
		metrics: reg,
		logger:  logger,
	}, nil
}

func (b *backend) Close() error {
	return b.repo.Close()
}

// catalog ranks every registered game by its own order.
func catalog() leaderboard.Catalog {
	c := make(leaderboard.Catalog)
	for _, g := range registry.List() {
		c[g.ID] = g.Order
	}
	return c
}

// playerName returns the configured player or a generated one.
func playerName() string {
	if flagPlayer != "" {
		return flagPlayer
	}
	return core.PlayerName(core.NewRandom(time.Now().UnixNano()))
}

func requireGame(id string) error {
	if !registry.Exists(id) {
		return fmt.Errorf("unknown game %q (run 'arcade list' to see available games)", id)
	}
	return nil
}

func warn(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
}
