package storage

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vovakirdan/gor-arcade/internal/core"
	"github.com/vovakirdan/gor-arcade/internal/leaderboard"
	"github.com/vovakirdan/gor-arcade/internal/tournament"
)

// openTestPostgres connects to ARCADE_TEST_DATABASE_URL or skips.
func openTestPostgres(t *testing.T) *PGStore {
	t.Helper()
	dsn := os.Getenv("ARCADE_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("ARCADE_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	store, err := OpenPostgres(ctx, dsn)
	if err != nil {
		t.Fatalf("OpenPostgres() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPGStoreScores(t *testing.T) {
	store := openTestPostgres(t)
	ctx := context.Background()
	game := "test-" + uuid.NewString()[:8]
	t.Cleanup(func() { store.Clear(ctx, game) })

	first, err := store.Save(ctx, leaderboard.Entry{Game: game, Player: "Ann", Metric: 10})
	if err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	second, err := store.Save(ctx, leaderboard.Entry{Game: game, Player: "Ann", Metric: 30})
	if err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if second.ID != first.ID || second.Metric != 30 {
		t.Errorf("expected in-place update, got %+v after %+v", second, first)
	}
	if _, err := store.Save(ctx, leaderboard.Entry{Game: game, Player: "Bob", Metric: 20}); err != nil {
		t.Fatal(err)
	}

	top, err := store.Top(ctx, game, core.LowerIsBetter, 10)
	if err != nil {
		t.Fatalf("Top() failed: %v", err)
	}
	if len(top) != 2 || top[0].Player != "Bob" {
		t.Errorf("Top() = %+v", top)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if st := stats[game]; st.Players != 2 || st.AvgScore != 25 {
		t.Errorf("Stats()[%s] = %+v", game, st)
	}
}

func TestPGStoreTournaments(t *testing.T) {
	store := openTestPostgres(t)
	ctx := context.Background()
	game := "test-" + uuid.NewString()[:8]
	now := time.Now().UTC().Truncate(time.Second)

	trn := tournament.Tournament{
		ID:        uuid.NewString(),
		Game:      game,
		EntryFee:  decimal.RequireFromString("0.015"),
		PrizePool: decimal.Zero,
		StartsAt:  now,
		EndsAt:    now.Add(tournament.Duration),
	}
	if err := store.CreateTournament(ctx, trn); err != nil {
		t.Fatalf("CreateTournament() failed: %v", err)
	}
	t.Cleanup(func() { store.EndTournament(ctx, trn.ID) })

	dup := trn
	dup.ID = uuid.NewString()
	if err := store.CreateTournament(ctx, dup); !errors.Is(err, tournament.ErrActiveExists) {
		t.Errorf("second active CreateTournament() error = %v, expected ErrActiveExists", err)
	}

	got, err := store.AddEntry(ctx, trn.ID, trn.EntryFee)
	if err != nil {
		t.Fatalf("AddEntry() failed: %v", err)
	}
	if !got.PrizePool.Equal(trn.EntryFee) || got.Participants != 1 {
		t.Errorf("unexpected tournament after entry %+v", got)
	}

	active, found, err := store.ActiveTournament(ctx, game)
	if err != nil || !found || active.ID != trn.ID {
		t.Errorf("ActiveTournament() = %+v, %v, %v", active, found, err)
	}
}
