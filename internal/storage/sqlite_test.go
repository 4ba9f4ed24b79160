package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vovakirdan/gor-arcade/internal/core"
	"github.com/vovakirdan/gor-arcade/internal/leaderboard"
	"github.com/vovakirdan/gor-arcade/internal/tournament"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.Save(ctx, leaderboard.Entry{Game: "snake", Player: "Ann", Metric: 30}); err != nil {
		t.Fatal(err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()
	if _, found, _ := store.Best(ctx, "snake", "Ann"); !found {
		t.Error("entry lost after reopen")
	}
}

func TestStoreSaveUpserts(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	first, err := store.Save(ctx, leaderboard.Entry{
		Game: "snake", Player: "Ann", Wallet: "w1", Metric: 50,
		CreatedAt: created, UpdatedAt: created,
	})
	if err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if first.ID == 0 || first.Metric != 50 || !first.CreatedAt.Equal(created) {
		t.Errorf("unexpected saved entry %+v", first)
	}

	later := created.Add(time.Hour)
	second, err := store.Save(ctx, leaderboard.Entry{
		Game: "snake", Player: "Ann", Wallet: "w2", Metric: 80,
		CreatedAt: created, UpdatedAt: later,
	})
	if err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("ID changed from %d to %d; expected an update", first.ID, second.ID)
	}
	if second.Metric != 80 || second.Wallet != "w2" || !second.UpdatedAt.Equal(later) {
		t.Errorf("unexpected updated entry %+v", second)
	}

	got, found, err := store.Best(ctx, "snake", "Ann")
	if err != nil || !found {
		t.Fatalf("Best() = %v, %v", found, err)
	}
	if got.Metric != 80 {
		t.Errorf("Best().Metric = %d, expected 80", got.Metric)
	}

	if _, found, err := store.Best(ctx, "tetris", "Ann"); err != nil || found {
		t.Errorf("Best() for another game = %v, %v; expected not found", found, err)
	}
}

func TestStoreTopOrdering(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	save := func(game, player string, metric int, at time.Duration) {
		t.Helper()
		if _, err := store.Save(ctx, leaderboard.Entry{
			Game: game, Player: player, Metric: metric,
			CreatedAt: base.Add(at), UpdatedAt: base.Add(at),
		}); err != nil {
			t.Fatal(err)
		}
	}
	save("snake", "a", 100, 0)
	save("snake", "b", 50, time.Minute)
	save("snake", "c", 200, 2*time.Minute)
	save("snake", "d", 100, 3*time.Minute)
	save("minesweeper", "a", 40, 0)
	save("minesweeper", "b", 25, time.Minute)

	tests := []struct {
		game     string
		order    core.Order
		limit    int
		expected []string
	}{
		{"snake", core.HigherIsBetter, 10, []string{"c", "a", "d", "b"}},
		{"snake", core.HigherIsBetter, 2, []string{"c", "a"}},
		{"minesweeper", core.LowerIsBetter, 10, []string{"b", "a"}},
		{"tetris", core.HigherIsBetter, 10, nil},
	}

	for _, tc := range tests {
		entries, err := store.Top(ctx, tc.game, tc.order, tc.limit)
		if err != nil {
			t.Fatalf("Top() failed: %v", err)
		}
		var players []string
		for _, e := range entries {
			players = append(players, e.Player)
		}
		if len(players) != len(tc.expected) {
			t.Errorf("%s/%d: got %v, expected %v", tc.game, tc.limit, players, tc.expected)
			continue
		}
		for i := range players {
			if players[i] != tc.expected[i] {
				t.Errorf("%s/%d: got %v, expected %v", tc.game, tc.limit, players, tc.expected)
				break
			}
		}
	}
}

func TestStoreClearAndStats(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	for i, p := range []string{"a", "b", "c"} {
		if _, err := store.Save(ctx, leaderboard.Entry{Game: "tetris", Player: p, Metric: (i + 1) * 100}); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := store.Save(ctx, leaderboard.Entry{Game: "snake", Player: "a", Metric: 10}); err != nil {
		t.Fatal(err)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if st := stats["tetris"]; st.Players != 3 || st.AvgScore != 200 || st.LastPlayed.IsZero() {
		t.Errorf("tetris stats = %+v", st)
	}

	if err := store.Clear(ctx, "tetris"); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}
	entries, _ := store.Top(ctx, "tetris", core.HigherIsBetter, 10)
	if len(entries) != 0 {
		t.Errorf("expected no tetris entries after Clear, got %d", len(entries))
	}
	entries, _ = store.Top(ctx, "snake", core.HigherIsBetter, 10)
	if len(entries) != 1 {
		t.Errorf("Clear should not touch other games, got %d snake entries", len(entries))
	}
}

func TestStoreTournaments(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	if _, found, err := store.ActiveTournament(ctx, "snake"); err != nil || found {
		t.Fatalf("ActiveTournament() on empty store = %v, %v", found, err)
	}

	trn := tournament.Tournament{
		ID:        "6f1c1a8e-0000-4000-8000-000000000001",
		Game:      "snake",
		EntryFee:  decimal.RequireFromString("0.008"),
		PrizePool: decimal.Zero,
		StartsAt:  start,
		EndsAt:    start.Add(tournament.Duration),
	}
	if err := store.CreateTournament(ctx, trn); err != nil {
		t.Fatalf("CreateTournament() failed: %v", err)
	}

	got, found, err := store.ActiveTournament(ctx, "snake")
	if err != nil || !found {
		t.Fatalf("ActiveTournament() = %v, %v", found, err)
	}
	if got.ID != trn.ID || !got.EntryFee.Equal(trn.EntryFee) || !got.EndsAt.Equal(trn.EndsAt) {
		t.Errorf("unexpected tournament %+v", got)
	}

	for i := 0; i < 3; i++ {
		if got, err = store.AddEntry(ctx, trn.ID, trn.EntryFee); err != nil {
			t.Fatalf("AddEntry() failed: %v", err)
		}
	}
	if !got.PrizePool.Equal(decimal.RequireFromString("0.024")) || got.Participants != 3 {
		t.Errorf("after 3 entries: pool %s, participants %d", got.PrizePool, got.Participants)
	}

	if err := store.EndTournament(ctx, trn.ID); err != nil {
		t.Fatalf("EndTournament() failed: %v", err)
	}
	if _, found, _ := store.ActiveTournament(ctx, "snake"); found {
		t.Error("ended tournament should not be active")
	}
	if _, err := store.AddEntry(ctx, trn.ID, trn.EntryFee); !errors.Is(err, ErrNotFound) {
		t.Errorf("AddEntry() on ended tournament error = %v, expected ErrNotFound", err)
	}

	ended, err := store.Tournament(ctx, trn.ID)
	if err != nil || ended.Participants != 3 {
		t.Errorf("Tournament() = %+v, %v", ended, err)
	}
	if _, err := store.Tournament(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Tournament(missing) error = %v, expected ErrNotFound", err)
	}
	if err := store.EndTournament(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("EndTournament(missing) error = %v, expected ErrNotFound", err)
	}
}

func TestStoreOneActiveTournamentPerGame(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	newTournament := func(id string) tournament.Tournament {
		return tournament.Tournament{
			ID:        id,
			Game:      "tetris",
			EntryFee:  decimal.RequireFromString("0.015"),
			PrizePool: decimal.Zero,
			StartsAt:  start,
			EndsAt:    start.Add(tournament.Duration),
		}
	}

	first := newTournament("6f1c1a8e-0000-4000-8000-00000000000a")
	if err := store.CreateTournament(ctx, first); err != nil {
		t.Fatalf("CreateTournament() failed: %v", err)
	}
	second := newTournament("6f1c1a8e-0000-4000-8000-00000000000b")
	if err := store.CreateTournament(ctx, second); !errors.Is(err, tournament.ErrActiveExists) {
		t.Fatalf("second active CreateTournament() error = %v, expected ErrActiveExists", err)
	}

	if err := store.EndTournament(ctx, first.ID); err != nil {
		t.Fatalf("EndTournament() failed: %v", err)
	}
	if err := store.CreateTournament(ctx, second); err != nil {
		t.Fatalf("CreateTournament() after end failed: %v", err)
	}
	got, found, err := store.ActiveTournament(ctx, "tetris")
	if err != nil || !found || got.ID != second.ID {
		t.Errorf("ActiveTournament() = %+v, %v, %v", got, found, err)
	}
}

func TestParseTime(t *testing.T) {
	want := time.Date(2025, 6, 7, 8, 9, 10, 0, time.UTC)
	tests := []any{
		want,
		want.Format(timeLayout),
		want.Format(time.RFC3339Nano),
		"2025-06-07 08:09:10",
		want.Unix(),
	}
	for _, v := range tests {
		if got := parseTime(v); !got.Equal(want) {
			t.Errorf("parseTime(%v) = %v, expected %v", v, got, want)
		}
	}
	if !parseTime(nil).IsZero() {
		t.Error("parseTime(nil) should be zero")
	}
}
