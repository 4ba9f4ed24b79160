package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/gor-arcade/internal/core"
	"github.com/vovakirdan/gor-arcade/internal/leaderboard"
)

var _ leaderboard.Repository = (*Store)(nil)

const scoreColumns = `id, game_id, player_name, wallet_address, score, created_at, updated_at`

func scanEntry(row rowScanner) (leaderboard.Entry, error) {
	var e leaderboard.Entry
	var createdAt, updatedAt any
	err := row.Scan(&e.ID, &e.Game, &e.Player, &e.Wallet, &e.Metric, &createdAt, &updatedAt)
	e.CreatedAt = parseTime(createdAt)
	e.UpdatedAt = parseTime(updatedAt)
	return e, err
}

// orderClause returns the ORDER BY for a leaderboard. Ties go to the
// earlier entry.
func orderClause(order core.Order) string {
	if order == core.LowerIsBetter {
		return "score ASC, updated_at ASC, id ASC"
	}
	return "score DESC, updated_at ASC, id ASC"
}

// Best returns the stored entry of player for game.
func (s *Store) Best(ctx context.Context, game, player string) (leaderboard.Entry, bool, error) {
	e, err := scanEntry(s.db.QueryRowContext(ctx,
		`SELECT `+scoreColumns+` FROM scores WHERE game_id = ? AND player_name = ?`,
		game, player,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return leaderboard.Entry{}, false, nil
	}
	if err != nil {
		return leaderboard.Entry{}, false, fmt.Errorf("storage: cannot query score: %w", err)
	}
	return e, true, nil
}

// Save inserts the entry or replaces the player's existing row.
func (s *Store) Save(ctx context.Context, e leaderboard.Entry) (leaderboard.Entry, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO scores (game_id, player_name, wallet_address, score, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (game_id, player_name) DO UPDATE SET
		   wallet_address = excluded.wallet_address,
		   score = excluded.score,
		   updated_at = excluded.updated_at`,
		e.Game, e.Player, e.Wallet, e.Metric, formatTime(e.CreatedAt), formatTime(e.UpdatedAt),
	)
	if err != nil {
		return leaderboard.Entry{}, fmt.Errorf("storage: cannot save score: %w", err)
	}

	saved, found, err := s.Best(ctx, e.Game, e.Player)
	if err != nil {
		return leaderboard.Entry{}, err
	}
	if !found {
		return leaderboard.Entry{}, fmt.Errorf("storage: saved score vanished: %w", ErrNotFound)
	}
	return saved, nil
}

// Top retrieves the best limit entries for the game.
func (s *Store) Top(ctx context.Context, game string, order core.Order, limit int) ([]leaderboard.Entry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+scoreColumns+` FROM scores WHERE game_id = ? ORDER BY `+orderClause(order)+` LIMIT ?`,
		game, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []leaderboard.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// Clear deletes every entry for the game.
func (s *Store) Clear(ctx context.Context, game string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM scores WHERE game_id = ?", game); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID     string
	Players    int
	AvgScore   float64
	LastPlayed time.Time
}

// Stats aggregates the leaderboard of every game that has entries.
func (s *Store) Stats(ctx context.Context) (map[string]GameStats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT game_id, COUNT(*), AVG(score), MAX(updated_at)
		 FROM scores
		 GROUP BY game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]GameStats)
	for rows.Next() {
		var st GameStats
		var lastPlayed any
		if err := rows.Scan(&st.GameID, &st.Players, &st.AvgScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.GameID] = st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
