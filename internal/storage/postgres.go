package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/vovakirdan/gor-arcade/internal/core"
	"github.com/vovakirdan/gor-arcade/internal/leaderboard"
	"github.com/vovakirdan/gor-arcade/internal/tournament"
)

var (
	_ leaderboard.Repository = (*PGStore)(nil)
	_ tournament.Repository  = (*PGStore)(nil)
)

// PGStore keeps the same tables as Store in Postgres.
type PGStore struct {
	db *pgxpool.Pool
}

// OpenPostgres connects to dsn and runs migrations.
func OpenPostgres(ctx context.Context, dsn string) (*PGStore, error) {
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open postgres: %w", err)
	}
	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to postgres: %w", err)
	}

	s := &PGStore{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return s, nil
}

func (s *PGStore) migrate(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS scores (
			id BIGSERIAL PRIMARY KEY,
			game_id TEXT NOT NULL,
			player_name TEXT NOT NULL,
			wallet_address TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (game_id, player_name)
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score);

		CREATE TABLE IF NOT EXISTS tournaments (
			id UUID PRIMARY KEY,
			game_id TEXT NOT NULL,
			entry_fee NUMERIC(20, 9) NOT NULL,
			prize_pool NUMERIC(20, 9) NOT NULL DEFAULT 0,
			participants INTEGER NOT NULL DEFAULT 0,
			starts_at TIMESTAMPTZ NOT NULL,
			ends_at TIMESTAMPTZ NOT NULL,
			active BOOLEAN NOT NULL DEFAULT TRUE
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_tournaments_one_active
			ON tournaments(game_id) WHERE active;
	`)
	return err
}

// Close releases the pool.
func (s *PGStore) Close() error {
	s.db.Close()
	return nil
}

// Best returns the stored entry of player for game.
func (s *PGStore) Best(ctx context.Context, game, player string) (leaderboard.Entry, bool, error) {
	e, err := scanEntry(s.db.QueryRow(ctx,
		`SELECT `+scoreColumns+` FROM scores WHERE game_id = $1 AND player_name = $2`,
		game, player,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return leaderboard.Entry{}, false, nil
	}
	if err != nil {
		return leaderboard.Entry{}, false, fmt.Errorf("storage: cannot query score: %w", err)
	}
	return e, true, nil
}

// Save inserts the entry or replaces the player's existing row.
func (s *PGStore) Save(ctx context.Context, e leaderboard.Entry) (leaderboard.Entry, error) {
	saved, err := scanEntry(s.db.QueryRow(ctx,
		`INSERT INTO scores (game_id, player_name, wallet_address, score, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (game_id, player_name) DO UPDATE SET
		   wallet_address = EXCLUDED.wallet_address,
		   score = EXCLUDED.score,
		   updated_at = EXCLUDED.updated_at
		 RETURNING `+scoreColumns,
		e.Game, e.Player, e.Wallet, e.Metric, nonZero(e.CreatedAt), nonZero(e.UpdatedAt),
	))
	if err != nil {
		return leaderboard.Entry{}, fmt.Errorf("storage: cannot save score: %w", err)
	}
	return saved, nil
}

// Top retrieves the best limit entries for the game.
func (s *PGStore) Top(ctx context.Context, game string, order core.Order, limit int) ([]leaderboard.Entry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(ctx,
		`SELECT `+scoreColumns+` FROM scores WHERE game_id = $1 ORDER BY `+orderClause(order)+` LIMIT $2`,
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
func (s *PGStore) Clear(ctx context.Context, game string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM scores WHERE game_id = $1`, game); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// Stats aggregates the leaderboard of every game that has entries.
func (s *PGStore) Stats(ctx context.Context) (map[string]GameStats, error) {
	rows, err := s.db.Query(ctx,
		`SELECT game_id, COUNT(*), AVG(score)::float8, MAX(updated_at)
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
		if err := rows.Scan(&st.GameID, &st.Players, &st.AvgScore, &st.LastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		stats[st.GameID] = st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

const pgTournamentColumns = `id::text, game_id, entry_fee::text, prize_pool::text, participants, starts_at, ends_at`

// ActiveTournament returns the running tournament for the game.
func (s *PGStore) ActiveTournament(ctx context.Context, game string) (tournament.Tournament, bool, error) {
	t, err := scanTournament(s.db.QueryRow(ctx,
		`SELECT `+pgTournamentColumns+` FROM tournaments
		 WHERE game_id = $1 AND active
		 ORDER BY starts_at DESC LIMIT 1`,
		game,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return tournament.Tournament{}, false, nil
	}
	if err != nil {
		return tournament.Tournament{}, false, fmt.Errorf("storage: cannot query tournament: %w", err)
	}
	return t, true, nil
}

// CreateTournament stores a new active tournament.
func (s *PGStore) CreateTournament(ctx context.Context, t tournament.Tournament) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO tournaments (id, game_id, entry_fee, prize_pool, participants, starts_at, ends_at)
		 VALUES ($1, $2, $3::numeric, $4::numeric, $5, $6, $7)`,
		t.ID, t.Game, t.EntryFee.String(), t.PrizePool.String(), t.Participants, t.StartsAt, t.EndsAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("storage: %s: %w", t.Game, tournament.ErrActiveExists)
	}
	if err != nil {
		return fmt.Errorf("storage: cannot create tournament: %w", err)
	}
	return nil
}

// EndTournament marks a tournament as finished.
func (s *PGStore) EndTournament(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `UPDATE tournaments SET active = FALSE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("storage: cannot end tournament: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("storage: tournament %s: %w", id, ErrNotFound)
	}
	return nil
}

// AddEntry adds amount to the prize pool and counts one participant in a
// single statement.
func (s *PGStore) AddEntry(ctx context.Context, id string, amount decimal.Decimal) (tournament.Tournament, error) {
	t, err := scanTournament(s.db.QueryRow(ctx,
		`UPDATE tournaments
		 SET prize_pool = prize_pool + $2::numeric, participants = participants + 1
		 WHERE id = $1 AND active
		 RETURNING `+pgTournamentColumns,
		id, amount.String(),
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return tournament.Tournament{}, fmt.Errorf("storage: tournament %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("storage: cannot update tournament: %w", err)
	}
	return t, nil
}
