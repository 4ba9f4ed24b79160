package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vovakirdan/gor-arcade/internal/tournament"
)

var _ tournament.Repository = (*Store)(nil)

const tournamentColumns = `id, game_id, entry_fee, prize_pool, participants, starts_at, ends_at`

func scanTournament(row rowScanner) (tournament.Tournament, error) {
	var t tournament.Tournament
	var fee, pool string
	var startsAt, endsAt any
	if err := row.Scan(&t.ID, &t.Game, &fee, &pool, &t.Participants, &startsAt, &endsAt); err != nil {
		return t, err
	}
	var err error
	if t.EntryFee, err = decimal.NewFromString(fee); err != nil {
		return t, fmt.Errorf("entry fee %q: %w", fee, err)
	}
	if t.PrizePool, err = decimal.NewFromString(pool); err != nil {
		return t, fmt.Errorf("prize pool %q: %w", pool, err)
	}
	t.StartsAt = parseTime(startsAt)
	t.EndsAt = parseTime(endsAt)
	return t, nil
}

// ActiveTournament returns the running tournament for the game.
func (s *Store) ActiveTournament(ctx context.Context, game string) (tournament.Tournament, bool, error) {
	t, err := scanTournament(s.db.QueryRowContext(ctx,
		`SELECT `+tournamentColumns+` FROM tournaments
		 WHERE game_id = ? AND active = 1
		 ORDER BY starts_at DESC LIMIT 1`,
		game,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return tournament.Tournament{}, false, nil
	}
	if err != nil {
		return tournament.Tournament{}, false, fmt.Errorf("storage: cannot query tournament: %w", err)
	}
	return t, true, nil
}

// Tournament returns a tournament by id, active or not.
func (s *Store) Tournament(ctx context.Context, id string) (tournament.Tournament, error) {
	t, err := scanTournament(s.db.QueryRowContext(ctx,
		`SELECT `+tournamentColumns+` FROM tournaments WHERE id = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return tournament.Tournament{}, fmt.Errorf("storage: tournament %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("storage: cannot query tournament: %w", err)
	}
	return t, nil
}

// CreateTournament stores a new active tournament.
func (s *Store) CreateTournament(ctx context.Context, t tournament.Tournament) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tournaments (id, game_id, entry_fee, prize_pool, participants, starts_at, ends_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Game, t.EntryFee.String(), t.PrizePool.String(), t.Participants,
		formatTime(t.StartsAt), formatTime(t.EndsAt),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("storage: %s: %w", t.Game, tournament.ErrActiveExists)
	}
	if err != nil {
		return fmt.Errorf("storage: cannot create tournament: %w", err)
	}
	return nil
}

// EndTournament marks a tournament as finished.
func (s *Store) EndTournament(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE tournaments SET active = 0 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("storage: cannot end tournament: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("storage: tournament %s: %w", id, ErrNotFound)
	}
	return nil
}

// AddEntry adds amount to the prize pool and counts one participant.
func (s *Store) AddEntry(ctx context.Context, id string, amount decimal.Decimal) (tournament.Tournament, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	t, err := scanTournament(tx.QueryRowContext(ctx,
		`SELECT `+tournamentColumns+` FROM tournaments WHERE id = ? AND active = 1`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return tournament.Tournament{}, fmt.Errorf("storage: tournament %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("storage: cannot query tournament: %w", err)
	}

	t.PrizePool = t.PrizePool.Add(amount)
	t.Participants++
	if _, err := tx.ExecContext(ctx,
		`UPDATE tournaments SET prize_pool = ?, participants = ? WHERE id = ?`,
		t.PrizePool.String(), t.Participants, id,
	); err != nil {
		return tournament.Tournament{}, fmt.Errorf("storage: cannot update tournament: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return tournament.Tournament{}, fmt.Errorf("storage: cannot commit entry: %w", err)
	}
	return t, nil
}
