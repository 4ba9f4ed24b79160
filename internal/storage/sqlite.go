// Package storage persists leaderboards and tournaments. Store uses the
// pure-Go modernc.org/sqlite driver; PGStore talks to Postgres through pgx.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"modernc.org/sqlite" // Pure Go SQLite driver
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("storage: not found")

// timeLayout is fixed-width so stored timestamps sort as text.
const timeLayout = "2006-01-02 15:04:05.000000000"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	db.SetMaxOpenConns(1) // single writer

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

func (s *Store) migrate(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			player_name TEXT NOT NULL,
			wallet_address TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			UNIQUE (game_id, player_name)
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score);

		CREATE TABLE IF NOT EXISTS tournaments (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			entry_fee TEXT NOT NULL,
			prize_pool TEXT NOT NULL,
			participants INTEGER NOT NULL DEFAULT 0,
			starts_at TEXT NOT NULL,
			ends_at TEXT NOT NULL,
			active INTEGER NOT NULL DEFAULT 1
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_tournaments_one_active
			ON tournaments(game_id) WHERE active = 1;
	`

	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// isUniqueViolation reports whether err comes from a UNIQUE constraint.
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	// primary code when extended result codes are off
	return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE || se.Code() == sqlite3.SQLITE_CONSTRAINT
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// rowScanner is satisfied by *sql.Row, *sql.Rows and pgx rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func nonZero(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}

func formatTime(t time.Time) string {
	return nonZero(t).UTC().Format(timeLayout)
}

// parseTime accepts what the driver hands back for a timestamp column.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		for _, layout := range []string{timeLayout, time.RFC3339Nano, "2006-01-02 15:04:05"} {
			if parsed, err := time.Parse(layout, v); err == nil {
				return parsed
			}
		}
	case int64:
		return time.Unix(v, 0).UTC()
	}
	return time.Time{}
}
