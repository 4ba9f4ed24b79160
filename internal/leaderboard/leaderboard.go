// Package leaderboard keeps one best result per player and game, ranks it
// against the field and phrases the outcome for the player.
package leaderboard

import (
	"context"
	"errors"
	"time"

	"github.com/vovakirdan/gor-arcade/internal/core"
)

var (
	// ErrInvalidScore rejects submissions that cannot be ranked.
	ErrInvalidScore = errors.New("leaderboard: invalid score")
	// ErrUnknownGame rejects submissions for games missing from the Catalog.
	ErrUnknownGame = errors.New("leaderboard: unknown game")
)

// RankWindow is how many entries are considered when computing a rank.
const RankWindow = 100

// Entry is a player's best result for one game.
type Entry struct {
	ID        int64     `json:"id"`
	Game      string    `json:"game"`
	Player    string    `json:"playerName"`
	Wallet    string    `json:"walletAddress,omitempty"`
	Metric    int       `json:"score"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"timestamp"`
}

// Repository persists entries. Save inserts the player's row or replaces
// the existing one for the same game and player.
type Repository interface {
	Best(ctx context.Context, game, player string) (Entry, bool, error)
	Save(ctx context.Context, e Entry) (Entry, error)
	Top(ctx context.Context, game string, order core.Order, limit int) ([]Entry, error)
}

// Catalog maps game ids to their ranking order.
type Catalog map[string]core.Order

// DefaultCatalog lists the bundled games.
func DefaultCatalog() Catalog {
	return Catalog{
		"minesweeper": core.LowerIsBetter,
		"snake":       core.HigherIsBetter,
		"tetris":      core.HigherIsBetter,
	}
}

// Order returns the ranking order of game.
func (c Catalog) Order(game string) (core.Order, bool) {
	o, ok := c[game]
	return o, ok
}

// Submission is a finished game to be ranked.
type Submission struct {
	Game   string
	Player string
	Wallet string
	Metric int
}

// Outcome is the result of a submission.
type Outcome struct {
	Entry    Entry  `json:"entry"`
	Rank     int    `json:"rank"` // 0 when outside RankWindow
	Message  string `json:"message"`
	Improved bool   `json:"improved"`
}
