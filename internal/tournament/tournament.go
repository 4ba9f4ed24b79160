// Package tournament runs one rolling, fixed-length tournament per game and
// tracks its entry fee, prize pool and participants.
package tournament

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned for games without a fee schedule.
	ErrNotFound = errors.New("tournament: not found")
	// ErrWalletRequired rejects entries without a paying wallet.
	ErrWalletRequired = errors.New("tournament: wallet is required")
	// ErrActiveExists is returned by Repository.CreateTournament when the
	// game already has an active tournament.
	ErrActiveExists = errors.New("tournament: game already has an active tournament")
)

// Duration is how long a tournament runs.
const Duration = 3 * 24 * time.Hour

// Currency is the unit fees and pools are quoted in.
const Currency = "GOR"

// WinnerShare is the part of the pool paid out to the winner.
var WinnerShare = decimal.RequireFromString("0.9")

// Tournament is a timed competition for one game.
type Tournament struct {
	ID           string          `json:"id"`
	Game         string          `json:"game"`
	EntryFee     decimal.Decimal `json:"entryFee"`
	PrizePool    decimal.Decimal `json:"prizePool"`
	Participants int             `json:"participants"`
	StartsAt     time.Time       `json:"startDate"`
	EndsAt       time.Time       `json:"endDate"`
}

// Ended reports whether the tournament is over at now.
func (t Tournament) Ended(now time.Time) bool {
	return !now.Before(t.EndsAt)
}

// Payout is the winner's share of the prize pool.
func (t Tournament) Payout() decimal.Decimal {
	return t.PrizePool.Mul(WinnerShare).Round(9)
}

// Repository persists tournaments. Active returns the running tournament
// of a game; AddEntry adds amount to the pool and counts one participant.
type Repository interface {
	ActiveTournament(ctx context.Context, game string) (Tournament, bool, error)
	CreateTournament(ctx context.Context, t Tournament) error
	EndTournament(ctx context.Context, id string) error
	AddEntry(ctx context.Context, id string, amount decimal.Decimal) (Tournament, error)
}

// Fees maps game ids to entry fees.
type Fees map[string]decimal.Decimal

// DefaultFees returns the bundled fee schedule.
func DefaultFees() Fees {
	return Fees{
		"minesweeper": decimal.RequireFromString("0.01"),
		"snake":       decimal.RequireFromString("0.008"),
		"tetris":      decimal.RequireFromString("0.015"),
	}
}

// Status describes the time left at now, e.g. "2d 23h 59m left".
func Status(t Tournament, now time.Time) string {
	left := t.EndsAt.Sub(now)
	if left <= 0 {
		return "Tournament ended"
	}
	days := int(left / (24 * time.Hour))
	hours := int(left % (24 * time.Hour) / time.Hour)
	minutes := int(left % time.Hour / time.Minute)

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm left", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh %dm left", hours, minutes)
	default:
		return fmt.Sprintf("%dm left", minutes)
	}
}
