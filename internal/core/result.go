package core

import "errors"

// ErrInvalidConfig is wrapped by every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid game configuration")

// Order tells a leaderboard which direction of a metric wins.
type Order int

const (
	HigherIsBetter Order = iota // point totals
	LowerIsBetter               // elapsed seconds
)

func (o Order) String() string {
	if o == LowerIsBetter {
		return "asc"
	}
	return "desc"
}

// Better reports whether metric a beats metric b under this order.
// Equal metrics never beat each other.
func (o Order) Better(a, b int) bool {
	if o == LowerIsBetter {
		return a < b
	}
	return a > b
}

// Outcome is the terminal status that produced a result.
type Outcome string

const (
	OutcomeGameOver Outcome = "game_over"
	OutcomeWon      Outcome = "won"
	OutcomeLost     Outcome = "lost"
)

// Result is emitted once when a game reaches a terminal status.
type Result struct {
	Game        string
	PlayerLabel string
	Metric      int
	Order       Order
	Outcome     Outcome
}

// Reporter receives terminal results. Implementations must not block the
// caller for long; the game loop invokes Report synchronously.
type Reporter interface {
	Report(Result)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(Result)

// Report calls f(r).
func (f ReporterFunc) Report(r Result) {
	f(r)
}

// Discard is a Reporter that drops every result.
var Discard Reporter = ReporterFunc(func(Result) {})
