package tui

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gor-arcade/internal/core"
	"github.com/vovakirdan/gor-arcade/internal/leaderboard"
	"github.com/vovakirdan/gor-arcade/internal/logging"
	"github.com/vovakirdan/gor-arcade/internal/tournament"
)

// Services are the backends an arcade session talks to. Nil fields turn
// the matching feature off: no score submission, no tournament line.
type Services struct {
	Scores      *leaderboard.Service
	Tournaments *tournament.Service
	Logger      *log.Logger
}

func (s Services) reporter(ctx context.Context) core.Reporter {
	if s.Scores == nil {
		return core.Discard
	}
	return s.Scores.Reporter(ctx, "")
}

func (s Services) logger() *log.Logger {
	if s.Logger == nil {
		return logging.Discard()
	}
	return s.Logger
}
