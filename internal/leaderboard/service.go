package leaderboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/benbjohnson/clock"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gor-arcade/internal/core"
	"github.com/vovakirdan/gor-arcade/internal/logging"
)

// Submission results used as metric labels.
const (
	resultRecorded  = "recorded"
	resultNotBeaten = "not_beaten"
	resultRejected  = "rejected"
)

// NotBeatenMessage is returned when a submission does not improve on the
// player's stored best.
const NotBeatenMessage = "You couldn't beat your previous score, better luck next time!"

// Option customizes a Service.
type Option func(*Service)

// WithClock sets the clock used for entry timestamps.
func WithClock(c clock.Clock) Option {
	return func(s *Service) { s.clock = c }
}

// WithLogger sets the service logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithMetrics enables Prometheus counters.
func WithMetrics(m *Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// Service validates, stores and ranks finished games.
type Service struct {
	repo    Repository
	catalog Catalog
	clock   clock.Clock
	logger  *log.Logger
	metrics *Metrics
}

// NewService returns a Service over repo. Games missing from catalog are
// rejected with ErrUnknownGame.
func NewService(repo Repository, catalog Catalog, opts ...Option) *Service {
	s := &Service{
		repo:    repo,
		catalog: catalog,
		clock:   clock.New(),
		logger:  logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog returns the games the service accepts.
func (s *Service) Catalog() Catalog { return s.catalog }

// Submit records sub if it beats the player's stored best, then ranks the
// player's entry among the top RankWindow.
func (s *Service) Submit(ctx context.Context, sub Submission) (Outcome, error) {
	order, err := s.validate(sub)
	if err != nil {
		s.metrics.submitted(sub.Game, resultRejected, sub.Metric)
		return Outcome{}, err
	}

	existing, found, err := s.repo.Best(ctx, sub.Game, sub.Player)
	if err != nil {
		return Outcome{}, fmt.Errorf("leaderboard: load best: %w", err)
	}

	out := Outcome{Entry: existing}
	if !found || order.Better(sub.Metric, existing.Metric) {
		now := s.clock.Now()
		e := Entry{
			Game:      sub.Game,
			Player:    sub.Player,
			Wallet:    sub.Wallet,
			Metric:    sub.Metric,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if found {
			e.ID = existing.ID
			e.CreatedAt = existing.CreatedAt
			if e.Wallet == "" {
				e.Wallet = existing.Wallet
			}
		}
		if out.Entry, err = s.repo.Save(ctx, e); err != nil {
			return Outcome{}, fmt.Errorf("leaderboard: save: %w", err)
		}
		out.Improved = true
	}

	if out.Rank, err = s.Rank(ctx, sub.Game, sub.Player); err != nil {
		return Outcome{}, err
	}

	result := resultRecorded
	if out.Improved {
		out.Message = rankMessage(sub.Game, order, out.Rank, sub.Metric)
	} else {
		out.Message = NotBeatenMessage
		result = resultNotBeaten
	}
	s.metrics.submitted(sub.Game, result, sub.Metric)
	s.logger.Info("score submitted",
		"game", sub.Game,
		"player", sub.Player,
		"metric", sub.Metric,
		"rank", out.Rank,
		"improved", out.Improved,
	)
	return out, nil
}

func (s *Service) validate(sub Submission) (core.Order, error) {
	order, ok := s.catalog.Order(sub.Game)
	if !ok {
		return 0, fmt.Errorf("%w %q", ErrUnknownGame, sub.Game)
	}
	switch {
	case strings.TrimSpace(sub.Player) == "":
		return 0, fmt.Errorf("%w: player name is required", ErrInvalidScore)
	case sub.Metric < 0:
		return 0, fmt.Errorf("%w: score cannot be negative", ErrInvalidScore)
	case order == core.HigherIsBetter && sub.Metric == 0:
		return 0, fmt.Errorf("%w: zero scores are not recorded", ErrInvalidScore)
	case order == core.LowerIsBetter && sub.Metric < 1:
		return 0, fmt.Errorf("%w: time must be at least 1 second", ErrInvalidScore)
	}
	return order, nil
}

// Top returns the best limit entries for game.
func (s *Service) Top(ctx context.Context, game string, limit int) ([]Entry, error) {
	order, ok := s.catalog.Order(game)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, game)
	}
	entries, err := s.repo.Top(ctx, game, order, limit)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: top: %w", err)
	}
	return entries, nil
}

// Rank returns the 1-based position of player within the top RankWindow
// entries of game, or 0 when the player is not among them.
func (s *Service) Rank(ctx context.Context, game, player string) (int, error) {
	top, err := s.Top(ctx, game, RankWindow)
	if err != nil {
		return 0, err
	}
	for i, e := range top {
		if e.Player == player {
			return i + 1, nil
		}
	}
	return 0, nil
}

// Reporter returns a core.Reporter that submits engine results under
// wallet. Lost rounds and unrankable scores are counted but not submitted.
func (s *Service) Reporter(ctx context.Context, wallet string) core.Reporter {
	return core.ReporterFunc(func(r core.Result) {
		s.metrics.gameFinished(r.Game, string(r.Outcome))
		if r.Outcome == core.OutcomeLost {
			return
		}
		out, err := s.Submit(ctx, Submission{
			Game:   r.Game,
			Player: r.PlayerLabel,
			Wallet: wallet,
			Metric: r.Metric,
		})
		if err != nil {
			s.logger.Debug("result not submitted", "game", r.Game, "player", r.PlayerLabel, "error", err)
			return
		}
		s.logger.Debug(out.Message, "game", r.Game, "rank", out.Rank)
	})
}

func rankMessage(game string, order core.Order, rank, metric int) string {
	value := fmt.Sprintf("%d points", metric)
	if order == core.LowerIsBetter {
		value = fmt.Sprintf("a time of %ds", metric)
	}
	switch {
	case rank == 1:
		return fmt.Sprintf("New %s champion! You're #1 with %s!", game, value)
	case rank >= 2 && rank <= 3:
		return fmt.Sprintf("Great job! You're #%d on the %s leaderboard with %s!", rank, game, value)
	case rank >= 4 && rank <= 10:
		return fmt.Sprintf("Nice! You made it to the top 10 (#%d) with %s", rank, value)
	case rank > 10:
		return fmt.Sprintf("Score recorded! %s (Rank #%d)", value, rank)
	default:
		return fmt.Sprintf("Score recorded! %s", value)
	}
}
