package tournament

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/vovakirdan/gor-arcade/internal/logging"
)

// Option customizes a Service.
type Option func(*Service)

// WithClock sets the clock that decides when tournaments end.
func WithClock(c clock.Clock) Option {
	return func(s *Service) { s.clock = c }
}

// WithLogger sets the service logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithRegisterer counts entries on reg as arcade_tournament_entries_total.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(s *Service) {
		s.entries = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "arcade",
			Name:      "tournament_entries_total",
			Help:      "Paid tournament entries.",
		}, []string{"game"})
		reg.MustRegister(s.entries)
	}
}

// Service rotates tournaments and collects entry fees.
type Service struct {
	repo    Repository
	fees    Fees
	clock   clock.Clock
	logger  *log.Logger
	entries *prometheus.CounterVec
}

// NewService returns a Service using fees for new tournaments.
func NewService(repo Repository, fees Fees, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		fees:   fees,
		clock:  clock.New(),
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the service clock's time.
func (s *Service) Now() time.Time { return s.clock.Now() }

// Current returns the running tournament for game. A missing one is
// created; an expired one is closed and replaced by a fresh tournament
// with the same entry fee and an empty pool.
func (s *Service) Current(ctx context.Context, game string) (Tournament, error) {
	fee, ok := s.fees[game]
	if !ok {
		return Tournament{}, fmt.Errorf("%w: no fee schedule for %q", ErrNotFound, game)
	}

	t, found, err := s.repo.ActiveTournament(ctx, game)
	if err != nil {
		return Tournament{}, fmt.Errorf("tournament: load %s: %w", game, err)
	}
	if found && !t.Ended(s.clock.Now()) {
		return t, nil
	}
	if found {
		if err := s.repo.EndTournament(ctx, t.ID); err != nil {
			return Tournament{}, fmt.Errorf("tournament: end %s: %w", t.ID, err)
		}
		s.logger.Info("tournament ended", "game", game, "id", t.ID, "pool", t.PrizePool.String())
		fee = t.EntryFee
	}
	return s.start(ctx, game, fee)
}

func (s *Service) start(ctx context.Context, game string, fee decimal.Decimal) (Tournament, error) {
	now := s.clock.Now()
	t := Tournament{
		ID:        uuid.NewString(),
		Game:      game,
		EntryFee:  fee,
		PrizePool: decimal.Zero,
		StartsAt:  now,
		EndsAt:    now.Add(Duration),
	}
	err := s.repo.CreateTournament(ctx, t)
	if errors.Is(err, ErrActiveExists) {
		// another request started it first
		running, found, lerr := s.repo.ActiveTournament(ctx, game)
		if lerr != nil {
			return Tournament{}, fmt.Errorf("tournament: load %s: %w", game, lerr)
		}
		if found {
			return running, nil
		}
	}
	if err != nil {
		return Tournament{}, fmt.Errorf("tournament: create %s: %w", game, err)
	}
	s.logger.Info("tournament started", "game", game, "id", t.ID, "ends", t.EndsAt)
	return t, nil
}

// Enter adds the current tournament's entry fee to its pool on behalf of
// wallet. Payment verification happens outside the arcade.
func (s *Service) Enter(ctx context.Context, game, wallet string) (Tournament, error) {
	if wallet == "" {
		return Tournament{}, ErrWalletRequired
	}
	t, err := s.Current(ctx, game)
	if err != nil {
		return Tournament{}, err
	}
	t, err = s.repo.AddEntry(ctx, t.ID, t.EntryFee)
	if err != nil {
		return Tournament{}, fmt.Errorf("tournament: add entry: %w", err)
	}
	if s.entries != nil {
		s.entries.WithLabelValues(game).Inc()
	}
	s.logger.Info("tournament entry", "game", game, "wallet", wallet, "pool", t.PrizePool.String())
	return t, nil
}

// Reset closes the running tournament of game and starts a new one with
// the scheduled fee.
func (s *Service) Reset(ctx context.Context, game string) (Tournament, error) {
	fee, ok := s.fees[game]
	if !ok {
		return Tournament{}, fmt.Errorf("%w: no fee schedule for %q", ErrNotFound, game)
	}
	t, found, err := s.repo.ActiveTournament(ctx, game)
	if err != nil {
		return Tournament{}, fmt.Errorf("tournament: load %s: %w", game, err)
	}
	if found {
		if err := s.repo.EndTournament(ctx, t.ID); err != nil {
			return Tournament{}, fmt.Errorf("tournament: end %s: %w", t.ID, err)
		}
	}
	return s.start(ctx, game, fee)
}
