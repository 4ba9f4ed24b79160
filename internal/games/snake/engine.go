// Package snake implements the Snake game: a deterministic engine advanced by
// ticks and direction changes, plus the registry adapter used by the platform.
package snake

import (
	"time"

	"github.com/vovakirdan/gor-arcade/internal/config"
	"github.com/vovakirdan/gor-arcade/internal/core"
)

// GameID is the registry and leaderboard identifier.
const GameID = "snake"

// Status is the engine lifecycle state.
type Status int

const (
	StatusWaiting Status = iota
	StatusReady
	StatusPlaying
	StatusPaused
	StatusGameOver
)

func (s Status) String() string {
	switch s {
	case StatusWaiting:
		return "waiting"
	case StatusReady:
		return "ready"
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	case StatusGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Option customizes an Engine.
type Option func(*Engine)

// WithReporter sets the receiver of the final score.
func WithReporter(r core.Reporter) Option {
	return func(e *Engine) { e.reporter = r }
}

// WithPlayer sets the label attached to reported results.
func WithPlayer(label string) Option {
	return func(e *Engine) { e.player = label }
}

// Engine is the Snake state machine. It is not safe for concurrent use;
// the owner serializes Tick, Advance and input calls.
type Engine struct {
	cfg      config.SnakeConfig
	rng      core.RandomSource
	reporter core.Reporter
	player   string

	body    []core.Point // head first
	food    core.Point
	dir     core.Point // direction used by the last move
	pending core.Point // direction for the next move
	status  Status
	score   int
	moves   int
	acc     time.Duration
}

// New validates cfg and returns an engine in the waiting state with the
// configured initial body, direction and food.
func New(cfg config.SnakeConfig, rng core.RandomSource, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:      cfg,
		rng:      rng,
		reporter: core.Discard,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.reset()
	return e, nil
}

func (e *Engine) reset() {
	e.body = append([]core.Point(nil), e.cfg.InitialBody...)
	e.dir = e.cfg.InitialDirection
	e.pending = e.dir
	e.food = e.cfg.InitialFood
	e.score = 0
	e.moves = 0
	e.acc = 0
	e.status = StatusWaiting
}

// Ready marks a waiting engine as ready to start.
func (e *Engine) Ready() {
	if e.status == StatusWaiting {
		e.status = StatusReady
	}
}

// Start begins a new round from the configured initial body, direction and
// food. It is ignored while a round is in progress.
func (e *Engine) Start() {
	if e.status == StatusPlaying || e.status == StatusPaused {
		return
	}
	e.reset()
	e.status = StatusPlaying
}

// Tick moves the snake one cell. It does nothing unless the game is playing.
func (e *Engine) Tick() {
	if e.status != StatusPlaying {
		return
	}
	e.dir = e.pending
	head := e.body[0].Add(e.dir)

	if !head.In(e.cfg.Board.Width, e.cfg.Board.Height) || e.occupies(head) {
		e.finish()
		return
	}

	e.body = append(e.body, core.Point{})
	copy(e.body[1:], e.body)
	e.body[0] = head
	e.moves++

	if head == e.food {
		e.score += e.cfg.FoodScore
		if !e.placeFood() {
			// the snake covers the whole board
			e.finish()
		}
		return
	}
	e.body = e.body[:len(e.body)-1]
}

// Advance feeds elapsed time into the engine and runs every tick that is due.
func (e *Engine) Advance(dt time.Duration) {
	if e.status != StatusPlaying {
		return
	}
	e.acc += dt
	interval := e.cfg.TickInterval()
	for e.acc >= interval && e.status == StatusPlaying {
		e.acc -= interval
		e.Tick()
	}
}

// ChangeDirection queues a new heading for the next tick. Only perpendicular
// turns relative to the last applied move are accepted, so two quick key
// presses can never reverse the snake into itself.
func (e *Engine) ChangeDirection(d core.Point) bool {
	if e.status != StatusPlaying || !d.IsUnit() {
		return false
	}
	if d.Horizontal() == e.dir.Horizontal() {
		return false
	}
	e.pending = d
	return true
}

// TogglePause switches between playing and paused.
func (e *Engine) TogglePause() {
	switch e.status {
	case StatusPlaying:
		e.status = StatusPaused
	case StatusPaused:
		e.status = StatusPlaying
	}
}

func (e *Engine) finish() {
	e.status = StatusGameOver
	e.reporter.Report(core.Result{
		Game:        GameID,
		PlayerLabel: e.player,
		Metric:      e.score,
		Order:       core.HigherIsBetter,
		Outcome:     core.OutcomeGameOver,
	})
}

func (e *Engine) occupies(p core.Point) bool {
	for _, seg := range e.body {
		if seg == p {
			return true
		}
	}
	return false
}

// placeFood draws random cells until one is free of the body.
// It reports false when no free cell exists.
func (e *Engine) placeFood() bool {
	w, h := e.cfg.Board.Width, e.cfg.Board.Height
	if len(e.body) >= w*h {
		return false
	}
	for {
		p := core.Point{X: core.Intn(e.rng, w), Y: core.Intn(e.rng, h)}
		if !e.occupies(p) {
			e.food = p
			return true
		}
	}
}

// Body returns a copy of the snake, head first.
func (e *Engine) Body() []core.Point {
	return append([]core.Point(nil), e.body...)
}

// Head returns the head cell.
func (e *Engine) Head() core.Point { return e.body[0] }

// Food returns the food cell.
func (e *Engine) Food() core.Point { return e.food }

// Direction returns the direction of the last move.
func (e *Engine) Direction() core.Point { return e.dir }

// Status returns the lifecycle state.
func (e *Engine) Status() Status { return e.status }

// Score returns the current score.
func (e *Engine) Score() int { return e.score }

// Board returns the board size.
func (e *Engine) Board() config.BoardConfig { return e.cfg.Board }
