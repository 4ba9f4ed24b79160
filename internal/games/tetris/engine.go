// Package tetris implements Tetris: piece placement, rotation, line clears,
// scoring and level speed, plus the registry adapter used by the platform.
package tetris

import (
	"time"

	"github.com/vovakirdan/gor-arcade/internal/config"
	"github.com/vovakirdan/gor-arcade/internal/core"
)

// GameID is the registry and leaderboard identifier.
const GameID = "tetris"

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

// Engine is the Tetris state machine. It is not safe for concurrent use.
type Engine struct {
	cfg      config.TetrisConfig
	catalog  []Piece
	rng      core.RandomSource
	reporter core.Reporter
	player   string

	board   Board
	current Piece
	next    Piece
	status  Status
	score   int
	level   int
	lines   int
	landed  int
	acc     time.Duration
}

// New validates cfg and returns a waiting engine with an empty board.
func New(cfg config.TetrisConfig, rng core.RandomSource, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	catalog := make([]Piece, len(cfg.Pieces))
	for i, p := range cfg.Pieces {
		color, _ := core.ParseColor(p.Color) // checked by Validate
		catalog[i] = Piece{Kind: p.Kind, Shape: copyShape(p.Shape), Color: color}
	}

	e := &Engine{
		cfg:      cfg,
		catalog:  catalog,
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
	e.board = NewBoard(e.cfg.Board.Width, e.cfg.Board.Height)
	e.current = Piece{}
	e.next = Piece{}
	e.score = 0
	e.lines = 0
	e.level = 1
	e.landed = 0
	e.acc = 0
	e.status = StatusWaiting
}

// Ready marks a waiting engine as ready to start.
func (e *Engine) Ready() {
	if e.status == StatusWaiting {
		e.status = StatusReady
	}
}

// Start clears the board and spawns the first two pieces.
// It is ignored while a round is in progress.
func (e *Engine) Start() {
	if e.status == StatusPlaying || e.status == StatusPaused {
		return
	}
	e.reset()
	e.current = e.randomPiece()
	e.next = e.randomPiece()
	e.status = StatusPlaying
}

// randomPiece picks a piece uniformly and centers it on the top row.
func (e *Engine) randomPiece() Piece {
	p := e.catalog[core.Intn(e.rng, len(e.catalog))]
	p.Shape = copyShape(p.Shape)
	p.Position = core.Point{X: e.cfg.Board.Width/2 - len(p.Shape[0])/2, Y: 0}
	return p
}

// MoveLeft shifts the falling piece one column left if it fits.
func (e *Engine) MoveLeft() bool {
	return e.shift(core.Left)
}

// MoveRight shifts the falling piece one column right if it fits.
func (e *Engine) MoveRight() bool {
	return e.shift(core.Right)
}

func (e *Engine) shift(offset core.Point) bool {
	if e.status != StatusPlaying || !CanPlace(e.current, e.board, offset) {
		return false
	}
	e.current = e.current.Moved(offset)
	return true
}

// Rotate turns the falling piece clockwise if the result fits where it is.
// No wall kicks are attempted.
func (e *Engine) Rotate() bool {
	if e.status != StatusPlaying {
		return false
	}
	rotated := e.current.Rotated()
	if !CanPlace(rotated, e.board, core.Point{}) {
		return false
	}
	e.current = rotated
	return true
}

// SoftDrop moves the piece down one row, landing it when it cannot move.
// It reports whether the piece moved.
func (e *Engine) SoftDrop() bool {
	if e.status != StatusPlaying {
		return false
	}
	if CanPlace(e.current, e.board, core.Down) {
		e.current = e.current.Moved(core.Down)
		return true
	}
	e.land()
	return false
}

// Tick applies one step of gravity.
func (e *Engine) Tick() {
	e.SoftDrop()
}

// HardDrop drops the piece straight down and lands it.
// It returns the number of rows the piece fell.
func (e *Engine) HardDrop() int {
	rows := 0
	for e.SoftDrop() {
		rows++
	}
	return rows
}

// Advance feeds elapsed time into the engine and applies gravity for every
// interval that has passed. The interval shrinks as the level rises.
func (e *Engine) Advance(dt time.Duration) {
	if e.status != StatusPlaying {
		return
	}
	e.acc += dt
	for e.status == StatusPlaying && e.acc >= e.TickInterval() {
		e.acc -= e.TickInterval()
		e.Tick()
	}
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

// land settles the current piece, clears lines, updates score and level and
// brings in the next piece. The game ends if that piece does not fit.
func (e *Engine) land() {
	Stamp(e.current, e.board)
	e.landed++

	cleared := ClearLines(e.board)
	e.score += e.cfg.LineScores[cleared] * (e.level + 1)
	e.lines += cleared
	e.level = e.lines/e.cfg.Speed.LinesPerLevel + 1

	e.current = e.next
	e.next = e.randomPiece()

	if !CanPlace(e.current, e.board, core.Point{}) {
		e.status = StatusGameOver
		e.reporter.Report(core.Result{
			Game:        GameID,
			PlayerLabel: e.player,
			Metric:      e.score,
			Order:       core.HigherIsBetter,
			Outcome:     core.OutcomeGameOver,
		})
	}
}

// TickInterval returns the gravity interval for the current level.
func (e *Engine) TickInterval() time.Duration {
	s := e.cfg.Speed
	ms := core.Max(s.MinMS, s.BaseMS-(e.level-1)*s.StepMS)
	return time.Duration(ms) * time.Millisecond
}

// Board returns a copy of the settled cells.
func (e *Engine) Board() Board { return e.board.Clone() }

// Current returns the falling piece.
func (e *Engine) Current() Piece { return e.current }

// Next returns the preview piece.
func (e *Engine) Next() Piece { return e.next }

// Status returns the lifecycle state.
func (e *Engine) Status() Status { return e.status }

// Score returns the current score.
func (e *Engine) Score() int { return e.score }

// Level returns the current level, starting at 1.
func (e *Engine) Level() int { return e.level }

// Lines returns the total number of cleared lines.
func (e *Engine) Lines() int { return e.lines }
