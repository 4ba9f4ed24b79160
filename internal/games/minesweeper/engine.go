// Package minesweeper implements Minesweeper with lazily placed mines, an
// iterative flood fill and a clock-driven timer.
package minesweeper

import (
	"time"

	"github.com/benbjohnson/clock"

	"github.com/vovakirdan/gor-arcade/internal/config"
	"github.com/vovakirdan/gor-arcade/internal/core"
)

// GameID is the registry and leaderboard identifier.
const GameID = "minesweeper"

// Status is the engine lifecycle state.
type Status int

const (
	StatusWaiting Status = iota
	StatusReady
	StatusPlaying
	StatusWon
	StatusLost
)

func (s Status) String() string {
	switch s {
	case StatusWaiting:
		return "waiting"
	case StatusReady:
		return "ready"
	case StatusPlaying:
		return "playing"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether the round has ended.
func (s Status) Terminal() bool {
	return s == StatusWon || s == StatusLost
}

// Cell is one square of the grid.
type Cell struct {
	IsMine        bool
	IsRevealed    bool
	IsFlagged     bool
	AdjacentMines int
}

// Option customizes an Engine.
type Option func(*Engine)

// WithReporter sets the receiver of the final result.
func WithReporter(r core.Reporter) Option {
	return func(e *Engine) { e.reporter = r }
}

// WithPlayer sets the label attached to reported results.
func WithPlayer(label string) Option {
	return func(e *Engine) { e.player = label }
}

// WithClock replaces the wall clock, typically with clock.NewMock in tests.
func WithClock(c clock.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// Engine is the Minesweeper state machine. It is not safe for concurrent use.
type Engine struct {
	cfg      config.MinesweeperConfig
	rng      core.RandomSource
	clock    clock.Clock
	reporter core.Reporter
	player   string

	cells    [][]Cell // [row][col]
	status   Status
	placed   bool
	flagged  int
	revealed int
	started  time.Time
	ended    time.Time
}

// New validates cfg and returns a waiting engine with an empty grid.
func New(cfg config.MinesweeperConfig, rng core.RandomSource, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:      cfg,
		rng:      rng,
		clock:    clock.New(),
		reporter: core.Discard,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.reset()
	return e, nil
}

func (e *Engine) reset() {
	e.cells = make([][]Cell, e.cfg.Board.Height)
	for r := range e.cells {
		e.cells[r] = make([]Cell, e.cfg.Board.Width)
	}
	e.placed = false
	e.flagged = 0
	e.revealed = 0
	e.started = time.Time{}
	e.ended = time.Time{}
	e.status = StatusWaiting
}

// Ready marks a waiting engine as ready to start.
func (e *Engine) Ready() {
	if e.status == StatusWaiting {
		e.status = StatusReady
	}
}

// Start lays out an empty grid and starts the timer. Mines are placed by
// the first reveal. It is ignored while a round is in progress.
func (e *Engine) Start() {
	if e.status == StatusPlaying {
		return
	}
	e.reset()
	e.status = StatusPlaying
	e.started = e.clock.Now()
}

func (e *Engine) inBounds(row, col int) bool {
	return core.Point{X: col, Y: row}.In(e.cfg.Board.Width, e.cfg.Board.Height)
}

// placeMines scatters the configured number of mines by rejection sampling,
// keeping the clicked cell and its neighbours clear, then counts neighbours.
func (e *Engine) placeMines(row, col int) {
	safe := core.Point{X: col, Y: row}
	for n := 0; n < e.cfg.Mines; {
		p := core.Point{
			X: core.Intn(e.rng, e.cfg.Board.Width),
			Y: core.Intn(e.rng, e.cfg.Board.Height),
		}
		if core.Chebyshev(p, safe) <= 1 || e.cells[p.Y][p.X].IsMine {
			continue
		}
		e.cells[p.Y][p.X].IsMine = true
		n++
	}

	for r := range e.cells {
		for c := range e.cells[r] {
			if !e.cells[r][c].IsMine {
				e.cells[r][c].AdjacentMines = e.countAdjacent(r, c)
			}
		}
	}
	e.placed = true
}

func (e *Engine) countAdjacent(row, col int) int {
	n := 0
	e.neighbours(row, col, func(r, c int) {
		if e.cells[r][c].IsMine {
			n++
		}
	})
	return n
}

func (e *Engine) neighbours(row, col int, fn func(r, c int)) {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if (dr != 0 || dc != 0) && e.inBounds(row+dr, col+dc) {
				fn(row+dr, col+dc)
			}
		}
	}
}

// Reveal opens the cell at (row, col). A mine ends the round; an empty cell
// opens its whole zero region and the numbers bordering it.
func (e *Engine) Reveal(row, col int) {
	if e.status != StatusPlaying || !e.inBounds(row, col) {
		return
	}
	if cell := e.cells[row][col]; cell.IsRevealed || cell.IsFlagged {
		return
	}
	if !e.placed {
		e.placeMines(row, col)
	}

	if e.cells[row][col].IsMine {
		for r := range e.cells {
			for c := range e.cells[r] {
				if e.cells[r][c].IsMine {
					e.cells[r][c].IsRevealed = true
				}
			}
		}
		e.finish(StatusLost)
		return
	}

	e.flood(row, col)
	if e.revealed == e.cfg.Board.Cells()-e.cfg.Mines {
		e.finish(StatusWon)
	}
}

// flood reveals from (row, col) with an explicit stack. Flagged cells stop
// the fill and keep their flag.
func (e *Engine) flood(row, col int) {
	stack := []core.Point{{X: col, Y: row}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		cell := &e.cells[p.Y][p.X]
		if cell.IsRevealed || cell.IsFlagged || cell.IsMine {
			continue
		}
		cell.IsRevealed = true
		e.revealed++
		if cell.AdjacentMines != 0 {
			continue
		}
		e.neighbours(p.Y, p.X, func(r, c int) {
			if !e.cells[r][c].IsRevealed {
				stack = append(stack, core.Point{X: c, Y: r})
			}
		})
	}
}

// ToggleFlag flips the flag on an unrevealed cell.
func (e *Engine) ToggleFlag(row, col int) {
	if e.status != StatusPlaying || !e.inBounds(row, col) {
		return
	}
	cell := &e.cells[row][col]
	if cell.IsRevealed {
		return
	}
	cell.IsFlagged = !cell.IsFlagged
	if cell.IsFlagged {
		e.flagged++
	} else {
		e.flagged--
	}
}

func (e *Engine) finish(status Status) {
	e.status = status
	e.ended = e.clock.Now()

	res := core.Result{
		Game:        GameID,
		PlayerLabel: e.player,
		Metric:      e.ElapsedSeconds(),
		Order:       core.LowerIsBetter,
		Outcome:     core.OutcomeWon,
	}
	if status == StatusLost {
		res.Outcome = core.OutcomeLost
	}
	e.reporter.Report(res)
}

// ElapsedSeconds returns whole seconds since Start, frozen once the round ends.
func (e *Engine) ElapsedSeconds() int {
	switch {
	case e.started.IsZero():
		return 0
	case !e.ended.IsZero():
		return int(e.ended.Sub(e.started) / time.Second)
	default:
		return int(e.clock.Since(e.started) / time.Second)
	}
}

// MinesRemaining is the mine count minus the number of flags. Over-flagging
// makes it negative.
func (e *Engine) MinesRemaining() int { return e.cfg.Mines - e.flagged }

// Cell returns the cell at (row, col) and whether it exists.
func (e *Engine) Cell(row, col int) (Cell, bool) {
	if !e.inBounds(row, col) {
		return Cell{}, false
	}
	return e.cells[row][col], true
}

// Status returns the lifecycle state.
func (e *Engine) Status() Status { return e.status }

// Board returns the grid dimensions.
func (e *Engine) Board() config.BoardConfig { return e.cfg.Board }

// Mines returns the configured mine count.
func (e *Engine) Mines() int { return e.cfg.Mines }

// MinesPlaced reports whether the first reveal has laid the mines.
func (e *Engine) MinesPlaced() bool { return e.placed }
