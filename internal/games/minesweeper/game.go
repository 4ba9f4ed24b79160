package minesweeper

import (
	"fmt"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/vovakirdan/gor-arcade/internal/config"
	"github.com/vovakirdan/gor-arcade/internal/core"
	"github.com/vovakirdan/gor-arcade/internal/registry"
)

// Package-level settings applied by the next Reset, set from CLI flags.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
)

// SetConfigPath sets a custom YAML config path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset selects one of the classic boards.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	difficultyPreset = preset
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return NewGame()
	})
}

// Game adapts the engine to the platform loop with a keyboard cursor.
type Game struct {
	engine  *Engine
	clock   clock.Clock
	config  core.RuntimeConfig
	cursor  core.Point // X = column, Y = row
	result  *core.Result
	loadErr error
}

// NewGame creates an unstarted Minesweeper game using the wall clock.
func NewGame() *Game {
	return &Game{clock: clock.New()}
}

// NewGameWithClock creates a game whose timer reads from c.
func NewGameWithClock(c clock.Clock) *Game {
	return &Game{clock: c}
}

// ID returns the game identifier.
func (g *Game) ID() string { return GameID }

// Title returns the display name.
func (g *Game) Title() string { return "Minesweeper" }

// Reset loads the configuration and starts a new round with the cursor
// in the middle of the board.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.config = cfg
	g.result = nil
	g.loadErr = nil

	msCfg, err := config.LoadMinesweeper(configPath)
	if err != nil {
		g.loadErr = err
		msCfg = config.DefaultMinesweeperConfig()
	}
	preset := difficultyPreset
	if p, err := config.ParsePreset(cfg.Difficulty); err == nil && p != config.DifficultyDefault {
		preset = p
	}
	config.ApplyMinesweeperPreset(&msCfg, preset)

	rng := core.NewRandom(cfg.Seed)
	opts := []Option{
		WithClock(g.clock),
		WithPlayer(cfg.Player),
		WithReporter(core.ReporterFunc(func(r core.Result) { g.result = &r })),
	}
	engine, err := New(msCfg, rng, opts...)
	if err != nil {
		g.loadErr = err
		engine, _ = New(config.DefaultMinesweeperConfig(), rng, opts...)
	}
	g.engine = engine
	g.engine.Start()

	b := g.engine.Board()
	g.cursor = core.Point{X: b.Width / 2, Y: b.Height / 2}
}

// Step moves the cursor and applies reveal or flag actions.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) && g.engine.Status().Terminal() {
		cfg := g.config
		cfg.Seed = time.Now().UnixNano()
		g.Reset(cfg)
		return core.StepResult{State: g.State()}
	}

	b := g.engine.Board()
	switch {
	case in.Has(core.ActionUp):
		g.cursor.Y--
	case in.Has(core.ActionDown):
		g.cursor.Y++
	case in.Has(core.ActionLeft):
		g.cursor.X--
	case in.Has(core.ActionRight):
		g.cursor.X++
	}
	g.cursor.X = core.Clamp(g.cursor.X, 0, b.Width-1)
	g.cursor.Y = core.Clamp(g.cursor.Y, 0, b.Height-1)

	if in.Has(core.ActionFlag) {
		g.engine.ToggleFlag(g.cursor.Y, g.cursor.X)
	}
	if in.Has(core.ActionReveal) || in.Has(core.ActionConfirm) {
		g.engine.Reveal(g.cursor.Y, g.cursor.X)
	}

	res := core.StepResult{State: g.State(), Result: g.result}
	g.result = nil
	return res
}

var numberColors = [...]core.Color{
	core.ColorDefault,
	core.ColorBrightBlue,
	core.ColorGreen,
	core.ColorBrightRed,
	core.ColorBlue,
	core.ColorRed,
	core.ColorCyan,
	core.ColorMagenta,
	core.ColorGray,
}

// Render draws the grid two screen columns per cell, with the cursor cell
// bracketed.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	e := g.engine
	b := e.Board()

	hud := fmt.Sprintf(" MINESWEEPER  Mines: %d  Time: %ds", e.MinesRemaining(), e.ElapsedSeconds())
	dst.DrawTextWithColor(0, 0, hud, core.ColorBrightWhite)

	frame := core.NewRect((dst.Width()-b.Width*2-3)/2, 1, b.Width*2+3, b.Height+2)
	if frame.X < 0 || frame.Bottom() > dst.Height() {
		dst.DrawOverlay("Too small", fmt.Sprintf("Need %dx%d", frame.W, frame.Bottom()))
		return
	}
	dst.DrawBox(frame)

	for r := 0; r < b.Height; r++ {
		for c := 0; c < b.Width; c++ {
			cell, _ := e.Cell(r, c)
			x, y := frame.X+2+c*2, frame.Y+1+r

			glyph, color := '■', core.ColorGray
			switch {
			case cell.IsRevealed && cell.IsMine:
				glyph, color = '*', core.ColorBrightRed
			case cell.IsRevealed && cell.AdjacentMines > 0:
				glyph, color = rune('0'+cell.AdjacentMines), numberColors[cell.AdjacentMines]
			case cell.IsRevealed:
				glyph = ' '
			case cell.IsFlagged:
				glyph, color = 'F', core.ColorBrightYellow
			}
			dst.SetWithColor(x, y, glyph, color)
		}
	}
	cx, cy := frame.X+2+g.cursor.X*2, frame.Y+1+g.cursor.Y
	dst.SetWithColor(cx-1, cy, '[', core.ColorBrightCyan)
	dst.SetWithColor(cx+1, cy, ']', core.ColorBrightCyan)

	help := "arrows move  space reveal  F flag"
	dst.DrawTextWithColor((dst.Width()-len(help))/2, frame.Bottom(), help, core.ColorGray)

	switch e.Status() {
	case StatusWon:
		dst.DrawOverlay("You Win!", fmt.Sprintf("Cleared in %ds - R to restart, B for menu", e.ElapsedSeconds()))
	case StatusLost:
		dst.DrawOverlay("Boom!", "R to restart, B for menu")
	}
	if g.loadErr != nil {
		dst.DrawTextWithColor(0, dst.Height()-1, "config: "+g.loadErr.Error(), core.ColorGray)
	}
}

// State returns the current game state. Score carries elapsed seconds.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.engine.ElapsedSeconds(),
		GameOver: g.engine.Status().Terminal(),
		Won:      g.engine.Status() == StatusWon,
	}
}

// Order ranks faster clears first.
func (g *Game) Order() core.Order { return core.LowerIsBetter }

// Cursor returns the selected cell as (column, row).
func (g *Game) Cursor() core.Point { return g.cursor }

// Engine exposes the underlying state machine.
func (g *Game) Engine() *Engine { return g.engine }
