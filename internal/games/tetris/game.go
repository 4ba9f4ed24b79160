package tetris

import (
	"fmt"
	"time"

	"github.com/vovakirdan/gor-arcade/internal/config"
	"github.com/vovakirdan/gor-arcade/internal/core"
	"github.com/vovakirdan/gor-arcade/internal/registry"
)

var configPath string

// SetConfigPath sets a custom YAML config path used by the next Reset.
func SetConfigPath(path string) {
	configPath = path
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return NewGame()
	})
}

// Game adapts the engine to the platform's fixed-rate Step/Render loop.
type Game struct {
	engine  *Engine
	frame   time.Duration
	config  core.RuntimeConfig
	result  *core.Result
	loadErr error
}

// NewGame creates an unstarted Tetris game; Reset must be called before Step.
func NewGame() *Game {
	return &Game{}
}

// ID returns the game identifier.
func (g *Game) ID() string { return GameID }

// Title returns the display name.
func (g *Game) Title() string { return "Tetris" }

// Reset loads the configuration and starts a new round.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.config = cfg
	g.result = nil
	g.loadErr = nil
	g.frame = time.Second / time.Duration(core.Max(cfg.TickRate, 1))

	tetrisCfg, err := config.LoadTetris(configPath)
	if err != nil {
		g.loadErr = err
		tetrisCfg = config.DefaultTetrisConfig()
	}

	rng := core.NewRandom(cfg.Seed)
	opts := []Option{
		WithPlayer(cfg.Player),
		WithReporter(core.ReporterFunc(func(r core.Result) { g.result = &r })),
	}
	engine, err := New(tetrisCfg, rng, opts...)
	if err != nil {
		g.loadErr = err
		engine, _ = New(config.DefaultTetrisConfig(), rng, opts...)
	}
	g.engine = engine
	g.engine.Start()
}

// Step applies one frame of input and advances gravity by one frame of time.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) && g.engine.Status() == StatusGameOver {
		cfg := g.config
		cfg.Seed = time.Now().UnixNano()
		g.Reset(cfg)
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) {
		g.engine.TogglePause()
	}

	if in.Has(core.ActionLeft) {
		g.engine.MoveLeft()
	}
	if in.Has(core.ActionRight) {
		g.engine.MoveRight()
	}
	if in.Has(core.ActionRotate) || in.Has(core.ActionUp) {
		g.engine.Rotate()
	}
	if in.Has(core.ActionDown) {
		g.engine.SoftDrop()
	}
	if in.Has(core.ActionDrop) {
		g.engine.HardDrop()
	}

	g.engine.Advance(g.frame)

	res := core.StepResult{State: g.State(), Result: g.result}
	g.result = nil
	return res
}

// Render draws the well with a side panel for the next piece and counters.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	e := g.engine
	w, h := e.cfg.Board.Width, e.cfg.Board.Height

	const panelW = 16
	well := core.NewRect((dst.Width()-(w*2+2+panelW))/2, 1, w*2+2, h+2)
	if well.X < 0 || well.Bottom() > dst.Height() {
		dst.DrawOverlay("Too small", fmt.Sprintf("Need %dx%d", well.W+panelW, well.Bottom()))
		return
	}
	dst.DrawTextWithColor(well.X, 0, "TETRIS", core.ColorBrightCyan)
	dst.DrawBox(well)

	block := func(c core.Point, color core.Color) {
		if c.Y < 0 {
			return
		}
		x, y := well.X+1+c.X*2, well.Y+1+c.Y
		dst.SetWithColor(x, y, '█', color)
		dst.SetWithColor(x+1, y, '█', color)
	}
	for y, row := range e.board {
		for x, v := range row {
			if v != 0 {
				block(core.Point{X: x, Y: y}, core.ColorGray)
			} else {
				dst.SetWithColor(well.X+1+x*2, well.Y+1+y, '·', core.ColorGray)
			}
		}
	}
	if e.Status() != StatusGameOver {
		for _, c := range e.current.Cells() {
			block(c, e.current.Color)
		}
	}

	px := well.Right() + 2
	dst.DrawText(px, well.Y+1, "Next")
	preview := e.next
	preview.Position = core.Point{}
	for _, c := range preview.Cells() {
		dst.SetWithColor(px+c.X*2, well.Y+3+c.Y, '█', preview.Color)
		dst.SetWithColor(px+c.X*2+1, well.Y+3+c.Y, '█', preview.Color)
	}
	dst.DrawText(px, well.Y+8, fmt.Sprintf("Score %d", e.Score()))
	dst.DrawText(px, well.Y+9, fmt.Sprintf("Level %d", e.Level()))
	dst.DrawText(px, well.Y+10, fmt.Sprintf("Lines %d", e.Lines()))
	dst.DrawTextWithColor(px, well.Y+12, "←→ move  ↑ rotate", core.ColorGray)
	dst.DrawTextWithColor(px, well.Y+13, "↓ soft  space drop", core.ColorGray)

	switch e.Status() {
	case StatusGameOver:
		dst.DrawOverlay("Game Over", fmt.Sprintf("Score %d - R to restart, B for menu", e.Score()))
	case StatusPaused:
		dst.DrawOverlay("Paused", "Press P to continue")
	}
	if g.loadErr != nil {
		dst.DrawTextWithColor(0, dst.Height()-1, "config: "+g.loadErr.Error(), core.ColorGray)
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.engine.Score(),
		GameOver: g.engine.Status() == StatusGameOver,
		Paused:   g.engine.Status() == StatusPaused,
	}
}

// Order ranks higher scores first.
func (g *Game) Order() core.Order { return core.HigherIsBetter }

// Engine exposes the underlying state machine.
func (g *Game) Engine() *Engine { return g.engine }
