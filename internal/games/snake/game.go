package snake

import (
	"fmt"
	"time"

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

// SetDifficultyPreset sets the speed preset.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	difficultyPreset = preset
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
	rng     core.RandomSource
	config  core.RuntimeConfig
	result  *core.Result
	loadErr error
}

// NewGame creates an unstarted Snake game; Reset must be called before Step.
func NewGame() *Game {
	return &Game{}
}

// ID returns the game identifier.
func (g *Game) ID() string { return GameID }

// Title returns the display name.
func (g *Game) Title() string { return "Snake" }

// Reset loads the configuration and starts a new round.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.config = cfg
	g.result = nil
	g.loadErr = nil
	g.rng = core.NewRandom(cfg.Seed)
	g.frame = frameDuration(cfg.TickRate)

	snakeCfg, err := config.LoadSnake(configPath)
	if err != nil {
		g.loadErr = err
		snakeCfg = config.DefaultSnakeConfig()
	}
	config.ApplySnakePreset(&snakeCfg, presetFor(cfg))

	opts := []Option{
		WithPlayer(cfg.Player),
		WithReporter(core.ReporterFunc(func(r core.Result) { g.result = &r })),
	}
	engine, err := New(snakeCfg, g.rng, opts...)
	if err != nil {
		g.loadErr = err
		engine, _ = New(config.DefaultSnakeConfig(), g.rng, opts...)
	}
	g.engine = engine
	g.engine.Start()
}

// Step applies one frame of input and advances the engine by one frame of time.
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

	switch {
	case in.Has(core.ActionUp):
		g.engine.ChangeDirection(core.Up)
	case in.Has(core.ActionDown):
		g.engine.ChangeDirection(core.Down)
	case in.Has(core.ActionLeft):
		g.engine.ChangeDirection(core.Left)
	case in.Has(core.ActionRight):
		g.engine.ChangeDirection(core.Right)
	}

	g.engine.Advance(g.frame)

	res := core.StepResult{State: g.State(), Result: g.result}
	g.result = nil
	return res
}

// Render draws the board, two screen columns per cell.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	board := g.engine.Board()

	hud := fmt.Sprintf(" SNAKE  Score: %d  Length: %d", g.engine.Score(), len(g.engine.body))
	dst.DrawTextWithColor(0, 0, hud, core.ColorBrightGreen)

	frame := core.NewRect((dst.Width()-board.Width*2-2)/2, 1, board.Width*2+2, board.Height+2)
	if frame.X < 0 || frame.Bottom() > dst.Height() {
		dst.DrawOverlay("Too small", fmt.Sprintf("Need %dx%d", frame.W, frame.Bottom()))
		return
	}
	dst.DrawBox(frame)

	cell := func(p core.Point, r rune, c core.Color) {
		x := frame.X + 1 + p.X*2
		y := frame.Y + 1 + p.Y
		dst.SetWithColor(x, y, r, c)
		dst.SetWithColor(x+1, y, r, c)
	}
	food := g.engine.Food()
	dst.SetWithColor(frame.X+1+food.X*2, frame.Y+1+food.Y, '●', core.ColorBrightRed)
	for i, seg := range g.engine.body {
		if i == 0 {
			cell(seg, '█', core.ColorBrightGreen)
			continue
		}
		cell(seg, '▓', core.ColorGreen)
	}

	switch g.engine.Status() {
	case StatusGameOver:
		dst.DrawOverlay("Game Over", fmt.Sprintf("Score %d - R to restart, B for menu", g.engine.Score()))
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

// presetFor prefers the per-session preset over the package default.
func presetFor(cfg core.RuntimeConfig) config.DifficultyPreset {
	if p, err := config.ParsePreset(cfg.Difficulty); err == nil && p != config.DifficultyDefault {
		return p
	}
	return difficultyPreset
}

func frameDuration(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = 60
	}
	return time.Second / time.Duration(tickRate)
}
