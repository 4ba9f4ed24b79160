package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gor-arcade/internal/core"
	"github.com/vovakirdan/gor-arcade/internal/registry"
)

// ResultMsg is delivered after a finished game was handed to the reporter.
type ResultMsg struct {
	Result core.Result
}

// GameModel runs one game inside Bubble Tea. Keys are collected into an
// input frame and applied on the next tick; a terminal step stops the tick
// chain until the player restarts.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	reporter   core.Reporter
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	order      core.Order
	gen        int
	last       *core.Result
	quitting   bool
	backToMenu bool
	quitOnBack bool
}

// NewGameModel creates a game model. Finished games are sent to reporter.
func NewGameModel(game registry.Game, reporter core.Reporter, cfg core.RuntimeConfig) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if reporter == nil {
		reporter = core.Discard
	}

	order := core.HigherIsBetter
	if r, ok := game.(registry.Ranked); ok {
		order = r.Order()
	}

	return GameModel{
		game:       game,
		order:      order,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		reporter:   reporter,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(game.ID()),
	}
}

// Init starts a new round and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate, m.gen)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		// last row is the status line
		m.config.ScreenH = max(msg.Height-1, 1)
		m.screen.Resize(msg.Width, m.config.ScreenH)
		return m, nil
	case TickMsg:
		return m.handleTick(msg)
	case ResultMsg:
		r := msg.Result
		m.last = &r
		return m, nil
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		m.gen++
		return m, tea.Quit

	case action == core.ActionBack:
		if !m.gameState.GameOver && !m.gameState.Paused {
			return m, nil
		}
		m.backToMenu = true
		m.gen++
		if m.quitOnBack {
			return m, tea.Quit
		}
		return m, nil

	case action == core.ActionRestart && m.gameState.GameOver:
		m.inputFrame.Clear()
		m.inputFrame.Set(core.ActionRestart)
		res := m.game.Step(m.inputFrame)
		m.inputFrame.Clear()
		m.gameState = res.State
		m.last = nil
		m.gen++
		return m, tickCmd(m.config.TickRate, m.gen)

	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.gen || m.quitting || m.backToMenu {
		return m, nil
	}

	res := m.game.Step(m.inputFrame)
	m.inputFrame.Clear()
	m.gameState = res.State

	if m.gameState.GameOver {
		m.gen++
		if res.Result != nil {
			return m, reportCmd(m.reporter, *res.Result)
		}
		return m, nil
	}
	return m, tickCmd(m.config.TickRate, m.gen)
}

// reportCmd hands r to the reporter off the update loop.
func reportCmd(rep core.Reporter, r core.Result) tea.Cmd {
	return func() tea.Msg {
		rep.Report(r)
		return ResultMsg{Result: r}
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + renderStatus(m.order, m.gameState, m.config.Player)
}

// State returns the game state seen on the last step.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// LastResult returns the most recent reported result, if any.
func (m GameModel) LastResult() *core.Result {
	return m.last
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a single game full screen until the player quits or goes back.
func Run(game registry.Game, reporter core.Reporter, cfg core.RuntimeConfig) error {
	model := NewGameModel(game, reporter, cfg)
	model.quitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
