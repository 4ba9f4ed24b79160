package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gor-arcade/internal/config"
	"github.com/vovakirdan/gor-arcade/internal/core"
	"github.com/vovakirdan/gor-arcade/internal/registry"
)

type screen int

const (
	screenMenu screen = iota
	screenDifficulty
	screenScoreboard
	screenGame
)

// SessionModel manages the full arcade session flow: menu, optional
// difficulty choice, game, and back. Local menus and SSH sessions both
// run it.
type SessionModel struct {
	ctx        context.Context
	services   Services
	config     core.RuntimeConfig
	screen     screen
	menu       MenuModel
	difficulty DifficultyModel
	scoreboard ScoreboardModel
	game       GameModel
	quitting   bool
}

// NewSessionModel creates a new session model. cfg.Player labels every
// result submitted from this session.
func NewSessionModel(ctx context.Context, services Services, cfg core.RuntimeConfig) SessionModel {
	return SessionModel{
		ctx:      ctx,
		services: services,
		config:   cfg,
		menu:     NewMenuModel(ctx, services, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	case tournamentMsg:
		// may arrive after the menu was left
		next, cmd := m.menu.Update(msg)
		m.menu = next.(MenuModel)
		return m, cmd
	}

	switch m.screen {
	case screenDifficulty:
		return m.updateDifficulty(msg)
	case screenScoreboard:
		return m.updateScoreboard(msg)
	case screenGame:
		return m.updateGame(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		var source ScoreSource
		if m.services.Scores != nil {
			source = m.services.Scores
		}
		m.scoreboard = NewScoreboardModel(m.ctx, source, m.config.ScreenW, m.config.ScreenH).WithPlayer(m.config.Player)
		m.screen = screenScoreboard
		return m, nil

	case m.menu.Selected() != nil:
		item := *m.menu.Selected()
		if HasDifficulty(item.GameID) {
			m.difficulty = NewDifficultyModel(item.GameID, item.Title, m.config.ScreenW, m.config.ScreenH)
			m.screen = screenDifficulty
			return m, nil
		}
		return m.startGame(item.GameID, config.DifficultyDefault)
	}

	return m, cmd
}

func (m SessionModel) updateDifficulty(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.difficulty.Update(msg)
	m.difficulty = next.(DifficultyModel)

	switch {
	case m.difficulty.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.difficulty.WantsBack():
		return m.backToMenu()
	case m.difficulty.Chosen() != nil:
		return m.startGame(m.difficulty.gameID, *m.difficulty.Chosen())
	}
	return m, cmd
}

func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	m.scoreboard = next.(ScoreboardModel)

	switch {
	case m.scoreboard.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scoreboard.IsGoingBack():
		return m.backToMenu()
	}
	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	m.game = next.(GameModel)

	switch {
	case m.game.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.game.BackToMenu():
		return m.backToMenu()
	}
	return m, cmd
}

func (m SessionModel) startGame(gameID string, preset config.DifficultyPreset) (tea.Model, tea.Cmd) {
	game, err := registry.Create(gameID)
	if err != nil {
		m.services.logger().Error("cannot create game", "game", gameID, "error", err)
		return m.backToMenu()
	}

	cfg := m.config
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	cfg.Difficulty = string(preset)
	cfg.ScreenH = max(cfg.ScreenH-1, 1)

	next := NewGameModel(game, m.services.reporter(m.ctx), cfg)
	// ticks still in flight from an earlier game must not match
	next.gen = m.game.gen + 1
	m.game = next
	m.screen = screenGame
	m.services.logger().Info("game started", "game", gameID, "player", cfg.Player, "difficulty", cfg.Difficulty)
	return m, m.game.Init()
}

func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.menu = NewMenuModel(m.ctx, m.services, m.config)
	m.screen = screenMenu
	return m, m.menu.Init()
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenDifficulty:
		return m.difficulty.View()
	case screenScoreboard:
		return m.scoreboard.View()
	case screenGame:
		return m.game.View()
	default:
		return m.menu.View()
	}
}

// RunSession runs the menu-driven arcade in the local terminal.
func RunSession(ctx context.Context, services Services, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewSessionModel(ctx, services, cfg),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}
