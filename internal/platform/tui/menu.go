package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gor-arcade/internal/core"
	"github.com/vovakirdan/gor-arcade/internal/registry"
	"github.com/vovakirdan/gor-arcade/internal/tournament"
)

// MenuItem represents a selectable game in the menu.
type MenuItem struct {
	GameID string
	Title  string
}

// tournamentMsg carries the status line of a game's running tournament.
type tournamentMsg struct {
	gameID string
	line   string
}

// MenuModel is the Bubble Tea model for the game picker menu.
type MenuModel struct {
	ctx            context.Context
	items          []MenuItem
	cursor         int
	width          int
	height         int
	services       Services
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	tournaments    map[string]string
	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel creates a new menu model.
func NewMenuModel(ctx context.Context, services Services, cfg core.RuntimeConfig) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		items = append(items, MenuItem{GameID: g.ID, Title: g.Title})
	}

	return MenuModel{
		ctx:         ctx,
		items:       items,
		width:       cfg.ScreenW,
		height:      cfg.ScreenH,
		services:    services,
		config:      cfg,
		keyMapper:   NewKeyMapper(""),
		tournaments: make(map[string]string),
	}
}

// Init fetches the tournament line for the highlighted game.
func (m MenuModel) Init() tea.Cmd {
	return m.fetchTournament()
}

func (m MenuModel) fetchTournament() tea.Cmd {
	if m.services.Tournaments == nil || len(m.items) == 0 {
		return nil
	}
	svc := m.services.Tournaments
	ctx := m.ctx
	gameID := m.items[m.cursor].GameID
	logger := m.services.logger()

	return func() tea.Msg {
		t, err := svc.Current(ctx, gameID)
		if err != nil {
			logger.Debug("no tournament", "game", gameID, "error", err)
			return tournamentMsg{gameID: gameID}
		}
		line := fmt.Sprintf("Tournament pool: %s %s  |  Entry: %s %s  |  %s",
			t.PrizePool.StringFixed(3), tournament.Currency,
			t.EntryFee.String(), tournament.Currency,
			tournament.Status(t, svc.Now()))
		return tournamentMsg{gameID: gameID, line: line}
	}
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil

	case tournamentMsg:
		m.tournaments[msg.gameID] = msg.line
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
			return m, m.fetchTournament()
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
			return m, m.fetchTournament()
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	b.WriteString("\n")
	b.WriteString(centerStyled(titleStyle, "  A R C A D E  ", m.width))
	b.WriteString("\n\n")
	if m.config.Player != "" {
		b.WriteString(centerText("Playing as "+m.config.Player, m.width))
		b.WriteString("\n")
	}
	b.WriteString(centerText("Select a game", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+item.Title, m.width))
		b.WriteString("\n")
	}

	if len(m.items) > 0 {
		if line := m.tournaments[m.items[m.cursor].GameID]; line != "" {
			b.WriteString("\n")
			b.WriteString(centerStyled(dimStyle, line, m.width))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

func centerStyled(style lipgloss.Style, text string, width int) string {
	return centerText(style.Render(text), width)
}
