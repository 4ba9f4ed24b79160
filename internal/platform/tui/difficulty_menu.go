package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gor-arcade/internal/config"
	"github.com/vovakirdan/gor-arcade/internal/core"
	"github.com/vovakirdan/gor-arcade/internal/games/minesweeper"
	"github.com/vovakirdan/gor-arcade/internal/games/snake"
)

type difficultyOption struct {
	preset config.DifficultyPreset
	label  string
}

// difficultyOptions lists the presets offered per game. Games missing
// here start straight away.
var difficultyOptions = map[string][]difficultyOption{
	snake.GameID: {
		{config.DifficultyEasy, "Easy (slow)"},
		{config.DifficultyNormal, "Normal"},
		{config.DifficultyHard, "Hard (fast)"},
	},
	minesweeper.GameID: {
		{config.DifficultyEasy, "Beginner (9x9, 10 mines)"},
		{config.DifficultyNormal, "Intermediate (16x16, 40 mines)"},
		{config.DifficultyHard, "Expert (30x16, 99 mines)"},
	},
}

// HasDifficulty reports whether gameID offers difficulty presets.
func HasDifficulty(gameID string) bool {
	return len(difficultyOptions[gameID]) > 0
}

// DifficultyModel lets users choose a preset before a game starts.
type DifficultyModel struct {
	gameID    string
	title     string
	options   []difficultyOption
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	chosen    *config.DifficultyPreset
	quitting  bool
	back      bool
}

// NewDifficultyModel creates a selector for gameID.
func NewDifficultyModel(gameID, title string, width, height int) DifficultyModel {
	return DifficultyModel{
		gameID:    gameID,
		title:     title,
		options:   difficultyOptions[gameID],
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(""),
	}
}

// Init initializes the model.
func (m DifficultyModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m DifficultyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m DifficultyModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		if len(m.options) > 0 {
			p := m.options[m.cursor].preset
			m.chosen = &p
		}
	case MenuActionBack:
		m.back = true
	}
	return m, nil
}

// View renders the preset list.
func (m DifficultyModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(strings.ToUpper(m.title), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select difficulty:", m.width))
	b.WriteString("\n\n")

	for i, opt := range m.options {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(fmt.Sprintf("%s%s", cursor, opt.label), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Chosen returns the selected preset, or nil while the player is choosing.
func (m DifficultyModel) Chosen() *config.DifficultyPreset {
	return m.chosen
}

// IsQuitting returns true if user wants to quit.
func (m DifficultyModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m DifficultyModel) WantsBack() bool {
	return m.back
}

// selectorProgram quits as soon as the wrapped selector has an answer.
type selectorProgram struct {
	DifficultyModel
}

func (p selectorProgram) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := p.DifficultyModel.Update(msg)
	p.DifficultyModel = next.(DifficultyModel)
	if p.chosen != nil || p.back {
		return p, tea.Quit
	}
	return p, cmd
}

// RunDifficultySelector asks for a preset full screen. It returns nil when
// the player backs out or quits.
func RunDifficultySelector(gameID, title string, cfg core.RuntimeConfig) (*config.DifficultyPreset, error) {
	p := tea.NewProgram(
		selectorProgram{NewDifficultyModel(gameID, title, cfg.ScreenW, cfg.ScreenH)},
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(selectorProgram)
	if !ok || m.quitting || m.back {
		return nil, nil
	}
	return m.Chosen(), nil
}
