package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gor-arcade/internal/core"
	"github.com/vovakirdan/gor-arcade/internal/leaderboard"
	"github.com/vovakirdan/gor-arcade/internal/registry"
)

const maxScores = leaderboard.RankWindow

// ScoreSource supplies ranked leaderboard entries.
type ScoreSource interface {
	Top(ctx context.Context, game string, limit int) ([]leaderboard.Entry, error)
}

type scoreboardKeys struct {
	Scroll key.Binding
	Game   key.Binding
	Back   key.Binding
	Quit   key.Binding
	next   key.Binding
	prev   key.Binding
}

func (k scoreboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.Game, k.Back, k.Quit}
}

func (k scoreboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var defaultScoreboardKeys = scoreboardKeys{
	Scroll: key.NewBinding(key.WithKeys("up", "down", "k", "j"), key.WithHelp("↑/↓", "scroll")),
	Game:   key.NewBinding(key.WithKeys("tab", "shift+tab", "left", "right"), key.WithHelp("tab/←/→", "game")),
	Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("b", "back")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	next:   key.NewBinding(key.WithKeys("tab", "right", "l")),
	prev:   key.NewBinding(key.WithKeys("shift+tab", "left", "h")),
}

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	tabStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle  = tabStyle.Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	boardFrameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	summaryStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	emptyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 2)
	loadErrStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(1, 2)
)

// ScoreboardModel shows the top entries of one game at a time.
type ScoreboardModel struct {
	ctx       context.Context
	source    ScoreSource
	games     []registry.GameInfo
	current   int
	player    string
	entries   []leaderboard.Entry
	loadErr   error
	table     table.Model
	help      help.Model
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard. A nil source shows empty tables.
func NewScoreboardModel(ctx context.Context, source ScoreSource, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		ctx:    ctx,
		source: source,
		games:  registry.List(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.reload()
	return m
}

// WithPlayer marks player's row in every table.
func (m ScoreboardModel) WithPlayer(player string) ScoreboardModel {
	m.player = player
	m.fillTable()
	return m
}

func (m ScoreboardModel) game() (registry.GameInfo, bool) {
	if len(m.games) == 0 {
		return registry.GameInfo{}, false
	}
	return m.games[m.current], true
}

func (m ScoreboardModel) timed() bool {
	g, ok := m.game()
	return ok && g.Order == core.LowerIsBetter
}

// reload fetches the current game's entries and rebuilds the table.
func (m *ScoreboardModel) reload() {
	m.entries, m.loadErr = nil, nil
	if g, ok := m.game(); ok && m.source != nil {
		m.entries, m.loadErr = m.source.Top(m.ctx, g.ID, maxScores)
	}
	m.fillTable()
}

func (m *ScoreboardModel) fillTable() {
	metric := "Score"
	if m.timed() {
		metric = "Time"
	}
	player := max(16, min(m.width-44, 24))
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Player", Width: player},
		{Title: metric, Width: 8},
		{Title: "Date", Width: 14},
	}

	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		value := fmt.Sprint(e.Metric)
		if m.timed() {
			value += "s"
		}
		name := e.Player
		if m.player != "" && e.Player == m.player {
			name = "* " + name
		}
		rows[i] = table.Row{fmt.Sprintf("#%d", i+1), name, value, e.UpdatedAt.Local().Format("Jan 02 15:04")}
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).BorderBottom(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))

	m.table = table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
		table.WithStyles(styles),
	)
}

func (m *ScoreboardModel) switchGame(delta int) {
	if len(m.games) == 0 {
		return
	}
	m.current = (m.current + delta + len(m.games)) % len(m.games)
	m.reload()
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles navigation between games and table scrolling.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		keys := defaultScoreboardKeys
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, keys.Back):
			m.goingBack = true
			return m, nil
		case key.Matches(msg, keys.next):
			m.switchGame(1)
			return m, nil
		case key.Matches(msg, keys.prev):
			m.switchGame(-1)
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.fillTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the title, game tabs, table and help line.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "HIGH SCORES"
	if g, ok := m.game(); ok {
		title += " - " + g.Title
	}

	parts := []string{
		centerStyled(boardTitleStyle, title, m.width),
		centerText(m.tabs(), m.width),
		lipgloss.PlaceHorizontal(m.width, lipgloss.Center, boardFrameStyle.Render(m.body())),
	}
	if s := m.summary(); s != "" {
		parts = append(parts, centerStyled(summaryStyle, s, m.width))
	}
	parts = append(parts, summaryStyle.Render(m.help.View(defaultScoreboardKeys)))
	return strings.Join(parts, "\n\n")
}

func (m ScoreboardModel) tabs() string {
	tabs := make([]string, len(m.games))
	for i, g := range m.games {
		if i == m.current {
			tabs[i] = activeTabStyle.Render(g.Title)
		} else {
			tabs[i] = tabStyle.Render(g.Title)
		}
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if g, ok := m.game(); ok && lipgloss.Width(line) > m.width-4 {
		return "< " + g.Title + " >"
	}
	return line
}

func (m ScoreboardModel) body() string {
	switch {
	case m.loadErr != nil:
		return loadErrStyle.Render("Could not load scores:\n" + m.loadErr.Error())
	case len(m.entries) == 0:
		return emptyStyle.Render("No scores recorded yet.\nPlay a game to set a high score!")
	}
	return m.table.View()
}

// summary names the leader and, when ranked, the session player's place.
func (m ScoreboardModel) summary() string {
	if len(m.entries) == 0 {
		return ""
	}
	unit := ""
	if m.timed() {
		unit = "s"
	}
	s := fmt.Sprintf("%d players  |  best %d%s by %s", len(m.entries), m.entries[0].Metric, unit, m.entries[0].Player)
	for i, e := range m.entries {
		if m.player != "" && e.Player == m.player {
			s += fmt.Sprintf("  |  you are #%d", i+1)
			break
		}
	}
	return s
}

// IsGoingBack reports whether the player left with back.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the player asked to quit.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the scoreboard full screen until the player leaves.
func RunScoreboard(ctx context.Context, source ScoreSource, width, height int) error {
	p := tea.NewProgram(
		scoreboardProgram{NewScoreboardModel(ctx, source, width, height)},
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

// scoreboardProgram quits when the scoreboard is left with back.
type scoreboardProgram struct {
	ScoreboardModel
}

func (p scoreboardProgram) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := p.ScoreboardModel.Update(msg)
	p.ScoreboardModel = next.(ScoreboardModel)
	if p.goingBack {
		return p, tea.Quit
	}
	return p, cmd
}
