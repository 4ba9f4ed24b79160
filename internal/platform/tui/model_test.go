package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gor-arcade/internal/core"
)

// countdownGame ends after a fixed number of steps.
type countdownGame struct {
	left     int
	steps    int
	resets   int
	restarts int
	inputs   []core.InputFrame
}

func (g *countdownGame) ID() string    { return "countdown" }
func (g *countdownGame) Title() string { return "Countdown" }

func (g *countdownGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.left = 3
}

func (g *countdownGame) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) && g.left == 0 {
		g.restarts++
		g.Reset(core.RuntimeConfig{})
		return core.StepResult{State: g.State()}
	}
	copied := core.NewInputFrame()
	for a := range in.Actions {
		copied.Set(a)
	}
	g.inputs = append(g.inputs, copied)
	g.steps++
	if g.left == 0 {
		return core.StepResult{State: g.State()}
	}
	g.left--
	res := core.StepResult{State: g.State()}
	if g.left == 0 {
		res.Result = &core.Result{Game: g.ID(), PlayerLabel: "guest", Metric: g.steps, Outcome: core.OutcomeGameOver}
	}
	return res
}

func (g *countdownGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "COUNTDOWN")
}

func (g *countdownGame) State() core.GameState {
	return core.GameState{Score: g.steps, GameOver: g.left == 0}
}

type resultLog []core.Result

func (l *resultLog) Report(r core.Result) { *l = append(*l, r) }

func newTestModel(t *testing.T) (GameModel, *countdownGame, *resultLog) {
	t.Helper()
	g := &countdownGame{}
	results := &resultLog{}
	m := NewGameModel(g, results, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 1})
	if cmd := m.Init(); cmd == nil {
		t.Fatal("Init should start the tick loop")
	}
	return m, g, results
}

func update(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(GameModel), cmd
}

func TestTickStepsGame(t *testing.T) {
	m, g, _ := newTestModel(t)

	m, cmd := update(t, m, TickMsg{Gen: 0})
	if g.steps != 1 {
		t.Errorf("steps = %d, expected 1", g.steps)
	}
	if cmd == nil {
		t.Error("a running game should schedule the next tick")
	}
}

func TestStaleTickIgnored(t *testing.T) {
	m, g, _ := newTestModel(t)

	_, cmd := update(t, m, TickMsg{Gen: 7})
	if g.steps != 0 {
		t.Errorf("stale tick stepped the game %d times", g.steps)
	}
	if cmd != nil {
		t.Error("stale tick should not schedule another tick")
	}
}

func TestKeysAppliedOnNextTick(t *testing.T) {
	m, g, _ := newTestModel(t)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if g.steps != 0 {
		t.Fatal("keys must not step the game directly")
	}
	m, _ = update(t, m, TickMsg{Gen: 0})
	_, _ = update(t, m, TickMsg{Gen: 0})

	if !g.inputs[0].Has(core.ActionLeft) {
		t.Error("first tick should carry the left key")
	}
	if !g.inputs[1].Empty() {
		t.Error("input frame should be cleared after a tick")
	}
}

func TestGameOverStopsTicksAndReportsOnce(t *testing.T) {
	m, g, results := newTestModel(t)

	var cmd tea.Cmd
	for i := 0; i < 3; i++ {
		m, cmd = update(t, m, TickMsg{Gen: 0})
	}
	if !m.State().GameOver {
		t.Fatal("game should be over after three ticks")
	}
	if cmd == nil {
		t.Fatal("game over should return the report command")
	}

	msg := cmd()
	rm, ok := msg.(ResultMsg)
	if !ok {
		t.Fatalf("report command returned %T, expected ResultMsg", msg)
	}
	if len(*results) != 1 || (*results)[0].Metric != 3 {
		t.Fatalf("results = %+v, expected one result with metric 3", *results)
	}
	m, _ = update(t, m, rm)
	if m.LastResult() == nil || m.LastResult().Metric != 3 {
		t.Error("model should remember the reported result")
	}

	// the old tick chain is dead
	_, cmd = update(t, m, TickMsg{Gen: 0})
	if cmd != nil || g.steps != 3 {
		t.Errorf("ticks after game over should be dropped (steps %d)", g.steps)
	}
	if len(*results) != 1 {
		t.Errorf("reported %d times, expected once", len(*results))
	}
}

func TestRestartStartsNewTickChain(t *testing.T) {
	m, g, _ := newTestModel(t)
	for i := 0; i < 3; i++ {
		m, _ = update(t, m, TickMsg{Gen: 0})
	}

	m, cmd := update(t, m, runeKey("r"))
	if cmd == nil {
		t.Fatal("restart should schedule a tick")
	}
	if g.restarts != 1 {
		t.Errorf("restarts = %d, expected 1", g.restarts)
	}
	if m.State().GameOver {
		t.Error("state should be live after restart")
	}
	if m.LastResult() != nil {
		t.Error("last result should be cleared on restart")
	}

	steps := g.steps
	m, _ = update(t, m, TickMsg{Gen: 0})
	if g.steps != steps {
		t.Error("tick from the previous round should be dropped")
	}
	_, _ = update(t, m, TickMsg{Gen: m.gen})
	if g.steps != steps+1 {
		t.Error("tick from the new chain should step the game")
	}
}

func TestRestartIgnoredWhilePlaying(t *testing.T) {
	m, g, _ := newTestModel(t)
	m, cmd := update(t, m, runeKey("r"))
	if cmd != nil || g.restarts != 0 {
		t.Fatal("restart should wait for game over")
	}
	_, _ = update(t, m, TickMsg{Gen: 0})
	if !g.inputs[0].Has(core.ActionRestart) {
		t.Error("the key is still passed to the game")
	}
}

func TestBackOnlyWhenOverOrPaused(t *testing.T) {
	m, _, _ := newTestModel(t)

	m, _ = update(t, m, runeKey("b"))
	if m.BackToMenu() {
		t.Fatal("back should be ignored while playing")
	}

	for i := 0; i < 3; i++ {
		m, _ = update(t, m, TickMsg{Gen: 0})
	}
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if !m.BackToMenu() {
		t.Error("back should be accepted after game over")
	}
	if cmd != nil {
		t.Error("inside a session back should not quit the program")
	}
}

func TestQuit(t *testing.T) {
	m, _, _ := newTestModel(t)
	m, cmd := update(t, m, runeKey("q"))
	if !m.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestViewRendersGame(t *testing.T) {
	m, _, _ := newTestModel(t)
	if !strings.Contains(m.View(), "COUNTDOWN") {
		t.Error("view should contain the rendered game")
	}
}
