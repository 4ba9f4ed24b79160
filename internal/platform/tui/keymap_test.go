package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gor-arcade/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	tests := []struct {
		game     string
		msg      tea.KeyMsg
		expected core.Action
		quit     bool
	}{
		{"snake", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"snake", runeKey("a"), core.ActionLeft, false},
		{"snake", runeKey("d"), core.ActionRight, false},
		{"snake", runeKey("s"), core.ActionDown, false},
		{"snake", tea.KeyMsg{Type: tea.KeySpace}, core.ActionNone, false},
		{"snake", runeKey("x"), core.ActionNone, false},
		{"tetris", tea.KeyMsg{Type: tea.KeySpace}, core.ActionDrop, false},
		{"tetris", runeKey("x"), core.ActionRotate, false},
		{"minesweeper", tea.KeyMsg{Type: tea.KeySpace}, core.ActionReveal, false},
		{"minesweeper", runeKey("f"), core.ActionFlag, false},
		{"minesweeper", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"", runeKey("p"), core.ActionPause, false},
		{"", runeKey("r"), core.ActionRestart, false},
		{"", tea.KeyMsg{Type: tea.KeyEscape}, core.ActionBack, false},
		{"", runeKey("q"), core.ActionQuit, true},
		{"", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"", runeKey("z"), core.ActionNone, false},
	}

	for _, tc := range tests {
		action, quit := NewKeyMapper(tc.game).MapKey(tc.msg)
		if action != tc.expected || quit != tc.quit {
			t.Errorf("%s %q: got (%v, %v), expected (%v, %v)", tc.game, tc.msg.String(), action, quit, tc.expected, tc.quit)
		}
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper("tetris")
	frame := core.NewInputFrame()

	if km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyLeft}, &frame) {
		t.Fatal("left is not a quit key")
	}
	if !frame.Has(core.ActionLeft) {
		t.Error("left should be set in the frame")
	}
	if !km.MapKeyToFrame(runeKey("q"), &frame) {
		t.Error("q should report quit")
	}
	if frame.Has(core.ActionQuit) {
		t.Error("quit should not be queued as a game action")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper("")
	tests := []struct {
		msg      tea.KeyMsg
		expected MenuAction
	}{
		{runeKey("k"), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeySpace}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runeKey("b"), MenuActionBack},
		{runeKey("q"), MenuActionQuit},
		{runeKey("z"), MenuActionNone},
	}
	for _, tc := range tests {
		if got := km.MapKeyToMenuAction(tc.msg); got != tc.expected {
			t.Errorf("%q: got %v, expected %v", tc.msg.String(), got, tc.expected)
		}
	}
}
