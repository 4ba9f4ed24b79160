package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/gor-arcade/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextWithColor(0, 0, "ab", core.ColorRed)
	s.DrawText(2, 0, "cd")
	s.DrawTextWithColor(0, 1, "xyz", core.ColorPurple)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d rows, want 2", len(lines))
	}
	for _, want := range []string{"ab", "cd", "xyz"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRenderStatus(t *testing.T) {
	tests := []struct {
		name  string
		order core.Order
		state core.GameState
		want  []string
	}{
		{"points", core.HigherIsBetter, core.GameState{Score: 40}, []string{"ann", "Score: 40"}},
		{"timed", core.LowerIsBetter, core.GameState{Score: 12}, []string{"Time: 12"}},
		{"paused", core.HigherIsBetter, core.GameState{Paused: true}, []string{"paused"}},
		{"won", core.LowerIsBetter, core.GameState{GameOver: true, Won: true}, []string{"WON"}},
		{"lost", core.HigherIsBetter, core.GameState{GameOver: true}, []string{"GAME OVER"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderStatus(tt.order, tt.state, "ann")
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("renderStatus() = %q, missing %q", got, w)
				}
			}
		})
	}
}
