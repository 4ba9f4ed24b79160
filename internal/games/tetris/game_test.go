package tetris

import (
	"strings"
	"testing"

	"github.com/vovakirdan/gor-arcade/internal/core"
	"github.com/vovakirdan/gor-arcade/internal/registry"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	g := NewGame()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 3, Player: "guest"})
	return g
}

func TestRegistered(t *testing.T) {
	if !registry.Exists(GameID) {
		t.Fatal("tetris should register itself")
	}
}

func TestGameGravityFollowsFrames(t *testing.T) {
	g := newTestGame(t)
	input := core.NewInputFrame()

	// 60 frames of 1s/60 fall just short of one second.
	for i := 0; i < 60; i++ {
		g.Step(input)
	}
	if y := g.Engine().Current().Position.Y; y != 0 {
		t.Fatalf("y = %d, expected 0 before the first interval", y)
	}
	g.Step(input)
	if y := g.Engine().Current().Position.Y; y != 1 {
		t.Errorf("y = %d, expected 1 after one interval", y)
	}
}

func TestGameHardDropAndReport(t *testing.T) {
	g := newTestGame(t)
	input := core.NewInputFrame()
	input.Set(core.ActionDrop)

	var results []core.Result
	for i := 0; i < 200 && !g.State().GameOver; i++ {
		if res := g.Step(input); res.Result != nil {
			results = append(results, *res.Result)
		}
	}

	if !g.State().GameOver {
		t.Fatal("stacking pieces in the middle should end the game")
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, expected 1", len(results))
	}
	if results[0].Game != GameID || results[0].PlayerLabel != "guest" {
		t.Errorf("unexpected result %+v", results[0])
	}

	input.Clear()
	input.Set(core.ActionRestart)
	g.Step(input)
	if g.State().GameOver || g.Engine().Snapshot().Filled != 0 {
		t.Error("restart should start a fresh well")
	}
}

func TestGameMovesPiece(t *testing.T) {
	g := newTestGame(t)
	start := g.Engine().Current().Position.X

	input := core.NewInputFrame()
	input.Set(core.ActionLeft)
	g.Step(input)

	if x := g.Engine().Current().Position.X; x != start-1 {
		t.Errorf("x = %d, expected %d", x, start-1)
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame(t)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	for _, want := range []string{"TETRIS", "Next", "Score 0", "Level 1", "Lines 0"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}

	small := core.NewScreen(30, 10)
	g.Render(small)
	if !strings.Contains(small.String(), "Too small") {
		t.Error("small screens should show a resize hint")
	}
}
