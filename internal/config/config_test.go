package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vovakirdan/gor-arcade/internal/core"
	"gopkg.in/yaml.v3"
)

func TestDefaultsAreValid(t *testing.T) {
	if err := DefaultSnakeConfig().Validate(); err != nil {
		t.Errorf("DefaultSnakeConfig: %v", err)
	}
	if err := DefaultTetrisConfig().Validate(); err != nil {
		t.Errorf("DefaultTetrisConfig: %v", err)
	}
	if err := DefaultMinesweeperConfig().Validate(); err != nil {
		t.Errorf("DefaultMinesweeperConfig: %v", err)
	}
}

func TestEmbeddedMatchesHardcoded(t *testing.T) {
	var snake SnakeConfig
	if err := yaml.Unmarshal(defaultSnakeYAML, &snake); err != nil {
		t.Fatalf("snake.yaml: %v", err)
	}
	if !reflect.DeepEqual(snake, DefaultSnakeConfig()) {
		t.Errorf("embedded snake config = %+v, expected %+v", snake, DefaultSnakeConfig())
	}

	var tetris TetrisConfig
	if err := yaml.Unmarshal(defaultTetrisYAML, &tetris); err != nil {
		t.Fatalf("tetris.yaml: %v", err)
	}
	if !reflect.DeepEqual(tetris, DefaultTetrisConfig()) {
		t.Errorf("embedded tetris config = %+v, expected %+v", tetris, DefaultTetrisConfig())
	}

	var mines MinesweeperConfig
	if err := yaml.Unmarshal(defaultMinesweeperYAML, &mines); err != nil {
		t.Fatalf("minesweeper.yaml: %v", err)
	}
	if !reflect.DeepEqual(mines, DefaultMinesweeperConfig()) {
		t.Errorf("embedded minesweeper config = %+v, expected %+v", mines, DefaultMinesweeperConfig())
	}
}

func TestValidateRejects(t *testing.T) {
	snake := func(mut func(*SnakeConfig)) validator {
		c := DefaultSnakeConfig()
		mut(&c)
		return c
	}
	tetris := func(mut func(*TetrisConfig)) validator {
		c := DefaultTetrisConfig()
		mut(&c)
		return c
	}
	mines := func(mut func(*MinesweeperConfig)) validator {
		c := DefaultMinesweeperConfig()
		mut(&c)
		return c
	}

	tests := []struct {
		name string
		cfg  validator
	}{
		{"snake zero width", snake(func(c *SnakeConfig) { c.Board.Width = 0 })},
		{"snake empty body", snake(func(c *SnakeConfig) { c.InitialBody = nil })},
		{"snake body off board", snake(func(c *SnakeConfig) { c.InitialBody = []core.Point{{X: 20, Y: 0}} })},
		{"snake duplicate body", snake(func(c *SnakeConfig) { c.InitialBody = []core.Point{{X: 1, Y: 1}, {X: 1, Y: 1}} })},
		{"snake diagonal direction", snake(func(c *SnakeConfig) { c.InitialDirection = core.Point{X: 1, Y: 1} })},
		{"snake food on body", snake(func(c *SnakeConfig) { c.InitialFood = core.Point{X: 10, Y: 10} })},
		{"snake zero tick", snake(func(c *SnakeConfig) { c.TickMS = 0 })},
		{"tetris no pieces", tetris(func(c *TetrisConfig) { c.Pieces = nil })},
		{"tetris ragged shape", tetris(func(c *TetrisConfig) { c.Pieces[0].Shape = [][]int{{1, 1}, {1}} })},
		{"tetris empty shape", tetris(func(c *TetrisConfig) { c.Pieces[0].Shape = [][]int{{0, 0}} })},
		{"tetris piece too wide", tetris(func(c *TetrisConfig) { c.Board.Width = 3 })},
		{"tetris unknown color", tetris(func(c *TetrisConfig) { c.Pieces[2].Color = "teal" })},
		{"tetris short score table", tetris(func(c *TetrisConfig) { c.LineScores = []int{0, 40, 100} })},
		{"tetris zero lines per level", tetris(func(c *TetrisConfig) { c.Speed.LinesPerLevel = 0 })},
		{"mines negative height", mines(func(c *MinesweeperConfig) { c.Board.Height = -1 })},
		{"mines zero mines", mines(func(c *MinesweeperConfig) { c.Mines = 0 })},
		{"mines fill board", mines(func(c *MinesweeperConfig) { c.Mines = 81 })},
		{"mines crowd safe opening", mines(func(c *MinesweeperConfig) { c.Mines = 73 })},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if !errors.Is(err, core.ErrInvalidConfig) {
				t.Errorf("Validate() = %v, expected ErrInvalidConfig", err)
			}
		})
	}

	if err := mines(func(c *MinesweeperConfig) { c.Mines = 72 }).Validate(); err != nil {
		t.Errorf("72 mines on 9x9 should fit around a safe opening: %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mines.yaml")
	if err := os.WriteFile(path, []byte("board: {width: 16, height: 16}\nmines: 40\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadMinesweeper(path)
	if err != nil {
		t.Fatalf("LoadMinesweeper() failed: %v", err)
	}
	if cfg.Board.Width != 16 || cfg.Mines != 40 {
		t.Errorf("loaded %+v, expected 16x16 with 40 mines", cfg)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadSnake(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom config should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("board: [oops"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnake(bad); err == nil {
		t.Error("malformed custom config should fail")
	}

	invalidCfg := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalidCfg, []byte("board: {width: 3, height: 3}\nmines: 5\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadMinesweeper(invalidCfg); !errors.Is(err, core.ErrInvalidConfig) {
		t.Errorf("LoadMinesweeper(invalid) = %v, expected ErrInvalidConfig", err)
	}
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := LoadTetris("")
	if err != nil {
		t.Fatalf("LoadTetris() failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultTetrisConfig()) {
		t.Errorf("LoadTetris() = %+v, expected defaults", cfg)
	}
}

func TestLoadPrefersLocalConfigsDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.Mkdir("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("configs", "snake.yaml"), []byte(`
board: {width: 12, height: 8}
initial_body: [{x: 3, y: 3}, {x: 2, y: 3}]
initial_direction: {x: 1, y: 0}
initial_food: {x: 8, y: 3}
food_score: 5
tick_ms: 100
`), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSnake("")
	if err != nil {
		t.Fatalf("LoadSnake() failed: %v", err)
	}
	if cfg.Board.Width != 12 || len(cfg.InitialBody) != 2 || cfg.InitialDirection != core.Right {
		t.Errorf("LoadSnake() = %+v, expected ./configs/snake.yaml", cfg)
	}
	if cfg.TickInterval().Milliseconds() != 100 {
		t.Errorf("TickInterval() = %v, expected 100ms", cfg.TickInterval())
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in       string
		expected DifficultyPreset
	}{
		{"", DifficultyDefault},
		{"easy", DifficultyEasy},
		{"Beginner", DifficultyEasy},
		{"intermediate", DifficultyNormal},
		{"HARD", DifficultyHard},
		{"expert", DifficultyHard},
	}

	for _, tc := range tests {
		got, err := ParsePreset(tc.in)
		if err != nil || got != tc.expected {
			t.Errorf("ParsePreset(%q) = %q, %v; expected %q", tc.in, got, err, tc.expected)
		}
	}

	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("ParsePreset should reject unknown presets")
	}
}

func TestApplyPresets(t *testing.T) {
	mines := DefaultMinesweeperConfig()
	ApplyMinesweeperPreset(&mines, DifficultyHard)
	if mines.Board.Width != 30 || mines.Board.Height != 16 || mines.Mines != 99 {
		t.Errorf("expert board = %+v", mines)
	}
	if err := mines.Validate(); err != nil {
		t.Errorf("expert board should validate: %v", err)
	}

	ApplyMinesweeperPreset(&mines, DifficultyDefault)
	if mines.Mines != 99 {
		t.Error("DifficultyDefault should leave the config untouched")
	}

	snake := DefaultSnakeConfig()
	ApplySnakePreset(&snake, DifficultyEasy)
	if snake.TickMS != 200 {
		t.Errorf("easy snake tick = %d, expected 200", snake.TickMS)
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("ARCADE_PLAYER=DotenvAce\nARCADE_LOG_LEVEL=debug\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("ARCADE_PLAYER", "")
	os.Unsetenv("ARCADE_PLAYER")
	t.Setenv("ARCADE_LOG_LEVEL", "warn") // already set: .env must not override
	t.Setenv("ARCADE_DB", "")

	env, err := LoadEnv(envFile, filepath.Join(dir, "missing.env"))
	if err != nil {
		t.Fatalf("LoadEnv() failed: %v", err)
	}
	if env.Player != "DotenvAce" {
		t.Errorf("Player = %q, expected value from .env", env.Player)
	}
	if env.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, expected process env to win", env.LogLevel)
	}
	if env.DBPath != "~/.arcade/scores.db" {
		t.Errorf("DBPath = %q, expected default", env.DBPath)
	}
}
