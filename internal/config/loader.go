package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type validator interface {
	Validate() error
}

// load resolves a game config.
// Search order: customPath -> ~/.arcade/configs/<name> -> ./configs/<name> -> embedded -> fallback.
// An explicit customPath must exist and parse; the other locations are skipped
// when missing or malformed. The resolved config is always validated.
func load[T validator](customPath, name string, embedded []byte, fallback func() T) (T, error) {
	var cfg T

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, validated(cfg, customPath)
	}

	candidates := []string{filepath.Join("configs", name)}
	if userCfgPath := userConfigPath(name); userCfgPath != "" {
		candidates = append([]string{userCfgPath}, candidates...)
	}
	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var fromFile T
		if err := yaml.Unmarshal(data, &fromFile); err == nil {
			return fromFile, validated(fromFile, path)
		}
	}

	if err := yaml.Unmarshal(embedded, &cfg); err != nil {
		cfg = fallback()
	}
	return cfg, validated(cfg, "embedded "+name)
}

func validated(cfg validator, source string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config %s: %w", source, err)
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// LoadSnake loads Snake configuration.
func LoadSnake(customPath string) (SnakeConfig, error) {
	return load(customPath, "snake.yaml", defaultSnakeYAML, DefaultSnakeConfig)
}

// LoadTetris loads Tetris configuration.
func LoadTetris(customPath string) (TetrisConfig, error) {
	return load(customPath, "tetris.yaml", defaultTetrisYAML, DefaultTetrisConfig)
}

// LoadMinesweeper loads Minesweeper configuration.
func LoadMinesweeper(customPath string) (MinesweeperConfig, error) {
	return load(customPath, "minesweeper.yaml", defaultMinesweeperYAML, DefaultMinesweeperConfig)
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyDefault DifficultyPreset = "" // keep the loaded config
	DifficultyEasy    DifficultyPreset = "easy"
	DifficultyNormal  DifficultyPreset = "normal"
	DifficultyHard    DifficultyPreset = "hard"
)

var presetAliases = map[string]DifficultyPreset{
	"":             DifficultyDefault,
	"easy":         DifficultyEasy,
	"beginner":     DifficultyEasy,
	"normal":       DifficultyNormal,
	"intermediate": DifficultyNormal,
	"hard":         DifficultyHard,
	"expert":       DifficultyHard,
}

// ParsePreset accepts easy/normal/hard and the classic Minesweeper names
// beginner/intermediate/expert. An empty string selects DifficultyDefault.
func ParsePreset(s string) (DifficultyPreset, error) {
	p, ok := presetAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", s)
	}
	return p, nil
}

// ApplySnakePreset changes the snake speed.
func ApplySnakePreset(cfg *SnakeConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.TickMS = 200
	case DifficultyNormal:
		cfg.TickMS = 150
	case DifficultyHard:
		cfg.TickMS = 90
	}
}

// ApplyMinesweeperPreset switches between the three classic boards.
func ApplyMinesweeperPreset(cfg *MinesweeperConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Board = BoardConfig{Width: 9, Height: 9}
		cfg.Mines = 10
	case DifficultyNormal:
		cfg.Board = BoardConfig{Width: 16, Height: 16}
		cfg.Mines = 40
	case DifficultyHard:
		cfg.Board = BoardConfig{Width: 30, Height: 16}
		cfg.Mines = 99
	}
}
