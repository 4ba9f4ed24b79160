// Package config provides YAML-based game configuration loading, validation
// and difficulty presets for the arcade platform.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/gor-arcade/internal/core"
)

// BoardConfig is the size of a game board in cells.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Cells returns the number of cells on the board.
func (b BoardConfig) Cells() int {
	return b.Width * b.Height
}

func (b BoardConfig) validate() error {
	if b.Width <= 0 || b.Height <= 0 {
		return invalid("board must be positive, got %dx%d", b.Width, b.Height)
	}
	return nil
}

// SnakeConfig contains all configuration for the Snake game.
type SnakeConfig struct {
	Board            BoardConfig  `yaml:"board"`
	InitialBody      []core.Point `yaml:"initial_body"` // head first
	InitialDirection core.Point   `yaml:"initial_direction"`
	InitialFood      core.Point   `yaml:"initial_food"`
	FoodScore        int          `yaml:"food_score"`
	TickMS           int          `yaml:"tick_ms"`
}

// TickInterval returns the time between two snake moves.
func (c SnakeConfig) TickInterval() time.Duration {
	return time.Duration(c.TickMS) * time.Millisecond
}

// Validate rejects configurations the engine cannot run.
func (c SnakeConfig) Validate() error {
	if err := c.Board.validate(); err != nil {
		return err
	}
	if len(c.InitialBody) == 0 {
		return invalid("snake needs at least one body cell")
	}
	if len(c.InitialBody) >= c.Board.Cells() {
		return invalid("snake of length %d leaves no room for food on a %dx%d board",
			len(c.InitialBody), c.Board.Width, c.Board.Height)
	}
	seen := make(map[core.Point]bool, len(c.InitialBody))
	for _, p := range c.InitialBody {
		if !p.In(c.Board.Width, c.Board.Height) {
			return invalid("snake cell %v outside board", p)
		}
		if seen[p] {
			return invalid("snake cell %v repeated", p)
		}
		seen[p] = true
	}
	if !c.InitialDirection.IsUnit() {
		return invalid("initial direction %v is not a unit vector", c.InitialDirection)
	}
	if !c.InitialFood.In(c.Board.Width, c.Board.Height) || seen[c.InitialFood] {
		return invalid("initial food %v must be on a free board cell", c.InitialFood)
	}
	if c.FoodScore < 0 {
		return invalid("food score must not be negative")
	}
	if c.TickMS <= 0 {
		return invalid("tick_ms must be positive")
	}
	return nil
}

// PieceConfig describes one tetromino: its name, occupancy matrix and color.
type PieceConfig struct {
	Kind  string  `yaml:"kind"`
	Shape [][]int `yaml:"shape"`
	Color string  `yaml:"color"`
}

// SpeedConfig is the gravity formula: max(MinMS, BaseMS - (level-1)*StepMS).
type SpeedConfig struct {
	BaseMS        int `yaml:"base_ms"`
	StepMS        int `yaml:"step_ms"`
	MinMS         int `yaml:"min_ms"`
	LinesPerLevel int `yaml:"lines_per_level"`
}

// TetrisConfig contains all configuration for the Tetris game.
type TetrisConfig struct {
	Board      BoardConfig   `yaml:"board"`
	Pieces     []PieceConfig `yaml:"pieces"`
	LineScores []int         `yaml:"line_scores"` // indexed by lines cleared at once
	Speed      SpeedConfig   `yaml:"speed"`
}

// Validate rejects configurations the engine cannot run.
func (c TetrisConfig) Validate() error {
	if err := c.Board.validate(); err != nil {
		return err
	}
	if len(c.Pieces) == 0 {
		return invalid("at least one piece is required")
	}
	extent := 0
	for _, p := range c.Pieces {
		if err := validateShape(p); err != nil {
			return err
		}
		// rotation swaps rows and columns, so both must fit either way
		size := core.Max(len(p.Shape), len(p.Shape[0]))
		if size > c.Board.Width || size > c.Board.Height {
			return invalid("piece %s does not fit a %dx%d board", p.Kind, c.Board.Width, c.Board.Height)
		}
		if _, err := core.ParseColor(p.Color); err != nil {
			return invalid("piece %s: %v", p.Kind, err)
		}
		extent = core.Max(extent, size)
	}
	if len(c.LineScores) < extent+1 {
		return invalid("line_scores needs %d entries, got %d", extent+1, len(c.LineScores))
	}
	if c.Speed.BaseMS <= 0 || c.Speed.MinMS <= 0 || c.Speed.StepMS < 0 {
		return invalid("speed values must be positive")
	}
	if c.Speed.LinesPerLevel <= 0 {
		return invalid("lines_per_level must be positive")
	}
	return nil
}

func validateShape(p PieceConfig) error {
	if len(p.Shape) == 0 || len(p.Shape[0]) == 0 {
		return invalid("piece %s has an empty shape", p.Kind)
	}
	filled := 0
	for _, row := range p.Shape {
		if len(row) != len(p.Shape[0]) {
			return invalid("piece %s shape is not rectangular", p.Kind)
		}
		for _, v := range row {
			if v != 0 && v != 1 {
				return invalid("piece %s shape must contain only 0 and 1", p.Kind)
			}
			filled += v
		}
	}
	if filled == 0 {
		return invalid("piece %s has no filled cells", p.Kind)
	}
	return nil
}

// MinesweeperConfig contains all configuration for the Minesweeper game.
type MinesweeperConfig struct {
	Board BoardConfig `yaml:"board"`
	Mines int         `yaml:"mines"`
}

// Validate rejects boards that cannot hold the requested mines outside the
// 3x3 safe opening.
func (c MinesweeperConfig) Validate() error {
	if err := c.Board.validate(); err != nil {
		return err
	}
	if c.Mines <= 0 {
		return invalid("mines must be positive, got %d", c.Mines)
	}
	if c.Mines > c.Board.Cells()-9 {
		return invalid("%d mines do not fit a %dx%d board with a safe opening",
			c.Mines, c.Board.Width, c.Board.Height)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", core.ErrInvalidConfig, fmt.Sprintf(format, args...))
}
