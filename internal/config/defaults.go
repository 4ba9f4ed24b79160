package config

import (
	_ "embed"

	"github.com/vovakirdan/gor-arcade/internal/core"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

//go:embed defaults/minesweeper.yaml
var defaultMinesweeperYAML []byte

// DefaultSnakeConfig returns the default Snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Board:            BoardConfig{Width: 20, Height: 20},
		InitialBody:      []core.Point{{X: 10, Y: 10}},
		InitialDirection: core.Up,
		InitialFood:      core.Point{X: 15, Y: 15},
		FoodScore:        10,
		TickMS:           150,
	}
}

// DefaultTetrisConfig returns the default Tetris configuration with the
// seven standard tetrominoes.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Board: BoardConfig{Width: 10, Height: 20},
		Pieces: []PieceConfig{
			{Kind: "I", Color: "bright_cyan", Shape: [][]int{{1, 1, 1, 1}}},
			{Kind: "O", Color: "bright_yellow", Shape: [][]int{{1, 1}, {1, 1}}},
			{Kind: "T", Color: "purple", Shape: [][]int{{0, 1, 0}, {1, 1, 1}}},
			{Kind: "S", Color: "bright_green", Shape: [][]int{{0, 1, 1}, {1, 1, 0}}},
			{Kind: "Z", Color: "bright_red", Shape: [][]int{{1, 1, 0}, {0, 1, 1}}},
			{Kind: "J", Color: "blue", Shape: [][]int{{1, 0, 0}, {1, 1, 1}}},
			{Kind: "L", Color: "orange", Shape: [][]int{{0, 0, 1}, {1, 1, 1}}},
		},
		LineScores: []int{0, 40, 100, 300, 1200},
		Speed: SpeedConfig{
			BaseMS:        1000,
			StepMS:        100,
			MinMS:         50,
			LinesPerLevel: 10,
		},
	}
}

// DefaultMinesweeperConfig returns the default 9x9 board with 10 mines.
func DefaultMinesweeperConfig() MinesweeperConfig {
	return MinesweeperConfig{
		Board: BoardConfig{Width: 9, Height: 9},
		Mines: 10,
	}
}
