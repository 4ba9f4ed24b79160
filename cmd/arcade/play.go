package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gor-arcade/internal/config"
	"github.com/vovakirdan/gor-arcade/internal/core"
	"github.com/vovakirdan/gor-arcade/internal/games/minesweeper"
	"github.com/vovakirdan/gor-arcade/internal/games/snake"
	"github.com/vovakirdan/gor-arcade/internal/games/tetris"
	"github.com/vovakirdan/gor-arcade/internal/platform/tui"
	"github.com/vovakirdan/gor-arcade/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
	flagWallet     string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Arrows/WASD  - Steer (Snake), move (Tetris), move cursor (Minesweeper)
  Up/X         - Rotate (Tetris)
  Down         - Soft drop (Tetris)
  Space        - Hard drop (Tetris), reveal (Minesweeper)
  F            - Flag (Minesweeper)
  P            - Pause
  R            - Restart (after game over)
  B/Esc        - Leave (after game over or while paused)
  Q/Ctrl+C     - Quit

Difficulty options (Snake speed, Minesweeper board):
  easy   / beginner
  normal / intermediate
  hard   / expert

Without --difficulty, Snake and Minesweeper ask before starting.

Examples:
  arcade play snake
  arcade play minesweeper --difficulty expert
  arcade play tetris --config ./my-tetris.yaml
  arcade play tetris --player Ann --wallet 9xQe...`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().StringVar(&flagWallet, "wallet", "", "Wallet address stored with submitted scores")
}

// terminalConfig builds a runtime config sized to the current terminal.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	cfg.Player = playerName()
	return cfg
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]
	if err := requireGame(gameID); err != nil {
		return err
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}

	switch gameID {
	case snake.GameID:
		snake.SetConfigPath(flagConfig)
	case tetris.GameID:
		tetris.SetConfigPath(flagConfig)
	case minesweeper.GameID:
		minesweeper.SetConfigPath(flagConfig)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	cfg := terminalConfig()
	if preset == config.DifficultyDefault && tui.HasDifficulty(gameID) {
		chosen, err := tui.RunDifficultySelector(gameID, game.Title(), cfg)
		if err != nil {
			return err
		}
		if chosen == nil {
			return nil
		}
		preset = *chosen
	}
	cfg.Difficulty = string(preset)

	ctx := context.Background()
	reporter := core.Discard
	b, err := openBackend(ctx, io.Discard, "arcade")
	if err != nil {
		// Continue without storage - game still works
		warn("could not open scores database: %v", err)
	} else {
		defer b.Close()
		reporter = b.scores.Reporter(ctx, flagWallet)
	}

	if err := tui.Run(game, reporter, cfg); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
