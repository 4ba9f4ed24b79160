// arcade is a terminal arcade with Snake, Tetris and Minesweeper, shared
// leaderboards and pay-to-enter tournaments.
//
// Usage:
//
//	arcade list                     - List available games
//	arcade play <game>              - Play a game
//	arcade menu                     - Start menu to pick games interactively
//	arcade serve                    - Start SSH server for remote play
//	arcade api                      - Start the HTTP leaderboard and tournament API
//	arcade scores [game]            - Show high scores
//	arcade stats                    - Show per-game statistics
//	arcade tournament <cmd> <game>  - Inspect, enter or reset tournaments
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set sqlite database path (default: ~/.arcade/scores.db)
//	--database-url <s>  - Use Postgres instead of sqlite
//	--log-level <lvl>   - debug, info, warn or error
//
// Unset flags fall back to ARCADE_* environment variables, which may also
// come from a .env file in the working directory.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gor-arcade/internal/config"

	// Import games to register them
	_ "github.com/vovakirdan/gor-arcade/internal/games/minesweeper"
	_ "github.com/vovakirdan/gor-arcade/internal/games/snake"
	_ "github.com/vovakirdan/gor-arcade/internal/games/tetris"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagDBURL    string
	flagLogLevel string
	flagPlayer   string

	env config.Env
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Arcade - Snake, Tetris and Minesweeper in your terminal",
	Long: `Arcade is a terminal gaming platform with shared leaderboards and
pay-to-enter tournaments.

Available commands:
  list        - Show all available games
  play        - Play a specific game directly
  menu        - Interactive game picker menu
  serve       - Start SSH server for remote play
  api         - Serve leaderboards and tournaments over HTTP
  scores      - View high scores
  stats       - View per-game statistics
  tournament  - Inspect, enter or reset tournaments

Examples:
  arcade list
  arcade play tetris
  arcade play minesweeper --difficulty expert
  arcade menu
  arcade serve --ssh :2222
  arcade api --addr :8080
  arcade scores snake`,
	SilenceUsage:      true,
	PersistentPreRunE: loadEnv,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to sqlite database (env ARCADE_DB)")
	rootCmd.PersistentFlags().StringVar(&flagDBURL, "database-url", "", "Postgres DSN; overrides --db (env ARCADE_DATABASE_URL)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error (env ARCADE_LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", "", "Player name for submitted scores (env ARCADE_PLAYER)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(tournamentCmd)
}

// loadEnv reads .env and the ARCADE_* variables into flags the user did
// not set.
func loadEnv(cmd *cobra.Command, _ []string) error {
	var err error
	env, err = config.LoadEnv()
	if err != nil {
		return fmt.Errorf("cannot load .env: %w", err)
	}

	flags := cmd.Flags()
	if !flags.Changed("db") {
		flagDBPath = env.DBPath
	}
	if !flags.Changed("database-url") {
		flagDBURL = env.DatabaseURL
	}
	if !flags.Changed("log-level") {
		flagLogLevel = env.LogLevel
	}
	if !flags.Changed("player") {
		flagPlayer = env.Player
	}
	return nil
}
