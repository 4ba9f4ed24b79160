package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Env holds process-level settings read from the environment.
// Command-line flags take precedence over these values.
type Env struct {
	DBPath      string // ARCADE_DB: sqlite file for scores and tournaments
	DatabaseURL string // ARCADE_DATABASE_URL: postgres DSN; selects the postgres backend when set
	LogLevel    string // ARCADE_LOG_LEVEL
	APIAddr     string // ARCADE_API_ADDR
	SSHAddr     string // ARCADE_SSH_ADDR
	Player      string // ARCADE_PLAYER: name used for local score submissions
}

// LoadEnv reads the given .env files (default ".env") into the process
// environment without overriding variables that are already set, then
// collects the arcade settings. Missing files are not an error.
func LoadEnv(files ...string) (Env, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Env{}, err
		}
	}

	return Env{
		DBPath:      getenv("ARCADE_DB", "~/.arcade/scores.db"),
		DatabaseURL: os.Getenv("ARCADE_DATABASE_URL"),
		LogLevel:    getenv("ARCADE_LOG_LEVEL", "info"),
		APIAddr:     getenv("ARCADE_API_ADDR", ":8080"),
		SSHAddr:     getenv("ARCADE_SSH_ADDR", ":23234"),
		Player:      os.Getenv("ARCADE_PLAYER"),
	}, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
