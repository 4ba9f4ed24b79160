package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int    // Screen width in characters
	ScreenH  int    // Screen height in characters
	TickRate int    // Platform ticks per second (default 60)
	Seed     int64  // RNG seed for deterministic gameplay
	Player   string // Label attached to reported results

	// Difficulty names a preset (easy/normal/hard) for games that have
	// them. Empty keeps the preset set on the game package.
	Difficulty string
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score (points, or elapsed seconds for timed games)
	GameOver bool // Whether the game has reached a terminal status
	Won      bool // Terminal status was a win
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each platform tick.
type StepResult struct {
	State GameState
	// Result is set on the step in which the game reached a terminal status.
	Result *Result
}
