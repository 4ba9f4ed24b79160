package snake

import "github.com/vovakirdan/gor-arcade/internal/core"

// Snapshot captures the engine state for determinism testing and replay.
type Snapshot struct {
	Moves     int
	Score     int
	SnakeLen  int
	Head      core.Point
	Direction core.Point
	Food      core.Point
	Status    Status
}

// Snapshot returns the current engine snapshot.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Moves:     e.moves,
		Score:     e.score,
		SnakeLen:  len(e.body),
		Head:      e.body[0],
		Direction: e.dir,
		Food:      e.food,
		Status:    e.status,
	}
}
