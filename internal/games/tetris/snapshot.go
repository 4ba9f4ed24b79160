package tetris

import "github.com/vovakirdan/gor-arcade/internal/core"

// Snapshot captures the engine state for determinism testing and replay.
type Snapshot struct {
	Landed   int
	Score    int
	Level    int
	Lines    int
	Current  string
	Position core.Point
	Next     string
	Filled   int
	Status   Status
}

// Snapshot returns the current engine snapshot.
func (e *Engine) Snapshot() Snapshot {
	filled := 0
	for _, row := range e.board {
		for _, v := range row {
			filled += v
		}
	}
	return Snapshot{
		Landed:   e.landed,
		Score:    e.score,
		Level:    e.level,
		Lines:    e.lines,
		Current:  e.current.Kind,
		Position: e.current.Position,
		Next:     e.next.Kind,
		Filled:   filled,
		Status:   e.status,
	}
}
