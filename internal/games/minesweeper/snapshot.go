package minesweeper

// Snapshot captures the engine state for determinism testing and replay.
type Snapshot struct {
	Status         Status
	Revealed       int
	Flagged        int
	MinesRemaining int
	Elapsed        int
	MineLayout     string
}

// Snapshot returns the current engine snapshot. MineLayout lists the grid
// row by row with '*' for mines and '.' otherwise.
func (e *Engine) Snapshot() Snapshot {
	layout := make([]byte, 0, e.cfg.Board.Cells()+e.cfg.Board.Height)
	for _, row := range e.cells {
		for _, c := range row {
			if c.IsMine {
				layout = append(layout, '*')
			} else {
				layout = append(layout, '.')
			}
		}
		layout = append(layout, '\n')
	}
	return Snapshot{
		Status:         e.status,
		Revealed:       e.revealed,
		Flagged:        e.flagged,
		MinesRemaining: e.MinesRemaining(),
		Elapsed:        e.ElapsedSeconds(),
		MineLayout:     string(layout),
	}
}
