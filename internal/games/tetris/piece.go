package tetris

import (
	"github.com/vovakirdan/gor-arcade/internal/core"
)

// Board is the settled playfield, indexed [row][col]; 1 marks a filled cell.
type Board [][]int

// NewBoard returns an empty width×height board.
func NewBoard(width, height int) Board {
	b := make(Board, height)
	for y := range b {
		b[y] = make([]int, width)
	}
	return b
}

// Width returns the number of columns.
func (b Board) Width() int {
	if len(b) == 0 {
		return 0
	}
	return len(b[0])
}

// Height returns the number of rows.
func (b Board) Height() int { return len(b) }

// Clone returns a deep copy of the board.
func (b Board) Clone() Board {
	c := make(Board, len(b))
	for y := range b {
		c[y] = append([]int(nil), b[y]...)
	}
	return c
}

// Piece is a tetromino with its anchor. Position is the top-left corner of
// the shape matrix and may have a negative Y while the piece is falling.
type Piece struct {
	Kind     string
	Shape    [][]int
	Color    core.Color
	Position core.Point
}

// Cells returns the board coordinates covered by the piece.
func (p Piece) Cells() []core.Point {
	var cells []core.Point
	for y, row := range p.Shape {
		for x, v := range row {
			if v != 0 {
				cells = append(cells, core.Point{X: p.Position.X + x, Y: p.Position.Y + y})
			}
		}
	}
	return cells
}

// Rotated returns the piece turned 90° clockwise around its anchor.
func (p Piece) Rotated() Piece {
	p.Shape = Rotate(p.Shape)
	return p
}

// Moved returns the piece shifted by offset.
func (p Piece) Moved(offset core.Point) Piece {
	p.Position = p.Position.Add(offset)
	return p
}

// Rotate turns a shape matrix 90° clockwise: transpose, then reverse each row.
func Rotate(shape [][]int) [][]int {
	if len(shape) == 0 {
		return nil
	}
	rows, cols := len(shape), len(shape[0])
	out := make([][]int, cols)
	for i := range out {
		out[i] = make([]int, rows)
		for j := range out[i] {
			out[i][j] = shape[rows-1-j][i]
		}
	}
	return out
}

func copyShape(shape [][]int) [][]int {
	out := make([][]int, len(shape))
	for y := range shape {
		out[y] = append([]int(nil), shape[y]...)
	}
	return out
}

// CanPlace reports whether p shifted by offset fits on board. Cells above
// the top edge are allowed; cells left, right or below the board and cells
// overlapping filled board cells are not.
func CanPlace(p Piece, board Board, offset core.Point) bool {
	w, h := board.Width(), board.Height()
	for _, c := range p.Moved(offset).Cells() {
		if c.X < 0 || c.X >= w || c.Y >= h {
			return false
		}
		if c.Y >= 0 && board[c.Y][c.X] != 0 {
			return false
		}
	}
	return true
}

// Stamp writes the piece's on-board cells into the board.
func Stamp(p Piece, board Board) {
	for _, c := range p.Cells() {
		if c.In(board.Width(), board.Height()) {
			board[c.Y][c.X] = 1
		}
	}
}

// ClearLines removes every full row, scanning from the bottom up and
// inserting an empty row on top for each removed one. It returns the
// number of rows cleared.
func ClearLines(board Board) int {
	cleared := 0
	for y := board.Height() - 1; y >= 0; {
		if !full(board[y]) {
			y--
			continue
		}
		copy(board[1:y+1], board[:y])
		board[0] = make([]int, board.Width())
		cleared++
		// the row that moved into y has not been checked yet
	}
	return cleared
}

func full(row []int) bool {
	for _, v := range row {
		if v == 0 {
			return false
		}
	}
	return true
}
