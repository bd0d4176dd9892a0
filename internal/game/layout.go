package game

import (
	"github.com/vovakirdan/tui-connect4/internal/board"
	"github.com/vovakirdan/tui-connect4/internal/core"
)

const (
	cellWidth  = 4 // Width of each cell including its left border
	cellHeight = 2 // Height of each cell including its top border

	boardW = board.Columns*cellWidth + 1 // +1 for the right border
	boardH = board.Rows*cellHeight + 1   // +1 for the bottom border

	hudHeight    = 3 // Title, turn line, cursor marker
	footerHeight = 1 // Column numbers

	minScreenW = boardW + 2
	minScreenH = hudHeight + boardH + footerHeight
)

// Layout places the board on a screen of a given size.
type Layout struct {
	Screen core.Rect
	Board  core.Rect
	Top    int // First HUD row
	Fits   bool
}

// NewLayout centres the board and HUD on a w x h screen.
func NewLayout(w, h int) Layout {
	top := core.Max((h-minScreenH)/2, 0)
	x := core.Max((w-boardW)/2, 0)

	return Layout{
		Screen: core.NewRect(0, 0, w, h),
		Board:  core.NewRect(x, top+hudHeight, boardW, boardH),
		Top:    top,
		Fits:   w >= minScreenW && h >= minScreenH,
	}
}

// ColumnAt maps a pointer x coordinate to a board column.
// Points left of the board give -1; points right of the last column give
// an index >= board.Columns. Either is rejected as a move.
func (l Layout) ColumnAt(x int) int {
	if x < l.Board.X {
		return -1
	}
	return (x - l.Board.X) / cellWidth
}

// CellCenter returns the screen position where the token at (row, col) is drawn.
func (l Layout) CellCenter(row, col int) (int, int) {
	return l.Board.X + col*cellWidth + cellWidth/2, l.Board.Y + row*cellHeight + 1
}
