// Package board implements the fixed 6x7 Connect Four grid: gravity drops,
// four-in-a-row detection and a compact text encoding.
// It has no external dependencies so the rules stay pure and testable.
package board

const (
	Rows    = 6
	Columns = 7
	ToWin   = 4
)

// Cells is the total number of cells on the grid.
const Cells = Rows * Columns

// Player identifies one of the two fixed sides.
type Player uint8

const (
	PlayerA Player = iota + 1
	PlayerB
)

// Other returns the opposing player.
func (p Player) Other() Player {
	if p == PlayerA {
		return PlayerB
	}
	return PlayerA
}

// Valid reports whether p is one of the two players.
func (p Player) Valid() bool {
	return p == PlayerA || p == PlayerB
}

// String returns "A" or "B".
func (p Player) String() string {
	switch p {
	case PlayerA:
		return "A"
	case PlayerB:
		return "B"
	default:
		return "?"
	}
}

// Cell is the content of a single grid position.
type Cell uint8

const (
	Empty Cell = iota
	CellA
	CellB
)

// CellOf returns the cell value occupied by p.
func CellOf(p Player) Cell {
	return Cell(p)
}

// Player returns the owner of an occupied cell.
func (c Cell) Player() (Player, bool) {
	switch c {
	case CellA:
		return PlayerA, true
	case CellB:
		return PlayerB, true
	default:
		return 0, false
	}
}

// Pos is a grid position. Row 0 is the top row.
type Pos struct {
	Row, Col int
}

// Line is a run of four positions that completes a win.
type Line [ToWin]Pos

// Contains reports whether the line passes through (row, col).
func (l Line) Contains(row, col int) bool {
	for _, p := range l {
		if p.Row == row && p.Col == col {
			return true
		}
	}
	return false
}

// Board is the 6x7 grid. The zero value is an empty board.
type Board struct {
	cells [Rows][Columns]Cell
	count int
}

// New returns an empty board.
func New() *Board {
	return &Board{}
}

// Reset empties every cell.
func (b *Board) Reset() {
	*b = Board{}
}

// Cell returns the content at (row, col). Out-of-range positions read as Empty.
func (b *Board) Cell(row, col int) Cell {
	if row < 0 || row >= Rows || col < 0 || col >= Columns {
		return Empty
	}
	return b.cells[row][col]
}

// Count returns the number of occupied cells.
func (b *Board) Count() int {
	return b.count
}

// IsFull reports whether all 42 cells are occupied.
func (b *Board) IsFull() bool {
	return b.count == Cells
}

// ColumnFull reports whether col has no empty cell left.
// Out-of-range columns are reported as full.
func (b *Board) ColumnFull(col int) bool {
	if col < 0 || col >= Columns {
		return true
	}
	return b.cells[0][col] != Empty
}

// ValidColumns returns the columns that can still accept a token.
func (b *Board) ValidColumns() []int {
	cols := make([]int, 0, Columns)
	for c := range Columns {
		if !b.ColumnFull(c) {
			cols = append(cols, c)
		}
	}
	return cols
}

// Drop places p's token in the lowest empty cell of col and returns its row.
// It returns ok=false and leaves the board untouched when col is out of
// range or already full.
func (b *Board) Drop(col int, p Player) (row int, ok bool) {
	if col < 0 || col >= Columns || !p.Valid() {
		return -1, false
	}
	for r := Rows - 1; r >= 0; r-- {
		if b.cells[r][col] == Empty {
			b.cells[r][col] = CellOf(p)
			b.count++
			return r, true
		}
	}
	return -1, false
}

// directions are the four line orientations: horizontal, vertical,
// down-right and up-right.
var directions = [4]Pos{
	{Row: 0, Col: 1},
	{Row: 1, Col: 0},
	{Row: 1, Col: 1},
	{Row: -1, Col: 1},
}

// HasFourInARow reports whether p owns any four consecutive cells in a row,
// column or diagonal.
func (b *Board) HasFourInARow(p Player) bool {
	_, ok := b.FindFour(p)
	return ok
}

// FindFour returns the first four-in-a-row owned by p.
// Only windows lying entirely inside the grid are considered.
func (b *Board) FindFour(p Player) (Line, bool) {
	want := CellOf(p)
	if !p.Valid() {
		return Line{}, false
	}

	for _, d := range directions {
		for r := range Rows {
			for c := range Columns {
				endR := r + d.Row*(ToWin-1)
				endC := c + d.Col*(ToWin-1)
				if endR < 0 || endR >= Rows || endC < 0 || endC >= Columns {
					continue
				}

				var line Line
				match := true
				for i := range ToWin {
					pos := Pos{Row: r + d.Row*i, Col: c + d.Col*i}
					if b.cells[pos.Row][pos.Col] != want {
						match = false
						break
					}
					line[i] = pos
				}
				if match {
					return line, true
				}
			}
		}
	}
	return Line{}, false
}
