package board

import (
	"fmt"
	"strings"
)

// Error is a constant board error.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrMalformed Error = "board: malformed encoding"
	ErrFloating  Error = "board: token above an empty cell"
)

// Encoding runes, one per cell.
const (
	runeEmpty = '.'
	runeA     = 'A'
	runeB     = 'B'
)

// String encodes the board as six rows of seven runes, top row first,
// joined by '/'. Empty cells are '.', players are 'A' and 'B'.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow(Cells + Rows - 1)

	for r := range Rows {
		if r > 0 {
			sb.WriteByte('/')
		}
		for c := range Columns {
			switch b.cells[r][c] {
			case CellA:
				sb.WriteByte(runeA)
			case CellB:
				sb.WriteByte(runeB)
			default:
				sb.WriteByte(runeEmpty)
			}
		}
	}
	return sb.String()
}

// Parse rebuilds a board from the String encoding. Rows may be separated by
// '/' or newlines. Boards that break gravity are rejected with ErrFloating.
func Parse(s string) (*Board, error) {
	rows := strings.FieldsFunc(strings.TrimSpace(s), func(r rune) bool {
		return r == '/' || r == '\n'
	})
	if len(rows) != Rows {
		return nil, fmt.Errorf("%w: want %d rows, got %d", ErrMalformed, Rows, len(rows))
	}

	b := New()
	for r, row := range rows {
		row = strings.TrimSpace(row)
		if len(row) != Columns {
			return nil, fmt.Errorf("%w: row %d has %d cells", ErrMalformed, r, len(row))
		}
		for c := range Columns {
			switch row[c] {
			case runeEmpty:
			case runeA:
				b.cells[r][c] = CellA
				b.count++
			case runeB:
				b.cells[r][c] = CellB
				b.count++
			default:
				return nil, fmt.Errorf("%w: unexpected %q at row %d col %d", ErrMalformed, row[c], r, c)
			}
		}
	}

	for c := range Columns {
		for r := 0; r < Rows-1; r++ {
			if b.cells[r][c] != Empty && b.cells[r+1][c] == Empty {
				return nil, fmt.Errorf("%w: row %d col %d", ErrFloating, r, c)
			}
		}
	}

	return b, nil
}
