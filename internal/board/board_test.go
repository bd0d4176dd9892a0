package board

import (
	"errors"
	"testing"
)

// set writes a cell directly, bypassing gravity.
func (b *Board) set(row, col int, p Player) {
	if b.cells[row][col] == Empty {
		b.count++
	}
	b.cells[row][col] = CellOf(p)
}

func TestDropFillsBottomUp(t *testing.T) {
	for col := range Columns {
		for _, p := range []Player{PlayerA, PlayerB} {
			b := New()
			for want := Rows - 1; want >= 0; want-- {
				row, ok := b.Drop(col, p)
				if !ok {
					t.Fatalf("Drop(%d, %v) failed with row %d still empty", col, p, want)
				}
				if row != want {
					t.Errorf("Drop(%d, %v) row = %d, expected %d", col, p, row, want)
				}
				if b.Cell(row, col) != CellOf(p) {
					t.Errorf("Cell(%d, %d) = %v, expected %v", row, col, b.Cell(row, col), CellOf(p))
				}
			}

			before := b.String()
			if _, ok := b.Drop(col, p); ok {
				t.Errorf("Drop(%d, %v) on full column should fail", col, p)
			}
			if b.String() != before {
				t.Errorf("failed Drop mutated board: %s -> %s", before, b.String())
			}
			if b.Count() != Rows {
				t.Errorf("Count() = %d, expected %d", b.Count(), Rows)
			}
		}
	}
}

func TestDropOutOfRange(t *testing.T) {
	b := New()
	b.Drop(3, PlayerA)
	before := b.String()

	for _, col := range []int{-100, -1, Columns, Columns + 1, 1000} {
		if row, ok := b.Drop(col, PlayerB); ok {
			t.Errorf("Drop(%d) = (%d, true), expected failure", col, row)
		}
	}
	if b.String() != before {
		t.Errorf("out-of-range Drop mutated board: %s -> %s", before, b.String())
	}
	if b.Count() != 1 {
		t.Errorf("Count() = %d, expected 1", b.Count())
	}
}

func TestDropInvalidPlayer(t *testing.T) {
	b := New()
	if _, ok := b.Drop(0, 0); ok {
		t.Error("Drop with zero player should fail")
	}
	if b.Count() != 0 {
		t.Error("Drop with zero player should not mutate the board")
	}
}

func TestHasFourInARowHorizontal(t *testing.T) {
	b := New()
	b.set(0, 0, PlayerA)
	b.set(0, 1, PlayerA)
	b.set(0, 2, PlayerA)
	if b.HasFourInARow(PlayerA) {
		t.Error("three in a row with (0,3) empty should not win")
	}

	b.set(0, 3, PlayerA)
	if !b.HasFourInARow(PlayerA) {
		t.Error("(0,0)-(0,3) should be four in a row")
	}
	if b.HasFourInARow(PlayerB) {
		t.Error("opponent should not be reported as winner")
	}
}

func TestHasFourInARowDiagonal(t *testing.T) {
	b := New()
	b.set(3, 0, PlayerB)
	b.set(2, 1, PlayerB)
	b.set(1, 2, PlayerB)
	b.set(0, 3, PlayerB)

	line, ok := b.FindFour(PlayerB)
	if !ok {
		t.Fatal("(3,0),(2,1),(1,2),(0,3) should be four in a row")
	}
	for _, p := range []Pos{{3, 0}, {2, 1}, {1, 2}, {0, 3}} {
		if !line.Contains(p.Row, p.Col) {
			t.Errorf("winning line %v should contain %v", line, p)
		}
	}
}

func TestHasFourInARowOrientations(t *testing.T) {
	tests := []struct {
		name  string
		cells []Pos
		want  bool
	}{
		{"vertical", []Pos{{5, 6}, {4, 6}, {3, 6}, {2, 6}}, true},
		{"horizontal bottom right", []Pos{{5, 3}, {5, 4}, {5, 5}, {5, 6}}, true},
		{"down-right diagonal", []Pos{{2, 3}, {3, 4}, {4, 5}, {5, 6}}, true},
		{"up-right diagonal corner", []Pos{{5, 3}, {4, 4}, {3, 5}, {2, 6}}, true},
		{"broken horizontal", []Pos{{5, 0}, {5, 1}, {5, 3}, {5, 4}}, false},
		{"no wraparound", []Pos{{4, 5}, {4, 6}, {5, 0}, {5, 1}}, false},
		{"three vertical", []Pos{{5, 0}, {4, 0}, {3, 0}}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := New()
			for _, p := range tc.cells {
				b.set(p.Row, p.Col, PlayerA)
			}
			if got := b.HasFourInARow(PlayerA); got != tc.want {
				t.Errorf("HasFourInARow() = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestFourAfterRepeatedDrops(t *testing.T) {
	b := New()
	for i := range 3 {
		b.Drop(0, PlayerA)
		if b.HasFourInARow(PlayerA) {
			t.Fatalf("four reported after %d drops", i+1)
		}
	}
	b.Drop(0, PlayerA)
	if !b.HasFourInARow(PlayerA) {
		t.Error("four drops in column 0 should win")
	}
}

func TestIsFull(t *testing.T) {
	b := New()
	for i := range Cells {
		if b.IsFull() {
			t.Fatalf("IsFull() true after %d drops", i)
		}
		col := i % Columns
		p := PlayerA
		if (i/Columns)%2 == 1 {
			p = PlayerB
		}
		if _, ok := b.Drop(col, p); !ok {
			t.Fatalf("Drop(%d) failed at step %d", col, i)
		}
	}
	if !b.IsFull() {
		t.Error("IsFull() should be true after 42 drops")
	}
	if len(b.ValidColumns()) != 0 {
		t.Errorf("ValidColumns() = %v, expected none", b.ValidColumns())
	}
}

func TestReset(t *testing.T) {
	b := New()
	b.Drop(2, PlayerA)
	b.Drop(2, PlayerB)
	b.Reset()

	if b.Count() != 0 {
		t.Errorf("Count() after Reset = %d, expected 0", b.Count())
	}
	for r := range Rows {
		for c := range Columns {
			if b.Cell(r, c) != Empty {
				t.Errorf("Cell(%d, %d) after Reset = %v, expected Empty", r, c, b.Cell(r, c))
			}
		}
	}
}

func TestPlayerOther(t *testing.T) {
	if PlayerA.Other() != PlayerB || PlayerB.Other() != PlayerA {
		t.Error("Other() should alternate between the two players")
	}
}

func TestEncodingRoundTrip(t *testing.T) {
	b := New()
	b.Drop(0, PlayerA)
	b.Drop(0, PlayerB)
	b.Drop(6, PlayerA)

	s := b.String()
	expected := "......./......./......./......./B....../A.....A"
	if s != expected {
		t.Errorf("String() = %q, expected %q", s, expected)
	}

	parsed, err := Parse(s)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if parsed.String() != s || parsed.Count() != 3 {
		t.Errorf("Parse() = %q (count %d), expected %q (count 3)", parsed.String(), parsed.Count(), s)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"too few rows", "......./.......", ErrMalformed},
		{"short row", "....../......./......./......./......./.......", ErrMalformed},
		{"bad rune", "......./......./......./......./......./...X...", ErrMalformed},
		{"floating token", "......./......./......./A....../......./.......", ErrFloating},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.input)
			if !errors.Is(err, tc.want) {
				t.Errorf("Parse() error = %v, expected %v", err, tc.want)
			}
		})
	}
}

func TestParseNewlineRows(t *testing.T) {
	input := `
.......
.......
.......
.......
.......
...A...`
	b, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if b.Cell(5, 3) != CellA {
		t.Errorf("Cell(5, 3) = %v, expected CellA", b.Cell(5, 3))
	}
}
