package game

import "strings"

// Snapshot captures the complete controller state for tests and for
// recording finished matches.
type Snapshot struct {
	State      State
	Current    string // "A" or "B"
	Moves      int
	Winner     string // "A", "B", or empty (none or draw)
	Board      string // board.Board String encoding
	Sequence   string // Columns played, one digit per move
	Cursor     int
	Terminated bool
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	snap := Snapshot{
		State:      c.state,
		Current:    c.current.String(),
		Moves:      c.moves,
		Board:      c.board.String(),
		Sequence:   encodeSequence(c.history),
		Cursor:     c.cursor,
		Terminated: c.terminated,
	}
	if c.winner.Valid() {
		snap.Winner = c.winner.String()
	}
	return snap
}

// encodeSequence writes each column as a single digit (0-6).
func encodeSequence(cols []int) string {
	var sb strings.Builder
	sb.Grow(len(cols))
	for _, col := range cols {
		sb.WriteByte(byte('0' + col))
	}
	return sb.String()
}
