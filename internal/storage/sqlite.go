// Package storage provides SQLite-based persistence for finished matches.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for match history.
type Store struct {
	db *sql.DB
}

// Match is one finished game.
type Match struct {
	ID        int64
	MatchID   string
	PlayerA   string
	PlayerB   string
	Winner    string // "A", "B", or empty for a draw
	Moves     int
	Sequence  string // Columns played, one digit per move
	Board     string // Final board encoding
	Source    string // "local" or "ssh:<user>"
	Duration  int    // Duration in seconds
	CreatedAt time.Time
}

// Draw reports whether the match ended without a winner.
func (m Match) Draw() bool {
	return m.Winner == ""
}

// WinnerName returns the winning player's name, or empty on a draw.
func (m Match) WinnerName() string {
	switch m.Winner {
	case "A":
		return m.PlayerA
	case "B":
		return m.PlayerB
	default:
		return ""
	}
}

// Tally summarises all recorded matches.
type Tally struct {
	Games      int
	WinsA      int
	WinsB      int
	Draws      int
	LastPlayed time.Time // Zero when no matches exist
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL UNIQUE,
			player_a TEXT NOT NULL,
			player_b TEXT NOT NULL,
			winner TEXT NOT NULL DEFAULT '' CHECK (winner IN ('', 'A', 'B')),
			moves INTEGER NOT NULL,
			sequence TEXT NOT NULL,
			board TEXT NOT NULL,
			source TEXT NOT NULL DEFAULT 'local',
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_matches_created_at ON matches(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_matches_source ON matches(source);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveMatch records a finished match.
// Returns the ID of the inserted record.
func (s *Store) SaveMatch(m Match) (int64, error) {
	if m.MatchID == "" {
		return 0, errors.New("storage: cannot save match: missing match id")
	}
	switch m.Winner {
	case "", "A", "B":
	default:
		return 0, fmt.Errorf("storage: cannot save match: unknown winner %q", m.Winner)
	}
	if m.Source == "" {
		m.Source = "local"
	}

	res, err := s.db.Exec(
		`INSERT INTO matches
		 (match_id, player_a, player_b, winner, moves, sequence, board, source, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.MatchID,
		m.PlayerA,
		m.PlayerB,
		m.Winner,
		m.Moves,
		m.Sequence,
		m.Board,
		m.Source,
		m.Duration,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save match: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const matchColumns = `id, match_id, player_a, player_b, winner, moves, sequence,
		        board, source, duration_secs, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanMatch(row scanner) (Match, error) {
	var m Match
	var createdAt any

	err := row.Scan(
		&m.ID,
		&m.MatchID,
		&m.PlayerA,
		&m.PlayerB,
		&m.Winner,
		&m.Moves,
		&m.Sequence,
		&m.Board,
		&m.Source,
		&m.Duration,
		&createdAt,
	)
	if err != nil {
		return m, err
	}
	m.CreatedAt = parseTime(createdAt)
	return m, nil
}

// parseTime handles both time.Time and string datetimes.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339Nano} {
			if parsed, err := time.Parse(layout, v); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}

// MatchByID retrieves a match by its match ID.
// Returns nil without an error when the match does not exist.
func (s *Store) MatchByID(matchID string) (*Match, error) {
	m, err := scanMatch(s.db.QueryRow(
		`SELECT `+matchColumns+`
		 FROM matches
		 WHERE match_id = ?`,
		matchID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query match: %w", err)
	}
	return &m, nil
}

// RecentMatches retrieves the most recent matches, newest first.
func (s *Store) RecentMatches(limit int) ([]Match, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+matchColumns+`
		 FROM matches
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		matches = append(matches, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return matches, nil
}

// Tally counts games, wins per side and draws across all matches.
func (s *Store) Tally() (Tally, error) {
	var t Tally
	var last any

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN winner = 'A' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN winner = 'B' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN winner = '' THEN 1 ELSE 0 END), 0),
		        MAX(created_at)
		 FROM matches`,
	).Scan(&t.Games, &t.WinsA, &t.WinsB, &t.Draws, &last)
	if err != nil {
		return t, fmt.Errorf("storage: cannot tally matches: %w", err)
	}

	t.LastPlayed = parseTime(last)
	return t, nil
}

// ClearMatches deletes all recorded matches.
func (s *Store) ClearMatches() error {
	_, err := s.db.Exec("DELETE FROM matches")
	if err != nil {
		return fmt.Errorf("storage: cannot clear matches: %w", err)
	}
	return nil
}
