package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testMatch(id, winner string) Match {
	return Match{
		MatchID:  id,
		PlayerA:  "X",
		PlayerB:  "O",
		Winner:   winner,
		Moves:    7,
		Sequence: "0101010",
		Board:    "......./......./A....../AB...../AB...../AB.....",
		Duration: 12,
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file and its directory were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsMatches(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveMatch(testMatch("m-1", "A")); err != nil {
		t.Fatalf("SaveMatch() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	m, err := store.MatchByID("m-1")
	if err != nil || m == nil {
		t.Fatalf("MatchByID() = %v, %v after reopen", m, err)
	}
}

func TestSaveAndFetchMatch(t *testing.T) {
	store := openTestStore(t)

	want := testMatch("match-42", "A")
	want.Source = "ssh:alice"

	id, err := store.SaveMatch(want)
	if err != nil {
		t.Fatalf("SaveMatch() failed: %v", err)
	}
	if id <= 0 {
		t.Errorf("expected positive ID, got %d", id)
	}

	got, err := store.MatchByID("match-42")
	if err != nil {
		t.Fatalf("MatchByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected match, got nil")
	}

	if got.ID != id || got.PlayerA != "X" || got.PlayerB != "O" || got.Winner != "A" {
		t.Errorf("match = %+v", got)
	}
	if got.Moves != 7 || got.Sequence != want.Sequence || got.Board != want.Board {
		t.Errorf("match record = %+v", got)
	}
	if got.Source != "ssh:alice" || got.Duration != 12 {
		t.Errorf("source = %q duration = %d", got.Source, got.Duration)
	}
	if got.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}
	if got.WinnerName() != "X" || got.Draw() {
		t.Errorf("WinnerName() = %q Draw() = %v", got.WinnerName(), got.Draw())
	}
}

func TestSaveMatchDefaultsSource(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveMatch(testMatch("local-1", "")); err != nil {
		t.Fatalf("SaveMatch() failed: %v", err)
	}
	m, err := store.MatchByID("local-1")
	if err != nil || m == nil {
		t.Fatalf("MatchByID() = %v, %v", m, err)
	}
	if m.Source != "local" {
		t.Errorf("source = %q, expected local", m.Source)
	}
	if !m.Draw() || m.WinnerName() != "" {
		t.Errorf("expected a draw, winner = %q", m.Winner)
	}
}

func TestSaveMatchRejects(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveMatch(testMatch("", "A")); err == nil {
		t.Error("expected error for missing match id")
	}
	if _, err := store.SaveMatch(testMatch("bad-winner", "C")); err == nil {
		t.Error("expected error for unknown winner")
	}
	if _, err := store.SaveMatch(testMatch("dup", "B")); err != nil {
		t.Fatalf("SaveMatch() failed: %v", err)
	}
	if _, err := store.SaveMatch(testMatch("dup", "B")); err == nil {
		t.Error("expected error for duplicate match id")
	}
}

func TestMatchByIDNotFound(t *testing.T) {
	store := openTestStore(t)

	m, err := store.MatchByID("nope")
	if err != nil {
		t.Fatalf("MatchByID() failed: %v", err)
	}
	if m != nil {
		t.Errorf("expected nil for missing match, got %+v", m)
	}
}

func TestRecentMatches(t *testing.T) {
	store := openTestStore(t)

	for _, id := range []string{"first", "second", "third"} {
		if _, err := store.SaveMatch(testMatch(id, "B")); err != nil {
			t.Fatalf("SaveMatch(%s) failed: %v", id, err)
		}
	}

	matches, err := store.RecentMatches(2)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].MatchID != "third" || matches[1].MatchID != "second" {
		t.Errorf("order = %s, %s; expected newest first", matches[0].MatchID, matches[1].MatchID)
	}

	all, err := store.RecentMatches(0)
	if err != nil {
		t.Fatalf("RecentMatches(0) failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected default limit to return all 3, got %d", len(all))
	}
}

func TestTally(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Tally()
	if err != nil {
		t.Fatalf("Tally() failed: %v", err)
	}
	if empty != (Tally{}) {
		t.Errorf("empty tally = %+v", empty)
	}

	for i, winner := range []string{"A", "A", "B", "", "A"} {
		m := testMatch(string(rune('a'+i)), winner)
		if _, err := store.SaveMatch(m); err != nil {
			t.Fatalf("SaveMatch() failed: %v", err)
		}
	}

	tally, err := store.Tally()
	if err != nil {
		t.Fatalf("Tally() failed: %v", err)
	}
	if tally.Games != 5 || tally.WinsA != 3 || tally.WinsB != 1 || tally.Draws != 1 {
		t.Errorf("tally = %+v", tally)
	}
	if tally.LastPlayed.IsZero() {
		t.Error("expected last played time")
	}
	if time.Since(tally.LastPlayed) > 24*time.Hour {
		t.Errorf("last played = %v, expected recent", tally.LastPlayed)
	}
}

func TestClearMatches(t *testing.T) {
	store := openTestStore(t)

	for _, id := range []string{"one", "two"} {
		if _, err := store.SaveMatch(testMatch(id, "A")); err != nil {
			t.Fatalf("SaveMatch() failed: %v", err)
		}
	}

	if err := store.ClearMatches(); err != nil {
		t.Fatalf("ClearMatches() failed: %v", err)
	}

	matches, err := store.RecentMatches(10)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("expected no matches after clear, got %d", len(matches))
	}
}
