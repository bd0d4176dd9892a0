package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-connect4/internal/board"
	"github.com/vovakirdan/tui-connect4/internal/platform/tui"
	"github.com/vovakirdan/tui-connect4/internal/storage"
)

var (
	flagPlain bool
	flagLimit int
	flagClear bool
	flagMatch string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse finished matches",
	Long: `Show recently finished matches with the overall win/draw tally.

Opens an interactive browser on a terminal; --plain (or a non-terminal
stdout) prints a table instead.

Examples:
  connect4 history
  connect4 history --plain --limit 5
  connect4 history --match 3f2c9a1e-...
  connect4 history --clear`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain table instead of the interactive browser")
	historyCmd.Flags().IntVar(&flagLimit, "limit", 50, "Number of matches to show")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded matches")
	historyCmd.Flags().StringVar(&flagMatch, "match", "", "Show one match by its ID, including the final board")
}

func runHistory(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	if cfg.Storage.Disabled {
		fmt.Fprintln(os.Stderr, "Error: match history is disabled (storage.disabled)")
		os.Exit(1)
	}

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening history database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearMatches(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			store.Close()
			os.Exit(1)
		}
		fmt.Println("Match history cleared.")
		return
	}

	if flagMatch != "" {
		m, err := store.MatchByID(flagMatch)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			store.Close()
			os.Exit(1)
		}
		if m == nil {
			fmt.Fprintf(os.Stderr, "Error: no match with ID %q\n", flagMatch)
			store.Close()
			os.Exit(1)
		}
		printMatch(*m)
		return
	}

	matches, err := store.RecentMatches(flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving matches: %v\n", err)
		store.Close()
		os.Exit(1)
	}
	tally, err := store.Tally()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving tally: %v\n", err)
		store.Close()
		os.Exit(1)
	}

	fd := int(os.Stdout.Fd())
	if flagPlain || !term.IsTerminal(fd) {
		printHistory(matches, tally, cfg.Players.A.Name, cfg.Players.B.Name)
		return
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(fd); termErr == nil {
		width, height = w, h
	}
	if err := tui.RunHistory(matches, tally, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		store.Close()
		os.Exit(1)
	}
}

// printHistory writes the matches as a plain text table.
func printHistory(matches []storage.Match, tally storage.Tally, nameA, nameB string) {
	fmt.Println("Match History")
	fmt.Println()

	if len(matches) == 0 {
		fmt.Println("No matches recorded yet.")
		fmt.Println()
		fmt.Println("Finish a game with 'connect4 play' to record one!")
		return
	}

	fmt.Println(tui.TallyText(tally, nameA, nameB))
	fmt.Println()

	// Print header
	fmt.Printf("  %-4s  %-16s  %-14s  %-5s  %-14s  %s\n", "#", "Date", "Result", "Moves", "Source", "Match")
	fmt.Printf("  %-4s  %-16s  %-14s  %-5s  %-14s  %s\n", "-", "----", "------", "-----", "------", "-----")

	for i, m := range matches {
		fmt.Printf("  %-4d  %-16s  %-14s  %-5d  %-14s  %s\n",
			i+1,
			m.CreatedAt.Format("2006-01-02 15:04"),
			tui.ResultText(m),
			m.Moves,
			m.Source,
			m.MatchID,
		)
	}
}

// printMatch writes one match and its final board.
func printMatch(m storage.Match) {
	fmt.Printf("Match    %s\n", m.MatchID)
	fmt.Printf("Played   %s (%ds)\n", m.CreatedAt.Format("2006-01-02 15:04"), m.Duration)
	fmt.Printf("Players  %s (A) vs %s (B)\n", m.PlayerA, m.PlayerB)
	fmt.Printf("Result   %s in %d moves\n", tui.ResultText(m), m.Moves)
	fmt.Printf("Source   %s\n", m.Source)

	// Sequence is stored 0-based; players count columns from 1.
	cols := make([]string, 0, len(m.Sequence))
	for _, c := range m.Sequence {
		cols = append(cols, string(c+1))
	}
	fmt.Printf("Moves    %s\n", strings.Join(cols, " "))
	fmt.Println()

	b, err := board.Parse(m.Board)
	if err != nil {
		fmt.Printf("Board unavailable: %v\n", err)
		return
	}
	for _, row := range strings.Split(b.String(), "/") {
		fmt.Printf("  %s\n", strings.Join(strings.Split(row, ""), " "))
	}
	fmt.Println("  1 2 3 4 5 6 7")
}
