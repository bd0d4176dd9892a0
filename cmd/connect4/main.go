// connect4 is a two-player Connect Four game for the terminal.
//
// Usage:
//
//	connect4                 - Play on this terminal (same as play)
//	connect4 play            - Play on this terminal
//	connect4 serve           - Start SSH server for remote play
//	connect4 history         - Browse finished matches
//	connect4 config          - Print the effective configuration
//
// Global flags:
//
//	--config <path>     - Config file (default: ~/.connect4/config.yaml)
//	--db <path>         - History database (overrides storage.path)
//	--log-level <level> - debug, info, warn or error (overrides log.level)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-connect4/internal/config"
	"github.com/vovakirdan/tui-connect4/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "connect4",
	Short: "Connect Four in your terminal",
	Long: `Connect Four for two players sharing one keyboard and mouse.
Drop tokens into the 7 columns; the first to line up four in a row,
column or diagonal wins. A full board with no four is a draw.

Available commands:
  play     - Play on this terminal (default)
  serve    - Start SSH server for remote play
  history  - Browse finished matches
  config   - Print the effective configuration

Examples:
  connect4
  connect4 --config ./my-connect4.yaml
  connect4 serve --ssh :2222
  connect4 history --plain`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to history database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig loads the configuration and applies global flag overrides.
// It exits on any error.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
		cfg.Storage.Disabled = false
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// newLogger creates a logger at the configured level.
func newLogger(w io.Writer, cfg config.Config, prefix string) *log.Logger {
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
}

// openStore opens the history database, or returns nil when storage is
// disabled or cannot be opened. Play continues without history.
func openStore(cfg config.Config, logger *log.Logger) *storage.Store {
	if cfg.Storage.Disabled {
		logger.Debug("match history disabled")
		return nil
	}

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		logger.Warn("could not open history database", "path", cfg.Storage.Path, "error", err)
		return nil
	}
	return store
}
