package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-connect4/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Connect Four SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own game for two players sharing that
terminal. Finished matches from all sessions go to the same history,
tagged with the SSH user name.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise uses server.host_key from the config, auto-generated if missing

Examples:
  connect4 serve                           # Listen on server.address
  connect4 serve --ssh :2222               # Listen on port 2222
  connect4 serve --host-key ./my_host_key  # Use specific host key
  connect4 serve --db ./history.db         # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (default from config)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting, e.g. 10m (default from config)")
}

func runServe(cmd *cobra.Command, _ []string) {
	cfg := loadConfig()
	logger := newLogger(os.Stderr, cfg, "connect4-ssh")

	if flagSSHAddr != "" {
		cfg.Server.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.Server.HostKeyPath = flagHostKey
	}
	if cmd.Flags().Changed("idle-timeout") {
		cfg.Server.IdleTimeout = flagIdleTimeout
	}

	store := openStore(cfg, logger)
	var recorder tui.Recorder
	if store != nil {
		recorder = store
		defer store.Close()
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     cfg.Server.Address,
		HostKeyPath: cfg.Server.HostKeyPath,
		IdleTimeout: cfg.Server.IdleTimeout,
		Theme:       cfg.Theme(),
		Mouse:       cfg.Display.Mouse,
	}, recorder, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting Connect Four SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		if store != nil {
			store.Close()
		}
		os.Exit(1)
	}
}
