package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-connect4/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration connect4 would run with, after the search
order and flag overrides have been applied. The output is valid YAML and
can be saved as ~/.connect4/config.yaml.

Search order:
  --config <path>
  ~/.connect4/config.yaml
  ./configs/connect4.yaml
  built-in defaults

Examples:
  connect4 config
  connect4 config > ~/.connect4/config.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func runConfig(_ *cobra.Command, _ []string) {
	cfg := loadConfig()

	data, err := config.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("# source: %s\n", cfg.Source)
	os.Stdout.Write(data)
}
