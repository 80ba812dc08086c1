package main

import (
	"fmt"
	"os"

	"github.com/mauv0809/darts-scoreboard/internal/config"
	"github.com/spf13/cobra"
)

var (
	dataDir string
	dryRun  bool
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "darts",
		Short: "Manage darts players and start game sessions",
		Long: `A command-line scoreboard for darts. Player profiles are kept as JSON files
in the data directory; sessions and usage counters live in a small SQLite database.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory holding player profiles (overrides DATA_DIR)")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Log announcements instead of sending them (overrides DRY_RUN)")

	rootCmd.AddCommand(newPlayersCmd())
	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newSessionsCmd())
	rootCmd.AddCommand(newMetricsCmd())
	return rootCmd
}

// loadConfig reads the environment and applies command-line overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if cmd.Flags().Changed("data-dir") {
		cfg.DataDir = dataDir
	}
	if cmd.Flags().Changed("dry-run") {
		cfg.DryRun = dryRun
	}
	if err := config.ConfigureLogger(cfg); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, userMessage(err))
		os.Exit(1)
	}
}

func main() {
	Execute()
}
