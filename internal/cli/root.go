// Package cli implements the racewatch CLI commands.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/racewatch/racewatch/internal/config"
)

var homeDir string

var rootCmd = &cobra.Command{
	Use:   "racewatch",
	Short: "Terminal stopwatch with a timestamped session history",
	Long: `racewatch is a terminal stopwatch. Every start and stop is recorded with
its time, timezone, coordinates and duration in a history table that is
kept between runs.

Run without a subcommand to open the stopwatch.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if homeDir != "" {
			config.SetHome(homeDir)
		}
	},
	Args: cobra.NoArgs,
	RunE: runStopwatch,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&homeDir, "home", "", "racewatch directory (default ~/.racewatch, or $"+config.HomeEnv+")")

	// Add subcommands (alphabetical)
	rootCmd.AddCommand(configureCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}
