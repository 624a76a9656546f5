// Package cmd implements the hived command-line surface.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hived",
	Short: "hived runs the actor runtime worker pool",
	Long: `hived loads configuration from the environment, wires a
structured logger and Prometheus metrics, and drives the actor dispatcher
with a pool of worker goroutines until it receives a shutdown signal.`,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}
