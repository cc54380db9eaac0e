// Package main is the entry point for the confadmin CLI.
//
// Usage:
//
//	confadmin serve                        # Start the admin API
//	confadmin conferences list -o yaml     # Print the backend's conferences
//	confadmin version                      # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information, set at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "confadmin",
	Short: "Conference scheduling admin",
	Long: `confadmin manages conferences held by the conference backend.

Edits are applied to a local working copy first and then pushed to the
backend. Every push is recorded in the sync journal; failed pushes are
counted and reported by email when ALERT_EMAIL is set.

Configuration is read from the environment (and .env outside production).`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "confadmin %s\n", version)
		fmt.Fprintf(out, "  commit: %s\n", commit)
		fmt.Fprintf(out, "  built:  %s\n", date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
