// Package commands holds the atlas_backend CLI.
package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// rootCmd serves the API when no subcommand is given.
var rootCmd = &cobra.Command{
	Use:   "atlas_backend",
	Short: "Etsy Atlas back office server",
	Long: `Etsy Atlas back office server.

Subcommands:
  serve     - Run the HTTP server (default)
  migrate   - Apply or roll back database migrations
  seed      - Load demo users and orders into an empty store
  hash-key  - Hash an import API key for IMPORT_API_KEY_HASH`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

// Execute runs the root command
func Execute() {
	slog.SetDefault(logger)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
