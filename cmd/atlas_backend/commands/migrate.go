package commands

import (
	"fmt"

	"github.com/SscSPs/etsy_atlas/internal/platform/config"
	"github.com/SscSPs/etsy_atlas/pkg/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back database migrations",
	Long: `Run the SQL migrations under MIGRATIONS_PATH against PGSQL_URL.

Subcommands:
  up    - Apply pending migrations
  down  - Roll back every migration`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate(true)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back every migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate(false)
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(up bool) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("PGSQL_URL is required to run migrations")
	}
	return database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsURL, up)
}
