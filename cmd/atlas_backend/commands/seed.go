package commands

import (
	"fmt"
	"log/slog"

	"github.com/SscSPs/etsy_atlas/internal/adapters/identity"
	"github.com/SscSPs/etsy_atlas/internal/core/services"
	"github.com/SscSPs/etsy_atlas/internal/platform/config"
	"github.com/SscSPs/etsy_atlas/internal/utils/seeddata"
	"github.com/spf13/cobra"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo users and orders into an empty store",
	Long: `Load demo users and orders into an empty store.

Refuses to run when the store already holds users or orders.

Examples:
  atlas_backend seed                       # Use the built-in demo data
  atlas_backend seed --file ./seed.yaml    # Use a custom YAML file`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		repos, closeStore, err := openStore(cmd.Context(), cfg)
		defer closeStore()
		if err != nil {
			return err
		}

		var opts []services.ContainerOption
		if seedFile != "" {
			opts = append(opts, services.WithSeedSource(func() (*seeddata.SeedFile, error) {
				return seeddata.LoadFile(seedFile)
			}))
		}
		container := services.NewServiceContainer(cfg, repos, identity.Unconfigured{Reason: "seed command"}, opts...)

		resp, err := container.Seed.Seed(cmd.Context())
		if err != nil {
			return fmt.Errorf("seed failed: %w", err)
		}
		logger.Info(resp.Message, slog.Int("users", resp.UsersSeeded), slog.Int("orders", resp.OrdersSeeded))
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "YAML seed file (defaults to the built-in demo data)")
	rootCmd.AddCommand(seedCmd)
}
