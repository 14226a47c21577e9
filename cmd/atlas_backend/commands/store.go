package commands

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/SscSPs/etsy_atlas/internal/core/ports/repositories"
	"github.com/SscSPs/etsy_atlas/internal/platform/config"
	"github.com/SscSPs/etsy_atlas/internal/repositories/database/pgsql"
	"github.com/SscSPs/etsy_atlas/internal/repositories/memory"
	"github.com/SscSPs/etsy_atlas/pkg/database"
)

// openStore builds the repository provider for cfg.StoreDriver. The returned
// func releases the store and is never nil.
func openStore(ctx context.Context, cfg *config.Config) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		logger.Info("Using in-memory store")
		return memory.NewRepositoryProvider(), func() {}, nil
	}

	if cfg.DatabaseURL == "" {
		return portsrepo.RepositoryProvider{}, func() {}, fmt.Errorf("PGSQL_URL is required for STORE_DRIVER=%s", cfg.StoreDriver)
	}

	logger.Info("Running database migrations...")
	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsURL, true); err != nil {
		return portsrepo.RepositoryProvider{}, func() {}, fmt.Errorf("failed to apply migrations: %w", err)
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return portsrepo.RepositoryProvider{}, func() {}, fmt.Errorf("failed to initialize database pool: %w", err)
	}
	logger.Info("Database connection pool established.", slog.Bool("pingChecked", cfg.EnableDBCheck))

	return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool) }, nil
}
