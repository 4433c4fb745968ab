// Package storage opens the configured journal store.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_ledger/internal/platform/config"
	"github.com/SscSPs/bookkeeping_ledger/internal/platform/migrations"
	"github.com/SscSPs/bookkeeping_ledger/internal/repositories/database/boltdb"
	"github.com/SscSPs/bookkeeping_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/bookkeeping_ledger/pkg/database"
)

// Open connects the store selected by cfg.StorageDriver. For PostgreSQL,
// runMigrations applies pending migrations first. The returned func closes the store.
func Open(ctx context.Context, cfg *config.Config, runMigrations bool, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	switch cfg.StorageDriver {
	case config.StorageDriverPostgres:
		if runMigrations {
			logger.Info("Running database migrations...")
			if err := migrations.Up(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
				return portsrepo.RepositoryProvider{}, nil, err
			}
		}
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck, logger)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("failed to initialize database pool: %w", err)
		}
		return pgsql.NewRepositoryProvider(pool), func() { database.ClosePgxPool(pool, logger) }, nil

	case config.StorageDriverBolt:
		store, err := boltdb.Open(cfg.BoltPath)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("failed to open bolt store: %w", err)
		}
		logger.Info("Opened bolt store", slog.String("path", cfg.BoltPath))
		closeFn := func() {
			if err := store.Close(); err != nil {
				logger.Error("Error closing bolt store", slog.String("error", err.Error()))
			}
		}
		return boltdb.NewRepositoryProvider(store), closeFn, nil
	}
	return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}
