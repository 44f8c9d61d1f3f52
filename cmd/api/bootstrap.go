package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dejobratic/vestuario/internal/catalog/adapters"
	"github.com/dejobratic/vestuario/internal/catalog/adapters/memory"
	catalogpostgres "github.com/dejobratic/vestuario/internal/catalog/adapters/postgres"
	"github.com/dejobratic/vestuario/internal/catalog/ports"
	"github.com/dejobratic/vestuario/internal/config"
	"github.com/dejobratic/vestuario/internal/database"
	idemmemory "github.com/dejobratic/vestuario/internal/idempotency/memory"
	idempostgres "github.com/dejobratic/vestuario/internal/idempotency/postgres"
	"github.com/dejobratic/vestuario/internal/telemetry"
	"github.com/jackc/pgx/v5/pgxpool"
)

// backend is the storage selected by DB_DRIVER.
type backend struct {
	store ports.Store
	idem  ports.IdempotencyStore
	pool  *pgxpool.Pool
}

func (b *backend) Close() {
	if b.pool != nil {
		b.pool.Close()
	}
}

func loadConfig(envFile string) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, nil, err
	}

	level, err := telemetry.ParseLevel(cfg.Telemetry.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	logger := telemetry.NewLogger(os.Stdout, level).With(
		"service", cfg.Service.Name,
		"version", cfg.Service.Version,
	)
	slog.SetDefault(logger)

	return cfg, logger, nil
}

func openBackend(ctx context.Context, cfg *config.Config, logger *slog.Logger, dbMetrics *database.Metrics) (*backend, error) {
	if cfg.Database.Driver == config.DriverMemory {
		logger.Info("using in-memory store")
		return &backend{
			store: adapters.NewObservableStore(memory.NewStore(), dbMetrics),
			idem:  idemmemory.NewStore(),
		}, nil
	}

	pool, err := database.NewPool(ctx, cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("create database pool: %w", err)
	}

	if cfg.Database.AutoMigrate {
		logger.Info("running database migrations", "path", cfg.Database.MigrationsPath)
		if err := database.RunMigrations(cfg.Database.URL, cfg.Database.MigrationsPath); err != nil {
			pool.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		logger.Info("migrations completed successfully")
	}

	return &backend{
		store: adapters.NewObservableStore(catalogpostgres.NewStore(pool), dbMetrics),
		idem:  idempostgres.NewStore(pool),
		pool:  pool,
	}, nil
}
