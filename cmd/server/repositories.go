package main

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"society-console-backend/internal/config"
	"society-console-backend/internal/fixtures"
	"society-console-backend/internal/logger"
	"society-console-backend/internal/repository"
	"society-console-backend/internal/repository/memory"
	"society-console-backend/internal/repository/postgres"
)

type repositories struct {
	entries       repository.EntryRepository
	amenities     repository.AmenityRepository
	verifications repository.VerificationRepository
}

// openRepositories builds the configured backend. The returned func releases
// it.
func openRepositories(ctx context.Context, cfg *config.Config) (repositories, func(), error) {
	if cfg.Database.Driver == config.DriverMemory {
		logger.Info("Using in-memory repositories", "demo_seed", cfg.Seed.Demo)
		store := memory.NewStore(nil, nil)
		if cfg.Seed.Demo {
			store = memory.NewStore(
				fixtures.Directory(),
				fixtures.Amenities(12),
				fixtures.Verification(cfg.Seed.SocietyID, 22, 10, 14, 18, 22),
			)
		}
		return repositories{
			entries:       store.EntryRepository,
			amenities:     store.AmenityRepository,
			verifications: store.VerificationRepository,
		}, func() {}, nil
	}

	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		return repositories{}, nil, fmt.Errorf("failed to open database: %w", err)
	}
	if cfg.Database.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return repositories{}, nil, fmt.Errorf("failed to ping database: %w", err)
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db)
	if err := store.Migrate(ctx); err != nil {
		db.Close()
		return repositories{}, nil, err
	}
	return repositories{
		entries:       store.EntryRepository,
		amenities:     store.AmenityRepository,
		verifications: store.VerificationRepository,
	}, func() { db.Close() }, nil
}
