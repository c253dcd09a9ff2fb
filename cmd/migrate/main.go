package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/lib/pq"

	"society-console-backend/internal/config"
	"society-console-backend/internal/logger"
	"society-console-backend/internal/repository/postgres"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	command := flag.String("command", "", "Migration command: up, down, version, force")
	steps := flag.Int("steps", 0, "Number of migration steps (for up/down)")
	version := flag.Int("version", 0, "Migration version (for force)")
	flag.Parse()

	if *command == "" {
		fmt.Println("Usage: migrate -command [up|down|version|force] [options]")
		fmt.Println("  up       - Apply pending migrations (all, or -steps N)")
		fmt.Println("  down     - Roll back -steps N migrations (default 1)")
		fmt.Println("  version  - Show current migration version")
		fmt.Println("  force    - Force set migration version (-version N)")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)

	if cfg.Database.Driver != config.DriverPostgres {
		log.Fatalf("Migrations require database.driver %q, got %q", config.DriverPostgres, cfg.Database.Driver)
	}

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	m, err := postgres.NewMigrator(ctx, db)
	if err != nil {
		log.Fatalf("Failed to create migrator: %v", err)
	}
	defer func() {
		if _, err := m.Close(); err != nil {
			logger.Warn("Failed to close migrator", "error", err)
		}
	}()

	if err := run(m, *command, *steps, *version); err != nil {
		logger.Error("Migration command failed", "command", *command, "error", err)
		m.Close()
		db.Close()
		os.Exit(1)
	}
}

func run(m *migrate.Migrate, command string, steps, version int) error {
	switch command {
	case "up":
		var err error
		if steps > 0 {
			err = m.Steps(steps)
		} else {
			err = m.Up()
		}
		return report(err, "Migrations applied", "No migrations to apply")
	case "down":
		if steps <= 0 {
			steps = 1
		}
		return report(m.Steps(-steps), "Migrations rolled back", "No migrations to roll back")
	case "version":
		v, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			logger.Info("No migrations applied")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read version: %w", err)
		}
		logger.Info("Current migration version", "version", v, "dirty", dirty)
		return nil
	case "force":
		if version <= 0 {
			return errors.New("force requires -version")
		}
		if err := m.Force(version); err != nil {
			return fmt.Errorf("failed to force version: %w", err)
		}
		logger.Info("Migration version forced", "version", version)
		return nil
	}
	return fmt.Errorf("unknown command %q", command)
}

func report(err error, applied, unchanged string) error {
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info(unchanged)
		return nil
	}
	if err != nil {
		return err
	}
	logger.Info(applied)
	return nil
}
