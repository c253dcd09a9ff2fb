package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"society-console-backend/internal/logger"
	"society-console-backend/internal/repository"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
)

//go:embed migrations/*.sql
var migrations embed.FS

type Store struct {
	db *sql.DB
	repository.EntryRepository
	repository.AmenityRepository
	repository.VerificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		EntryRepository:        NewEntryRepository(db),
		AmenityRepository:      NewAmenityRepository(db),
		VerificationRepository: NewVerificationRepository(db),
	}
}

// NewMigrator returns a migrate instance over the embedded migrations. It
// holds one connection from db until closed; closing leaves db open.
func NewMigrator(ctx context.Context, db *sql.DB) (*migrate.Migrate, error) {
	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to open migrations: %w", err)
	}
	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire migration connection: %w", err)
	}
	driver, err := migratepg.WithConnection(ctx, conn, &migratepg.Config{})
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		driver.Close()
		return nil, fmt.Errorf("failed to create migration instance: %w", err)
	}
	return m, nil
}

// Migrate applies every pending migration. An up-to-date schema is not an
// error.
func (s *Store) Migrate(ctx context.Context) error {
	logger.DatabaseCall("Migrate", "up")
	m, err := NewMigrator(ctx, s.db)
	if err == nil {
		err = m.Up()
		if errors.Is(err, migrate.ErrNoChange) {
			err = nil
		}
		if _, closeErr := m.Close(); closeErr != nil {
			logger.Warn("Failed to close migrator", "error", closeErr)
		}
	}
	logger.DatabaseResult("Migrate", 0, err)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// withTx runs fn in a transaction, rolling back when fn fails.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// notFound maps sql.ErrNoRows onto repository.ErrNotFound.
func notFound(err error, id string) error {
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: %s", repository.ErrNotFound, id)
	}
	return err
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", repository.ErrNotFound, id)
	}
	return nil
}
