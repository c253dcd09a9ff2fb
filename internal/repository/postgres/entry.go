package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"society-console-backend/internal/domain"
	"society-console-backend/internal/logger"
	"society-console-backend/internal/repository"

	"github.com/lib/pq"
)

const entryColumns = `id, entry_type, name, email, phone, address, status, is_active, date_joined, documents, details, created_at, updated_at`

type entryRepository struct {
	db *sql.DB
}

func NewEntryRepository(db *sql.DB) repository.EntryRepository {
	return &entryRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (domain.Entry, error) {
	var (
		b       domain.BaseEntry
		typ     domain.EntryType
		details []byte
	)
	err := row.Scan(&b.ID, &typ, &b.Name, &b.Email, &b.Phone, &b.Address, &b.Status, &b.IsActive, &b.DateJoined, pq.Array(&b.Documents), &details, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return domain.Entry{}, err
	}
	if b.Documents == nil {
		b.Documents = []string{}
	}
	d, err := domain.DecodeDetails(typ, details)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("entry %s: %w", b.ID, err)
	}
	return domain.NewEntry(b, d), nil
}

func entryArgs(e domain.Entry) ([]any, error) {
	details, err := json.Marshal(e.Details)
	if err != nil {
		return nil, fmt.Errorf("failed to encode details: %w", err)
	}
	return []any{e.ID, string(e.Type()), e.Name, e.Email, e.Phone, e.Address, string(e.Status), e.IsActive, e.DateJoined, pq.Array(e.Documents), string(details), e.CreatedAt, e.UpdatedAt}, nil
}

func (r *entryRepository) List(ctx context.Context) ([]domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries ORDER BY seq`
	logger.DatabaseCall("ListEntries", query)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.DatabaseResult("ListEntries", 0, err)
		return nil, err
	}
	defer rows.Close()

	entries := []domain.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	logger.DatabaseResult("ListEntries", int64(len(entries)), nil)
	return entries, nil
}

func (r *entryRepository) GetByID(ctx context.Context, id string) (domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE id = $1`
	e, err := scanEntry(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return domain.Entry{}, notFound(err, id)
	}
	return e, nil
}

func (r *entryRepository) Create(ctx context.Context, e domain.Entry) error {
	args, err := entryArgs(e)
	if err != nil {
		return err
	}
	query := `INSERT INTO entries (` + entryColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	logger.DatabaseCall("CreateEntry", query, "id", e.ID)
	_, err = r.db.ExecContext(ctx, query, args...)
	logger.DatabaseResult("CreateEntry", 1, err)
	return err
}

const updateEntryQuery = `UPDATE entries SET entry_type=$2, name=$3, email=$4, phone=$5, address=$6, status=$7, is_active=$8, date_joined=$9, documents=$10, details=$11, created_at=$12, updated_at=$13 WHERE id=$1`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func updateEntry(ctx context.Context, db execer, e domain.Entry) error {
	args, err := entryArgs(e)
	if err != nil {
		return err
	}
	res, err := db.ExecContext(ctx, updateEntryQuery, args...)
	if err != nil {
		return err
	}
	return requireRow(res, e.ID)
}

func (r *entryRepository) Update(ctx context.Context, e domain.Entry) error {
	logger.DatabaseCall("UpdateEntry", updateEntryQuery, "id", e.ID)
	err := updateEntry(ctx, r.db, e)
	logger.DatabaseResult("UpdateEntry", 1, err)
	return err
}

func (r *entryRepository) UpdateMany(ctx context.Context, entries []domain.Entry) error {
	logger.DatabaseCall("UpdateEntries", updateEntryQuery, "count", len(entries))
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		for _, e := range entries {
			if err := updateEntry(ctx, tx, e); err != nil {
				return err
			}
		}
		return nil
	})
	logger.DatabaseResult("UpdateEntries", int64(len(entries)), err)
	return err
}

func (r *entryRepository) DeleteMany(ctx context.Context, ids []string) (int, error) {
	query := `DELETE FROM entries WHERE id = ANY($1)`
	logger.DatabaseCall("DeleteEntries", query, "count", len(ids))
	res, err := r.db.ExecContext(ctx, query, pq.Array(ids))
	if err != nil {
		logger.DatabaseResult("DeleteEntries", 0, err)
		return 0, err
	}
	n, err := res.RowsAffected()
	logger.DatabaseResult("DeleteEntries", n, err)
	return int(n), err
}
