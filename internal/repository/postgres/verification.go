package postgres

import (
	"context"
	"database/sql"

	"society-console-backend/internal/domain"
	"society-console-backend/internal/logger"
	"society-console-backend/internal/repository"

	"github.com/lib/pq"
)

type verificationRepository struct {
	db *sql.DB
}

func NewVerificationRepository(db *sql.DB) repository.VerificationRepository {
	return &verificationRepository{db: db}
}

const (
	societyColumns = `society_id, society_name, overall_status, progress, is_activated, activated_at, activated_by, start_date, target_completion_date`
	itemColumns    = `id, title, description, category, priority, status, is_required, verified_by, verified_date, rejection_reason, documents, notes`
)

func scanSociety(row rowScanner) (domain.SocietyVerification, error) {
	var sv domain.SocietyVerification
	err := row.Scan(&sv.SocietyID, &sv.SocietyName, &sv.OverallStatus, &sv.Progress, &sv.IsActivated, &sv.ActivatedAt, &sv.ActivatedBy, &sv.StartDate, &sv.TargetCompletionDate)
	return sv, err
}

func (r *verificationRepository) items(ctx context.Context, societyID string) ([]domain.VerificationItem, error) {
	query := `SELECT ` + itemColumns + ` FROM verification_items WHERE society_id = $1 ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query, societyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.VerificationItem{}
	for rows.Next() {
		var it domain.VerificationItem
		if err := rows.Scan(&it.ID, &it.Title, &it.Description, &it.Category, &it.Priority, &it.Status, &it.IsRequired, &it.VerifiedBy, &it.VerifiedDate, &it.RejectionReason, pq.Array(&it.Documents), &it.Notes); err != nil {
			return nil, err
		}
		if it.Documents == nil {
			it.Documents = []string{}
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *verificationRepository) Get(ctx context.Context, societyID string) (domain.SocietyVerification, error) {
	query := `SELECT ` + societyColumns + ` FROM society_verifications WHERE society_id = $1`
	logger.DatabaseCall("GetVerification", query, "society_id", societyID)
	sv, err := scanSociety(r.db.QueryRowContext(ctx, query, societyID))
	if err != nil {
		err = notFound(err, societyID)
		logger.DatabaseResult("GetVerification", 0, err)
		return domain.SocietyVerification{}, err
	}
	if sv.Items, err = r.items(ctx, societyID); err != nil {
		logger.DatabaseResult("GetVerification", 0, err)
		return domain.SocietyVerification{}, err
	}
	logger.DatabaseResult("GetVerification", int64(len(sv.Items)), nil)
	return sv, nil
}

func (r *verificationRepository) List(ctx context.Context) ([]domain.SocietyVerification, error) {
	query := `SELECT ` + societyColumns + ` FROM society_verifications ORDER BY society_id`
	logger.DatabaseCall("ListVerifications", query)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.DatabaseResult("ListVerifications", 0, err)
		return nil, err
	}
	var out []domain.SocietyVerification
	for rows.Next() {
		sv, err := scanSociety(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, sv)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		if out[i].Items, err = r.items(ctx, out[i].SocietyID); err != nil {
			return nil, err
		}
	}
	logger.DatabaseResult("ListVerifications", int64(len(out)), nil)
	return out, nil
}

// Save upserts the society row and rewrites its items in one transaction.
func (r *verificationRepository) Save(ctx context.Context, sv domain.SocietyVerification) error {
	upsert := `INSERT INTO society_verifications (` + societyColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	           ON CONFLICT (society_id) DO UPDATE SET society_name=EXCLUDED.society_name, overall_status=EXCLUDED.overall_status,
	           progress=EXCLUDED.progress, is_activated=EXCLUDED.is_activated, activated_at=EXCLUDED.activated_at,
	           activated_by=EXCLUDED.activated_by, start_date=EXCLUDED.start_date, target_completion_date=EXCLUDED.target_completion_date`
	insertItem := `INSERT INTO verification_items (society_id, position, ` + itemColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	logger.DatabaseCall("SaveVerification", upsert, "society_id", sv.SocietyID, "items", len(sv.Items))
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, upsert, sv.SocietyID, sv.SocietyName, string(sv.OverallStatus), sv.Progress, sv.IsActivated, sv.ActivatedAt, sv.ActivatedBy, sv.StartDate, sv.TargetCompletionDate); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM verification_items WHERE society_id = $1`, sv.SocietyID); err != nil {
			return err
		}
		for i, it := range sv.Items {
			_, err := tx.ExecContext(ctx, insertItem, sv.SocietyID, i, it.ID, it.Title, it.Description, string(it.Category), string(it.Priority), string(it.Status), it.IsRequired, it.VerifiedBy, it.VerifiedDate, it.RejectionReason, pq.Array(it.Documents), it.Notes)
			if err != nil {
				return err
			}
		}
		return nil
	})
	logger.DatabaseResult("SaveVerification", int64(len(sv.Items)), err)
	return err
}
