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

const amenityColumns = `id, name, description, category, location, capacity, opening_time, closing_time, operating_days, ` +
	`availability_status, booking_status, maintenance_next, maintenance_last, maintenance_frequency, maintenance_overdue, ` +
	`hourly_rate, daily_rate, member_discount_percent, security_deposit, usage_daily, usage_weekly, usage_monthly, ` +
	`revenue, reviews, is_active, created_at, updated_at`

type amenityRepository struct {
	db *sql.DB
}

func NewAmenityRepository(db *sql.DB) repository.AmenityRepository {
	return &amenityRepository{db: db}
}

func scanAmenity(row rowScanner) (domain.Amenity, error) {
	var (
		a       domain.Amenity
		reviews []byte
	)
	err := row.Scan(
		&a.ID, &a.Name, &a.Description, &a.Category, &a.Location, &a.Capacity,
		&a.OperatingHours.Start, &a.OperatingHours.End, pq.Array(&a.OperatingHours.Days),
		&a.AvailabilityStatus, &a.BookingStatus,
		&a.Maintenance.NextDate, &a.Maintenance.LastDate, &a.Maintenance.Frequency, &a.Maintenance.IsOverdue,
		&a.Pricing.HourlyRate, &a.Pricing.DailyRate, &a.Pricing.MemberDiscountPercent, &a.Pricing.SecurityDeposit,
		&a.Usage.Daily, &a.Usage.Weekly, &a.Usage.Monthly,
		&a.Revenue, &reviews, &a.IsActive, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return domain.Amenity{}, err
	}
	if a.OperatingHours.Days == nil {
		a.OperatingHours.Days = []string{}
	}
	a.Reviews = []domain.Review{}
	if len(reviews) > 0 {
		if err := json.Unmarshal(reviews, &a.Reviews); err != nil {
			return domain.Amenity{}, fmt.Errorf("amenity %s: failed to decode reviews: %w", a.ID, err)
		}
	}
	return a, nil
}

func amenityArgs(a domain.Amenity) ([]any, error) {
	reviews := a.Reviews
	if reviews == nil {
		reviews = []domain.Review{}
	}
	raw, err := json.Marshal(reviews)
	if err != nil {
		return nil, fmt.Errorf("failed to encode reviews: %w", err)
	}
	return []any{
		a.ID, a.Name, a.Description, string(a.Category), a.Location, a.Capacity,
		a.OperatingHours.Start, a.OperatingHours.End, pq.Array(a.OperatingHours.Days),
		string(a.AvailabilityStatus), string(a.BookingStatus),
		a.Maintenance.NextDate, a.Maintenance.LastDate, a.Maintenance.Frequency, a.Maintenance.IsOverdue,
		a.Pricing.HourlyRate, a.Pricing.DailyRate, a.Pricing.MemberDiscountPercent, a.Pricing.SecurityDeposit,
		a.Usage.Daily, a.Usage.Weekly, a.Usage.Monthly,
		a.Revenue, string(raw), a.IsActive, a.CreatedAt, a.UpdatedAt,
	}, nil
}

func (r *amenityRepository) List(ctx context.Context) ([]domain.Amenity, error) {
	query := `SELECT ` + amenityColumns + ` FROM amenities ORDER BY seq`
	logger.DatabaseCall("ListAmenities", query)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.DatabaseResult("ListAmenities", 0, err)
		return nil, err
	}
	defer rows.Close()

	amenities := []domain.Amenity{}
	for rows.Next() {
		a, err := scanAmenity(rows)
		if err != nil {
			return nil, err
		}
		amenities = append(amenities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	logger.DatabaseResult("ListAmenities", int64(len(amenities)), nil)
	return amenities, nil
}

func (r *amenityRepository) GetByID(ctx context.Context, id string) (domain.Amenity, error) {
	query := `SELECT ` + amenityColumns + ` FROM amenities WHERE id = $1`
	a, err := scanAmenity(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return domain.Amenity{}, notFound(err, id)
	}
	return a, nil
}

func (r *amenityRepository) Create(ctx context.Context, a domain.Amenity) error {
	args, err := amenityArgs(a)
	if err != nil {
		return err
	}
	query := `INSERT INTO amenities (` + amenityColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27)`
	logger.DatabaseCall("CreateAmenity", query, "id", a.ID)
	_, err = r.db.ExecContext(ctx, query, args...)
	logger.DatabaseResult("CreateAmenity", 1, err)
	return err
}

const updateAmenityQuery = `UPDATE amenities SET name=$2, description=$3, category=$4, location=$5, capacity=$6, opening_time=$7, closing_time=$8, operating_days=$9, ` +
	`availability_status=$10, booking_status=$11, maintenance_next=$12, maintenance_last=$13, maintenance_frequency=$14, maintenance_overdue=$15, ` +
	`hourly_rate=$16, daily_rate=$17, member_discount_percent=$18, security_deposit=$19, usage_daily=$20, usage_weekly=$21, usage_monthly=$22, ` +
	`revenue=$23, reviews=$24, is_active=$25, created_at=$26, updated_at=$27 WHERE id=$1`

func updateAmenity(ctx context.Context, db execer, a domain.Amenity) error {
	args, err := amenityArgs(a)
	if err != nil {
		return err
	}
	res, err := db.ExecContext(ctx, updateAmenityQuery, args...)
	if err != nil {
		return err
	}
	return requireRow(res, a.ID)
}

func (r *amenityRepository) Update(ctx context.Context, a domain.Amenity) error {
	logger.DatabaseCall("UpdateAmenity", updateAmenityQuery, "id", a.ID)
	err := updateAmenity(ctx, r.db, a)
	logger.DatabaseResult("UpdateAmenity", 1, err)
	return err
}

func (r *amenityRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM amenities WHERE id = $1`
	logger.DatabaseCall("DeleteAmenity", query, "id", id)
	res, err := r.db.ExecContext(ctx, query, id)
	if err == nil {
		err = requireRow(res, id)
	}
	logger.DatabaseResult("DeleteAmenity", 1, err)
	return err
}

func (r *amenityRepository) UpdateMany(ctx context.Context, amenities []domain.Amenity) error {
	logger.DatabaseCall("UpdateAmenities", updateAmenityQuery, "count", len(amenities))
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		for _, a := range amenities {
			if err := updateAmenity(ctx, tx, a); err != nil {
				return err
			}
		}
		return nil
	})
	logger.DatabaseResult("UpdateAmenities", int64(len(amenities)), err)
	return err
}

func (r *amenityRepository) DeleteMany(ctx context.Context, ids []string) (int, error) {
	query := `DELETE FROM amenities WHERE id = ANY($1)`
	logger.DatabaseCall("DeleteAmenities", query, "count", len(ids))
	res, err := r.db.ExecContext(ctx, query, pq.Array(ids))
	if err != nil {
		logger.DatabaseResult("DeleteAmenities", 0, err)
		return 0, err
	}
	n, err := res.RowsAffected()
	logger.DatabaseResult("DeleteAmenities", n, err)
	return int(n), err
}
