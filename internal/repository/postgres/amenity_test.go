package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"society-console-backend/internal/domain"
	"society-console-backend/internal/fixtures"
	"society-console-backend/internal/repository"
)

var amenityCols = []string{
	"id", "name", "description", "category", "location", "capacity", "opening_time", "closing_time", "operating_days",
	"availability_status", "booking_status", "maintenance_next", "maintenance_last", "maintenance_frequency", "maintenance_overdue",
	"hourly_rate", "daily_rate", "member_discount_percent", "security_deposit", "usage_daily", "usage_weekly", "usage_monthly",
	"revenue", "reviews", "is_active", "created_at", "updated_at",
}

func TestAmenityRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2024, time.April, 2, 0, 0, 0, 0, time.UTC)
	next := now.AddDate(0, 0, 7)
	mock.ExpectQuery("SELECT (.+) FROM amenities WHERE id = \\$1").
		WithArgs("amn-1").
		WillReturnRows(sqlmock.NewRows(amenityCols).AddRow(
			"amn-1", "Gym", "Ground floor gym", "FITNESS", "Block A", 25, "06:00", "22:00", "{MON,TUE}",
			"available", "open", next, nil, "WEEKLY", false,
			"150.00", "900.00", "10", "500.00", 12, 80, 320,
			"10500.75", []byte(`[{"rating":4,"comment":"good","author":"r","date":"2024-04-01T00:00:00Z"}]`), true, now, now,
		))

	a, err := NewAmenityRepository(db).GetByID(context.Background(), "amn-1")
	require.NoError(t, err)
	assert.Equal(t, domain.AmenityCategoryFitness, a.Category)
	assert.Equal(t, []string{"MON", "TUE"}, a.OperatingHours.Days)
	require.NotNil(t, a.Maintenance.NextDate)
	assert.Nil(t, a.Maintenance.LastDate)
	assert.True(t, decimal.RequireFromString("10500.75").Equal(a.Revenue))
	assert.True(t, decimal.NewFromInt(150).Equal(a.Pricing.HourlyRate))
	require.Len(t, a.Reviews, 1)
	assert.Equal(t, 4, a.Reviews[0].Rating)
}

func TestAmenityRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	a := fixtures.Amenity(3)
	mock.ExpectExec("INSERT INTO amenities").
		WithArgs(
			a.ID, a.Name, a.Description, string(a.Category), a.Location, a.Capacity,
			"06:00", "22:00", sqlmock.AnyArg(), "available", "open",
			sqlmock.AnyArg(), sqlmock.AnyArg(), "WEEKLY", false,
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			3, 21, 90, sqlmock.AnyArg(), sqlmock.AnyArg(), true, a.CreatedAt, a.UpdatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, NewAmenityRepository(db).Create(context.Background(), a))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAmenityRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewAmenityRepository(db)

	mock.ExpectExec("DELETE FROM amenities WHERE id = \\$1").WithArgs("amn-1").WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.Delete(context.Background(), "amn-1"))

	mock.ExpectExec("DELETE FROM amenities WHERE id = \\$1").WithArgs("amn-1").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), "amn-1"), repository.ErrNotFound)
}

func TestAmenityRepository_UpdateMany(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE amenities SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE amenities SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = NewAmenityRepository(db).UpdateMany(context.Background(), fixtures.Amenities(2))
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
