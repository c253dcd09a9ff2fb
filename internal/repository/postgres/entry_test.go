package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"society-console-backend/internal/domain"
	"society-console-backend/internal/fixtures"
	"society-console-backend/internal/repository"
)

var entryCols = []string{"id", "entry_type", "name", "email", "phone", "address", "status", "is_active", "date_joined", "documents", "details", "created_at", "updated_at"}

func TestEntryRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewEntryRepository(db)
	joined := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(entryCols).
		AddRow("mem-1", "MEMBER", "Member 1", "member1@society.test", "+91-9800000001", "Tower A", "ACTIVE", true, joined, "{deed.pdf}", []byte(`{"role":"OWNER","unit_number":"A-101","is_committee_member":true}`), joined, joined).
		AddRow("ven-1", "VENDOR", "Vendor 1", "vendor1@society.test", "", "", "PENDING", false, joined, "{}", []byte(`{"vendor_type":"PLUMBING","rating":4}`), joined, joined)
	mock.ExpectQuery("SELECT (.+) FROM entries ORDER BY seq").WillReturnRows(rows)

	entries, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	m, ok := entries[0].AsMember()
	require.True(t, ok)
	assert.Equal(t, "A-101", m.UnitNumber)
	assert.True(t, m.IsCommitteeMember)
	assert.Equal(t, []string{"deed.pdf"}, entries[0].Documents)

	v, ok := entries[1].AsVendor()
	require.True(t, ok)
	assert.Equal(t, "PLUMBING", v.VendorType)
	assert.Equal(t, []string{}, entries[1].Documents)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryRepository_List_UnknownType(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM entries").WillReturnRows(sqlmock.NewRows(entryCols).
		AddRow("x-1", "ALIEN", "X", "x@y.z", "", "", "ACTIVE", true, now, "{}", []byte(`{}`), now, now))

	_, err = NewEntryRepository(db).List(context.Background())
	assert.Error(t, err)
}

func TestEntryRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM entries WHERE id = \\$1").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(entryCols))

	_, err = NewEntryRepository(db).GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestEntryRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	e := fixtures.Staff(2)
	mock.ExpectExec("INSERT INTO entries").
		WithArgs(e.ID, "STAFF", e.Name, e.Email, e.Phone, e.Address, "ACTIVE", true, e.DateJoined, sqlmock.AnyArg(), sqlmock.AnyArg(), e.CreatedAt, e.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = NewEntryRepository(db).Create(context.Background(), e)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryRepository_UpdateMany(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE entries SET").WithArgs("mem-1", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE entries SET").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = NewEntryRepository(db).UpdateMany(ctx, []domain.Entry{fixtures.Member(1), fixtures.Member(2)})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("MissingRowRollsBack", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE entries SET").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE entries SET").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err = NewEntryRepository(db).UpdateMany(ctx, []domain.Entry{fixtures.Member(1), fixtures.Member(2)})
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ExecErrorRollsBack", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE entries SET").WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		err = NewEntryRepository(db).UpdateMany(ctx, []domain.Entry{fixtures.Member(1)})
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEntryRepository_DeleteMany(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM entries WHERE id = ANY").
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := NewEntryRepository(db).DeleteMany(context.Background(), []string{"mem-1", "mem-2", "gone"})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
