package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"society-console-backend/internal/config"
	"society-console-backend/internal/domain"
	"society-console-backend/internal/fixtures"
	"society-console-backend/internal/repository/memory"
	"society-console-backend/internal/service"
	"society-console-backend/internal/validation"
	"society-console-backend/internal/verification"
)

// failingVerification fails or panics on RecomputeAll.
type failingVerification struct {
	service.VerificationService
	panics bool
}

func (f failingVerification) RecomputeAll(ctx context.Context) (int, error) {
	if f.panics {
		panic("boom")
	}
	return 0, errors.New("database unavailable")
}

func newRunner(t *testing.T, verifications service.VerificationService) (*JobRunner, service.AmenityService) {
	t.Helper()
	cfg, err := config.Parse([]byte("{}"))
	require.NoError(t, err)

	amenities := service.NewAmenityService(memory.NewAmenityRepository(fixtures.Amenities(3)...), validation.New())
	jr := NewJobRunner(&Services{Amenities: amenities, Verification: verifications}, cfg)
	jr.now = func() time.Time { return fixtures.Epoch.AddDate(0, 0, 10) }
	return jr, amenities
}

func TestMarkOverdueMaintenance(t *testing.T) {
	jr, amenities := newRunner(t, service.NewVerificationService(memory.NewVerificationRepository()))

	require.True(t, jr.MarkOverdueMaintenance())

	a, err := amenities.Get(context.Background(), "amn-1")
	require.NoError(t, err)
	assert.True(t, a.Maintenance.IsOverdue)
	b, err := amenities.Get(context.Background(), "amn-2")
	require.NoError(t, err)
	assert.False(t, b.Maintenance.IsOverdue)
}

func TestRecomputeVerificationProgress(t *testing.T) {
	repo := memory.NewVerificationRepository(fixtures.CompleteItems(fixtures.Verification("society-1", 4, 2), "auditor", 1))
	jr, _ := newRunner(t, service.NewVerificationService(repo))

	require.True(t, jr.RecomputeVerificationProgress())

	sv, err := repo.Get(context.Background(), "society-1")
	require.NoError(t, err)
	assert.Equal(t, 25, sv.Progress)
	assert.Equal(t, verification.OverallStatusOf(sv.Items), sv.OverallStatus)
	assert.Equal(t, domain.OverallInProgress, sv.OverallStatus)
}

func TestRunWithRecovery_ErrorAndPanic(t *testing.T) {
	jr, _ := newRunner(t, failingVerification{})
	assert.False(t, jr.RecomputeVerificationProgress())

	jr, _ = newRunner(t, failingVerification{panics: true})
	assert.NotPanics(t, func() {
		assert.False(t, jr.RecomputeVerificationProgress())
	})
	assert.False(t, jr.RunAll(), "a failing job fails the batch after the others ran")
}

func TestRunOnce(t *testing.T) {
	jr, _ := newRunner(t, service.NewVerificationService(memory.NewVerificationRepository()))

	assert.True(t, jr.RunOnce(JobMarkOverdueMaintenance))
	assert.True(t, jr.RunOnce(JobRecomputeVerification))
	assert.True(t, jr.RunOnce(JobAll))
	assert.False(t, jr.RunOnce("send-bill-reminders"))
}
