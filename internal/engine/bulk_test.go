package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"society-console-backend/internal/domain"
	"society-console-backend/internal/fixtures"
)

var bulkNow = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

func TestApplyAmenityBulk_DeactivateForcesUnavailable(t *testing.T) {
	amenities := fixtures.Amenities(5)

	res := ApplyAmenityBulk(amenities, BulkDeactivate, []string{"amn-2", "amn-4"}, bulkNow)

	require.Len(t, res.Items, 5)
	for _, a := range res.Items {
		switch a.ID {
		case "amn-2", "amn-4":
			assert.False(t, a.IsActive)
			assert.Equal(t, domain.AvailabilityUnavailable, a.AvailabilityStatus)
			assert.Equal(t, bulkNow, a.UpdatedAt)
		default:
			assert.True(t, a.IsActive)
			assert.Equal(t, domain.AvailabilityAvailable, a.AvailabilityStatus)
		}
	}
	assert.Equal(t, []string{"amn-2", "amn-4"}, res.Affected)
	assert.Empty(t, res.Selection)

	// input untouched
	assert.True(t, amenities[1].IsActive)
	assert.Equal(t, domain.AvailabilityAvailable, amenities[1].AvailabilityStatus)
}

func TestApplyEntryBulk_DeactivateOnlyTouchesActiveFlag(t *testing.T) {
	dir := []domain.Entry{fixtures.Member(1), fixtures.Vendor(1), fixtures.Staff(1), fixtures.Security(1)}

	res := ApplyEntryBulk(dir, BulkDeactivate, []string{"mem-1", "ven-1", "stf-1", "sec-1"}, bulkNow)

	require.Len(t, res.Items, 4)
	for i, e := range res.Items {
		assert.False(t, e.IsActive)
		assert.Equal(t, domain.EntryStatusInactive, e.Status)
		assert.Equal(t, dir[i].Details, e.Details, "variant fields must be untouched")
		assert.Equal(t, dir[i].Name, e.Name)
	}
}

func TestApplyEntryBulk_Activate(t *testing.T) {
	members := fixtures.Members(4)
	res := ApplyEntryBulk(members, BulkActivate, []string{"mem-4"}, bulkNow)
	assert.True(t, res.Items[3].IsActive)
	assert.Equal(t, domain.EntryStatusActive, res.Items[3].Status)
	assert.False(t, members[3].IsActive)
}

func TestApplyEntryBulk_Delete(t *testing.T) {
	members := fixtures.Members(5)

	res := ApplyEntryBulk(members, BulkDelete, []string{"mem-2", "mem-5", "gone-1"}, bulkNow)

	assert.Equal(t, []string{"mem-1", "mem-3", "mem-4"}, ids(res.Items))
	assert.Equal(t, []string{"mem-2", "mem-5"}, res.Affected)

	again := ApplyEntryBulk(res.Items, BulkDelete, []string{"mem-2", "mem-5"}, bulkNow)
	assert.Equal(t, ids(res.Items), ids(again.Items))
	assert.Empty(t, again.Affected)
}

func TestApplyBulk_EmptySelectionIsNoOp(t *testing.T) {
	members := fixtures.Members(3)
	res := ApplyEntryBulk(members, BulkDelete, nil, bulkNow)
	assert.Equal(t, members, res.Items)
	assert.Empty(t, res.Affected)

	amenities := fixtures.Amenities(2)
	ares := ApplyAmenityBulk(amenities, BulkDeactivate, []string{}, bulkNow)
	assert.Equal(t, amenities, ares.Items)
}

func TestParseBulkAction(t *testing.T) {
	a, err := ParseBulkAction(" Deactivate ")
	assert.NoError(t, err)
	assert.Equal(t, BulkDeactivate, a)

	_, err = ParseBulkAction("archive")
	assert.Error(t, err)
}
