package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"society-console-backend/internal/domain"
	"society-console-backend/internal/fixtures"
)

func ids(entries []domain.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func TestFilterEntries_InactiveMembers(t *testing.T) {
	members := fixtures.Members(25)

	inactive := FilterEntries(members, EntryFilter{Tab: domain.EntryTypeMember, Status: string(domain.EntryStatusInactive)})
	active := FilterEntries(members, EntryFilter{Tab: domain.EntryTypeMember, Status: string(domain.EntryStatusActive)})

	assert.Equal(t, []string{"mem-4", "mem-8", "mem-12", "mem-16", "mem-20", "mem-24"}, ids(inactive))
	assert.Len(t, active, 19)
}

func TestFilterEntries_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	vendors := fixtures.Vendors(12)

	t.Run("Name", func(t *testing.T) {
		got := FilterEntries(vendors, EntryFilter{Tab: domain.EntryTypeVendor, Search: "VENDOR 5"})
		assert.Equal(t, []string{"ven-5"}, ids(got))
	})

	t.Run("Email", func(t *testing.T) {
		got := FilterEntries(vendors, EntryFilter{Tab: domain.EntryTypeVendor, Search: "Vendor5@SOCIETY"})
		assert.Equal(t, []string{"ven-5"}, ids(got))
	})

	t.Run("Phone", func(t *testing.T) {
		got := FilterEntries(vendors, EntryFilter{Tab: domain.EntryTypeVendor, Search: "00000011"})
		assert.Equal(t, []string{"ven-11"}, ids(got))
	})
}

func TestFilterEntries_SearchVendor5(t *testing.T) {
	vendors := fixtures.Vendors(12)

	got := FilterEntries(vendors, EntryFilter{Tab: domain.EntryTypeVendor, Search: "vendor5"})
	require.Len(t, got, 1)
	assert.Equal(t, "Vendor 5", got[0].Name)

	// a name written without the space matches on the name itself
	renamed := fixtures.Vendor(7)
	renamed.Name = "VENDOR5 Facility Services"
	renamed.Email = "ops@facility.test"
	got = FilterEntries([]domain.Entry{renamed}, EntryFilter{Tab: domain.EntryTypeVendor, Search: "vendor5"})
	assert.Len(t, got, 1)
}

func TestFilterEntries_EmptyFieldsAreNoOps(t *testing.T) {
	members := fixtures.Members(10)
	got := FilterEntries(members, EntryFilter{Tab: domain.EntryTypeMember})
	assert.Equal(t, ids(members), ids(got))
}

func TestFilterEntries_TabScopesCollection(t *testing.T) {
	dir := fixtures.Directory()
	got := FilterEntries(dir, EntryFilter{Tab: domain.EntryTypeStaff})
	assert.Len(t, got, 6)
	for _, e := range got {
		assert.Equal(t, domain.EntryTypeStaff, e.Type())
	}
}

func TestFilterEntries_TypeGatedFilters(t *testing.T) {
	dir := fixtures.Directory()

	t.Run("Unit number on member tab", func(t *testing.T) {
		got := FilterEntries(dir, EntryFilter{Tab: domain.EntryTypeMember, UnitNumber: "b-105"})
		assert.Equal(t, []string{"mem-5"}, ids(got))
	})

	t.Run("Unit number ignored on vendor tab", func(t *testing.T) {
		got := FilterEntries(dir, EntryFilter{Tab: domain.EntryTypeVendor, UnitNumber: "b-105"})
		assert.Len(t, got, 8)
	})

	t.Run("Committee on member tab", func(t *testing.T) {
		yes := true
		got := FilterEntries(dir, EntryFilter{Tab: domain.EntryTypeMember, Committee: &yes})
		assert.Equal(t, []string{"mem-5", "mem-10", "mem-15", "mem-20", "mem-25"}, ids(got))
	})

	t.Run("Department ignored on member tab", func(t *testing.T) {
		got := FilterEntries(dir, EntryFilter{Tab: domain.EntryTypeMember, Department: "MAINTENANCE"})
		assert.Len(t, got, 25)
	})

	t.Run("Department on staff tab", func(t *testing.T) {
		got := FilterEntries(dir, EntryFilter{Tab: domain.EntryTypeStaff, Department: "maintenance"})
		assert.Equal(t, []string{"stf-3", "stf-6"}, ids(got))
	})

	t.Run("Vendor type on vendor tab", func(t *testing.T) {
		got := FilterEntries(dir, EntryFilter{Tab: domain.EntryTypeVendor, VendorType: "CLEANING"})
		assert.Equal(t, []string{"ven-2", "ven-6"}, ids(got))
	})
}

func TestFilterEntries_ResultSatisfiesAllPredicates(t *testing.T) {
	members := fixtures.Members(25)
	spec := EntryFilter{Tab: domain.EntryTypeMember, Search: "member 1", Status: "ACTIVE", Role: "owner"}

	got := FilterEntries(members, spec)
	require.NotEmpty(t, got)

	pos := map[string]int{}
	for i, m := range members {
		pos[m.ID] = i
	}
	last := -1
	for _, e := range got {
		assert.Contains(t, []string{"Member 1", "Member 10", "Member 11", "Member 13", "Member 14", "Member 17", "Member 19"}, e.Name)
		assert.Equal(t, domain.EntryStatusActive, e.Status)
		m, ok := e.AsMember()
		require.True(t, ok)
		assert.Equal(t, domain.MemberRoleOwner, m.Role)
		assert.Greater(t, pos[e.ID], last, "order must be preserved")
		last = pos[e.ID]
	}
}

func TestFilterEntries_NoMatchIsEmptyNotNil(t *testing.T) {
	got := FilterEntries(fixtures.Members(3), EntryFilter{Tab: domain.EntryTypeMember, Search: "nobody"})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilterAmenities(t *testing.T) {
	amenities := fixtures.Amenities(12)
	amenities[2].IsActive = false
	amenities[3].AvailabilityStatus = domain.AvailabilityMaintenance

	t.Run("Category", func(t *testing.T) {
		got := FilterAmenities(amenities, AmenityFilter{Category: "fitness"})
		require.Len(t, got, 2)
		assert.Equal(t, "amn-1", got[0].ID)
		assert.Equal(t, "amn-11", got[1].ID)
	})

	t.Run("Search location", func(t *testing.T) {
		got := FilterAmenities(amenities, AmenityFilter{Search: "block a"})
		for _, a := range got {
			assert.Equal(t, "Block A", a.Location)
		}
		assert.Len(t, got, 4)
	})

	t.Run("Availability and active only", func(t *testing.T) {
		got := FilterAmenities(amenities, AmenityFilter{AvailabilityStatus: "available", ActiveOnly: true})
		assert.Len(t, got, 10)
	})
}
