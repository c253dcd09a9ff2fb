package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"society-console-backend/internal/domain"
	"society-console-backend/internal/fixtures"
)

func TestReduceDirectory_SwitchTabResetsEverything(t *testing.T) {
	yes := true
	v := NewDirectoryView(domain.EntryTypeMember, 5)
	v = ReduceDirectory(v, SetEntryFilter{Filter: EntryFilter{Search: "member", Status: "ACTIVE", UnitNumber: "A-1", Committee: &yes}})
	v = ReduceDirectory(v, ToggleSort{Field: EntrySortEmail})
	v = ReduceDirectory(v, GoToPage{Page: 3})
	v = ReduceDirectory(v, SetSelection{IDs: []string{"mem-1"}})

	v = ReduceDirectory(v, SwitchTab{Tab: domain.EntryTypeVendor})

	assert.Equal(t, EntryFilter{Tab: domain.EntryTypeVendor}, v.Filter)
	assert.True(t, v.Filter.IsZero())
	assert.Equal(t, SortSpec{Field: EntrySortName, Direction: SortAsc}, v.Sort)
	assert.Equal(t, PageSpec{Page: 1, PageSize: 5}, v.Page)
	assert.Empty(t, v.Selection)
}

func TestReduceDirectory_FilterAndSortResetPage(t *testing.T) {
	v := NewDirectoryView(domain.EntryTypeMember, 10)

	v = ReduceDirectory(v, GoToPage{Page: 3})
	v = ReduceDirectory(v, SetEntryFilter{Filter: EntryFilter{Tab: domain.EntryTypeStaff, Search: "x"}})
	assert.Equal(t, 1, v.Page.Page)
	assert.Equal(t, domain.EntryTypeMember, v.Filter.Tab, "filter cannot change the tab")

	v = ReduceDirectory(v, GoToPage{Page: 2})
	v = ReduceDirectory(v, ToggleSort{Field: EntrySortName})
	assert.Equal(t, 1, v.Page.Page)
	assert.Equal(t, SortDesc, v.Sort.Direction)
}

func TestRenderDirectory(t *testing.T) {
	v := NewDirectoryView(domain.EntryTypeMember, 10)
	v = ReduceDirectory(v, ToggleSort{Field: EntrySortDateJoined})
	v = ReduceDirectory(v, ToggleSort{Field: EntrySortDateJoined})
	v = ReduceDirectory(v, GoToPage{Page: 7})

	page := RenderDirectory(fixtures.Directory(), v)

	assert.Equal(t, 3, page.Page)
	assert.Equal(t, 25, page.Total)
	assert.Equal(t, []string{"mem-5", "mem-4", "mem-3", "mem-2", "mem-1"}, ids(page.Items))

	// same inputs, same output
	assert.Equal(t, page, RenderDirectory(fixtures.Directory(), v))
}

func TestReduceAmenity(t *testing.T) {
	v := NewAmenityView(4)
	v = ReduceAmenity(v, GoToPage{Page: 2})
	v = ReduceAmenity(v, SetAmenityFilter{Filter: AmenityFilter{ActiveOnly: true}})
	assert.Equal(t, 1, v.Page.Page)

	v = ReduceAmenity(v, ToggleSort{Field: AmenitySortCapacity})
	v = ReduceAmenity(v, ToggleSort{Field: AmenitySortCapacity})
	page := RenderAmenities(fixtures.Amenities(6), v)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 60, page.Items[0].Capacity)

	v = ReduceAmenity(v, SetSelection{IDs: []string{"amn-1"}})
	v = ReduceAmenity(v, ClearSelection{})
	assert.Empty(t, v.Selection)
}
