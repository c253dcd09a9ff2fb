package engine

import "society-console-backend/internal/domain"

// DirectoryView is the full, explicit state of a directory screen. Reduce is
// the only way it changes.
type DirectoryView struct {
	Filter    EntryFilter `json:"filter"`
	Sort      SortSpec    `json:"sort"`
	Page      PageSpec    `json:"page"`
	Selection []string    `json:"selection"`
}

func NewDirectoryView(tab domain.EntryType, pageSize int) DirectoryView {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return DirectoryView{
		Filter:    EntryFilter{Tab: tab},
		Sort:      SortSpec{Field: EntrySortName, Direction: SortAsc},
		Page:      PageSpec{Page: 1, PageSize: pageSize},
		Selection: []string{},
	}
}

type DirectoryAction interface {
	applyDirectory(DirectoryView) DirectoryView
}

// SwitchTab clears every filter, including search, and resets sort, page and
// selection.
type SwitchTab struct{ Tab domain.EntryType }

// SetEntryFilter replaces the filter but keeps the current tab.
type SetEntryFilter struct{ Filter EntryFilter }

type ToggleSort struct{ Field string }

type GoToPage struct{ Page int }

type SetPageSize struct{ PageSize int }

type SetSelection struct{ IDs []string }

type ClearSelection struct{}

func (a SwitchTab) applyDirectory(v DirectoryView) DirectoryView {
	if a.Tab == v.Filter.Tab {
		return v
	}
	return NewDirectoryView(a.Tab, v.Page.PageSize)
}

func (a SetEntryFilter) applyDirectory(v DirectoryView) DirectoryView {
	f := a.Filter
	f.Tab = v.Filter.Tab
	v.Filter = f
	v.Page.Page = 1
	return v
}

func (a ToggleSort) applyDirectory(v DirectoryView) DirectoryView {
	v.Sort = NormalizeEntrySort(v.Sort.Toggle(a.Field))
	v.Page.Page = 1
	return v
}

func (a GoToPage) applyDirectory(v DirectoryView) DirectoryView {
	v.Page.Page = a.Page
	return v
}

func (a SetPageSize) applyDirectory(v DirectoryView) DirectoryView {
	if a.PageSize > 0 {
		v.Page.PageSize = a.PageSize
	}
	v.Page.Page = 1
	return v
}

func (a SetSelection) applyDirectory(v DirectoryView) DirectoryView {
	v.Selection = append([]string(nil), a.IDs...)
	return v
}

func (ClearSelection) applyDirectory(v DirectoryView) DirectoryView {
	v.Selection = []string{}
	return v
}

func ReduceDirectory(v DirectoryView, action DirectoryAction) DirectoryView {
	return action.applyDirectory(v)
}

// FilteredEntries runs filter then sort without paginating; export uses it.
func FilteredEntries(entries []domain.Entry, v DirectoryView) []domain.Entry {
	return SortEntries(FilterEntries(entries, v.Filter), v.Sort)
}

// RenderDirectory runs the filter, sort and paginate pipeline for v.
func RenderDirectory(entries []domain.Entry, v DirectoryView) Page[domain.Entry] {
	return Paginate(FilteredEntries(entries, v), v.Page)
}

// AmenityView is the state of the amenity screen.
type AmenityView struct {
	Filter    AmenityFilter `json:"filter"`
	Sort      SortSpec      `json:"sort"`
	Page      PageSpec      `json:"page"`
	Selection []string      `json:"selection"`
}

func NewAmenityView(pageSize int) AmenityView {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return AmenityView{
		Sort:      SortSpec{Field: AmenitySortName, Direction: SortAsc},
		Page:      PageSpec{Page: 1, PageSize: pageSize},
		Selection: []string{},
	}
}

type AmenityAction interface {
	applyAmenity(AmenityView) AmenityView
}

type SetAmenityFilter struct{ Filter AmenityFilter }

func (a SetAmenityFilter) applyAmenity(v AmenityView) AmenityView {
	v.Filter = a.Filter
	v.Page.Page = 1
	return v
}

func (a ToggleSort) applyAmenity(v AmenityView) AmenityView {
	v.Sort = NormalizeAmenitySort(v.Sort.Toggle(a.Field))
	v.Page.Page = 1
	return v
}

func (a GoToPage) applyAmenity(v AmenityView) AmenityView {
	v.Page.Page = a.Page
	return v
}

func (a SetPageSize) applyAmenity(v AmenityView) AmenityView {
	if a.PageSize > 0 {
		v.Page.PageSize = a.PageSize
	}
	v.Page.Page = 1
	return v
}

func (a SetSelection) applyAmenity(v AmenityView) AmenityView {
	v.Selection = append([]string(nil), a.IDs...)
	return v
}

func (ClearSelection) applyAmenity(v AmenityView) AmenityView {
	v.Selection = []string{}
	return v
}

func ReduceAmenity(v AmenityView, action AmenityAction) AmenityView {
	return action.applyAmenity(v)
}

func FilteredAmenities(amenities []domain.Amenity, v AmenityView) []domain.Amenity {
	return SortAmenities(FilterAmenities(amenities, v.Filter), v.Sort)
}

func RenderAmenities(amenities []domain.Amenity, v AmenityView) Page[domain.Amenity] {
	return Paginate(FilteredAmenities(amenities, v), v.Page)
}
