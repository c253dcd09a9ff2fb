package http

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"society-console-backend/internal/domain"
	"society-console-backend/internal/engine"
)

// Pagination bounds the page size a client may ask for.
type Pagination struct {
	DefaultPageSize int
	MaxPageSize     int
}

func (p Pagination) pageSize(q url.Values) int {
	size := parseInt(q.Get("pageSize"), p.DefaultPageSize)
	if size <= 0 {
		size = p.DefaultPageSize
	}
	if p.MaxPageSize > 0 && size > p.MaxPageSize {
		size = p.MaxPageSize
	}
	return size
}

// directoryView builds the view for a directory request. An empty tab covers
// every entry type.
func (p Pagination) directoryView(q url.Values) (engine.DirectoryView, error) {
	tab := domain.EntryType(strings.ToUpper(strings.TrimSpace(q.Get("tab"))))
	if tab != "" && !tab.Valid() {
		return engine.DirectoryView{}, fmt.Errorf("unknown tab %q", q.Get("tab"))
	}

	filter := engine.EntryFilter{
		Search:     q.Get("search"),
		Status:     q.Get("status"),
		Role:       q.Get("role"),
		VendorType: q.Get("vendorType"),
		Department: q.Get("department"),
		UnitNumber: q.Get("unitNumber"),
	}
	if raw := q.Get("committee"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return engine.DirectoryView{}, fmt.Errorf("invalid committee %q", raw)
		}
		filter.Committee = &b
	}

	v := engine.NewDirectoryView(tab, p.pageSize(q))
	v = engine.ReduceDirectory(v, engine.SetEntryFilter{Filter: filter})
	if field := q.Get("sort"); field != "" {
		v.Sort = engine.NormalizeEntrySort(sortSpec(field, q.Get("dir")))
	}
	return engine.ReduceDirectory(v, engine.GoToPage{Page: parseInt(q.Get("page"), 1)}), nil
}

func (p Pagination) amenityView(q url.Values) (engine.AmenityView, error) {
	filter := engine.AmenityFilter{
		Search:             q.Get("search"),
		Category:           q.Get("category"),
		AvailabilityStatus: q.Get("availability"),
		BookingStatus:      q.Get("booking"),
	}
	if raw := q.Get("activeOnly"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return engine.AmenityView{}, fmt.Errorf("invalid activeOnly %q", raw)
		}
		filter.ActiveOnly = b
	}

	v := engine.NewAmenityView(p.pageSize(q))
	v = engine.ReduceAmenity(v, engine.SetAmenityFilter{Filter: filter})
	if field := q.Get("sort"); field != "" {
		v.Sort = engine.NormalizeAmenitySort(sortSpec(field, q.Get("dir")))
	}
	return engine.ReduceAmenity(v, engine.GoToPage{Page: parseInt(q.Get("page"), 1)}), nil
}

func sortSpec(field, dir string) engine.SortSpec {
	return engine.SortSpec{Field: field, Direction: engine.SortDirection(strings.ToLower(dir))}
}
