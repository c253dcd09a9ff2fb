package engine

import (
	"sort"
	"strings"

	"society-console-backend/internal/domain"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

type SortSpec struct {
	Field     string        `json:"field"`
	Direction SortDirection `json:"direction"`
}

// Toggle applies a header click: the active field flips direction, any other
// field becomes the new ascending key.
func (s SortSpec) Toggle(field string) SortSpec {
	if field == s.Field {
		if s.Direction == SortDesc {
			return SortSpec{Field: field, Direction: SortAsc}
		}
		return SortSpec{Field: field, Direction: SortDesc}
	}
	return SortSpec{Field: field, Direction: SortAsc}
}

const (
	EntrySortName       = "name"
	EntrySortEmail      = "email"
	EntrySortPhone      = "phone"
	EntrySortStatus     = "status"
	EntrySortDateJoined = "dateJoined"

	AmenitySortName               = "name"
	AmenitySortCategory           = "category"
	AmenitySortLocation           = "location"
	AmenitySortCapacity           = "capacity"
	AmenitySortAvailabilityStatus = "availabilityStatus"
	AmenitySortBookingStatus      = "bookingStatus"
	AmenitySortUsageDaily         = "usage.daily"
	AmenitySortRevenue            = "revenue"
)

type compareFunc[T any] func(a, b T) int

var entryComparators = map[string]compareFunc[domain.Entry]{
	EntrySortName:       func(a, b domain.Entry) int { return compareFold(a.Name, b.Name) },
	EntrySortEmail:      func(a, b domain.Entry) int { return compareFold(a.Email, b.Email) },
	EntrySortPhone:      func(a, b domain.Entry) int { return compareFold(a.Phone, b.Phone) },
	EntrySortStatus:     func(a, b domain.Entry) int { return compareFold(string(a.Status), string(b.Status)) },
	EntrySortDateJoined: func(a, b domain.Entry) int { return a.DateJoined.Compare(b.DateJoined) },
}

var amenityComparators = map[string]compareFunc[domain.Amenity]{
	AmenitySortName:     func(a, b domain.Amenity) int { return compareFold(a.Name, b.Name) },
	AmenitySortCategory: func(a, b domain.Amenity) int { return compareFold(string(a.Category), string(b.Category)) },
	AmenitySortLocation: func(a, b domain.Amenity) int { return compareFold(a.Location, b.Location) },
	AmenitySortCapacity: func(a, b domain.Amenity) int { return compareInt(a.Capacity, b.Capacity) },
	AmenitySortAvailabilityStatus: func(a, b domain.Amenity) int {
		return compareFold(string(a.AvailabilityStatus), string(b.AvailabilityStatus))
	},
	AmenitySortBookingStatus: func(a, b domain.Amenity) int {
		return compareFold(string(a.BookingStatus), string(b.BookingStatus))
	},
	AmenitySortUsageDaily: func(a, b domain.Amenity) int { return compareInt(a.Usage.Daily, b.Usage.Daily) },
	AmenitySortRevenue:    func(a, b domain.Amenity) int { return a.Revenue.Cmp(b.Revenue) },
}

// NormalizeEntrySort replaces an unknown field with name and an unknown
// direction with ascending.
func NormalizeEntrySort(s SortSpec) SortSpec {
	return normalize(s, entryComparators, EntrySortName)
}

func NormalizeAmenitySort(s SortSpec) SortSpec {
	return normalize(s, amenityComparators, AmenitySortName)
}

// SortEntries returns a stably sorted copy of entries.
func SortEntries(entries []domain.Entry, s SortSpec) []domain.Entry {
	s = NormalizeEntrySort(s)
	return stableSorted(entries, entryComparators[s.Field], s.Direction)
}

func SortAmenities(amenities []domain.Amenity, s SortSpec) []domain.Amenity {
	s = NormalizeAmenitySort(s)
	return stableSorted(amenities, amenityComparators[s.Field], s.Direction)
}

func normalize[T any](s SortSpec, fields map[string]compareFunc[T], fallback string) SortSpec {
	if _, ok := fields[s.Field]; !ok {
		s.Field = fallback
	}
	if s.Direction != SortDesc {
		s.Direction = SortAsc
	}
	return s
}

func stableSorted[T any](items []T, cmp compareFunc[T], dir SortDirection) []T {
	out := make([]T, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		c := cmp(out[i], out[j])
		if dir == SortDesc {
			return c > 0
		}
		return c < 0
	})
	return out
}

// compareFold is plain byte-wise ordering of the lowercased strings, so
// "member 10" sorts before "member 2".
func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
