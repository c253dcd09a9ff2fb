// Package engine holds the pure search, filter, sort, paginate, aggregate and
// bulk-action functions that back the directory, amenity and verification
// views. Nothing here mutates its inputs or performs I/O.
package engine

import (
	"strings"

	"society-console-backend/internal/domain"
)

// EntryFilter selects entries within the active directory tab. Empty fields
// are no-ops. Role compares against Entry.Role for every type. UnitNumber
// and Committee only apply on the member tab, VendorType only on the vendor
// tab, Department only on staff and security.
type EntryFilter struct {
	Tab        domain.EntryType `json:"tab"`
	Search     string           `json:"search"`
	Status     string           `json:"status"`
	Role       string           `json:"role"`
	VendorType string           `json:"vendor_type"`
	Department string           `json:"department"`
	UnitNumber string           `json:"unit_number"`
	Committee  *bool            `json:"committee,omitempty"`
}

// IsZero reports whether no field other than the tab is set.
func (f EntryFilter) IsZero() bool {
	return f.Search == "" && f.Status == "" && f.Role == "" && f.VendorType == "" &&
		f.Department == "" && f.UnitNumber == "" && f.Committee == nil
}

// FilterEntries returns the entries matching f, in input order. An empty
// Tab means every type is in scope and type-gated fields are ignored.
func FilterEntries(entries []domain.Entry, f EntryFilter) []domain.Entry {
	term := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]domain.Entry, 0, len(entries))
	for _, e := range entries {
		if f.Tab != "" && e.Type() != f.Tab {
			continue
		}
		if term != "" && !matchesSearch(term, e.Name, e.Email, e.Phone) {
			continue
		}
		if f.Status != "" && !strings.EqualFold(string(e.Status), f.Status) {
			continue
		}
		if f.Role != "" && !strings.EqualFold(e.Role(), f.Role) {
			continue
		}
		if !matchesVariant(e, f) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func matchesVariant(e domain.Entry, f EntryFilter) bool {
	switch d := e.Details.(type) {
	case domain.MemberDetails:
		if f.Tab != domain.EntryTypeMember {
			return true
		}
		if f.UnitNumber != "" && !containsFold(d.UnitNumber, f.UnitNumber) {
			return false
		}
		if f.Committee != nil && d.IsCommitteeMember != *f.Committee {
			return false
		}
	case domain.VendorDetails:
		if f.Tab == domain.EntryTypeVendor && f.VendorType != "" && !strings.EqualFold(d.VendorType, f.VendorType) {
			return false
		}
	case domain.StaffDetails:
		if f.Tab == domain.EntryTypeStaff && f.Department != "" && !strings.EqualFold(d.Department, f.Department) {
			return false
		}
	case domain.SecurityDetails:
		if f.Tab == domain.EntryTypeSecurity && f.Department != "" && !strings.EqualFold(d.Department, f.Department) {
			return false
		}
	}
	return true
}

// AmenityFilter selects amenities. Search matches name, location or
// description.
type AmenityFilter struct {
	Search             string `json:"search"`
	Category           string `json:"category"`
	AvailabilityStatus string `json:"availability_status"`
	BookingStatus      string `json:"booking_status"`
	ActiveOnly         bool   `json:"active_only"`
}

func FilterAmenities(amenities []domain.Amenity, f AmenityFilter) []domain.Amenity {
	term := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]domain.Amenity, 0, len(amenities))
	for _, a := range amenities {
		if term != "" && !matchesSearch(term, a.Name, a.Location, a.Description) {
			continue
		}
		if f.Category != "" && !strings.EqualFold(string(a.Category), f.Category) {
			continue
		}
		if f.AvailabilityStatus != "" && !strings.EqualFold(string(a.AvailabilityStatus), f.AvailabilityStatus) {
			continue
		}
		if f.BookingStatus != "" && !strings.EqualFold(string(a.BookingStatus), f.BookingStatus) {
			continue
		}
		if f.ActiveOnly && !a.IsActive {
			continue
		}
		out = append(out, a)
	}
	return out
}

// matchesSearch expects term already lowercased.
func matchesSearch(term string, fields ...string) bool {
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
