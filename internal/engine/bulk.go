package engine

import (
	"fmt"
	"strings"
	"time"

	"society-console-backend/internal/domain"
)

type BulkAction string

const (
	BulkActivate   BulkAction = "activate"
	BulkDeactivate BulkAction = "deactivate"
	BulkDelete     BulkAction = "delete"
)

func ParseBulkAction(s string) (BulkAction, error) {
	switch a := BulkAction(strings.ToLower(strings.TrimSpace(s))); a {
	case BulkActivate, BulkDeactivate, BulkDelete:
		return a, nil
	}
	return "", fmt.Errorf("unknown bulk action %q", s)
}

// BulkResult carries the new collection and the ids that were actually
// touched. Selection is always empty after a bulk action.
type BulkResult[T any] struct {
	Items     []T      `json:"items"`
	Affected  []string `json:"affected"`
	Selection []string `json:"selection"`
}

// ApplyEntryBulk applies action to the entries whose ids are in ids. Ids not
// present are skipped. Activation and deactivation set the active flag and
// the matching ACTIVE/INACTIVE status; variant fields are never touched.
func ApplyEntryBulk(entries []domain.Entry, action BulkAction, ids []string, now time.Time) BulkResult[domain.Entry] {
	if len(ids) == 0 {
		return BulkResult[domain.Entry]{Items: cloneEntries(entries), Affected: []string{}, Selection: []string{}}
	}
	targets := idSet(ids)
	out := make([]domain.Entry, 0, len(entries))
	affected := make([]string, 0, len(targets))
	for _, e := range entries {
		if _, hit := targets[e.ID]; !hit {
			out = append(out, e.Clone())
			continue
		}
		affected = append(affected, e.ID)
		switch action {
		case BulkDelete:
			continue
		case BulkActivate:
			e = e.Clone()
			e.IsActive = true
			e.Status = domain.EntryStatusActive
			e.UpdatedAt = now
		case BulkDeactivate:
			e = e.Clone()
			e.IsActive = false
			e.Status = domain.EntryStatusInactive
			e.UpdatedAt = now
		}
		out = append(out, e)
	}
	return BulkResult[domain.Entry]{Items: out, Affected: affected, Selection: []string{}}
}

// ApplyAmenityBulk is ApplyEntryBulk for amenities; deactivation goes through
// DeactivateAmenity.
func ApplyAmenityBulk(amenities []domain.Amenity, action BulkAction, ids []string, now time.Time) BulkResult[domain.Amenity] {
	if len(ids) == 0 {
		return BulkResult[domain.Amenity]{Items: cloneAmenities(amenities), Affected: []string{}, Selection: []string{}}
	}
	targets := idSet(ids)
	out := make([]domain.Amenity, 0, len(amenities))
	affected := make([]string, 0, len(targets))
	for _, a := range amenities {
		if _, hit := targets[a.ID]; !hit {
			out = append(out, a.Clone())
			continue
		}
		affected = append(affected, a.ID)
		switch action {
		case BulkDelete:
			continue
		case BulkActivate:
			a = a.Clone()
			a.IsActive = true
			a.UpdatedAt = now
		case BulkDeactivate:
			a = DeactivateAmenity(a, now)
		}
		out = append(out, a)
	}
	return BulkResult[domain.Amenity]{Items: out, Affected: affected, Selection: []string{}}
}

// DeactivateAmenity is the amenity-only rule: a deactivated amenity is also
// unavailable for booking.
func DeactivateAmenity(a domain.Amenity, now time.Time) domain.Amenity {
	a = a.Clone()
	a.IsActive = false
	a.AvailabilityStatus = domain.AvailabilityUnavailable
	a.UpdatedAt = now
	return a
}

func idSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func cloneEntries(entries []domain.Entry) []domain.Entry {
	out := make([]domain.Entry, len(entries))
	for i, e := range entries {
		out[i] = e.Clone()
	}
	return out
}

func cloneAmenities(amenities []domain.Amenity) []domain.Amenity {
	out := make([]domain.Amenity, len(amenities))
	for i, a := range amenities {
		out[i] = a.Clone()
	}
	return out
}
