package engine

import (
	"math"

	"github.com/shopspring/decimal"

	"society-console-backend/internal/domain"
)

// Percentage is count/total as a percent rounded to one decimal, 0 when
// total is 0.
func Percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)*1000/float64(total)) / 10
}

// percentageDrift is 100 minus the sum of rounded percentages. It is reported
// next to the percentages so callers can see rounding error; it is never
// folded back into any bucket.
func percentageDrift(percentages []float64, total int) float64 {
	if total == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range percentages {
		sum += p
	}
	return math.Round((100-sum)*10) / 10
}

type DirectoryStats struct {
	Total               int                          `json:"total"`
	Active              int                          `json:"active"`
	CountsByType        map[domain.EntryType]int     `json:"counts_by_type"`
	CountsByStatus      map[domain.EntryStatus]int   `json:"counts_by_status"`
	PercentagesByType   map[domain.EntryType]float64 `json:"percentages_by_type"`
	PercentageDrift     float64                      `json:"percentage_drift"`
	CommitteeMembers    int                          `json:"committee_members"`
	AverageVendorRating float64                      `json:"average_vendor_rating"`
}

// ComputeDirectoryStats aggregates the whole directory, ignoring any filter.
func ComputeDirectoryStats(entries []domain.Entry) DirectoryStats {
	st := DirectoryStats{
		Total:             len(entries),
		CountsByType:      make(map[domain.EntryType]int, len(domain.EntryTypes)),
		CountsByStatus:    make(map[domain.EntryStatus]int, len(domain.EntryStatuses)),
		PercentagesByType: make(map[domain.EntryType]float64, len(domain.EntryTypes)),
	}
	for _, t := range domain.EntryTypes {
		st.CountsByType[t] = 0
	}
	for _, s := range domain.EntryStatuses {
		st.CountsByStatus[s] = 0
	}

	ratingSum, rated := 0.0, 0
	for _, e := range entries {
		st.CountsByType[e.Type()]++
		st.CountsByStatus[e.Status]++
		if e.Status == domain.EntryStatusActive {
			st.Active++
		}
		if m, ok := e.AsMember(); ok && m.IsCommitteeMember {
			st.CommitteeMembers++
		}
		if v, ok := e.AsVendor(); ok && v.Rating > 0 {
			ratingSum += v.Rating
			rated++
		}
	}
	if rated > 0 {
		st.AverageVendorRating = ratingSum / float64(rated)
	}

	pcts := make([]float64, 0, len(st.CountsByType))
	for t, n := range st.CountsByType {
		p := Percentage(n, st.Total)
		st.PercentagesByType[t] = p
		pcts = append(pcts, p)
	}
	st.PercentageDrift = percentageDrift(pcts, st.Total)
	return st
}

type AmenityStats struct {
	Total                 int                                `json:"total"`
	Active                int                                `json:"active"`
	Available             int                                `json:"available"`
	Booked                int                                `json:"booked"`
	UnderMaintenance      int                                `json:"under_maintenance"`
	MaintenanceOverdue    int                                `json:"maintenance_overdue"`
	CountsByCategory      map[domain.AmenityCategory]int     `json:"counts_by_category"`
	PercentagesByCategory map[domain.AmenityCategory]float64 `json:"percentages_by_category"`
	PercentageDrift       float64                            `json:"percentage_drift"`
	AverageRating         float64                            `json:"average_rating"`
	TotalReviews          int                                `json:"total_reviews"`
	TotalRevenue          decimal.Decimal                    `json:"total_revenue"`
	TotalDailyUsage       int                                `json:"total_daily_usage"`
}

// ComputeAmenityStats aggregates every amenity. Booked counts both booked and
// partially booked amenities. AverageRating is the mean over all individual
// reviews.
func ComputeAmenityStats(amenities []domain.Amenity) AmenityStats {
	st := AmenityStats{
		Total:                 len(amenities),
		CountsByCategory:      make(map[domain.AmenityCategory]int, len(domain.AmenityCategories)),
		PercentagesByCategory: make(map[domain.AmenityCategory]float64, len(domain.AmenityCategories)),
		TotalRevenue:          decimal.Zero,
	}
	for _, c := range domain.AmenityCategories {
		st.CountsByCategory[c] = 0
	}

	ratingSum := 0
	for _, a := range amenities {
		st.CountsByCategory[a.Category]++
		if a.IsActive {
			st.Active++
		}
		switch a.AvailabilityStatus {
		case domain.AvailabilityAvailable:
			st.Available++
		case domain.AvailabilityMaintenance:
			st.UnderMaintenance++
		}
		if a.BookingStatus == domain.BookingBooked || a.BookingStatus == domain.BookingPartiallyBooked {
			st.Booked++
		}
		if a.Maintenance.IsOverdue {
			st.MaintenanceOverdue++
		}
		for _, r := range a.Reviews {
			ratingSum += r.Rating
			st.TotalReviews++
		}
		st.TotalRevenue = st.TotalRevenue.Add(a.Revenue)
		st.TotalDailyUsage += a.Usage.Daily
	}
	if st.TotalReviews > 0 {
		st.AverageRating = float64(ratingSum) / float64(st.TotalReviews)
	}

	pcts := make([]float64, 0, len(st.CountsByCategory))
	for c, n := range st.CountsByCategory {
		p := Percentage(n, st.Total)
		st.PercentagesByCategory[c] = p
		pcts = append(pcts, p)
	}
	st.PercentageDrift = percentageDrift(pcts, st.Total)
	return st
}
