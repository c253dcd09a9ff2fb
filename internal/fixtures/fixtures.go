// Package fixtures builds deterministic directory, amenity and verification
// records for tests and for seeding the in-memory store.
package fixtures

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"society-console-backend/internal/domain"
)

// Epoch is the fixed reference time every builder derives dates from.
var Epoch = time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)

func base(prefix, label string, i int) domain.BaseEntry {
	joined := Epoch.AddDate(0, 0, i)
	return domain.BaseEntry{
		ID:         fmt.Sprintf("%s-%d", prefix, i),
		Name:       fmt.Sprintf("%s %d", label, i),
		Email:      fmt.Sprintf("%s%d@society.test", strings.ToLower(label), i),
		Phone:      fmt.Sprintf("+91-98%08d", i),
		Address:    fmt.Sprintf("Tower %c", 'A'+rune(i%4)),
		Status:     domain.EntryStatusActive,
		IsActive:   true,
		DateJoined: joined,
		Documents:  []string{},
		CreatedAt:  joined,
		UpdatedAt:  joined,
	}
}

// Member builds member i. Every fourth member (i%4 == 0) is INACTIVE and
// every fifth is on the committee.
func Member(i int) domain.Entry {
	b := base("mem", "Member", i)
	if i%4 == 0 {
		b.Status = domain.EntryStatusInactive
		b.IsActive = false
	}
	role := domain.MemberRoleOwner
	if i%3 == 0 {
		role = domain.MemberRoleTenant
	}
	return domain.NewEntry(b, domain.MemberDetails{
		Role:              role,
		UnitNumber:        fmt.Sprintf("%c-%d", 'A'+rune(i%4), 100+i),
		UnitType:          []string{"1BHK", "2BHK", "3BHK"}[i%3],
		FloorNumber:       i % 12,
		IsCommitteeMember: i%5 == 0,
	})
}

func Vendor(i int) domain.Entry {
	b := base("ven", "Vendor", i)
	return domain.NewEntry(b, domain.VendorDetails{
		VendorType:    []string{"PLUMBING", "ELECTRICAL", "CLEANING", "CATERING"}[i%4],
		CompanyName:   fmt.Sprintf("Vendor Co %d", i),
		ContractStart: Epoch,
		Rating:        float64(3 + i%3),
	})
}

func Staff(i int) domain.Entry {
	b := base("stf", "Staff", i)
	return domain.NewEntry(b, domain.StaffDetails{
		EmployeeID: fmt.Sprintf("EMP%04d", i),
		Department: []string{"MAINTENANCE", "HOUSEKEEPING", "ADMINISTRATION"}[i%3],
		Role:       []string{"SUPERVISOR", "TECHNICIAN", "CLERK"}[i%3],
		Shift:      []string{"MORNING", "EVENING"}[i%2],
	})
}

func Security(i int) domain.Entry {
	b := base("sec", "Guard", i)
	expiry := Epoch.AddDate(1, 0, i)
	return domain.NewEntry(b, domain.SecurityDetails{
		EmployeeID:    fmt.Sprintf("SEC%04d", i),
		Department:    "SECURITY",
		Role:          []string{"GUARD", "SUPERVISOR"}[i%2],
		Shift:         []string{"DAY", "NIGHT"}[i%2],
		LicenseNumber: fmt.Sprintf("LIC-%05d", i),
		LicenseExpiry: &expiry,
	})
}

// Members builds members 1..n.
func Members(n int) []domain.Entry {
	return build(n, Member)
}

func Vendors(n int) []domain.Entry {
	return build(n, Vendor)
}

func StaffEntries(n int) []domain.Entry {
	return build(n, Staff)
}

func SecurityEntries(n int) []domain.Entry {
	return build(n, Security)
}

// Directory is a mixed directory of every type.
func Directory() []domain.Entry {
	var out []domain.Entry
	out = append(out, Members(25)...)
	out = append(out, Vendors(8)...)
	out = append(out, StaffEntries(6)...)
	out = append(out, SecurityEntries(4)...)
	return out
}

func build(n int, f func(int) domain.Entry) []domain.Entry {
	out := make([]domain.Entry, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, f(i))
	}
	return out
}

// Amenity builds amenity i, cycling through categories.
func Amenity(i int) domain.Amenity {
	next := Epoch.AddDate(0, 0, 7*i)
	return domain.Amenity{
		ID:          fmt.Sprintf("amn-%d", i),
		Name:        fmt.Sprintf("Amenity %d", i),
		Description: fmt.Sprintf("Shared facility %d", i),
		Category:    domain.AmenityCategories[(i-1)%len(domain.AmenityCategories)],
		Location:    fmt.Sprintf("Block %c", 'A'+rune(i%3)),
		Capacity:    10 * i,
		OperatingHours: domain.OperatingHours{
			Start: "06:00",
			End:   "22:00",
			Days:  []string{"MON", "TUE", "WED", "THU", "FRI", "SAT", "SUN"},
		},
		AvailabilityStatus: domain.AvailabilityAvailable,
		BookingStatus:      domain.BookingOpen,
		Maintenance: domain.MaintenanceSchedule{
			NextDate:  &next,
			Frequency: "WEEKLY",
		},
		Pricing: domain.Pricing{
			HourlyRate:            decimal.NewFromInt(int64(100 * i)),
			DailyRate:             decimal.NewFromInt(int64(800 * i)),
			MemberDiscountPercent: decimal.NewFromInt(10),
			SecurityDeposit:       decimal.NewFromInt(500),
		},
		Usage:     domain.Usage{Daily: i, Weekly: 7 * i, Monthly: 30 * i},
		Revenue:   decimal.NewFromFloat(float64(i) * 1250.50),
		Reviews:   []domain.Review{{Rating: 1 + i%5, Author: "resident", Date: Epoch}},
		IsActive:  true,
		CreatedAt: Epoch,
		UpdatedAt: Epoch,
	}
}

func Amenities(n int) []domain.Amenity {
	out := make([]domain.Amenity, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, Amenity(i))
	}
	return out
}

// Verification builds a society checklist with n pending items spread over
// all categories; items listed in required are marked required (1-based).
func Verification(societyID string, n int, required ...int) domain.SocietyVerification {
	req := make(map[int]bool, len(required))
	for _, r := range required {
		req[r] = true
	}
	priorities := []domain.VerificationPriority{domain.PriorityHigh, domain.PriorityMedium, domain.PriorityLow}
	items := make([]domain.VerificationItem, 0, n)
	for i := 1; i <= n; i++ {
		items = append(items, domain.VerificationItem{
			ID:         fmt.Sprintf("item-%d", i),
			Title:      fmt.Sprintf("Checklist item %d", i),
			Category:   domain.VerificationCategories[(i-1)%len(domain.VerificationCategories)],
			Priority:   priorities[(i-1)%len(priorities)],
			Status:     domain.VerificationPending,
			IsRequired: req[i],
			Documents:  []string{},
		})
	}
	return domain.SocietyVerification{
		SocietyID:            societyID,
		SocietyName:          "Green Meadows",
		Items:                items,
		OverallStatus:        domain.OverallNotStarted,
		StartDate:            Epoch,
		TargetCompletionDate: Epoch.AddDate(0, 3, 0),
	}
}

// CompleteItems marks items with the given 1-based indices COMPLETED.
func CompleteItems(sv domain.SocietyVerification, verifier string, indices ...int) domain.SocietyVerification {
	sv = sv.Clone()
	for _, i := range indices {
		if i < 1 || i > len(sv.Items) {
			continue
		}
		by := verifier
		at := Epoch
		sv.Items[i-1].Status = domain.VerificationCompleted
		sv.Items[i-1].VerifiedBy = &by
		sv.Items[i-1].VerifiedDate = &at
	}
	return sv
}
