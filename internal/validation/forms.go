package validation

import (
	"time"

	"github.com/shopspring/decimal"

	"society-console-backend/internal/domain"
)

// EntryForm is the create/edit payload for a directory entry. Variant fields
// are read according to Type and ignored otherwise.
type EntryForm struct {
	Type      domain.EntryType   `json:"type" validate:"required,entry_type"`
	Name      string             `json:"name" validate:"notblank,max=120"`
	Email     string             `json:"email" validate:"required,email"`
	Phone     string             `json:"phone" validate:"omitempty,phone"`
	Address   string             `json:"address" validate:"max=250"`
	Status    domain.EntryStatus `json:"status" validate:"omitempty,entry_status"`
	Documents []string           `json:"documents"`

	Role              string  `json:"role"`
	UnitNumber        string  `json:"unit_number"`
	UnitType          string  `json:"unit_type"`
	FloorNumber       int     `json:"floor_number" validate:"min=0"`
	IsCommitteeMember bool    `json:"is_committee_member"`
	CommitteeRole     string  `json:"committee_role"`
	VendorType        string  `json:"vendor_type"`
	CompanyName       string  `json:"company_name"`
	Rating            float64 `json:"rating" validate:"min=0,max=5"`
	EmployeeID        string  `json:"employee_id"`
	Department        string  `json:"department"`
	Shift             string  `json:"shift"`
	LicenseNumber     string  `json:"license_number"`
}

// Entry builds the directory record for a validated form. A missing status
// defaults to ACTIVE.
func (f EntryForm) Entry(id string, now time.Time) domain.Entry {
	status := f.Status
	if status == "" {
		status = domain.EntryStatusActive
	}
	docs := f.Documents
	if docs == nil {
		docs = []string{}
	}
	base := domain.BaseEntry{
		ID:         id,
		Name:       f.Name,
		Email:      f.Email,
		Phone:      f.Phone,
		Address:    f.Address,
		Status:     status,
		IsActive:   status == domain.EntryStatusActive,
		DateJoined: now,
		Documents:  docs,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return domain.NewEntry(base, f.details(now))
}

func (f EntryForm) details(now time.Time) domain.Details {
	switch f.Type {
	case domain.EntryTypeVendor:
		return domain.VendorDetails{
			VendorType:    f.VendorType,
			CompanyName:   f.CompanyName,
			ContractStart: now,
			Rating:        f.Rating,
		}
	case domain.EntryTypeStaff:
		return domain.StaffDetails{
			EmployeeID: f.EmployeeID,
			Department: f.Department,
			Role:       f.Role,
			Shift:      f.Shift,
		}
	case domain.EntryTypeSecurity:
		return domain.SecurityDetails{
			EmployeeID:    f.EmployeeID,
			Department:    f.Department,
			Role:          f.Role,
			Shift:         f.Shift,
			LicenseNumber: f.LicenseNumber,
		}
	}
	role := domain.MemberRole(f.Role)
	if role == "" {
		role = domain.MemberRoleOwner
	}
	return domain.MemberDetails{
		Role:              role,
		UnitNumber:        f.UnitNumber,
		UnitType:          f.UnitType,
		FloorNumber:       f.FloorNumber,
		IsCommitteeMember: f.IsCommitteeMember,
		CommitteeRole:     f.CommitteeRole,
	}
}

type ReviewForm struct {
	Rating  int    `json:"rating" validate:"min=1,max=5"`
	Comment string `json:"comment" validate:"max=1000"`
	Author  string `json:"author"`
}

type OperatingHoursForm struct {
	Start string   `json:"start" validate:"omitempty,hhmm"`
	End   string   `json:"end" validate:"omitempty,hhmm"`
	Days  []string `json:"days"`
}

type PricingForm struct {
	HourlyRate            decimal.Decimal `json:"hourly_rate" validate:"min=0"`
	DailyRate             decimal.Decimal `json:"daily_rate" validate:"min=0"`
	MemberDiscountPercent decimal.Decimal `json:"member_discount_percent" validate:"min=0,max=100"`
	SecurityDeposit       decimal.Decimal `json:"security_deposit" validate:"min=0"`
}

// AmenityForm is the create/edit payload for an amenity.
type AmenityForm struct {
	Name           string                 `json:"name" validate:"notblank,max=120"`
	Description    string                 `json:"description" validate:"max=2000"`
	Category       domain.AmenityCategory `json:"category" validate:"required,amenity_category"`
	Location       string                 `json:"location" validate:"notblank"`
	Capacity       int                    `json:"capacity" validate:"gt=0"`
	OperatingHours OperatingHoursForm     `json:"operating_hours"`
	Pricing        PricingForm            `json:"pricing"`
	Reviews        []ReviewForm           `json:"reviews" validate:"dive"`
}

// Amenity builds a new, active and bookable amenity from a validated form.
func (f AmenityForm) Amenity(id string, now time.Time) domain.Amenity {
	a := domain.Amenity{
		ID:                 id,
		AvailabilityStatus: domain.AvailabilityAvailable,
		BookingStatus:      domain.BookingOpen,
		Revenue:            decimal.Zero,
		IsActive:           true,
		CreatedAt:          now,
	}
	return f.ApplyTo(a, now)
}

// ApplyTo overwrites the editable fields of a, keeping its id, lifecycle
// state, usage and revenue. Reviews are replaced only when the form has any.
func (f AmenityForm) ApplyTo(a domain.Amenity, now time.Time) domain.Amenity {
	a = a.Clone()
	a.Name = f.Name
	a.Description = f.Description
	a.Category = f.Category
	a.Location = f.Location
	a.Capacity = f.Capacity
	days := f.OperatingHours.Days
	if days == nil {
		days = []string{}
	}
	a.OperatingHours = domain.OperatingHours{Start: f.OperatingHours.Start, End: f.OperatingHours.End, Days: days}
	a.Pricing = domain.Pricing{
		HourlyRate:            f.Pricing.HourlyRate,
		DailyRate:             f.Pricing.DailyRate,
		MemberDiscountPercent: f.Pricing.MemberDiscountPercent,
		SecurityDeposit:       f.Pricing.SecurityDeposit,
	}
	if len(f.Reviews) > 0 {
		a.Reviews = make([]domain.Review, 0, len(f.Reviews))
		for _, r := range f.Reviews {
			a.Reviews = append(a.Reviews, domain.Review{Rating: r.Rating, Comment: r.Comment, Author: r.Author, Date: now})
		}
	}
	if a.Reviews == nil {
		a.Reviews = []domain.Review{}
	}
	a.UpdatedAt = now
	return a
}
