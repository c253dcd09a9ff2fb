package domain

import (
	"slices"
	"time"
)

type EntryType string

const (
	EntryTypeMember   EntryType = "MEMBER"
	EntryTypeVendor   EntryType = "VENDOR"
	EntryTypeStaff    EntryType = "STAFF"
	EntryTypeSecurity EntryType = "SECURITY"
)

// EntryTypes lists the directory tabs in display order.
var EntryTypes = []EntryType{EntryTypeMember, EntryTypeVendor, EntryTypeStaff, EntryTypeSecurity}

func (t EntryType) Valid() bool {
	switch t {
	case EntryTypeMember, EntryTypeVendor, EntryTypeStaff, EntryTypeSecurity:
		return true
	}
	return false
}

type EntryStatus string

const (
	EntryStatusActive     EntryStatus = "ACTIVE"
	EntryStatusInactive   EntryStatus = "INACTIVE"
	EntryStatusSuspended  EntryStatus = "SUSPENDED"
	EntryStatusPending    EntryStatus = "PENDING"
	EntryStatusTerminated EntryStatus = "TERMINATED"
)

var EntryStatuses = []EntryStatus{
	EntryStatusActive,
	EntryStatusInactive,
	EntryStatusSuspended,
	EntryStatusPending,
	EntryStatusTerminated,
}

type MemberRole string

const (
	MemberRoleOwner        MemberRole = "OWNER"
	MemberRoleTenant       MemberRole = "TENANT"
	MemberRoleFamilyMember MemberRole = "FAMILY_MEMBER"
)

type BaseEntry struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Phone      string      `json:"phone"`
	Address    string      `json:"address"`
	Status     EntryStatus `json:"status"`
	IsActive   bool        `json:"is_active"`
	DateJoined time.Time   `json:"date_joined"`
	Documents  []string    `json:"documents"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// Details is the variant-specific half of an Entry. The unexported method
// keeps the set of variants closed to this package.
type Details interface {
	entryType() EntryType
}

type MemberDetails struct {
	Role              MemberRole `json:"role"`
	UnitNumber        string     `json:"unit_number"`
	UnitType          string     `json:"unit_type"`
	FloorNumber       int        `json:"floor_number"`
	IsCommitteeMember bool       `json:"is_committee_member"`
	CommitteeRole     string     `json:"committee_role,omitempty"`
}

type VendorDetails struct {
	VendorType    string     `json:"vendor_type"`
	CompanyName   string     `json:"company_name"`
	ContractStart time.Time  `json:"contract_start"`
	ContractEnd   *time.Time `json:"contract_end,omitempty"`
	Rating        float64    `json:"rating"`
}

type StaffDetails struct {
	EmployeeID string `json:"employee_id"`
	Department string `json:"department"`
	Role       string `json:"role"`
	Shift      string `json:"shift"`
}

type SecurityDetails struct {
	EmployeeID    string     `json:"employee_id"`
	Department    string     `json:"department"`
	Role          string     `json:"role"`
	Shift         string     `json:"shift"`
	LicenseNumber string     `json:"license_number"`
	LicenseExpiry *time.Time `json:"license_expiry,omitempty"`
}

func (MemberDetails) entryType() EntryType   { return EntryTypeMember }
func (VendorDetails) entryType() EntryType   { return EntryTypeVendor }
func (StaffDetails) entryType() EntryType    { return EntryTypeStaff }
func (SecurityDetails) entryType() EntryType { return EntryTypeSecurity }

// Entry is a directory record: shared base fields plus exactly one variant.
// The discriminant is derived from the variant, so an entry can never claim
// two types at once.
type Entry struct {
	BaseEntry
	Details Details `json:"details"`
}

func NewEntry(base BaseEntry, details Details) Entry {
	return Entry{BaseEntry: base, Details: copyDetails(details)}
}

func (e Entry) Type() EntryType {
	if e.Details == nil {
		return ""
	}
	return e.Details.entryType()
}

func (e Entry) AsMember() (MemberDetails, bool) {
	d, ok := e.Details.(MemberDetails)
	return d, ok
}

func (e Entry) AsVendor() (VendorDetails, bool) {
	d, ok := e.Details.(VendorDetails)
	return d, ok
}

func (e Entry) AsStaff() (StaffDetails, bool) {
	d, ok := e.Details.(StaffDetails)
	return d, ok
}

func (e Entry) AsSecurity() (SecurityDetails, bool) {
	d, ok := e.Details.(SecurityDetails)
	return d, ok
}

// Role returns the role-like field of the variant: member role, vendor type,
// or staff/security role.
func (e Entry) Role() string {
	switch d := e.Details.(type) {
	case MemberDetails:
		return string(d.Role)
	case VendorDetails:
		return d.VendorType
	case StaffDetails:
		return d.Role
	case SecurityDetails:
		return d.Role
	}
	return ""
}

// Clone returns a copy that shares no slices with e.
func (e Entry) Clone() Entry {
	c := e
	c.Documents = slices.Clone(e.Documents)
	c.Details = copyDetails(e.Details)
	return c
}

// copyDetails normalizes pointer variants to values so type switches only
// ever see value receivers.
func copyDetails(d Details) Details {
	switch v := d.(type) {
	case *MemberDetails:
		return *v
	case *VendorDetails:
		return *v
	case *StaffDetails:
		return *v
	case *SecurityDetails:
		return *v
	}
	return d
}

// EntryVisitor is implemented by code that must handle every variant.
type EntryVisitor interface {
	VisitMember(base BaseEntry, d MemberDetails)
	VisitVendor(base BaseEntry, d VendorDetails)
	VisitStaff(base BaseEntry, d StaffDetails)
	VisitSecurity(base BaseEntry, d SecurityDetails)
}

func Visit(e Entry, v EntryVisitor) {
	switch d := e.Details.(type) {
	case MemberDetails:
		v.VisitMember(e.BaseEntry, d)
	case VendorDetails:
		v.VisitVendor(e.BaseEntry, d)
	case StaffDetails:
		v.VisitStaff(e.BaseEntry, d)
	case SecurityDetails:
		v.VisitSecurity(e.BaseEntry, d)
	}
}
