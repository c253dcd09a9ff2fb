package domain

import (
	"slices"
	"time"
)

type VerificationCategory string

const (
	VerificationCategoryLegalDocuments      VerificationCategory = "LEGAL_DOCUMENTS"
	VerificationCategoryFinancialRecords    VerificationCategory = "FINANCIAL_RECORDS"
	VerificationCategoryInfrastructure      VerificationCategory = "INFRASTRUCTURE"
	VerificationCategorySafetyCompliance    VerificationCategory = "SAFETY_COMPLIANCE"
	VerificationCategoryManagementCommittee VerificationCategory = "MANAGEMENT_COMMITTEE"
	VerificationCategoryAmenities           VerificationCategory = "AMENITIES"
)

var VerificationCategories = []VerificationCategory{
	VerificationCategoryLegalDocuments,
	VerificationCategoryFinancialRecords,
	VerificationCategoryInfrastructure,
	VerificationCategorySafetyCompliance,
	VerificationCategoryManagementCommittee,
	VerificationCategoryAmenities,
}

type VerificationPriority string

const (
	PriorityHigh   VerificationPriority = "HIGH"
	PriorityMedium VerificationPriority = "MEDIUM"
	PriorityLow    VerificationPriority = "LOW"
)

type VerificationStatus string

const (
	VerificationPending    VerificationStatus = "PENDING"
	VerificationInProgress VerificationStatus = "IN_PROGRESS"
	VerificationCompleted  VerificationStatus = "COMPLETED"
	VerificationRejected   VerificationStatus = "REJECTED"
)

func (s VerificationStatus) Valid() bool {
	switch s {
	case VerificationPending, VerificationInProgress, VerificationCompleted, VerificationRejected:
		return true
	}
	return false
}

type OverallStatus string

const (
	OverallNotStarted  OverallStatus = "NOT_STARTED"
	OverallInProgress  OverallStatus = "IN_PROGRESS"
	OverallUnderReview OverallStatus = "UNDER_REVIEW"
	OverallCompleted   OverallStatus = "COMPLETED"
)

type VerificationItem struct {
	ID              string               `json:"id"`
	Title           string               `json:"title"`
	Description     string               `json:"description"`
	Category        VerificationCategory `json:"category"`
	Priority        VerificationPriority `json:"priority"`
	Status          VerificationStatus   `json:"status"`
	IsRequired      bool                 `json:"is_required"`
	VerifiedBy      *string              `json:"verified_by,omitempty"`
	VerifiedDate    *time.Time           `json:"verified_date,omitempty"`
	RejectionReason *string              `json:"rejection_reason,omitempty"`
	Documents       []string             `json:"documents"`
	Notes           string               `json:"notes"`
}

type SocietyVerification struct {
	SocietyID            string             `json:"society_id"`
	SocietyName          string             `json:"society_name"`
	Items                []VerificationItem `json:"items"`
	OverallStatus        OverallStatus      `json:"overall_status"`
	Progress             int                `json:"progress"`
	IsActivated          bool               `json:"is_activated"`
	ActivatedAt          *time.Time         `json:"activated_at,omitempty"`
	ActivatedBy          string             `json:"activated_by,omitempty"`
	StartDate            time.Time          `json:"start_date"`
	TargetCompletionDate time.Time          `json:"target_completion_date"`
}

func (sv SocietyVerification) Clone() SocietyVerification {
	c := sv
	c.Items = slices.Clone(sv.Items)
	return c
}
