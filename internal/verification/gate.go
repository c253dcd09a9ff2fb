// Package verification implements the society verification checklist: item
// status transitions, progress and the activation gate.
package verification

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"society-console-backend/internal/domain"
)

var (
	ErrActivationRefused = errors.New("society cannot be activated")
	ErrInvalidStatus     = errors.New("invalid verification status")
	ErrItemNotFound      = errors.New("verification item not found")
)

// RefusalError names the required items still blocking activation.
type RefusalError struct {
	Missing []string
}

func (e *RefusalError) Error() string {
	return fmt.Sprintf("%s: %d required item(s) incomplete: %s", ErrActivationRefused, len(e.Missing), strings.Join(e.Missing, ", "))
}

func (e *RefusalError) Unwrap() error { return ErrActivationRefused }

// Transition moves item to status. Any status may move to any other. Entering
// COMPLETED stamps the verifier, leaving it clears the stamp. A rejection
// reason is recorded when moving to REJECTED and dropped when leaving it.
func Transition(item domain.VerificationItem, to domain.VerificationStatus, actor, reason string, now time.Time) (domain.VerificationItem, error) {
	if !to.Valid() {
		return item, fmt.Errorf("%w: %q", ErrInvalidStatus, to)
	}

	if to == domain.VerificationCompleted {
		if item.Status != domain.VerificationCompleted || item.VerifiedBy == nil {
			by := actor
			at := now
			item.VerifiedBy = &by
			item.VerifiedDate = &at
		}
	} else {
		item.VerifiedBy = nil
		item.VerifiedDate = nil
	}

	if to == domain.VerificationRejected {
		if reason != "" {
			r := reason
			item.RejectionReason = &r
		}
	} else {
		item.RejectionReason = nil
	}

	item.Status = to
	return item, nil
}

// CompletionPercentage is round(100*completed/total), 0 for no items.
func CompletionPercentage(items []domain.VerificationItem) int {
	if len(items) == 0 {
		return 0
	}
	completed := 0
	for _, it := range items {
		if it.Status == domain.VerificationCompleted {
			completed++
		}
	}
	return int(math.Round(100 * float64(completed) / float64(len(items))))
}

// MissingRequired lists the ids of required items that are not COMPLETED.
func MissingRequired(items []domain.VerificationItem) []string {
	missing := []string{}
	for _, it := range items {
		if it.IsRequired && it.Status != domain.VerificationCompleted {
			missing = append(missing, it.ID)
		}
	}
	return missing
}

// CanActivate is true when every required item is COMPLETED, and vacuously
// true with no required items.
func CanActivate(items []domain.VerificationItem) bool {
	return len(MissingRequired(items)) == 0
}

// OverallStatusOf derives the aggregate status from the items.
func OverallStatusOf(items []domain.VerificationItem) domain.OverallStatus {
	if len(items) == 0 {
		return domain.OverallNotStarted
	}
	completed, touched := 0, 0
	for _, it := range items {
		switch it.Status {
		case domain.VerificationCompleted:
			completed++
			touched++
		case domain.VerificationInProgress, domain.VerificationRejected:
			touched++
		}
	}
	switch {
	case completed == len(items):
		return domain.OverallCompleted
	case CanActivate(items) && completed > 0:
		return domain.OverallUnderReview
	case touched > 0:
		return domain.OverallInProgress
	}
	return domain.OverallNotStarted
}

// Recompute refreshes the derived Progress and OverallStatus.
func Recompute(sv domain.SocietyVerification) domain.SocietyVerification {
	sv.Progress = CompletionPercentage(sv.Items)
	sv.OverallStatus = OverallStatusOf(sv.Items)
	return sv
}

// UpdateItem applies Transition to the item with itemID and recomputes the
// aggregate.
func UpdateItem(sv domain.SocietyVerification, itemID string, to domain.VerificationStatus, actor, reason string, now time.Time) (domain.SocietyVerification, error) {
	sv = sv.Clone()
	for i, it := range sv.Items {
		if it.ID != itemID {
			continue
		}
		updated, err := Transition(it, to, actor, reason, now)
		if err != nil {
			return sv, err
		}
		sv.Items[i] = updated
		return Recompute(sv), nil
	}
	return sv, fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
}

// Activate marks the society active. It refuses with a *RefusalError while
// required items are incomplete. Activation is one-way: calling it on an
// already active society returns it unchanged.
func Activate(sv domain.SocietyVerification, actor string, now time.Time) (domain.SocietyVerification, error) {
	if sv.IsActivated {
		return sv, nil
	}
	if missing := MissingRequired(sv.Items); len(missing) > 0 {
		return sv, &RefusalError{Missing: missing}
	}
	sv = Recompute(sv.Clone())
	at := now
	sv.IsActivated = true
	sv.ActivatedAt = &at
	sv.ActivatedBy = actor
	return sv, nil
}
