package service

import (
	"context"
	"fmt"
	"time"

	"society-console-backend/internal/domain"
	"society-console-backend/internal/logger"
	"society-console-backend/internal/repository"
	"society-console-backend/internal/verification"
)

type verificationService struct {
	repo  repository.VerificationRepository
	locks *idLocks
	now   func() time.Time
}

func NewVerificationService(repo repository.VerificationRepository) VerificationService {
	return &verificationService{repo: repo, locks: newIDLocks(), now: time.Now}
}

// Get returns the checklist with Progress and OverallStatus derived from the
// items, whatever was stored.
func (s *verificationService) Get(ctx context.Context, societyID string) (domain.SocietyVerification, error) {
	sv, err := s.repo.Get(ctx, societyID)
	if err != nil {
		return domain.SocietyVerification{}, fmt.Errorf("failed to get verification: %w", err)
	}
	return verification.Recompute(sv), nil
}

func (s *verificationService) Stats(ctx context.Context, societyID string) (verification.Stats, error) {
	sv, err := s.Get(ctx, societyID)
	if err != nil {
		return verification.Stats{}, err
	}
	return verification.ComputeStats(sv.Items), nil
}

func (s *verificationService) UpdateItem(ctx context.Context, societyID, itemID string, status domain.VerificationStatus, actor, reason string) (domain.SocietyVerification, error) {
	logger.EnterMethod("VerificationService.UpdateItem", "society_id", societyID, "item_id", itemID, "status", status)
	unlock := s.locks.Lock(societyID)
	defer unlock()

	sv, err := s.repo.Get(ctx, societyID)
	if err != nil {
		return domain.SocietyVerification{}, fmt.Errorf("failed to get verification: %w", err)
	}
	updated, err := verification.UpdateItem(sv, itemID, status, actor, reason, s.now().UTC())
	if err != nil {
		return domain.SocietyVerification{}, err
	}
	if err := s.repo.Save(ctx, updated); err != nil {
		logger.ExitMethodWithError("VerificationService.UpdateItem", err)
		return domain.SocietyVerification{}, fmt.Errorf("failed to save verification: %w", err)
	}
	return updated, nil
}

// Activate refuses with verification.ErrActivationRefused while required
// items are incomplete. Activating an active society is a no-op.
func (s *verificationService) Activate(ctx context.Context, societyID, actor string) (domain.SocietyVerification, error) {
	logger.EnterMethod("VerificationService.Activate", "society_id", societyID, "actor", actor)
	unlock := s.locks.Lock(societyID)
	defer unlock()

	sv, err := s.repo.Get(ctx, societyID)
	if err != nil {
		return domain.SocietyVerification{}, fmt.Errorf("failed to get verification: %w", err)
	}
	if sv.IsActivated {
		return verification.Recompute(sv), nil
	}
	activated, err := verification.Activate(sv, actor, s.now().UTC())
	if err != nil {
		logger.Warn("Society activation refused", "society_id", societyID, "error", err)
		return verification.Recompute(sv), err
	}
	if err := s.repo.Save(ctx, activated); err != nil {
		return domain.SocietyVerification{}, fmt.Errorf("failed to save verification: %w", err)
	}
	logger.Info("Society activated", "society_id", societyID, "actor", actor)
	return activated, nil
}

// RecomputeAll rewrites the stored progress of every society whose derived
// values have drifted, returning how many were saved.
func (s *verificationService) RecomputeAll(ctx context.Context) (int, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list verifications: %w", err)
	}
	saved := 0
	for _, listed := range all {
		n, err := s.recompute(ctx, listed.SocietyID)
		if err != nil {
			return saved, err
		}
		saved += n
	}
	return saved, nil
}

func (s *verificationService) recompute(ctx context.Context, societyID string) (int, error) {
	unlock := s.locks.Lock(societyID)
	defer unlock()

	sv, err := s.repo.Get(ctx, societyID)
	if err != nil {
		return 0, fmt.Errorf("failed to get verification: %w", err)
	}
	fresh := verification.Recompute(sv)
	if fresh.Progress == sv.Progress && fresh.OverallStatus == sv.OverallStatus {
		return 0, nil
	}
	if err := s.repo.Save(ctx, fresh); err != nil {
		return 0, fmt.Errorf("failed to save verification %s: %w", societyID, err)
	}
	return 1, nil
}
