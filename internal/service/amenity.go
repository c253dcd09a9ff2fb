package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"society-console-backend/internal/domain"
	"society-console-backend/internal/engine"
	"society-console-backend/internal/logger"
	"society-console-backend/internal/repository"
	"society-console-backend/internal/validation"
)

type amenityService struct {
	repo      repository.AmenityRepository
	validator *validation.Validator
	session   *Session[domain.Amenity]
	now       func() time.Time
}

func NewAmenityService(repo repository.AmenityRepository, v *validation.Validator) AmenityService {
	return &amenityService{
		repo:      repo,
		validator: v,
		session:   NewSession("amenities", func(a domain.Amenity) string { return a.ID }, domain.Amenity.Clone, repo.List),
		now:       time.Now,
	}
}

func (s *amenityService) List(ctx context.Context, view engine.AmenityView) (engine.Page[domain.Amenity], error) {
	amenities, err := s.session.Snapshot(ctx)
	if err != nil {
		return engine.Page[domain.Amenity]{}, err
	}
	return engine.RenderAmenities(amenities, view), nil
}

func (s *amenityService) Filtered(ctx context.Context, view engine.AmenityView) ([]domain.Amenity, error) {
	amenities, err := s.session.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return engine.FilteredAmenities(amenities, view), nil
}

func (s *amenityService) Stats(ctx context.Context) (engine.AmenityStats, error) {
	amenities, err := s.session.Snapshot(ctx)
	if err != nil {
		return engine.AmenityStats{}, err
	}
	return engine.ComputeAmenityStats(amenities), nil
}

func (s *amenityService) Get(ctx context.Context, id string) (domain.Amenity, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Amenity{}, fmt.Errorf("failed to get amenity: %w", err)
	}
	return a, nil
}

func (s *amenityService) Create(ctx context.Context, form validation.AmenityForm) (domain.Amenity, error) {
	logger.EnterMethod("AmenityService.Create", "name", form.Name)
	if err := s.validator.Validate(form); err != nil {
		return domain.Amenity{}, err
	}

	a := form.Amenity(uuid.New().String(), s.now().UTC())
	_, err := s.session.Apply(ctx, []string{a.ID},
		func([]domain.Amenity) Change[domain.Amenity] {
			return Change[domain.Amenity]{Upserts: []domain.Amenity{a}}
		},
		func(ctx context.Context, _ Change[domain.Amenity]) error {
			return s.repo.Create(ctx, a)
		})
	if err != nil {
		return domain.Amenity{}, fmt.Errorf("failed to create amenity: %w", err)
	}
	logger.Info("Amenity created", "id", a.ID, "category", a.Category)
	return a, nil
}

func (s *amenityService) Update(ctx context.Context, id string, form validation.AmenityForm) (domain.Amenity, error) {
	logger.EnterMethod("AmenityService.Update", "id", id)
	if err := s.validator.Validate(form); err != nil {
		return domain.Amenity{}, err
	}
	return s.modify(ctx, id, "update", func(a domain.Amenity, now time.Time) domain.Amenity {
		return form.ApplyTo(a, now)
	})
}

// Deactivate is the single-amenity form of the bulk deactivate rule.
func (s *amenityService) Deactivate(ctx context.Context, id string) (domain.Amenity, error) {
	logger.EnterMethod("AmenityService.Deactivate", "id", id)
	return s.modify(ctx, id, "deactivate", engine.DeactivateAmenity)
}

func (s *amenityService) modify(ctx context.Context, id, op string, fn func(domain.Amenity, time.Time) domain.Amenity) (domain.Amenity, error) {
	now := s.now().UTC()
	var (
		updated domain.Amenity
		found   bool
	)
	_, err := s.session.Apply(ctx, []string{id},
		func(current []domain.Amenity) Change[domain.Amenity] {
			for _, a := range current {
				if a.ID == id {
					updated, found = fn(a, now), true
					return Change[domain.Amenity]{Upserts: []domain.Amenity{updated}}
				}
			}
			return Change[domain.Amenity]{}
		},
		func(ctx context.Context, _ Change[domain.Amenity]) error {
			return s.repo.Update(ctx, updated)
		})
	if err != nil {
		return domain.Amenity{}, fmt.Errorf("failed to %s amenity: %w", op, err)
	}
	if !found {
		return domain.Amenity{}, fmt.Errorf("failed to %s amenity: %w: %s", op, repository.ErrNotFound, id)
	}
	return updated, nil
}

func (s *amenityService) Delete(ctx context.Context, id string) error {
	logger.EnterMethod("AmenityService.Delete", "id", id)
	found := false
	_, err := s.session.Apply(ctx, []string{id},
		func(current []domain.Amenity) Change[domain.Amenity] {
			for _, a := range current {
				if a.ID == id {
					found = true
					return Change[domain.Amenity]{Deletes: []string{id}}
				}
			}
			return Change[domain.Amenity]{}
		},
		func(ctx context.Context, _ Change[domain.Amenity]) error {
			return s.repo.Delete(ctx, id)
		})
	if err != nil {
		return fmt.Errorf("failed to delete amenity: %w", err)
	}
	if !found {
		return fmt.Errorf("failed to delete amenity: %w: %s", repository.ErrNotFound, id)
	}
	return nil
}

func (s *amenityService) Bulk(ctx context.Context, action engine.BulkAction, ids []string) (engine.BulkResult[domain.Amenity], error) {
	logger.EnterMethod("AmenityService.Bulk", "action", action, "count", len(ids))
	if len(ids) == 0 {
		return engine.BulkResult[domain.Amenity]{Items: []domain.Amenity{}, Affected: []string{}, Selection: []string{}}, nil
	}

	now := s.now().UTC()
	var result engine.BulkResult[domain.Amenity]
	_, err := s.session.Apply(ctx, ids,
		func(current []domain.Amenity) Change[domain.Amenity] {
			result = engine.ApplyAmenityBulk(current, action, ids, now)
			if action == engine.BulkDelete {
				return Change[domain.Amenity]{Deletes: result.Affected}
			}
			hit := idSet(result.Affected)
			var c Change[domain.Amenity]
			for _, a := range result.Items {
				if hit[a.ID] {
					c.Upserts = append(c.Upserts, a)
				}
			}
			return c
		},
		func(ctx context.Context, c Change[domain.Amenity]) error {
			if action == engine.BulkDelete {
				_, err := s.repo.DeleteMany(ctx, c.Deletes)
				return err
			}
			return s.repo.UpdateMany(ctx, c.Upserts)
		})
	if err != nil {
		logger.ExitMethodWithError("AmenityService.Bulk", err, "action", action)
		return engine.BulkResult[domain.Amenity]{}, fmt.Errorf("failed to %s amenities: %w", action, err)
	}
	logger.Info("Amenity bulk action applied", "action", action, "affected", len(result.Affected))
	return result, nil
}

// MarkOverdueMaintenance flags every amenity whose next maintenance date is
// before now, and clears the flag once the date has been moved forward. It
// returns the ids whose flag changed.
func (s *amenityService) MarkOverdueMaintenance(ctx context.Context, now time.Time) ([]string, error) {
	snapshot, err := s.session.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(snapshot))
	for _, a := range snapshot {
		ids = append(ids, a.ID)
	}

	var changed []string
	_, err = s.session.Apply(ctx, ids,
		func(current []domain.Amenity) Change[domain.Amenity] {
			var c Change[domain.Amenity]
			changed = changed[:0]
			for _, a := range current {
				overdue := a.Maintenance.NextDate != nil && a.Maintenance.NextDate.Before(now)
				if overdue == a.Maintenance.IsOverdue {
					continue
				}
				a.Maintenance.IsOverdue = overdue
				a.UpdatedAt = now
				c.Upserts = append(c.Upserts, a)
				changed = append(changed, a.ID)
			}
			return c
		},
		func(ctx context.Context, c Change[domain.Amenity]) error {
			return s.repo.UpdateMany(ctx, c.Upserts)
		})
	if err != nil {
		return nil, fmt.Errorf("failed to mark overdue maintenance: %w", err)
	}
	if changed == nil {
		changed = []string{}
	}
	return changed, nil
}
