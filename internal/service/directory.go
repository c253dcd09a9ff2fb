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

var entryPrefixes = map[domain.EntryType]string{
	domain.EntryTypeMember:   "mem",
	domain.EntryTypeVendor:   "ven",
	domain.EntryTypeStaff:    "stf",
	domain.EntryTypeSecurity: "sec",
}

type directoryService struct {
	repo      repository.EntryRepository
	validator *validation.Validator
	session   *Session[domain.Entry]
	now       func() time.Time
}

func NewDirectoryService(repo repository.EntryRepository, v *validation.Validator) DirectoryService {
	return &directoryService{
		repo:      repo,
		validator: v,
		session:   NewSession("entries", func(e domain.Entry) string { return e.ID }, domain.Entry.Clone, repo.List),
		now:       time.Now,
	}
}

func (s *directoryService) List(ctx context.Context, view engine.DirectoryView) (engine.Page[domain.Entry], error) {
	entries, err := s.session.Snapshot(ctx)
	if err != nil {
		return engine.Page[domain.Entry]{}, err
	}
	return engine.RenderDirectory(entries, view), nil
}

func (s *directoryService) Filtered(ctx context.Context, view engine.DirectoryView) ([]domain.Entry, error) {
	entries, err := s.session.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return engine.FilteredEntries(entries, view), nil
}

// Stats always covers the whole directory, whatever the caller is viewing.
func (s *directoryService) Stats(ctx context.Context) (engine.DirectoryStats, error) {
	entries, err := s.session.Snapshot(ctx)
	if err != nil {
		return engine.DirectoryStats{}, err
	}
	return engine.ComputeDirectoryStats(entries), nil
}

func (s *directoryService) Get(ctx context.Context, id string) (domain.Entry, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("failed to get entry: %w", err)
	}
	return e, nil
}

func (s *directoryService) Create(ctx context.Context, form validation.EntryForm) (domain.Entry, error) {
	logger.EnterMethod("DirectoryService.Create", "type", form.Type)
	if err := s.validator.Validate(form); err != nil {
		return domain.Entry{}, err
	}

	e := form.Entry(entryPrefixes[form.Type]+"-"+uuid.New().String(), s.now().UTC())
	_, err := s.session.Apply(ctx, []string{e.ID},
		func([]domain.Entry) Change[domain.Entry] {
			return Change[domain.Entry]{Upserts: []domain.Entry{e}}
		},
		func(ctx context.Context, _ Change[domain.Entry]) error {
			return s.repo.Create(ctx, e)
		})
	if err != nil {
		logger.ExitMethodWithError("DirectoryService.Create", err)
		return domain.Entry{}, fmt.Errorf("failed to create entry: %w", err)
	}
	logger.Info("Directory entry created", "id", e.ID, "type", e.Type())
	return e, nil
}

// Bulk applies action to the selected ids. An empty selection is a no-op
// that never reaches the repository.
func (s *directoryService) Bulk(ctx context.Context, action engine.BulkAction, ids []string) (engine.BulkResult[domain.Entry], error) {
	logger.EnterMethod("DirectoryService.Bulk", "action", action, "count", len(ids))
	var result engine.BulkResult[domain.Entry]
	if len(ids) == 0 {
		return engine.BulkResult[domain.Entry]{Items: []domain.Entry{}, Affected: []string{}, Selection: []string{}}, nil
	}

	now := s.now().UTC()
	_, err := s.session.Apply(ctx, ids,
		func(current []domain.Entry) Change[domain.Entry] {
			result = engine.ApplyEntryBulk(current, action, ids, now)
			return entryChange(result, action)
		},
		func(ctx context.Context, c Change[domain.Entry]) error {
			if action == engine.BulkDelete {
				_, err := s.repo.DeleteMany(ctx, c.Deletes)
				return err
			}
			return s.repo.UpdateMany(ctx, c.Upserts)
		})
	if err != nil {
		logger.ExitMethodWithError("DirectoryService.Bulk", err, "action", action)
		return engine.BulkResult[domain.Entry]{}, fmt.Errorf("failed to %s entries: %w", action, err)
	}
	logger.Info("Directory bulk action applied", "action", action, "affected", len(result.Affected))
	return result, nil
}

func entryChange(res engine.BulkResult[domain.Entry], action engine.BulkAction) Change[domain.Entry] {
	if action == engine.BulkDelete {
		return Change[domain.Entry]{Deletes: res.Affected}
	}
	hit := idSet(res.Affected)
	var c Change[domain.Entry]
	for _, e := range res.Items {
		if hit[e.ID] {
			c.Upserts = append(c.Upserts, e)
		}
	}
	return c
}

func idSet(ids []string) map[string]bool {
	out := make(map[string]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out
}
