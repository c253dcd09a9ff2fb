package repository

import (
	"context"
	"errors"

	"society-console-backend/internal/domain"
)

var ErrNotFound = errors.New("record not found")

// EntryRepository stores directory entries. List returns entries in
// insertion order so stable sorts stay deterministic.
type EntryRepository interface {
	List(ctx context.Context) ([]domain.Entry, error)
	GetByID(ctx context.Context, id string) (domain.Entry, error)
	Create(ctx context.Context, e domain.Entry) error
	Update(ctx context.Context, e domain.Entry) error

	// Bulk operations
	UpdateMany(ctx context.Context, entries []domain.Entry) error
	DeleteMany(ctx context.Context, ids []string) (int, error)
}

type AmenityRepository interface {
	List(ctx context.Context) ([]domain.Amenity, error)
	GetByID(ctx context.Context, id string) (domain.Amenity, error)
	Create(ctx context.Context, a domain.Amenity) error
	Update(ctx context.Context, a domain.Amenity) error
	Delete(ctx context.Context, id string) error

	// Bulk operations
	UpdateMany(ctx context.Context, amenities []domain.Amenity) error
	DeleteMany(ctx context.Context, ids []string) (int, error)
}

// VerificationRepository stores one checklist per society. Save replaces
// the whole checklist.
type VerificationRepository interface {
	Get(ctx context.Context, societyID string) (domain.SocietyVerification, error)
	List(ctx context.Context) ([]domain.SocietyVerification, error)
	Save(ctx context.Context, sv domain.SocietyVerification) error
}
