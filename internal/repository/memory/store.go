package memory

import (
	"context"
	"fmt"

	"society-console-backend/internal/domain"
	"society-console-backend/internal/repository"
)

type entryRepository struct {
	t *table[domain.Entry]
}

func NewEntryRepository(seed ...domain.Entry) repository.EntryRepository {
	r := &entryRepository{t: newTable(func(e domain.Entry) string { return e.ID }, domain.Entry.Clone)}
	for _, e := range seed {
		r.t.upsert(e)
	}
	return r
}

func (r *entryRepository) List(ctx context.Context) ([]domain.Entry, error) {
	return r.t.list(), nil
}

func (r *entryRepository) GetByID(ctx context.Context, id string) (domain.Entry, error) {
	return r.t.get(id)
}

func (r *entryRepository) Create(ctx context.Context, e domain.Entry) error {
	return r.t.insert(e)
}

func (r *entryRepository) Update(ctx context.Context, e domain.Entry) error {
	return r.t.update(e)
}

func (r *entryRepository) UpdateMany(ctx context.Context, entries []domain.Entry) error {
	return r.t.update(entries...)
}

func (r *entryRepository) DeleteMany(ctx context.Context, ids []string) (int, error) {
	return r.t.remove(ids...), nil
}

type amenityRepository struct {
	t *table[domain.Amenity]
}

func NewAmenityRepository(seed ...domain.Amenity) repository.AmenityRepository {
	r := &amenityRepository{t: newTable(func(a domain.Amenity) string { return a.ID }, domain.Amenity.Clone)}
	for _, a := range seed {
		r.t.upsert(a)
	}
	return r
}

func (r *amenityRepository) List(ctx context.Context) ([]domain.Amenity, error) {
	return r.t.list(), nil
}

func (r *amenityRepository) GetByID(ctx context.Context, id string) (domain.Amenity, error) {
	return r.t.get(id)
}

func (r *amenityRepository) Create(ctx context.Context, a domain.Amenity) error {
	return r.t.insert(a)
}

func (r *amenityRepository) Update(ctx context.Context, a domain.Amenity) error {
	return r.t.update(a)
}

func (r *amenityRepository) Delete(ctx context.Context, id string) error {
	if r.t.remove(id) == 0 {
		return fmt.Errorf("%w: %s", repository.ErrNotFound, id)
	}
	return nil
}

func (r *amenityRepository) UpdateMany(ctx context.Context, amenities []domain.Amenity) error {
	return r.t.update(amenities...)
}

func (r *amenityRepository) DeleteMany(ctx context.Context, ids []string) (int, error) {
	return r.t.remove(ids...), nil
}

type verificationRepository struct {
	t *table[domain.SocietyVerification]
}

func NewVerificationRepository(seed ...domain.SocietyVerification) repository.VerificationRepository {
	r := &verificationRepository{t: newTable(func(sv domain.SocietyVerification) string { return sv.SocietyID }, domain.SocietyVerification.Clone)}
	for _, sv := range seed {
		r.t.upsert(sv)
	}
	return r
}

func (r *verificationRepository) Get(ctx context.Context, societyID string) (domain.SocietyVerification, error) {
	return r.t.get(societyID)
}

func (r *verificationRepository) List(ctx context.Context) ([]domain.SocietyVerification, error) {
	return r.t.list(), nil
}

func (r *verificationRepository) Save(ctx context.Context, sv domain.SocietyVerification) error {
	r.t.upsert(sv)
	return nil
}

// Store bundles the memory repositories the same way postgres.Store does.
type Store struct {
	repository.EntryRepository
	repository.AmenityRepository
	repository.VerificationRepository
}

func NewStore(entries []domain.Entry, amenities []domain.Amenity, verifications ...domain.SocietyVerification) *Store {
	return &Store{
		EntryRepository:        NewEntryRepository(entries...),
		AmenityRepository:      NewAmenityRepository(amenities...),
		VerificationRepository: NewVerificationRepository(verifications...),
	}
}
