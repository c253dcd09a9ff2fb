package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"society-console-backend/internal/domain"
)

// MockEntryRepo
type MockEntryRepo struct {
	mock.Mock
}

func (m *MockEntryRepo) List(ctx context.Context) ([]domain.Entry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entry), args.Error(1)
}
func (m *MockEntryRepo) GetByID(ctx context.Context, id string) (domain.Entry, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Entry), args.Error(1)
}
func (m *MockEntryRepo) Create(ctx context.Context, e domain.Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
func (m *MockEntryRepo) Update(ctx context.Context, e domain.Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
func (m *MockEntryRepo) UpdateMany(ctx context.Context, entries []domain.Entry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}
func (m *MockEntryRepo) DeleteMany(ctx context.Context, ids []string) (int, error) {
	args := m.Called(ctx, ids)
	return args.Int(0), args.Error(1)
}

// MockAmenityRepo
type MockAmenityRepo struct {
	mock.Mock
}

func (m *MockAmenityRepo) List(ctx context.Context) ([]domain.Amenity, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Amenity), args.Error(1)
}
func (m *MockAmenityRepo) GetByID(ctx context.Context, id string) (domain.Amenity, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Amenity), args.Error(1)
}
func (m *MockAmenityRepo) Create(ctx context.Context, a domain.Amenity) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}
func (m *MockAmenityRepo) Update(ctx context.Context, a domain.Amenity) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}
func (m *MockAmenityRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockAmenityRepo) UpdateMany(ctx context.Context, amenities []domain.Amenity) error {
	args := m.Called(ctx, amenities)
	return args.Error(0)
}
func (m *MockAmenityRepo) DeleteMany(ctx context.Context, ids []string) (int, error) {
	args := m.Called(ctx, ids)
	return args.Int(0), args.Error(1)
}

// MockVerificationRepo
type MockVerificationRepo struct {
	mock.Mock
}

func (m *MockVerificationRepo) Get(ctx context.Context, societyID string) (domain.SocietyVerification, error) {
	args := m.Called(ctx, societyID)
	return args.Get(0).(domain.SocietyVerification), args.Error(1)
}
func (m *MockVerificationRepo) List(ctx context.Context) ([]domain.SocietyVerification, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.SocietyVerification), args.Error(1)
}
func (m *MockVerificationRepo) Save(ctx context.Context, sv domain.SocietyVerification) error {
	args := m.Called(ctx, sv)
	return args.Error(0)
}
