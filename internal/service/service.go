package service

import (
	"context"
	"io"
	"time"

	"society-console-backend/internal/domain"
	"society-console-backend/internal/engine"
	"society-console-backend/internal/storage"
	"society-console-backend/internal/upload"
	"society-console-backend/internal/validation"
	"society-console-backend/internal/verification"
)

type DirectoryService interface {
	List(ctx context.Context, view engine.DirectoryView) (engine.Page[domain.Entry], error)
	Filtered(ctx context.Context, view engine.DirectoryView) ([]domain.Entry, error)
	Stats(ctx context.Context) (engine.DirectoryStats, error)
	Get(ctx context.Context, id string) (domain.Entry, error)
	Create(ctx context.Context, form validation.EntryForm) (domain.Entry, error)
	Bulk(ctx context.Context, action engine.BulkAction, ids []string) (engine.BulkResult[domain.Entry], error)
}

type AmenityService interface {
	List(ctx context.Context, view engine.AmenityView) (engine.Page[domain.Amenity], error)
	Filtered(ctx context.Context, view engine.AmenityView) ([]domain.Amenity, error)
	Stats(ctx context.Context) (engine.AmenityStats, error)
	Get(ctx context.Context, id string) (domain.Amenity, error)
	Create(ctx context.Context, form validation.AmenityForm) (domain.Amenity, error)
	Update(ctx context.Context, id string, form validation.AmenityForm) (domain.Amenity, error)
	Deactivate(ctx context.Context, id string) (domain.Amenity, error)
	Delete(ctx context.Context, id string) error
	Bulk(ctx context.Context, action engine.BulkAction, ids []string) (engine.BulkResult[domain.Amenity], error)
	MarkOverdueMaintenance(ctx context.Context, now time.Time) ([]string, error)
}

type VerificationService interface {
	Get(ctx context.Context, societyID string) (domain.SocietyVerification, error)
	Stats(ctx context.Context, societyID string) (verification.Stats, error)
	UpdateItem(ctx context.Context, societyID, itemID string, status domain.VerificationStatus, actor, reason string) (domain.SocietyVerification, error)
	Activate(ctx context.Context, societyID, actor string) (domain.SocietyVerification, error)
	RecomputeAll(ctx context.Context) (int, error)
}

// Upload is a file received from a client. Open may be called more than
// once.
type Upload struct {
	Name string
	Size int64
	Open func() (io.ReadCloser, error)
}

// StoreResult lists stored documents and per-file rejections.
type StoreResult struct {
	Stored   []storage.Object   `json:"stored"`
	Rejected []upload.Rejection `json:"rejected"`
}

type DocumentService interface {
	Screen(ctx context.Context, files []Upload) upload.Result
	Store(ctx context.Context, files []Upload) (StoreResult, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}
