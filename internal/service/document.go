package service

import (
	"context"
	"fmt"
	"io"

	"society-console-backend/internal/logger"
	"society-console-backend/internal/storage"
	"society-console-backend/internal/upload"
)

type documentService struct {
	validator *upload.Validator
	store     storage.DocumentStore
}

func NewDocumentService(v *upload.Validator, store storage.DocumentStore) DocumentService {
	return &documentService{validator: v, store: store}
}

// Screen validates files without storing them.
func (s *documentService) Screen(ctx context.Context, files []Upload) upload.Result {
	res := upload.Result{Accepted: []upload.Accepted{}, Rejected: []upload.Rejection{}}
	for _, f := range files {
		acc, rej := s.check(f)
		if rej != nil {
			res.Rejected = append(res.Rejected, *rej)
			continue
		}
		res.Accepted = append(res.Accepted, acc)
	}
	return res
}

// Store saves every accepted file. A storage failure aborts the request;
// rejections never do.
func (s *documentService) Store(ctx context.Context, files []Upload) (StoreResult, error) {
	out := StoreResult{Stored: []storage.Object{}, Rejected: []upload.Rejection{}}
	for _, f := range files {
		acc, rej := s.check(f)
		if rej != nil {
			out.Rejected = append(out.Rejected, *rej)
			continue
		}
		obj, err := s.save(ctx, f, acc.MIME)
		if err != nil {
			return out, fmt.Errorf("failed to store %s: %w", f.Name, err)
		}
		out.Stored = append(out.Stored, obj)
	}
	logger.Info("Documents stored", "stored", len(out.Stored), "rejected", len(out.Rejected))
	return out, nil
}

func (s *documentService) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	return s.store.Open(ctx, key)
}

func (s *documentService) check(f Upload) (upload.Accepted, *upload.Rejection) {
	rc, err := f.Open()
	if err != nil {
		return upload.Accepted{}, &upload.Rejection{Name: f.Name, Reason: upload.ReasonRead, Detail: err.Error()}
	}
	defer rc.Close()
	return s.validator.Check(upload.File{Name: f.Name, Size: f.Size, Content: rc})
}

func (s *documentService) save(ctx context.Context, f Upload, mime string) (storage.Object, error) {
	rc, err := f.Open()
	if err != nil {
		return storage.Object{}, err
	}
	defer rc.Close()
	return s.store.Save(ctx, f.Name, mime, rc)
}
