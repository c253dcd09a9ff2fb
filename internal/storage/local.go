package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"society-console-backend/internal/logger"
)

var keyPattern = regexp.MustCompile(`^[0-9a-f-]{36}(\.[a-z0-9]{1,8})?$`)

// LocalStore keeps documents on the local filesystem under dir/documents.
type LocalStore struct {
	baseURL string
	docsDir string
	now     func() time.Time
}

func NewLocalStore(baseURL, dir string) (*LocalStore, error) {
	docsDir := filepath.Join(dir, "documents")
	if err := os.MkdirAll(docsDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create documents directory: %w", err)
	}
	return &LocalStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		docsDir: docsDir,
		now:     time.Now,
	}, nil
}

func (s *LocalStore) Save(ctx context.Context, name, mime string, r io.Reader) (Object, error) {
	key := uuid.New().String() + strings.ToLower(filepath.Ext(name))
	if !keyPattern.MatchString(key) {
		key = uuid.New().String()
	}
	logger.ExternalServiceCall("local-storage", "Save", "key", key, "name", name)

	file, err := os.Create(s.path(key))
	if err != nil {
		logger.ExternalServiceResult("local-storage", "Save", err)
		return Object{}, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	size, err := io.Copy(file, r)
	if err != nil {
		logger.ExternalServiceResult("local-storage", "Save", err)
		_ = os.Remove(s.path(key))
		return Object{}, fmt.Errorf("failed to write file: %w", err)
	}
	logger.ExternalServiceResult("local-storage", "Save", nil, "size", size)

	return Object{
		Key:      key,
		Name:     name,
		MIME:     mime,
		Size:     size,
		URL:      s.URL(key),
		StoredAt: s.now().UTC(),
	}, nil
}

func (s *LocalStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if !keyPattern.MatchString(key) {
		return nil, ErrNotFound
	}
	file, err := os.Open(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

func (s *LocalStore) Exists(ctx context.Context, key string) (bool, int64, error) {
	if !keyPattern.MatchString(key) {
		return false, 0, nil
	}
	info, err := os.Stat(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, 0, nil
		}
		return false, 0, err
	}
	return true, info.Size(), nil
}

func (s *LocalStore) Delete(ctx context.Context, key string) error {
	if !keyPattern.MatchString(key) {
		return nil
	}
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *LocalStore) URL(key string) string {
	return fmt.Sprintf("%s/api/v1/uploads/%s", s.baseURL, key)
}

// ETag is a stable content-independent tag for key.
func ETag(key string) string {
	hash := sha256.Sum256([]byte(key))
	return `"` + hex.EncodeToString(hash[:16]) + `"`
}

func (s *LocalStore) path(key string) string {
	return filepath.Join(s.docsDir, key)
}
