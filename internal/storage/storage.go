package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

var ErrNotFound = errors.New("document not found")

// Object describes a stored document.
type Object struct {
	Key      string    `json:"key"`
	Name     string    `json:"name"`
	MIME     string    `json:"mime"`
	Size     int64     `json:"size"`
	URL      string    `json:"url"`
	StoredAt time.Time `json:"stored_at"`
}

// DocumentStore keeps uploaded society documents. Keys are opaque and
// generated by the store.
type DocumentStore interface {
	// Save copies r under a fresh key. name is the client's filename and is
	// only used for the key's extension and the returned Object.
	Save(ctx context.Context, name, mime string, r io.Reader) (Object, error)

	// Open returns the document for reading; the caller closes it.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Exists reports whether key is stored and its size.
	Exists(ctx context.Context, key string) (bool, int64, error)

	Delete(ctx context.Context, key string) error

	// URL is the download location for key.
	URL(key string) string
}
