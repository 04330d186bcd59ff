package storage

import (
	"context"
	"io"
)

// Storage defines the interface for blob storage operations used by the
// photo module.
type Storage interface {
	// Save stores content under the given relative path.
	Save(ctx context.Context, path string, content io.Reader) error

	// Get opens the blob at the given relative path for reading.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes the blob at the given relative path.
	Delete(ctx context.Context, path string) error
}
