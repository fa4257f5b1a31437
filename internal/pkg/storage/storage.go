package storage

import (
	"context"
	"io"
	"time"
)

// FileStorage abstracts where leave attachments and profile images live.
// Paths returned by Upload are opaque references stored on the owning row.
type FileStorage interface {
	// Upload stores a file and returns its path/key.
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Download retrieves a file.
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a file.
	Delete(ctx context.Context, path string) error

	// GetURL generates a public URL for a stored file.
	GetURL(ctx context.Context, path string, expiry time.Duration) (string, error)

	// Exists checks if file exists.
	Exists(ctx context.Context, path string) (bool, error)
}
