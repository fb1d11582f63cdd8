package storage

import (
	"context"
	"io"
)

// ObjectStorage is the destination for exported caption files.
type ObjectStorage interface {
	// Upload stores the object under key, replacing any existing object
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error

	// GetURL returns where the stored object can be found
	GetURL(key string) string
}
