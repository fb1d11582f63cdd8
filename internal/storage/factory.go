package storage

import (
	"context"
	"strings"
)

// NewStorage creates an ObjectStorage for the configuration. A config without
// a bucket selects the local filesystem rooted at localDir.
// Parameters:
//   - ctx: context used while creating the S3 client.
//   - cfg: S3-compatible settings; nil or empty Bucket means local storage.
//   - localDir: directory used for local storage.
//
// Returns:
//   - ObjectStorage: initialized storage implementation.
//   - error: non-nil if the storage client cannot be created.
func NewStorage(ctx context.Context, cfg *S3Config, localDir string) (ObjectStorage, error) {
	if cfg == nil || cfg.Bucket == "" {
		return NewLocalStorage(localDir)
	}

	if cfg.Type == "" {
		cfg.Type = detectStorageType(cfg.Endpoint)
	}

	return NewS3Storage(ctx, cfg)
}

// detectStorageType attempts to detect the storage type from the endpoint
func detectStorageType(endpoint string) StorageType {
	endpoint = strings.ToLower(endpoint)

	switch {
	case strings.Contains(endpoint, "r2.cloudflarestorage.com"):
		return StorageTypeR2
	case endpoint == "" || strings.Contains(endpoint, "amazonaws.com"):
		return StorageTypeS3
	default:
		return StorageTypeS3Compatible
	}
}
