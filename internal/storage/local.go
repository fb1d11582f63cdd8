package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage writes objects as files under a root directory.
type LocalStorage struct {
	root string
}

// NewLocalStorage creates a LocalStorage rooted at dir, creating it if needed.
func NewLocalStorage(dir string) (*LocalStorage, error) {
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve export directory: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}
	return &LocalStorage{root: abs}, nil
}

// Upload writes reader to root/key. The write goes through a temporary file
// so a failed export never leaves a truncated file behind.
func (s *LocalStorage) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".export-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, reader); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write object: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write object: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move object into place: %w", err)
	}
	return nil
}

// GetURL returns the file path of key.
func (s *LocalStorage) GetURL(key string) string {
	path, err := s.path(key)
	if err != nil {
		return ""
	}
	return path
}

// path resolves key under root and rejects keys that escape it.
func (s *LocalStorage) path(key string) (string, error) {
	clean := filepath.Clean(filepath.Join(s.root, filepath.FromSlash(key)))
	if clean != s.root && !strings.HasPrefix(clean, s.root+string(filepath.Separator)) {
		return "", fmt.Errorf("object key %q escapes storage root", key)
	}
	return clean, nil
}
