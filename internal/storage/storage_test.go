package storage

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_Upload(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(dir)
	require.NoError(t, err)

	body := "Caption: hello"
	require.NoError(t, s.Upload(context.Background(), "captions/a/caption.txt", strings.NewReader(body), int64(len(body)), "text/plain"))

	path := s.GetURL("captions/a/caption.txt")
	assert.Equal(t, filepath.Join(dir, "captions", "a", "caption.txt"), path)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, body, string(got))

	entries, err := os.ReadDir(filepath.Join(dir, "captions", "a"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file should not be left behind")
}

func TestLocalStorage_Overwrite(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.Upload(ctx, "caption.txt", strings.NewReader("one"), 3, "text/plain"))
	require.NoError(t, s.Upload(ctx, "caption.txt", strings.NewReader("two"), 3, "text/plain"))

	got, err := os.ReadFile(s.GetURL("caption.txt"))
	require.NoError(t, err)
	assert.Equal(t, "two", string(got))
}

func TestLocalStorage_RejectsEscape(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	err = s.Upload(context.Background(), "../outside.txt", strings.NewReader("x"), 1, "text/plain")
	assert.Error(t, err)
	assert.Empty(t, s.GetURL("../outside.txt"))
}

func TestLocalStorage_CanceledContext(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Upload(ctx, "x.txt", strings.NewReader("x"), 1, "text/plain"), context.Canceled)
}

func TestNewStorage_LocalWhenNoBucket(t *testing.T) {
	s, err := NewStorage(context.Background(), &S3Config{}, t.TempDir())
	require.NoError(t, err)
	_, ok := s.(*LocalStorage)
	assert.True(t, ok)

	s, err = NewStorage(context.Background(), nil, t.TempDir())
	require.NoError(t, err)
	_, ok = s.(*LocalStorage)
	assert.True(t, ok)
}

func TestNewStorage_S3(t *testing.T) {
	cfg := &S3Config{
		Endpoint:  "https://acct.r2.cloudflarestorage.com/",
		AccessKey: "key",
		SecretKey: "secret",
		UseSSL:    true,
		Bucket:    "exports",
		PublicURL: "https://cdn.example.com/",
	}
	s, err := NewStorage(context.Background(), cfg, "")
	require.NoError(t, err)

	s3s, ok := s.(*S3Storage)
	require.True(t, ok)
	assert.Equal(t, StorageTypeR2, cfg.Type)
	assert.Equal(t, "https://cdn.example.com/captions/x.json", s3s.GetURL("captions/x.json"))
}

func TestS3Storage_GetURLWithoutPublicURL(t *testing.T) {
	s, err := NewS3Storage(context.Background(), &S3Config{Bucket: "exports", AccessKey: "k", SecretKey: "s"})
	require.NoError(t, err)
	assert.Equal(t, "s3://exports/a.txt", s.GetURL("a.txt"))
}

func TestDetectStorageType(t *testing.T) {
	tests := map[string]StorageType{
		"":                              StorageTypeS3,
		"s3.us-west-2.amazonaws.com":    StorageTypeS3,
		"acct.r2.cloudflarestorage.com": StorageTypeR2,
		"localhost:9000":                StorageTypeS3Compatible,
	}
	for endpoint, want := range tests {
		assert.Equal(t, want, detectStorageType(endpoint), endpoint)
	}
}

func TestNormalizeEndpoint(t *testing.T) {
	assert.Equal(t, "localhost:9000", normalizeEndpoint("http://localhost:9000/bucket"))
	assert.Equal(t, "s3.example.com", normalizeEndpoint("https://s3.example.com"))
	assert.Equal(t, "", normalizeEndpoint(""))
}

func TestDefaultRegion(t *testing.T) {
	assert.Equal(t, "eu-west-1", defaultRegion(&S3Config{Region: "eu-west-1", Type: StorageTypeR2}))
	assert.Equal(t, "auto", defaultRegion(&S3Config{Type: StorageTypeR2}))
	assert.Equal(t, "us-east-1", defaultRegion(&S3Config{Type: StorageTypeS3Compatible}))
}

type fakeS3 struct {
	mu       sync.Mutex
	requests []string
	headers  http.Header
	buckets  map[string]bool
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)

	bucket, key, _ := strings.Cut(strings.TrimPrefix(r.URL.Path, "/"), "/")
	switch {
	case r.Method == http.MethodHead && key == "":
		if !f.buckets[bucket] {
			w.WriteHeader(http.StatusNotFound)
			return
		}
	case r.Method == http.MethodPut && key == "":
		f.buckets[bucket] = true
	case r.Method == http.MethodPut:
		f.headers = r.Header.Clone()
		w.Header().Set("ETag", `"etag"`)
	}
	w.WriteHeader(http.StatusOK)
}

func newFakeS3Storage(t *testing.T, f *fakeS3) *S3Storage {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)

	s, err := NewS3Storage(context.Background(), &S3Config{
		Type:      StorageTypeS3Compatible,
		Endpoint:  srv.URL,
		AccessKey: "key",
		SecretKey: "secret",
		Bucket:    "exports",
	})
	require.NoError(t, err)
	return s
}

func TestS3Storage_EnsureBucketCreatesMissing(t *testing.T) {
	f := &fakeS3{buckets: map[string]bool{}}
	s := newFakeS3Storage(t, f)

	require.NoError(t, s.EnsureBucket(context.Background()))
	require.NoError(t, s.EnsureBucket(context.Background()))

	assert.Equal(t, []string{"HEAD /exports", "PUT /exports", "HEAD /exports"}, f.requests)
}

func TestS3Storage_Upload(t *testing.T) {
	f := &fakeS3{buckets: map[string]bool{"exports": true}}
	s := newFakeS3Storage(t, f)

	body := []byte("Caption: hello")
	require.NoError(t, s.Upload(context.Background(), "captions/abc/caption.txt", bytes.NewReader(body), int64(len(body)), "text/plain"))

	require.Len(t, f.requests, 1)
	assert.Equal(t, "PUT /exports/captions/abc/caption.txt", f.requests[0])
	assert.Equal(t, "text/plain", f.headers.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="caption.txt"`, f.headers.Get("Content-Disposition"))
}
