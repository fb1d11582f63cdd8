package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// StorageType defines the type of S3-compatible storage
type StorageType string

const (
	StorageTypeR2           StorageType = "r2"
	StorageTypeS3           StorageType = "s3"
	StorageTypeS3Compatible StorageType = "s3compatible"
)

// S3Config holds configuration for S3-compatible storage
type S3Config struct {
	Type      StorageType
	Endpoint  string // empty means AWS S3 with default endpoint resolution
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	Region    string
	PublicURL string // Public URL prefix for R2.dev or custom CDN
}

// S3Storage implements ObjectStorage for S3-compatible services
type S3Storage struct {
	client    *s3.Client
	bucket    string
	storeType StorageType
	publicURL string
}

// NewS3Storage creates a client for the export bucket.
// Parameters:
//   - ctx: context used while loading the AWS configuration.
//   - cfg: bucket, endpoint and credential settings.
//
// Returns:
//   - *S3Storage: storage bound to cfg.Bucket.
//   - error: non-nil if the AWS configuration cannot be loaded.
func NewS3Storage(ctx context.Context, cfg *S3Config) (*S3Storage, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(defaultRegion(cfg))}
	// Static credentials only when given; otherwise the default chain applies.
	if cfg.AccessKey != "" || cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	endpoint := normalizeEndpoint(cfg.Endpoint)
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint == "" {
			return
		}
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		o.BaseEndpoint = aws.String(scheme + "://" + endpoint)
		o.UsePathStyle = true
	})

	return &S3Storage{
		client:    client,
		bucket:    cfg.Bucket,
		storeType: cfg.Type,
		publicURL: strings.TrimSuffix(cfg.PublicURL, "/"),
	}, nil
}

func defaultRegion(cfg *S3Config) string {
	switch {
	case cfg.Region != "":
		return cfg.Region
	case cfg.Type == StorageTypeR2:
		return "auto"
	default:
		return "us-east-1"
	}
}

// normalizeEndpoint removes protocol prefix and path from endpoint
func normalizeEndpoint(endpoint string) string {
	endpoint = strings.TrimPrefix(endpoint, "https://")
	endpoint = strings.TrimPrefix(endpoint, "http://")

	if idx := strings.Index(endpoint, "/"); idx != -1 {
		endpoint = endpoint[:idx]
	}

	return endpoint
}

// EnsureBucket creates the export bucket when it is missing. Errors other
// than "not found" are returned as-is so that permission problems surface.
func (s *S3Storage) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err == nil {
		return nil
	}
	if !isNotFound(err) {
		return fmt.Errorf("failed to check bucket %s: %w", s.bucket, err)
	}

	// R2 buckets can only be created from the dashboard
	if s.storeType == StorageTypeR2 {
		return fmt.Errorf("bucket %s does not exist, create it in the R2 dashboard", s.bucket)
	}

	if _, err := s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucket),
	}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	return nil
}

func isNotFound(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.ErrorCode() {
	case "NotFound", "NoSuchBucket":
		return true
	}
	return false
}

// Upload stores an exported file. The object is marked as an attachment
// named after the last key segment so browsers download it.
func (s *S3Storage) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:             aws.String(s.bucket),
		Key:                aws.String(key),
		Body:               reader,
		ContentLength:      aws.Int64(size),
		ContentType:        aws.String(contentType),
		ContentDisposition: aws.String(fmt.Sprintf("attachment; filename=%q", path.Base(key))),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}

// GetURL returns the public URL of an object, or an s3:// URI when no public
// URL prefix is configured.
func (s *S3Storage) GetURL(key string) string {
	if s.publicURL == "" {
		return fmt.Sprintf("s3://%s/%s", s.bucket, key)
	}
	return s.publicURL + "/" + key
}
