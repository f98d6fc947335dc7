package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Storage implements Storage for any S3-compatible provider
// (MinIO, DigitalOcean Spaces, Cloudflare R2)
type S3Storage struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// NewS3Storage creates a new S3-compatible storage instance
func NewS3Storage(cfg Config) (*S3Storage, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 storage requires a bucket")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create s3 client: %w", err)
	}

	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		baseURL = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}

	return &S3Storage{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: baseURL,
	}, nil
}

// Put uploads a binary to the bucket under the given key
func (s *S3Storage) Put(ctx context.Context, input PutInput) (*PutResult, error) {
	contentType := input.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.PutObject(ctx, s.bucket, input.Key, input.Reader, input.Size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"original-filename": input.OriginalName,
				"uploaded-at":       time.Now().Format(time.RFC3339),
			},
		})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to s3: %w", err)
	}

	return &PutResult{
		URL:        s.baseURL + "/" + input.Key,
		ProviderID: input.Key,
	}, nil
}

// Delete removes a binary from the bucket. S3 RemoveObject is
// idempotent, so a missing object does not fail
func (s *S3Storage) Delete(ctx context.Context, providerID string) error {
	err := s.client.RemoveObject(ctx, s.bucket, providerID, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete from s3: %w", err)
	}
	return nil
}
