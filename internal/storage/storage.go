package storage

import (
	"context"
	"fmt"
	"io"
)

// PutInput describes a single binary to store
type PutInput struct {
	// Key is the object path relative to the storage root, e.g.
	// "talent-media-kits/1693526400000-123456789.jpg"
	Key          string
	Reader       io.Reader
	Size         int64
	ContentType  string
	OriginalName string
}

// PutResult is what the provider reports back after a successful store
type PutResult struct {
	// URL is the public address of the stored binary
	URL string
	// ProviderID uniquely identifies the binary at the provider
	// and is the handle used for deletion
	ProviderID string
}

// Storage defines the interface for media binary storage
type Storage interface {
	// Put stores a binary and returns its public URL and provider id
	Put(ctx context.Context, input PutInput) (*PutResult, error)

	// Delete removes a binary by provider id. A missing binary is not
	// an error: metadata cleanup must proceed either way
	Delete(ctx context.Context, providerID string) error
}

// Config holds storage configuration
type Config struct {
	Type      string // local, s3
	BasePath  string // For local storage
	BaseURL   string // Public URL base
	Bucket    string // For S3
	Endpoint  string // For S3
	AccessKey string // For S3
	SecretKey string // For S3
	UseSSL    bool   // For S3
}

// NewStorage creates a new storage instance based on configuration
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "local":
		return NewLocalStorage(cfg)
	case "s3":
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
