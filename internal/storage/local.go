package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage implements Storage on the local filesystem.
// The provider id is the object key itself.
type LocalStorage struct {
	basePath string
	baseURL  string
}

// NewLocalStorage creates a new local storage instance
func NewLocalStorage(cfg Config) (*LocalStorage, error) {
	if cfg.BasePath == "" {
		cfg.BasePath = "./uploads"
	}

	if err := os.MkdirAll(cfg.BasePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStorage{
		basePath: cfg.BasePath,
		baseURL:  strings.TrimSuffix(cfg.BaseURL, "/"),
	}, nil
}

// Put stores a binary under basePath/key
func (s *LocalStorage) Put(ctx context.Context, input PutInput) (*PutResult, error) {
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(input.Key))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, input.Reader); err != nil {
		os.Remove(fullPath)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return &PutResult{
		URL:        s.baseURL + "/uploads/" + input.Key,
		ProviderID: input.Key,
	}, nil
}

// Delete removes a binary; a missing file is treated as already deleted
func (s *LocalStorage) Delete(ctx context.Context, providerID string) error {
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(providerID))

	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
