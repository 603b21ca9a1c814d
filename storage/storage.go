package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

var (
	// ErrObjectNotFound is returned when a requested object does not exist.
	ErrObjectNotFound = errors.New("object not found")

	// ErrInvalidKey is returned when a key is empty, absolute, or escapes the store root.
	ErrInvalidKey = errors.New("invalid key")
)

// BlobStorage is a flat object store addressed by slash-separated keys.
// Drafts and development certificates are both kept behind this interface.
type BlobStorage interface {
	// Put stores data from the reader under key, replacing any existing object.
	Put(ctx context.Context, key string, reader io.Reader) error

	// Get opens the object stored under key.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the object stored under key.
	Delete(ctx context.Context, key string) error

	// Exists checks if an object is stored under key.
	Exists(ctx context.Context, key string) (bool, error)

	// List returns every key starting with prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Config selects and configures a BlobStorage implementation.
type Config struct {
	Type     string // "local" or "s3"
	BaseDir  string // local: root directory
	Bucket   string // s3: bucket name
	Region   string // s3: AWS region
	S3Prefix string // s3: key prefix inside the bucket
}

// NewBlobStorage creates a BlobStorage implementation based on configuration.
func NewBlobStorage(ctx context.Context, cfg Config) (BlobStorage, error) {
	switch strings.ToLower(cfg.Type) {
	case "", "local":
		if cfg.BaseDir == "" {
			return nil, fmt.Errorf("base_dir is required for local storage")
		}
		return NewLocalStorage(cfg.BaseDir)

	case "s3":
		s3Storage, err := NewS3Storage(ctx, cfg.Bucket, cfg.Region)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 storage: %w", err)
		}
		s3Storage.prefix = strings.Trim(cfg.S3Prefix, "/")
		return s3Storage, nil

	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}

// ReadAll fetches an object fully into memory.
func ReadAll(ctx context.Context, s BlobStorage, key string) ([]byte, error) {
	rc, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %s: %w", key, err)
	}
	return data, nil
}

// cleanKey normalizes a key to slash form and rejects traversal and absolute keys.
func cleanKey(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("%w: key cannot be empty", ErrInvalidKey)
	}

	clean := filepath.ToSlash(filepath.Clean(key))
	if clean == "." || strings.HasPrefix(clean, "../") || clean == ".." {
		return "", fmt.Errorf("%w: path traversal detected", ErrInvalidKey)
	}
	if strings.HasPrefix(clean, "/") || filepath.IsAbs(key) {
		return "", fmt.Errorf("%w: absolute keys not allowed", ErrInvalidKey)
	}
	if strings.Contains(clean, `\`) {
		return "", fmt.Errorf("%w: backslashes not allowed", ErrInvalidKey)
	}

	return clean, nil
}
