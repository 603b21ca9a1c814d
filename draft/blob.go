package draft

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/hairizuan-noorazman/scenario-builder/logger"
	"github.com/hairizuan-noorazman/scenario-builder/scenario"
	"github.com/hairizuan-noorazman/scenario-builder/storage"
)

const (
	blobDir    = "drafts/"
	blobSuffix = ".json"
)

// BlobStore implements the Store interface with one JSON object per draft in
// a BlobStorage backend.
type BlobStore struct {
	blobs  storage.BlobStorage
	logger logger.Logger
}

// NewBlobStore creates a draft store over blob storage.
func NewBlobStore(blobs storage.BlobStorage, log logger.Logger) *BlobStore {
	return &BlobStore{
		blobs:  blobs,
		logger: log,
	}
}

func objectKey(key string) string {
	return blobDir + url.PathEscape(key) + blobSuffix
}

// Save writes the draft object for name, replacing any previous one.
func (s *BlobStore) Save(ctx context.Context, name string, ts scenario.TestScenario) (Entry, error) {
	if err := ValidateName(name); err != nil {
		return Entry{}, err
	}

	data, err := Encode(ts)
	if err != nil {
		return Entry{}, err
	}

	key := KeyFor(name)
	if err := s.blobs.Put(ctx, objectKey(key), strings.NewReader(data)); err != nil {
		s.logger.Error(ctx, "failed to save draft", map[string]interface{}{
			"error": err.Error(),
			"key":   key,
		})
		return Entry{}, err
	}

	s.logger.Info(ctx, "draft saved", map[string]interface{}{
		"key":   key,
		"steps": len(ts.Steps),
	})

	return Entry{Key: key, Name: name}, nil
}

// List returns the drafts found under the drafts directory.
func (s *BlobStore) List(ctx context.Context) ([]Entry, error) {
	objects, err := s.blobs.List(ctx, blobDir)
	if err != nil {
		s.logger.Error(ctx, "failed to list drafts", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	entries := make([]Entry, 0, len(objects))
	for _, obj := range objects {
		escaped := strings.TrimSuffix(strings.TrimPrefix(obj, blobDir), blobSuffix)
		key, err := url.PathUnescape(escaped)
		if err != nil {
			continue
		}
		name, ok := NameFor(key)
		if !ok {
			continue
		}
		entries = append(entries, Entry{Key: key, Name: name})
	}
	sortEntries(entries)

	return entries, nil
}

// Load reads and decodes the draft object for key.
func (s *BlobStore) Load(ctx context.Context, key string) (scenario.TestScenario, error) {
	data, err := storage.ReadAll(ctx, s.blobs, objectKey(key))
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return scenario.TestScenario{}, ErrDraftNotFound
		}
		return scenario.TestScenario{}, err
	}

	ts, err := Decode(data)
	if err != nil {
		s.logger.Warn(ctx, "draft data is corrupted", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return scenario.TestScenario{}, err
	}

	return ts, nil
}

// Delete removes the draft object for key.
func (s *BlobStore) Delete(ctx context.Context, key string) error {
	if err := s.blobs.Delete(ctx, objectKey(key)); err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return ErrDraftNotFound
		}
		return err
	}

	s.logger.Info(ctx, "draft deleted", map[string]interface{}{
		"key": key,
	})
	return nil
}
