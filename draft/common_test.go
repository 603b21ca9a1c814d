package draft

import (
	"testing"

	"github.com/hairizuan-noorazman/scenario-builder/logger"
	"github.com/hairizuan-noorazman/scenario-builder/storage"
	"github.com/hairizuan-noorazman/scenario-builder/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupTestStore creates a test database and draft store for testing.
func setupTestStore(t *testing.T) (*gorm.DB, *MySQLStore) {
	db := testutil.SetupTestDB(t)
	testutil.AutoMigrate(t, db, &Draft{})

	return db, NewMySQLStore(db, logger.NewTestLogger())
}

// setupBlobStore creates a draft store over a temporary local directory.
func setupBlobStore(t *testing.T) (storage.BlobStorage, *BlobStore) {
	blobs, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	return blobs, NewBlobStore(blobs, logger.NewTestLogger())
}

// eachStore runs fn against every Store implementation.
func eachStore(t *testing.T, fn func(t *testing.T, store Store)) {
	t.Run("mysql", func(t *testing.T) {
		_, store := setupTestStore(t)
		fn(t, store)
	})
	t.Run("blob", func(t *testing.T) {
		_, store := setupBlobStore(t)
		fn(t, store)
	})
}
