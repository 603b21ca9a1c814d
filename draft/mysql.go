package draft

import (
	"context"
	"errors"

	"github.com/hairizuan-noorazman/scenario-builder/logger"
	"github.com/hairizuan-noorazman/scenario-builder/scenario"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MySQLStore implements the Store interface using GORM. It runs against
// MySQL in production and SQLite in tests and single-user setups.
type MySQLStore struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewMySQLStore creates a new GORM-backed draft store.
func NewMySQLStore(db *gorm.DB, log logger.Logger) *MySQLStore {
	return &MySQLStore{
		db:     db,
		logger: log,
	}
}

// Save upserts the draft row for name.
func (s *MySQLStore) Save(ctx context.Context, name string, ts scenario.TestScenario) (Entry, error) {
	if err := ValidateName(name); err != nil {
		return Entry{}, err
	}

	data, err := Encode(ts)
	if err != nil {
		return Entry{}, err
	}

	d := &Draft{Key: KeyFor(name), Name: name, Data: data}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "data", "updated_at"}),
	}).Create(d).Error
	if err != nil {
		s.logger.Error(ctx, "failed to save draft", map[string]interface{}{
			"error": err.Error(),
			"key":   d.Key,
		})
		return Entry{}, err
	}

	s.logger.Info(ctx, "draft saved", map[string]interface{}{
		"key":   d.Key,
		"steps": len(ts.Steps),
	})

	return Entry{Key: d.Key, Name: name}, nil
}

// List returns every draft row carrying the key prefix.
func (s *MySQLStore) List(ctx context.Context) ([]Entry, error) {
	var drafts []Draft
	if err := s.db.WithContext(ctx).Select("key", "name").Find(&drafts).Error; err != nil {
		s.logger.Error(ctx, "failed to list drafts", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	entries := make([]Entry, 0, len(drafts))
	for _, d := range drafts {
		name, ok := NameFor(d.Key)
		if !ok {
			continue
		}
		entries = append(entries, Entry{Key: d.Key, Name: name})
	}
	sortEntries(entries)

	return entries, nil
}

// Load reads and decodes the draft stored under key.
func (s *MySQLStore) Load(ctx context.Context, key string) (scenario.TestScenario, error) {
	var d Draft
	err := s.db.WithContext(ctx).Where(byKey(key)).First(&d).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return scenario.TestScenario{}, ErrDraftNotFound
		}
		s.logger.Error(ctx, "failed to load draft", map[string]interface{}{
			"error": err.Error(),
			"key":   key,
		})
		return scenario.TestScenario{}, err
	}

	ts, err := Decode([]byte(d.Data))
	if err != nil {
		s.logger.Warn(ctx, "draft data is corrupted", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return scenario.TestScenario{}, err
	}

	return ts, nil
}

// Delete removes the draft row for key.
func (s *MySQLStore) Delete(ctx context.Context, key string) error {
	result := s.db.WithContext(ctx).Where(byKey(key)).Delete(&Draft{})
	if result.Error != nil {
		s.logger.Error(ctx, "failed to delete draft", map[string]interface{}{
			"error": result.Error.Error(),
			"key":   key,
		})
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrDraftNotFound
	}

	s.logger.Info(ctx, "draft deleted", map[string]interface{}{
		"key": key,
	})

	return nil
}

func byKey(key string) clause.Eq {
	return clause.Eq{Column: clause.Column{Name: "key"}, Value: key}
}
