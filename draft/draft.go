package draft

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hairizuan-noorazman/scenario-builder/scenario"
)

// KeyPrefix namespaces draft keys so unrelated entries in a shared store are
// never listed as drafts.
const KeyPrefix = "test-scenario-"

var (
	// ErrEmptyName is returned when saving under an empty or blank name.
	ErrEmptyName = errors.New("draft name is required")

	// ErrDraftNotFound is returned when no draft is stored under a key.
	ErrDraftNotFound = errors.New("draft not found")

	// ErrCorruptedDraft is returned when stored draft data cannot be decoded.
	ErrCorruptedDraft = errors.New("the saved data may be corrupted")
)

// Entry identifies a stored draft.
type Entry struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// Draft is a stored, serialized test scenario.
type Draft struct {
	Key       string    `gorm:"column:key;primaryKey;size:255" json:"key"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Data      string    `gorm:"type:text;not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// KeyFor returns the storage key for a draft name. The name is used as given;
// callers check it with ValidateName first.
func KeyFor(name string) string {
	return KeyPrefix + name
}

// NameFor strips the namespace prefix from a key.
func NameFor(key string) (string, bool) {
	if !strings.HasPrefix(key, KeyPrefix) {
		return "", false
	}
	return strings.TrimPrefix(key, KeyPrefix), true
}

// ValidateName rejects names that are empty after trimming whitespace.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	return nil
}

// Encode serializes a scenario for storage.
func Encode(ts scenario.TestScenario) (string, error) {
	ts = ts.Clone()
	ts.Normalize()
	data, err := json.Marshal(ts)
	if err != nil {
		return "", fmt.Errorf("failed to encode draft: %w", err)
	}
	return string(data), nil
}

// Decode parses stored draft data. Any parse failure is reported as
// ErrCorruptedDraft.
func Decode(data []byte) (scenario.TestScenario, error) {
	var ts scenario.TestScenario
	if err := json.Unmarshal(data, &ts); err != nil {
		return scenario.TestScenario{}, fmt.Errorf("%w: %v", ErrCorruptedDraft, err)
	}
	ts.Normalize()
	return ts, nil
}

func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
}
