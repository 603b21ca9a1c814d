package draft

import (
	"context"

	"github.com/hairizuan-noorazman/scenario-builder/scenario"
)

// Store defines the interface for draft persistence operations.
// Saving under an existing name overwrites it; the last write wins.
type Store interface {
	// Save stores the scenario under the key derived from name.
	Save(ctx context.Context, name string, ts scenario.TestScenario) (Entry, error)

	// List returns every stored draft, sorted by name.
	List(ctx context.Context) ([]Entry, error)

	// Load returns the scenario stored under key.
	Load(ctx context.Context, key string) (scenario.TestScenario, error)

	// Delete removes the draft stored under key.
	Delete(ctx context.Context, key string) error
}
