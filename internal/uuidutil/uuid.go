package uuidutil

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Generator produces identifiers for steps and nested fields.
type Generator interface {
	NewID() string
}

// Random generates random UUID v4 identifiers.
type Random struct{}

// NewID returns a new random UUID string.
func (Random) NewID() string {
	return uuid.NewString()
}

// Sequence generates predictable identifiers "<prefix>-1", "<prefix>-2", ...
// Use this only in tests or where deterministic ids are required.
type Sequence struct {
	mu     sync.Mutex
	prefix string
	next   int
}

// NewSequence creates a Sequence with the given prefix.
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

// NewID returns the next identifier in the sequence.
func (s *Sequence) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return fmt.Sprintf("%s-%d", s.prefix, s.next)
}

// IsValid checks if a string is a valid UUID format
func IsValid(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
