package uuidutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandom_NewID(t *testing.T) {
	var gen Random
	a, b := gen.NewID(), gen.NewID()

	assert.True(t, IsValid(a))
	assert.True(t, IsValid(b))
	assert.NotEqual(t, a, b)
}

func TestSequence_NewID(t *testing.T) {
	seq := NewSequence("step")

	assert.Equal(t, "step-1", seq.NewID())
	assert.Equal(t, "step-2", seq.NewID())
	assert.False(t, IsValid("step-3"))
}
