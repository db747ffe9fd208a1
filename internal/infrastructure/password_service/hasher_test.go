package passwordservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasher(t *testing.T) {
	h := NewHasherWithCost(4)

	hash, err := h.HashPassword("s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)

	assert.NoError(t, h.ComparePasswordHash("s3cret!", hash))
	assert.ErrorIs(t, h.ComparePasswordHash("wrong", hash), ErrPasswordMismatch)
	assert.Error(t, h.ComparePasswordHash("s3cret!", "not-a-hash"))
}

func TestNewHasherUsesProductionCost(t *testing.T) {
	assert.Equal(t, bcryptCost, NewHasher().cost)
}
