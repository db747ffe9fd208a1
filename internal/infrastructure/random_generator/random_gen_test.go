package randomgenerator

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRandomToken(t *testing.T) {
	rg := NewRandomGenerator()
	pattern := regexp.MustCompile(`^[a-z0-9]+$`)

	seen := make(map[string]struct{})
	for _, n := range []int{1, 4, 32, 64} {
		tok, err := rg.GenerateRandomToken(n)
		require.NoError(t, err)
		assert.Len(t, tok, n)
		assert.Regexp(t, pattern, tok)
		seen[tok] = struct{}{}
	}
	assert.Len(t, seen, 4)

	_, err := rg.GenerateRandomToken(0)
	assert.Error(t, err)
}
