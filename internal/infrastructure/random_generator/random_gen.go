package randomgenerator

import (
	"crypto/rand"
	"fmt"

	"github.com/mikiasgoitom/airhost/internal/domain/contract"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// RandomGenerator produces lowercase alphanumeric tokens from crypto/rand.
type RandomGenerator struct{}

func NewRandomGenerator() contract.IRandomGenerator {
	return &RandomGenerator{}
}

var _ (contract.IRandomGenerator) = (*RandomGenerator)(nil)

// GenerateRandomToken returns a token of exactly n characters.
func (rg *RandomGenerator) GenerateRandomToken(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("token length must be positive, got %d", n)
	}
	out := make([]byte, 0, n)
	buf := make([]byte, n)
	// 252 is the largest multiple of len(alphabet) below 256; rejecting the
	// rest keeps every character equally likely.
	for len(out) < n {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to generate random token: %w", err)
		}
		for _, b := range buf {
			if b >= 252 {
				continue
			}
			out = append(out, alphabet[int(b)%len(alphabet)])
			if len(out) == n {
				break
			}
		}
	}
	return string(out), nil
}
