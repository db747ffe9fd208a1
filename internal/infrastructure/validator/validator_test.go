package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppValidator(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.ValidateEmail("guest@example.com"))
	assert.Error(t, v.ValidateEmail("not-an-email"))

	assert.NoError(t, v.ValidatePasswordStrength("secret"))
	assert.Error(t, v.ValidatePasswordStrength("12345"))

	assert.NoError(t, v.ValidateUsername("wanderer_42"))
	assert.Error(t, v.ValidateUsername("ab"))
	assert.Error(t, v.ValidateUsername("has space"))
	assert.Error(t, v.ValidateUsername("a123456789012345678901234567890"))

	assert.NoError(t, v.ValidatePhone("9876543210"))
	assert.NoError(t, v.ValidatePhone("919876543210"))
	assert.Error(t, v.ValidatePhone("98765"))
	assert.Error(t, v.ValidatePhone("98765-43210"))
}
