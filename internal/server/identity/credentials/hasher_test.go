package credentials

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("rahasia123")
	require.NoError(t, err)
	assert.NotEqual(t, "rahasia123", hash)

	assert.NoError(t, VerifyPassword(hash, "rahasia123"))
	assert.Error(t, VerifyPassword(hash, "rahasia124"))
}

func TestHashPassword_TooShort(t *testing.T) {
	_, err := HashPassword("1234567")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestVerifyPassword_EmptyHash(t *testing.T) {
	assert.Error(t, VerifyPassword("", "rahasia123"))
}
