package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("Sup3r$ecret")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotContains(t, hash, "Sup3r$ecret")

	ok, err := VerifyPassword("Sup3r$ecret", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong-password", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPassword_RandomSalt(t *testing.T) {
	h1, err := HashPassword("Sup3r$ecret")
	require.NoError(t, err)
	h2, err := HashPassword("Sup3r$ecret")
	require.NoError(t, err)

	// Same password, different salts, different hashes; both still verify.
	assert.NotEqual(t, h1, h2)

	ok, err := VerifyPassword("Sup3r$ecret", h1)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = VerifyPassword("Sup3r$ecret", h2)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestHashPassword_Empty(t *testing.T) {
	_, err := HashPassword("")
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	ok, err := VerifyPassword("anything", "not-a-bcrypt-hash")
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrInvalidHashFormat)
}
