package utils

import (
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "golang.org/x/crypto/bcrypt"
)

func TestHashPasswordRoundTrip(t *testing.T) {
    hash, err := HashPassword("correct horse battery", bcrypt.MinCost)
    require.NoError(t, err)
    require.NotEmpty(t, hash)

    assert.True(t, VerifyPassword(hash, "correct horse battery"))
    assert.False(t, VerifyPassword(hash, "correct horse batter"))
    assert.False(t, VerifyPassword(hash, ""))
}

func TestHashPasswordSalted(t *testing.T) {
    h1, err := HashPassword("same-input", bcrypt.MinCost)
    require.NoError(t, err)
    h2, err := HashPassword("same-input", bcrypt.MinCost)
    require.NoError(t, err)
    // bcrypt salts per call; identical inputs must not share a hash.
    assert.NotEqual(t, h1, h2)
}
