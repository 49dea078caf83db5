package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_VerifiesAndIsNotPlaintext(t *testing.T) {
	hash, err := HashPassword("1234")
	require.NoError(t, err)

	assert.NotEqual(t, "1234", hash)
	assert.True(t, CompareHashAndPassword(hash, "1234"))
	assert.False(t, CompareHashAndPassword(hash, "4321"))

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, PasswordCost, cost)
}

func TestHashPassword_Salted(t *testing.T) {
	a, err := HashPassword("abcd")
	require.NoError(t, err)
	b, err := HashPassword("abcd")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Len(t, b, len(a))
}

func TestCompareHashAndPassword_GarbageHash(t *testing.T) {
	assert.False(t, CompareHashAndPassword("not-a-hash", "1234"))
}
