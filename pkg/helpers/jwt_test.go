package helpers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_GenerateAndParse(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("super-secret", time.Hour)
	tok, exp, err := m.GenerateToken("user-123")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := m.ParseToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
}

func TestJWT_ZeroTTLHasNoExpiry(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("secret", 0)
	tok, exp, err := m.GenerateToken("u1")
	require.NoError(t, err)
	assert.True(t, exp.IsZero())

	claims, err := m.ParseToken(tok)
	require.NoError(t, err)
	assert.Nil(t, claims.ExpiresAt)
}

func TestJWT_Expired(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("secret", -time.Minute)
	tok, _, err := m.GenerateToken("u1")
	require.NoError(t, err)

	_, err = m.ParseToken(tok)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWT_WrongSecretAndMalformed(t *testing.T) {
	t.Parallel()

	tok, _, err := NewJWTManager("right", time.Hour).GenerateToken("u2")
	require.NoError(t, err)

	_, err = NewJWTManager("wrong", time.Hour).ParseToken(tok)
	assert.Error(t, err)

	_, err = NewJWTManager("right", time.Hour).ParseToken("not.a.jwt")
	assert.Error(t, err)
}

func TestJWT_RejectsMissingUserID(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("secret", time.Hour)
	tok, _, err := m.GenerateToken("")
	require.NoError(t, err)

	_, err = m.ParseToken(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
