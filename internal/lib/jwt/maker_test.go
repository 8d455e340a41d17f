package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseAccessToken(t *testing.T) {
	maker := NewJWTMaker("test-secret", 15*time.Minute, 24*time.Hour)

	token, err := maker.GenerateAccessToken("user@example.com", "user", "uid-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := maker.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, "uid-123", claims.UserUID)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), claims.ExpiresAt.Time, time.Minute)
}

func TestGenerateRefreshToken(t *testing.T) {
	maker := NewJWTMaker("test-secret", 15*time.Minute, 24*time.Hour)

	token, err := maker.GenerateRefreshToken("user@example.com", "admin", "uid-123")
	require.NoError(t, err)

	claims, err := maker.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, claims.TokenType)
	assert.NotEmpty(t, claims.ID, "refresh-токен должен иметь jti")

	second, err := maker.GenerateRefreshToken("user@example.com", "admin", "uid-123")
	require.NoError(t, err)
	secondClaims, err := maker.ParseToken(second)
	require.NoError(t, err)
	assert.NotEqual(t, claims.ID, secondClaims.ID, "jti должен быть уникальным")
}

func TestParseToken_Errors(t *testing.T) {
	maker := NewJWTMaker("test-secret", 15*time.Minute, 24*time.Hour)

	t.Run("токен с чужой подписью", func(t *testing.T) {
		other := NewJWTMaker("another-secret", 15*time.Minute, 24*time.Hour)
		token, err := other.GenerateAccessToken("user@example.com", "user", "uid-123")
		require.NoError(t, err)

		_, err = maker.ParseToken(token)
		assert.Error(t, err)
	})

	t.Run("просроченный токен", func(t *testing.T) {
		expired := NewJWTMaker("test-secret", -time.Minute, 24*time.Hour)
		token, err := expired.GenerateAccessToken("user@example.com", "user", "uid-123")
		require.NoError(t, err)

		_, err = maker.ParseToken(token)
		assert.Error(t, err)
	})

	t.Run("мусор вместо токена", func(t *testing.T) {
		_, err := maker.ParseToken("not.a.token")
		assert.Error(t, err)
	})
}
