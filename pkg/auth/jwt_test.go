package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPair(t *testing.T, expiry time.Duration) (*JWTGenerator, *JWTValidator) {
	t.Helper()
	generator, err := NewJWTGenerator(JWTGeneratorConfig{
		SigningMethod: "HS256",
		SecretKey:     "test-secret",
		Issuer:        "conceptcraft-backend",
		Audience:      []string{"conceptcraft-admin"},
		ExpiryTime:    expiry,
	})
	require.NoError(t, err)

	validator, err := NewJWTValidator(JWTConfig{
		SigningMethod: "HS256",
		SecretKey:     "test-secret",
		Issuer:        "conceptcraft-backend",
		Audience:      []string{"conceptcraft-admin"},
	})
	require.NoError(t, err)

	return generator, validator
}

func TestTokenRoundTrip(t *testing.T) {
	generator, validator := newTestPair(t, time.Hour)

	token, err := generator.GenerateToken("user-1", "admin@example.com", []string{"admin"})
	require.NoError(t, err)

	claims, err := validator.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, []string{"admin"}, claims.Roles)
}

func TestValidateTokenRejections(t *testing.T) {
	t.Run("expired token", func(t *testing.T) {
		generator, validator := newTestPair(t, -time.Minute)

		token, err := generator.GenerateToken("user-1", "admin@example.com", []string{"admin"})
		require.NoError(t, err)

		_, err = validator.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		generator, _ := newTestPair(t, time.Hour)
		validator, err := NewJWTValidator(JWTConfig{
			SigningMethod: "HS256",
			SecretKey:     "different-secret",
		})
		require.NoError(t, err)

		token, err := generator.GenerateToken("user-1", "admin@example.com", nil)
		require.NoError(t, err)

		_, err = validator.ValidateToken(token)
		require.Error(t, err)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, validator := newTestPair(t, time.Hour)

		_, err := validator.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestNewJWTValidatorRequiresSecret(t *testing.T) {
	_, err := NewJWTValidator(JWTConfig{SigningMethod: "HS256"})
	require.Error(t, err)
}

func TestUserContextHasRole(t *testing.T) {
	user := &UserContext{UserID: "user-1", Roles: []string{"admin", "editor"}}

	assert.True(t, user.HasRole("admin"))
	assert.True(t, user.HasRole("editor"))
	assert.False(t, user.HasRole("viewer"))
}
