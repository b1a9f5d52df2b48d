package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termtalk/config"
)

func jwtTestConfig(secret string, ttl time.Duration) *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = secret
	cfg.Auth = &config.AuthConfig{TokenTTL: ttl}

	return cfg
}

func TestJWTService_GenerateAndValidateToken(t *testing.T) {
	svc, err := NewJWTService(jwtTestConfig("test_secret_key_very_long_for_testing", time.Hour))
	require.NoError(t, err)
	require.NotNil(t, svc)

	userID := uuid.New()

	token, err := svc.GenerateToken(userID, "alice")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestJWTService_TamperedToken(t *testing.T) {
	svc, err := NewJWTService(jwtTestConfig("test_secret_key_very_long_for_testing", time.Hour))
	require.NoError(t, err)

	token, err := svc.GenerateToken(uuid.New(), "alice")
	require.NoError(t, err)

	// Flipping any single character must invalidate the token.
	for _, i := range []int{0, len(token) / 2, len(token) - 1} {
		altered := []byte(token)
		if altered[i] == 'A' {
			altered[i] = 'B'
		} else {
			altered[i] = 'A'
		}

		claims, err := svc.ValidateToken(string(altered))
		assert.Error(t, err, "tampered at index %d", i)
		assert.Nil(t, claims)
	}
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc, err := NewJWTService(jwtTestConfig("test_secret_key_very_long_for_testing", -time.Minute))
	require.NoError(t, err)

	token, err := svc.GenerateToken(uuid.New(), "alice")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_WrongSecret(t *testing.T) {
	issuer, err := NewJWTService(jwtTestConfig("issuer_secret_key_very_long_for_testing", time.Hour))
	require.NoError(t, err)
	verifier, err := NewJWTService(jwtTestConfig("another_secret_key_very_long_for_testing", time.Hour))
	require.NoError(t, err)

	token, err := issuer.GenerateToken(uuid.New(), "alice")
	require.NoError(t, err)

	claims, err := verifier.ValidateToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_NotAToken(t *testing.T) {
	svc, err := NewJWTService(jwtTestConfig("test_secret_key_very_long_for_testing", time.Hour))
	require.NoError(t, err)

	claims, err := svc.ValidateToken("clearly-not-a-jwt-token-format")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_EmptySecret(t *testing.T) {
	svc, err := NewJWTService(jwtTestConfig("", time.Hour))
	assert.Error(t, err)
	assert.Nil(t, svc)
	assert.Contains(t, err.Error(), "jwt secret must be provided")
}
