package security

import (
	"Ripple/internal/api/config"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	config.Cfg = &config.Config{JWT: config.JWTConfig{Secret: "s3cret", Issuer: "ripple-test", ExpireHours: 2}}
	t.Cleanup(func() { config.Cfg = nil })

	token, err := GenerateToken(42, "alice")
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "ripple-test", claims.Issuer)
	assert.Equal(t, 2*time.Hour, TokenLifetime())

	sig, err := ExtractSignature(token)
	require.NoError(t, err)
	assert.NotEmpty(t, sig)
}

func TestValidateToken_Rejects(t *testing.T) {
	config.Cfg = nil

	t.Run("wrong secret", func(t *testing.T) {
		claims := &UserClaims{UserID: 1, RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    defaultJWTIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other"))
		require.NoError(t, err)
		_, err = ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		claims := &UserClaims{UserID: 1, RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    defaultJWTIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		}}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(defaultJWTSecret))
		require.NoError(t, err)
		_, err = ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ValidateToken("not-a-token")
		assert.Error(t, err)
		_, err = ExtractSignature("a.b")
		assert.ErrorIs(t, err, ErrTokenMalformed)
	})
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)

	assert.NoError(t, CheckPasswordHash("hunter2", hash))
	assert.ErrorIs(t, CheckPasswordHash("wrong", hash), ErrInvalidCredentials)

	_, err = HashPassword("")
	assert.ErrorIs(t, err, ErrPasswordEmpty)

	_, err = HashPassword(strings.Repeat("a", 73))
	assert.ErrorIs(t, err, ErrPasswordTooLong)

	assert.Error(t, CheckPasswordHash("hunter2", "not-a-hash"))
}
