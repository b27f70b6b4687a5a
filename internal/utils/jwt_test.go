package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkhalizov/movielog/internal/domain"
)

const (
	accessSecret  = "access-secret-for-tests-0123456789abcdef"
	refreshSecret = "refresh-secret-for-tests-0123456789abcde"
)

func newManager(accessExpiry, refreshExpiry time.Duration) *JWTManager {
	return NewJWTManager(accessSecret, refreshSecret, accessExpiry, refreshExpiry)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	manager := newManager(15*time.Minute, 7*24*time.Hour)

	token, err := manager.GenerateAccessToken("user-1", "a@x.com")
	require.NoError(t, err)

	claims, err := manager.ValidateAccessToken(token)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Greater(t, claims.Exp, time.Now().Unix())
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	manager := newManager(15*time.Minute, 7*24*time.Hour)

	token, err := manager.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	userID, err := manager.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestRefreshTokensAreUnique(t *testing.T) {
	manager := newManager(15*time.Minute, 7*24*time.Hour)

	first, err := manager.GenerateRefreshToken("user-1")
	require.NoError(t, err)
	second, err := manager.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestTokenKindsNotInterchangeable(t *testing.T) {
	manager := newManager(15*time.Minute, 7*24*time.Hour)

	accessToken, err := manager.GenerateAccessToken("user-1", "a@x.com")
	require.NoError(t, err)
	refreshToken, err := manager.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	_, err = manager.ValidateRefreshToken(accessToken)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	_, err = manager.ValidateAccessToken(refreshToken)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestExpiredAccessToken(t *testing.T) {
	manager := newManager(-time.Minute, 7*24*time.Hour)

	token, err := manager.GenerateAccessToken("user-1", "a@x.com")
	require.NoError(t, err)

	_, err = manager.ValidateAccessToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestExpiredRefreshToken(t *testing.T) {
	manager := newManager(15*time.Minute, -time.Minute)

	token, err := manager.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	_, err = manager.ValidateRefreshToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestTamperedToken(t *testing.T) {
	manager := newManager(15*time.Minute, 7*24*time.Hour)

	token, err := manager.GenerateAccessToken("user-1", "a@x.com")
	require.NoError(t, err)

	_, err = manager.ValidateAccessToken(token + "AAAA")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestWrongSecret(t *testing.T) {
	manager := newManager(15*time.Minute, 7*24*time.Hour)
	other := NewJWTManager("another-secret-entirely-0123456789abcdef", refreshSecret, 15*time.Minute, 7*24*time.Hour)

	token, err := other.GenerateAccessToken("user-1", "a@x.com")
	require.NoError(t, err)

	_, err = manager.ValidateAccessToken(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestGarbageToken(t *testing.T) {
	manager := newManager(15*time.Minute, 7*24*time.Hour)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := manager.ValidateAccessToken(token)
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	}
}

func TestExpirySeconds(t *testing.T) {
	manager := newManager(15*time.Minute, 7*24*time.Hour)

	assert.Equal(t, 900, manager.GetAccessTokenExpiry())
	assert.Equal(t, 604800, manager.GetRefreshTokenExpiry())
}
