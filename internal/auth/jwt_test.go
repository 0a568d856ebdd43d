package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		Secret:        "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
		Audience:      "plugshop",
		Issuer:        "plugshop",
	}
}

func TestTokenRoundTrip(t *testing.T) {
	a := NewJWTAuthenticator(testConfig())

	access, refresh, err := a.GenerateTokens("user-1", "superadmin")
	require.NoError(t, err)

	tok, err := a.ValidateAccessToken(access)
	require.NoError(t, err)
	claims, err := ClaimsFrom(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "superadmin", claims.Role)

	tok, err = a.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	claims, err = ClaimsFrom(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestTokensAreNotInterchangeable(t *testing.T) {
	a := NewJWTAuthenticator(testConfig())
	access, refresh, err := a.GenerateTokens("user-1", "admin")
	require.NoError(t, err)

	_, err = a.ValidateAccessToken(refresh)
	assert.Error(t, err)
	_, err = a.ValidateRefreshToken(access)
	assert.Error(t, err)
}

func TestWrongSecretRejected(t *testing.T) {
	other := testConfig()
	other.Secret = "someone-else"
	token, err := NewJWTAuthenticator(other).GenerateAccessToken("user-1", "admin")
	require.NoError(t, err)

	_, err = NewJWTAuthenticator(testConfig()).ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	a := NewJWTAuthenticator(testConfig())
	a.now = func() time.Time { return time.Now().Add(-time.Hour) }
	token, err := a.GenerateAccessToken("user-1", "admin")
	require.NoError(t, err)

	_, err = NewJWTAuthenticator(testConfig()).ValidateAccessToken(token)
	assert.Error(t, err)
}
