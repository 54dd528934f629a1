package services

import (
	"testing"
	"time"

	"presentation-service/internal/config"

	"github.com/stretchr/testify/assert"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

func newTestTokenService(ttlMinutes int) *TokenService {
	return NewTokenService(config.AuthConfig{
		JWTSecret:       "test-secret-for-unit-tests",
		APIKeys:         []string{"demo-api-key-12345", "client-api-key-67890"},
		TokenTTLMinutes: ttlMinutes,
	})
}

// ============================================================================
// TEST SUITE 1: API KEY VERIFICATION
// ============================================================================

func TestVerifyAPIKey_KnownKeys(t *testing.T) {
	service := newTestTokenService(30)

	assert.True(t, service.VerifyAPIKey("demo-api-key-12345"))
	assert.True(t, service.VerifyAPIKey("client-api-key-67890"))
}

func TestVerifyAPIKey_RejectsUnknownKeys(t *testing.T) {
	service := newTestTokenService(30)

	assert.False(t, service.VerifyAPIKey(""))
	assert.False(t, service.VerifyAPIKey("demo-api-key"), "Prefix of a valid key should not match")
	assert.False(t, service.VerifyAPIKey("demo-api-key-12345 "), "Trailing whitespace should not match")
	assert.False(t, service.VerifyAPIKey("DEMO-API-KEY-12345"), "Matching is case sensitive")
}

// ============================================================================
// TEST SUITE 2: TOKEN LIFECYCLE
// ============================================================================

func TestIssueAndVerifyToken(t *testing.T) {
	service := newTestTokenService(30)

	tokenString, err := service.IssueToken("api_user", "demo-api-key-12345")
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenString)

	claims, err := service.VerifyToken(tokenString)
	assert.NoError(t, err)
	assert.Equal(t, "api_user", claims.Subject)
	assert.Equal(t, "demo-api-key-12345", claims.APIKey)
	assert.Equal(t, "presentation-service", claims.Issuer)
	assert.NotEmpty(t, claims.Id)
}

func TestVerifyToken_Expired(t *testing.T) {
	// Zero TTL issues a token that is already past its expiry.
	service := newTestTokenService(0)

	tokenString, err := service.IssueToken("api_user", "demo-api-key-12345")
	assert.NoError(t, err)

	// jwt validation allows no leeway; the zero-TTL token expires at
	// its own issue instant.
	time.Sleep(time.Second)

	_, err = service.VerifyToken(tokenString)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	issuer := newTestTokenService(30)
	verifier := NewTokenService(config.AuthConfig{
		JWTSecret:       "a-different-secret",
		APIKeys:         []string{"demo-api-key-12345"},
		TokenTTLMinutes: 30,
	})

	tokenString, err := issuer.IssueToken("api_user", "demo-api-key-12345")
	assert.NoError(t, err)

	_, err = verifier.VerifyToken(tokenString)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyToken_Garbage(t *testing.T) {
	service := newTestTokenService(30)

	_, err := service.VerifyToken("not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = service.VerifyToken("")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenTTL(t *testing.T) {
	service := newTestTokenService(30)

	assert.Equal(t, 30*time.Minute, service.TokenTTL())
}
