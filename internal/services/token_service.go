package services

import (
	"errors"
	"fmt"
	"time"

	"presentation-service/internal/config"
	"presentation-service/internal/models"
	"presentation-service/utils"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenExpired reports a token whose expiry has passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid reports a malformed, tampered, or wrongly signed token.
	ErrTokenInvalid = errors.New("invalid token")
)

// TokenService verifies static API credentials against a fixed
// allow-list and exchanges them for signed, time-limited tokens.
type TokenService struct {
	jwtSecret string
	apiKeys   []string
	tokenTTL  time.Duration
}

func NewTokenService(cfg config.AuthConfig) *TokenService {
	return &TokenService{
		jwtSecret: cfg.JWTSecret,
		apiKeys:   cfg.APIKeys,
		tokenTTL:  time.Duration(cfg.TokenTTLMinutes) * time.Minute,
	}
}

// VerifyAPIKey reports whether the candidate exactly matches an entry
// in the configured allow-list.
func (t *TokenService) VerifyAPIKey(candidate string) bool {
	for _, key := range t.apiKeys {
		if candidate == key {
			return true
		}
	}
	return false
}

// IssueToken signs a token embedding the subject and the credential it
// was exchanged for. Expiry is now plus the configured TTL.
func (t *TokenService) IssueToken(subject, apiKey string) (string, error) {
	now := time.Now()
	claims := models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.tokenTTL)),
			Issuer:    "presentation-service",
		},
		Id:     "C-" + utils.GenerateRandomStringWithLength(6),
		APIKey: apiKey,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(t.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("error generate token string: %s", err)
	}
	return tokenString, nil
}

// VerifyToken checks the signature and expiry of a token and returns
// its claims. Expired tokens fail with ErrTokenExpired, everything
// else with ErrTokenInvalid.
func (t *TokenService) VerifyToken(tokenString string) (*models.Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&models.Claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(t.jwtSecret), nil
		},
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*models.Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.Subject == "" {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// TokenTTL returns the configured token lifetime.
func (t *TokenService) TokenTTL() time.Duration {
	return t.tokenTTL
}
