package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"presentation-service/internal/services"
	"presentation-service/utils"

	"github.com/gin-gonic/gin"
)

const (
	// ContextClaimsKey is the gin context key token claims are stored
	// under for downstream handlers.
	ContextClaimsKey = "auth_claims"
	// ContextAPIKeyKey is the gin context key the verified API key is
	// stored under.
	ContextAPIKeyKey = "api_key"
)

type Middleware struct {
	tokenService *services.TokenService
}

func NewMiddleware(tokenService *services.TokenService) *Middleware {
	return &Middleware{tokenService: tokenService}
}

// RequireToken guards a route group with bearer-token authentication.
// Verified claims are placed into the request context.
func (m *Middleware) RequireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{
				Success: false,
				Error: utils.APIError{
					Code:    "MISSING_TOKEN",
					Message: "authorization header required",
				},
			})
			return
		}

		// Extract token from Bearer format
		tokenString := authHeader
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = authHeader[7:]
		}

		claims, err := m.tokenService.VerifyToken(tokenString)
		if err != nil {
			log.Printf("Token validation failed: %v", err)
			code := "INVALID_TOKEN"
			message := "token validation failed"
			if errors.Is(err, services.ErrTokenExpired) {
				code = "TOKEN_EXPIRED"
				message = "token has expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{
				Success: false,
				Error: utils.APIError{
					Code:    code,
					Message: message,
				},
			})
			return
		}

		c.Set(ContextClaimsKey, claims)
		c.Next()
	}
}

// RequireAPIKey guards a route group with X-API-Key authentication
// against the configured allow list.
func (m *Middleware) RequireAPIKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("X-API-Key")
		if apiKey == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{
				Success: false,
				Error: utils.APIError{
					Code:    "MISSING_API_KEY",
					Message: "X-API-Key header required",
				},
			})
			return
		}

		if !m.tokenService.VerifyAPIKey(apiKey) {
			log.Printf("Rejected request with unknown API key")
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{
				Success: false,
				Error: utils.APIError{
					Code:    "INVALID_API_KEY",
					Message: "invalid API key",
				},
			})
			return
		}

		c.Set(ContextAPIKeyKey, apiKey)
		c.Next()
	}
}
