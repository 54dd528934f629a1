package handlers

import (
	"log"
	"net/http"
	"time"

	"presentation-service/internal/models"
	"presentation-service/internal/services"
	"presentation-service/utils"

	"github.com/gin-gonic/gin"
)

// tokenSubject identifies API-key holders; all clients share one
// service identity.
const tokenSubject = "api_user"

type AuthHandler struct {
	tokenService *services.TokenService
	middleware   *Middleware
}

func NewAuthHandler(tokenService *services.TokenService, middleware *Middleware) *AuthHandler {
	return &AuthHandler{
		tokenService: tokenService,
		middleware:   middleware,
	}
}

func (a *AuthHandler) RegisterRoutes(router *gin.Engine) {
	authGr := router.Group("/api/auth")

	// Public routes
	authGr.POST("/login", a.Login)
	authGr.POST("/token", a.Token)

	// Protected routes
	authGr.GET("/verify", a.middleware.RequireToken(), a.Verify)
}

// Login exchanges a valid API key for a bearer token.
func (a *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("Invalid login request format: %v", err)
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{
			Success: false,
			Error: utils.APIError{
				Code:    "INVALID_REQUEST_FORMAT",
				Message: "Invalid request format",
			},
		})
		return
	}

	if !a.tokenService.VerifyAPIKey(req.APIKey) {
		log.Printf("Login failed: unknown API key")
		c.JSON(http.StatusUnauthorized, utils.ErrorResponse{
			Success: false,
			Error: utils.APIError{
				Code:    "INVALID_API_KEY",
				Message: "Invalid API key",
			},
		})
		return
	}

	token, err := a.tokenService.IssueToken(tokenSubject, req.APIKey)
	if err != nil {
		log.Printf("Failed to issue token: %v", err)
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse{
			Success: false,
			Error: utils.APIError{
				Code:    "TOKEN_ISSUE_FAILED",
				Message: "Failed to issue access token",
			},
		})
		return
	}

	log.Printf("Issued access token for API client")
	c.JSON(http.StatusOK, models.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(a.tokenService.TokenTTL().Seconds()),
	})
}

// Token is the OAuth2-style variant of Login. Same exchange, bare
// token payload.
func (a *AuthHandler) Token(c *gin.Context) {
	var req models.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("Invalid token request format: %v", err)
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{
			Success: false,
			Error: utils.APIError{
				Code:    "INVALID_REQUEST_FORMAT",
				Message: "Invalid request format",
			},
		})
		return
	}

	if !a.tokenService.VerifyAPIKey(req.APIKey) {
		c.JSON(http.StatusUnauthorized, utils.ErrorResponse{
			Success: false,
			Error: utils.APIError{
				Code:    "INVALID_API_KEY",
				Message: "Invalid API key",
			},
		})
		return
	}

	token, err := a.tokenService.IssueToken(tokenSubject, req.APIKey)
	if err != nil {
		log.Printf("Failed to issue token: %v", err)
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse{
			Success: false,
			Error: utils.APIError{
				Code:    "TOKEN_ISSUE_FAILED",
				Message: "Failed to issue access token",
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.Token{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// Verify reports whether the presented bearer token is valid. The
// token middleware has already done the work by the time this runs.
func (a *AuthHandler) Verify(c *gin.Context) {
	claims, _ := c.Get(ContextClaimsKey)

	responseData := map[string]any{
		"valid": true,
	}
	if tokenClaims, ok := claims.(*models.Claims); ok {
		responseData["subject"] = tokenClaims.Subject
		if tokenClaims.ExpiresAt != nil {
			responseData["expires_at"] = tokenClaims.ExpiresAt.Time
		}
	}

	c.JSON(http.StatusOK, utils.SuccessResponse{
		Success: true,
		Data:    responseData,
		Meta: &utils.Meta{
			Timestamp: time.Now(),
		},
	})
}
