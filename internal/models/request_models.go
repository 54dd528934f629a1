package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Authentication DTOs
type LoginRequest struct {
	APIKey string `json:"api_key" binding:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type Claims struct {
	jwt.RegisteredClaims
	Id     string `json:"claim_id"`
	APIKey string `json:"api_key"`
}

// Pricing DTOs
type PriceEstimateRequest struct {
	NumSlides int `json:"num_slides" binding:"required"`
}

// Presentation DTOs
type PresentationResponse struct {
	TaskID string `json:"task_id"`
	Status string `json:"status"`
}

type PresentationStatus struct {
	TaskID  string `json:"task_id"`
	Status  string `json:"status"`
	FileURL string `json:"file_url,omitempty"`
	Message string `json:"message,omitempty"`
}

// PDFPresentationRequest carries the form fields of a document upload.
// The slide specification itself is synthesized from the extracted text.
type PDFPresentationRequest struct {
	Title     string
	Author    string
	Theme     string
	NumSlides int
}
