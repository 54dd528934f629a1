package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"presentation-service/internal/models"
	"presentation-service/internal/services"
	"presentation-service/utils"

	"github.com/gin-gonic/gin"
)

const (
	minQuoteSlides = 1
	maxQuoteSlides = 100
)

type PricingHandler struct {
	pricingService *services.PricingService
	middleware     *Middleware
}

func NewPricingHandler(pricingService *services.PricingService, middleware *Middleware) *PricingHandler {
	return &PricingHandler{
		pricingService: pricingService,
		middleware:     middleware,
	}
}

func (p *PricingHandler) RegisterRoutes(router *gin.Engine) {
	pricingGr := router.Group("/api/pricing")

	// Public routes
	pricingGr.GET("/tiers", p.GetTiers)
	pricingGr.GET("/per-slide", p.GetPerSlideRate)

	// Protected routes
	pricingGr.GET("/calculate", p.middleware.RequireToken(), p.Calculate)
	pricingGr.POST("/estimate", p.middleware.RequireAPIKey(), p.Estimate)
}

// GetTiers lists every pricing tier with its effective per-slide rate.
func (p *PricingHandler) GetTiers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"tiers":    p.pricingService.GetAllTiers(),
		"currency": p.pricingService.Currency(),
	})
}

// GetPerSlideRate reports the flat rate custom quotes fall back to.
func (p *PricingHandler) GetPerSlideRate(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"price_per_slide": p.pricingService.FlatRate(),
		"currency":        p.pricingService.Currency(),
	})
}

// Calculate quotes a slide count supplied as a query parameter.
// Requires a bearer token.
func (p *PricingHandler) Calculate(c *gin.Context) {
	raw := c.Query("num_slides")
	numSlides, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Invalid num_slides query %q: %v", raw, err)
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{
			Success: false,
			Error: utils.APIError{
				Code:    "INVALID_SLIDE_COUNT",
				Message: "num_slides must be an integer",
			},
		})
		return
	}

	if numSlides < minQuoteSlides || numSlides > maxQuoteSlides {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{
			Success: false,
			Error: utils.APIError{
				Code:    "INVALID_SLIDE_COUNT",
				Message: "num_slides must be between 1 and 100",
			},
		})
		return
	}

	c.JSON(http.StatusOK, p.pricingService.CalculatePrice(numSlides))
}

// Estimate quotes a slide count posted as JSON. Requires an API key.
func (p *PricingHandler) Estimate(c *gin.Context) {
	var req models.PriceEstimateRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("Invalid estimate request format: %v", err)
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{
			Success: false,
			Error: utils.APIError{
				Code:    "INVALID_REQUEST_FORMAT",
				Message: "Invalid request format",
			},
		})
		return
	}

	if req.NumSlides < minQuoteSlides || req.NumSlides > maxQuoteSlides {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{
			Success: false,
			Error: utils.APIError{
				Code:    "INVALID_SLIDE_COUNT",
				Message: "num_slides must be between 1 and 100",
			},
		})
		return
	}

	quote := p.pricingService.CalculatePrice(req.NumSlides)
	c.JSON(http.StatusOK, utils.SuccessResponse{
		Success: true,
		Data:    quote,
		Meta: &utils.Meta{
			Timestamp: time.Now(),
		},
	})
}
