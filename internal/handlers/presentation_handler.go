package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"presentation-service/internal/deck"
	"presentation-service/internal/models"
	"presentation-service/internal/services"
	"presentation-service/internal/storage"
	"presentation-service/utils"

	"github.com/gin-gonic/gin"
)

const (
	defaultPDFAuthor = "Generated Presentation"
	defaultPDFTheme  = "default"
	defaultPDFSlides = 5
)

type PresentationHandler struct {
	presentationService *services.PresentationService
	store               storage.DeckStore
}

func NewPresentationHandler(presentationService *services.PresentationService, store storage.DeckStore) *PresentationHandler {
	return &PresentationHandler{
		presentationService: presentationService,
		store:               store,
	}
}

func (p *PresentationHandler) RegisterRoutes(router *gin.Engine) {
	presentationGr := router.Group("/api/presentations")
	presentationGr.POST("", p.Create)
	presentationGr.POST("/from-pdf", p.CreateFromPDF)
	presentationGr.GET("/:task_id", p.GetStatus)

	router.GET("/api/download/:file_id", p.Download)
}

// Create queues a fully specified presentation for generation.
func (p *PresentationHandler) Create(c *gin.Context) {
	var spec models.Presentation

	if err := c.ShouldBindJSON(&spec); err != nil {
		log.Printf("Invalid presentation request format: %v", err)
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{
			Success: false,
			Error: utils.APIError{
				Code:    "INVALID_REQUEST_FORMAT",
				Message: "Invalid request format",
			},
		})
		return
	}

	resp, err := p.presentationService.Submit(c.Request.Context(), &spec)
	if err != nil {
		log.Printf("Failed to submit presentation: %v", err)
		statusCode, errorCode := p.mapSubmitError(err)
		c.JSON(statusCode, utils.ErrorResponse{
			Success: false,
			Error: utils.APIError{
				Code:    errorCode,
				Message: err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CreateFromPDF accepts a multipart document upload, synthesizes a
// slide specification from its text, and queues it.
func (p *PresentationHandler) CreateFromPDF(c *gin.Context) {
	fileHeader, err := c.FormFile("pdf_file")
	if err != nil {
		log.Printf("Missing pdf_file in upload: %v", err)
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{
			Success: false,
			Error: utils.APIError{
				Code:    "MISSING_FILE",
				Message: "pdf_file is required",
			},
		})
		return
	}

	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{
			Success: false,
			Error: utils.APIError{
				Code:    "INVALID_FILE_TYPE",
				Message: "File must be a PDF",
			},
		})
		return
	}

	req := models.PDFPresentationRequest{
		Title:     c.DefaultPostForm("title", "Presentation based on "+fileHeader.Filename),
		Author:    c.DefaultPostForm("author", defaultPDFAuthor),
		Theme:     c.DefaultPostForm("theme", defaultPDFTheme),
		NumSlides: defaultPDFSlides,
	}
	if raw := c.PostForm("num_slides"); raw != "" {
		numSlides, convErr := strconv.Atoi(raw)
		if convErr != nil || numSlides < 1 || numSlides > 100 {
			c.JSON(http.StatusBadRequest, utils.ErrorResponse{
				Success: false,
				Error: utils.APIError{
					Code:    "INVALID_SLIDE_COUNT",
					Message: "num_slides must be between 1 and 100",
				},
			})
			return
		}
		req.NumSlides = numSlides
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("Failed to open uploaded file: %v", err)
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse{
			Success: false,
			Error: utils.APIError{
				Code:    "UPLOAD_READ_FAILED",
				Message: "Failed to read uploaded file",
			},
		})
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		log.Printf("Failed to read uploaded file: %v", err)
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse{
			Success: false,
			Error: utils.APIError{
				Code:    "UPLOAD_READ_FAILED",
				Message: "Failed to read uploaded file",
			},
		})
		return
	}

	resp, err := p.presentationService.SubmitFromPDF(c.Request.Context(), content, req)
	if err != nil {
		log.Printf("Failed to submit presentation from PDF %s: %v", fileHeader.Filename, err)
		statusCode, errorCode := p.mapSubmitError(err)
		c.JSON(statusCode, utils.ErrorResponse{
			Success: false,
			Error: utils.APIError{
				Code:    errorCode,
				Message: err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetStatus reports the queue state of a previously submitted task.
func (p *PresentationHandler) GetStatus(c *gin.Context) {
	taskID := c.Param("task_id")

	status, err := p.presentationService.GetStatus(c.Request.Context(), taskID)
	if err != nil {
		log.Printf("Failed to query task %s: %v", taskID, err)
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse{
			Success: false,
			Error: utils.APIError{
				Code:    "STATUS_QUERY_FAILED",
				Message: "Failed to query task status",
			},
		})
		return
	}

	c.JSON(http.StatusOK, status)
}

// Download streams a generated deck out of the store.
func (p *PresentationHandler) Download(c *gin.Context) {
	fileID := c.Param("file_id")

	reader, size, err := p.store.Open(c.Request.Context(), fileID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, utils.ErrorResponse{
				Success: false,
				Error: utils.APIError{
					Code:    "FILE_NOT_FOUND",
					Message: "File not found",
				},
			})
			return
		}
		log.Printf("Failed to open file %s: %v", fileID, err)
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse{
			Success: false,
			Error: utils.APIError{
				Code:    "FILE_READ_FAILED",
				Message: "Failed to read file",
			},
		})
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", `attachment; filename="`+fileID+`"`)
	c.DataFromReader(http.StatusOK, size, deck.ContentType, reader, nil)
}

// mapSubmitError maps service layer errors to HTTP responses
func (p *PresentationHandler) mapSubmitError(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrInvalidSpec):
		return http.StatusBadRequest, "INVALID_SPEC"
	case errors.Is(err, services.ErrExtraction):
		return http.StatusBadRequest, "DOCUMENT_UNREADABLE"
	case errors.Is(err, services.ErrSynthesis):
		return http.StatusBadGateway, "SYNTHESIS_FAILED"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}
