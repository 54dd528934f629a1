package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"presentation-service/internal/ai"
	"presentation-service/internal/config"
	"presentation-service/internal/models"
	"presentation-service/internal/queue"
	"presentation-service/internal/services"
	"presentation-service/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

type stubExtractor struct {
	text string
	err  error
}

func (s *stubExtractor) ExtractText(content []byte) (string, error) {
	return s.text, s.err
}

type stubSynthesizer struct {
	spec *models.Presentation
	err  error
	got  ai.Request
}

func (s *stubSynthesizer) Synthesize(ctx context.Context, req ai.Request) (*models.Presentation, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return s.spec, nil
}

type testEnv struct {
	router       *gin.Engine
	queue        *queue.MemoryQueue
	store        storage.DeckStore
	tokenService *services.TokenService
	synthesizer  *stubSynthesizer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	q := queue.NewMemoryQueue(nil)
	store, err := storage.NewLocalStore(t.TempDir())
	assert.NoError(t, err)

	tokenService := services.NewTokenService(config.AuthConfig{
		JWTSecret:       "handler-test-secret",
		APIKeys:         []string{"demo-api-key-12345"},
		TokenTTLMinutes: 30,
	})
	pricingService, err := services.NewPricingService(services.DefaultPricingTiers(), services.DefaultPricePerSlide)
	assert.NoError(t, err)

	synthesized := &models.Presentation{
		Title:  "Synthesized Deck",
		Author: "Uploader",
		Slides: []models.Slide{
			{Type: models.SlideTitle, Title: "Synthesized Deck", Body: models.TitleBody{}},
		},
	}
	synthesizer := &stubSynthesizer{spec: synthesized}
	presentationService := services.NewPresentationService(q,
		&stubExtractor{text: "document text"},
		synthesizer)

	router := gin.New()
	middleware := NewMiddleware(tokenService)
	NewAuthHandler(tokenService, middleware).RegisterRoutes(router)
	NewPricingHandler(pricingService, middleware).RegisterRoutes(router)
	NewPresentationHandler(presentationService, store).RegisterRoutes(router)

	return &testEnv{router: router, queue: q, store: store, tokenService: tokenService, synthesizer: synthesizer}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	e.router.ServeHTTP(recorder, req)
	return recorder
}

func (e *testEnv) bearerToken(t *testing.T) string {
	t.Helper()
	token, err := e.tokenService.IssueToken("api_user", "demo-api-key-12345")
	assert.NoError(t, err)
	return token
}

func jsonRequest(method, url string, body any) *http.Request {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(method, url, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// ============================================================================
// TEST SUITE 1: AUTHENTICATION
// ============================================================================

func TestLogin_ValidKey(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(jsonRequest(http.MethodPost, "/api/auth/login", gin.H{"api_key": "demo-api-key-12345"}))

	assert.Equal(t, http.StatusOK, resp.Code)
	var body models.TokenResponse
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.NotEmpty(t, body.AccessToken)
	assert.Equal(t, "bearer", body.TokenType)
	assert.Equal(t, 1800, body.ExpiresIn)
}

func TestLogin_InvalidKey(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(jsonRequest(http.MethodPost, "/api/auth/login", gin.H{"api_key": "wrong-key"}))
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestLogin_MissingKey(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(jsonRequest(http.MethodPost, "/api/auth/login", gin.H{}))
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestVerify_RequiresToken(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(httptest.NewRequest(http.MethodGet, "/api/auth/verify", nil))
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/verify", nil)
	req.Header.Set("Authorization", "Bearer "+env.bearerToken(t))
	resp = env.do(req)
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestVerify_RejectsGarbageToken(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/verify", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp := env.do(req)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

// ============================================================================
// TEST SUITE 2: PRICING ROUTES
// ============================================================================

func TestGetTiers_Public(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(httptest.NewRequest(http.MethodGet, "/api/pricing/tiers", nil))
	assert.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Tiers    []models.TierSummary `json:"tiers"`
		Currency string               `json:"currency"`
	}
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Len(t, body.Tiers, 5)
	assert.Equal(t, "USD", body.Currency)
}

func TestGetPerSlideRate_Public(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(httptest.NewRequest(http.MethodGet, "/api/pricing/per-slide", nil))
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "price_per_slide")
}

func TestCalculate_RequiresToken(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(httptest.NewRequest(http.MethodGet, "/api/pricing/calculate?num_slides=5", nil))
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestCalculate_QuotesTier(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/pricing/calculate?num_slides=5", nil)
	req.Header.Set("Authorization", "Bearer "+env.bearerToken(t))
	resp := env.do(req)

	assert.Equal(t, http.StatusOK, resp.Code)
	var quote models.PriceQuote
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &quote))
	assert.Equal(t, "Basic", quote.Tier)
	assert.Equal(t, 4.50, quote.Price)
}

func TestCalculate_RejectsOutOfRange(t *testing.T) {
	env := newTestEnv(t)
	token := env.bearerToken(t)

	for _, query := range []string{"num_slides=0", "num_slides=101", "num_slides=abc", ""} {
		req := httptest.NewRequest(http.MethodGet, "/api/pricing/calculate?"+query, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp := env.do(req)
		assert.Equal(t, http.StatusBadRequest, resp.Code, "Query %q should be rejected", query)
	}
}

func TestEstimate_RequiresAPIKey(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(jsonRequest(http.MethodPost, "/api/pricing/estimate", gin.H{"num_slides": 10}))
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestEstimate_QuotesTier(t *testing.T) {
	env := newTestEnv(t)

	req := jsonRequest(http.MethodPost, "/api/pricing/estimate", gin.H{"num_slides": 10})
	req.Header.Set("X-API-Key", "demo-api-key-12345")
	resp := env.do(req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Standard")
}

func TestEstimate_RejectsUnknownAPIKey(t *testing.T) {
	env := newTestEnv(t)

	req := jsonRequest(http.MethodPost, "/api/pricing/estimate", gin.H{"num_slides": 10})
	req.Header.Set("X-API-Key", "stolen-key")
	resp := env.do(req)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

// ============================================================================
// TEST SUITE 3: PRESENTATION ROUTES
// ============================================================================

func TestCreatePresentation(t *testing.T) {
	env := newTestEnv(t)

	spec := gin.H{
		"title":  "Launch Plan",
		"author": "PM Team",
		"slides": []gin.H{
			{"type": "title", "title": "Launch Plan", "content": "H2 launch"},
			{"type": "bullet_points", "title": "Milestones", "bullet_points": []string{"Beta", "GA"}},
		},
	}
	resp := env.do(jsonRequest(http.MethodPost, "/api/presentations", spec))

	assert.Equal(t, http.StatusOK, resp.Code)
	var body models.PresentationResponse
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.NotEmpty(t, body.TaskID)
	assert.Equal(t, "pending", body.Status)
}

func TestCreatePresentation_InvalidSpec(t *testing.T) {
	env := newTestEnv(t)

	spec := gin.H{"title": "No Slides", "author": "PM Team", "slides": []gin.H{}}
	resp := env.do(jsonRequest(http.MethodPost, "/api/presentations", spec))

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "INVALID_SPEC")
}

func TestCreateFromPDF_RejectsNonPDF(t *testing.T) {
	env := newTestEnv(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("pdf_file", "notes.txt")
	assert.NoError(t, err)
	part.Write([]byte("plain text"))
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/presentations/from-pdf", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp := env.do(req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "INVALID_FILE_TYPE")
}

func TestCreateFromPDF_QueuesTask(t *testing.T) {
	env := newTestEnv(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("pdf_file", "report.pdf")
	assert.NoError(t, err)
	part.Write([]byte("%PDF-1.4 fake"))
	writer.WriteField("title", "Report Deck")
	writer.WriteField("num_slides", "7")
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/presentations/from-pdf", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp := env.do(req)

	assert.Equal(t, http.StatusOK, resp.Code)
	var body models.PresentationResponse
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "pending", body.Status)
}

func TestCreateFromPDF_DefaultsTitleAndAuthor(t *testing.T) {
	env := newTestEnv(t)

	// Only the file itself; title and author come from defaults.
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("pdf_file", "quarterly-report.pdf")
	assert.NoError(t, err)
	part.Write([]byte("%PDF-1.4 fake"))
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/presentations/from-pdf", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp := env.do(req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "Presentation based on quarterly-report.pdf", env.synthesizer.got.Title)
	assert.Equal(t, "Generated Presentation", env.synthesizer.got.Author,
		"A missing author field must not reach the synthesizer empty")
	assert.Equal(t, "default", env.synthesizer.got.Theme)
	assert.Equal(t, 5, env.synthesizer.got.NumSlides)
}

func TestCreateFromPDF_RejectsBadSlideCount(t *testing.T) {
	env := newTestEnv(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, _ := writer.CreateFormFile("pdf_file", "report.pdf")
	part.Write([]byte("%PDF-1.4 fake"))
	writer.WriteField("num_slides", "500")
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/presentations/from-pdf", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp := env.do(req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "INVALID_SLIDE_COUNT")
}

func TestGetStatus_CompletedTask(t *testing.T) {
	env := newTestEnv(t)

	env.queue.SetStatus("done-task", queue.Status{
		State:  queue.StateSuccess,
		Result: &queue.Result{FileURL: "deck.pptx", Message: "Presentation generated successfully"},
	})

	resp := env.do(httptest.NewRequest(http.MethodGet, "/api/presentations/done-task", nil))
	assert.Equal(t, http.StatusOK, resp.Code)

	var body models.PresentationStatus
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "completed", body.Status)
	assert.Equal(t, "/api/download/deck.pptx", body.FileURL)
}

// ============================================================================
// TEST SUITE 4: DOWNLOADS
// ============================================================================

func TestDownload_ExistingFile(t *testing.T) {
	env := newTestEnv(t)

	content := []byte("pptx archive bytes")
	assert.NoError(t, env.store.Save(context.Background(), "deck.pptx", content, ""))

	resp := env.do(httptest.NewRequest(http.MethodGet, "/api/download/deck.pptx", nil))
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, content, resp.Body.Bytes())
	assert.True(t, strings.Contains(resp.Header().Get("Content-Type"), "presentationml"))
	assert.Contains(t, resp.Header().Get("Content-Disposition"), "deck.pptx")
}

func TestDownload_MissingFile(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(httptest.NewRequest(http.MethodGet, "/api/download/nope.pptx", nil))
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, resp.Body.String(), "FILE_NOT_FOUND")
}
