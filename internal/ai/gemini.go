package ai

import (
	"context"
	"errors"
	"fmt"

	"presentation-service/internal/config"
	"presentation-service/internal/models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiSynthesizer generates slide content with the Gemini API.
type GeminiSynthesizer struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiSynthesizer(ctx context.Context, cfg config.GeminiAPIConfig) (*GeminiSynthesizer, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("genai client init failed: %w", err)
	}

	return &GeminiSynthesizer{
		client: client,
		model:  client.GenerativeModel(cfg.ModelName),
	}, nil
}

func (s *GeminiSynthesizer) Synthesize(ctx context.Context, req Request) (*models.Presentation, error) {
	prompt := buildSystemPrompt(req.NumSlides) + "\n\n" + buildUserPrompt(req.Text, req.Title)

	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, errors.New("no content returned from AI")
	}

	textPart, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, fmt.Errorf("response part is not text, received %T", resp.Candidates[0].Content.Parts[0])
	}

	return decodeDeck(string(textPart), req)
}

// Close releases the underlying API client.
func (s *GeminiSynthesizer) Close() error {
	return s.client.Close()
}
