package ai

import (
	"context"
	"fmt"

	"presentation-service/internal/config"
	"presentation-service/internal/models"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// OpenAISynthesizer generates slide content with the OpenAI chat
// completions API in JSON mode.
type OpenAISynthesizer struct {
	client *openai.Client
	model  string
}

func NewOpenAISynthesizer(cfg config.OpenAIConfig) *OpenAISynthesizer {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	client := openai.NewClient(opts...)
	return &OpenAISynthesizer{
		client: &client,
		model:  cfg.Model,
	}
}

func (s *OpenAISynthesizer) Synthesize(ctx context.Context, req Request) (*models.Presentation, error) {
	response, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: s.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(buildSystemPrompt(req.NumSlides)),
			openai.UserMessage(buildUserPrompt(req.Text, req.Title)),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(response.Choices) == 0 {
		return nil, fmt.Errorf("no content returned from AI")
	}

	return decodeDeck(response.Choices[0].Message.Content, req)
}
