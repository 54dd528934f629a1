package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"presentation-service/internal/models"
)

// Request carries everything a synthesizer needs to turn extracted
// document text into a slide specification.
type Request struct {
	Text      string
	Title     string // optional override; empty means let the model pick
	Author    string
	Theme     string
	NumSlides int
}

// Synthesizer produces a structured slide specification from raw text
// by calling a hosted language model.
type Synthesizer interface {
	Synthesize(ctx context.Context, req Request) (*models.Presentation, error)
}

// synthesizedDeck is the JSON contract both model backends are asked
// to produce. The slide shape matches the client wire format.
type synthesizedDeck struct {
	Title  string         `json:"title"`
	Slides []models.Slide `json:"slides"`
}

// decodeDeck parses a model response into a validated Presentation.
func decodeDeck(raw string, req Request) (*models.Presentation, error) {
	raw = stripJSONFences(raw)

	var deck synthesizedDeck
	if err := json.Unmarshal([]byte(raw), &deck); err != nil {
		return nil, fmt.Errorf("failed to unmarshal AI response to JSON: %w. Raw response was: %s", err, raw)
	}

	title := deck.Title
	if req.Title != "" {
		title = req.Title
	}
	if title == "" {
		return nil, fmt.Errorf("AI response carried no presentation title")
	}
	if len(deck.Slides) == 0 {
		return nil, fmt.Errorf("AI response carried no slides")
	}

	presentation := &models.Presentation{
		Title:  title,
		Author: req.Author,
		Slides: deck.Slides,
		Theme:  req.Theme,
	}
	if err := presentation.Validate(); err != nil {
		return nil, fmt.Errorf("AI response produced an invalid slide spec: %w", err)
	}
	return presentation, nil
}

// stripJSONFences removes a markdown code fence wrapper if the model
// added one despite being asked for plain JSON.
func stripJSONFences(response string) string {
	response = strings.TrimSpace(response)
	if strings.HasPrefix(response, "```json") {
		response = strings.TrimPrefix(response, "```json")
		response = strings.TrimSuffix(strings.TrimSpace(response), "```")
	} else if strings.HasPrefix(response, "```") {
		response = strings.TrimPrefix(response, "```")
		response = strings.TrimSuffix(strings.TrimSpace(response), "```")
	}
	return strings.TrimSpace(response)
}
