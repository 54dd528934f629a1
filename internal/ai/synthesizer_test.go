package ai

import (
	"testing"

	"presentation-service/internal/models"

	"github.com/stretchr/testify/assert"
)

// ============================================================================
// TEST SUITE 1: RESPONSE DECODING
// ============================================================================

const validDeckJSON = `{
	"title": "Model Picked Title",
	"slides": [
		{"type": "title", "title": "Model Picked Title", "content": "An overview"},
		{"type": "bullet_points", "title": "Key Points", "bullet_points": ["First", "Second"]}
	]
}`

func TestDecodeDeck_Valid(t *testing.T) {
	req := Request{Author: "Uploader", Theme: "default", NumSlides: 2}

	spec, err := decodeDeck(validDeckJSON, req)
	assert.NoError(t, err)
	assert.Equal(t, "Model Picked Title", spec.Title)
	assert.Equal(t, "Uploader", spec.Author)
	assert.Len(t, spec.Slides, 2)
	assert.Equal(t, models.SlideBulletPoints, spec.Slides[1].Type)
}

func TestDecodeDeck_TitleOverride(t *testing.T) {
	req := Request{Title: "Requested Title", Author: "Uploader"}

	spec, err := decodeDeck(validDeckJSON, req)
	assert.NoError(t, err)
	assert.Equal(t, "Requested Title", spec.Title, "A requested title wins over the model's")
}

func TestDecodeDeck_FencedResponse(t *testing.T) {
	fenced := "```json\n" + validDeckJSON + "\n```"

	spec, err := decodeDeck(fenced, Request{Author: "Uploader"})
	assert.NoError(t, err)
	assert.Len(t, spec.Slides, 2)
}

func TestDecodeDeck_Rejections(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"not json", "the model apologized instead"},
		{"no slides", `{"title": "Empty", "slides": []}`},
		{"no title anywhere", `{"slides": [{"type": "content", "title": "X", "content": "y"}]}`},
		{"invalid slide", `{"title": "T", "slides": [{"type": "bullet_points", "title": "Agenda"}]}`},
	}

	for _, tc := range cases {
		_, err := decodeDeck(tc.raw, Request{Author: "Uploader"})
		assert.Error(t, err, "Case %s should fail to decode", tc.name)
	}
}

// ============================================================================
// TEST SUITE 2: FENCE STRIPPING
// ============================================================================

func TestStripJSONFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripJSONFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripJSONFences("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripJSONFences(`{"a":1}`))
	assert.Equal(t, `{"a":1}`, stripJSONFences("  {\"a\":1}  "))
}
