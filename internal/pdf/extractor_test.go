package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ============================================================================
// TEST SUITE 1: CONTENT STREAM PARSING
// ============================================================================

func TestParseContentStream_TjOperators(t *testing.T) {
	stream := `BT
/F1 12 Tf
(Hello) Tj
(World) Tj
ET`

	assert.Equal(t, "Hello World", parseContentStream(stream))
}

func TestParseContentStream_TJArrays(t *testing.T) {
	stream := `BT
[(Quarterly) -250 (Report)] TJ
ET`

	assert.Equal(t, "Quarterly Report", parseContentStream(stream))
}

func TestParseContentStream_IgnoresNonTextLines(t *testing.T) {
	stream := `q
1 0 0 1 50 700 cm
(this is not shown text)
Q
(visible) Tj`

	assert.Equal(t, "visible", parseContentStream(stream))
}

func TestParseContentStream_UnescapesLiterals(t *testing.T) {
	stream := `(Costs \(net\)) Tj`

	assert.Equal(t, "Costs (net)", parseContentStream(stream))
}

func TestParseContentStream_Empty(t *testing.T) {
	assert.Equal(t, "", parseContentStream(""))
	assert.Equal(t, "", parseContentStream("q 1 0 0 1 0 0 cm Q"))
}

// ============================================================================
// TEST SUITE 2: INPUT VALIDATION
// ============================================================================

func TestExtractText_RejectsNonPDF(t *testing.T) {
	extractor := NewExtractor()

	_, err := extractor.ExtractText([]byte("just plain text"))
	assert.Error(t, err)

	_, err = extractor.ExtractText(nil)
	assert.Error(t, err)
}

func TestIsPDF(t *testing.T) {
	assert.True(t, isPDF([]byte("%PDF-1.7 rest of file")))
	assert.False(t, isPDF([]byte("%PD")))
	assert.False(t, isPDF([]byte("PK\x03\x04")))
}
