package pdf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ErrNoText reports a PDF with no extractable text content.
var ErrNoText = errors.New("no text content found in PDF")

// Extractor pulls plain text out of uploaded PDF bytes using pdfcpu.
// pdfcpu dumps raw page content streams; the text show operators
// (Tj / TJ) are parsed out of them afterwards.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText extracts the text of every page, joined by newlines.
func (e *Extractor) ExtractText(pdfContent []byte) (string, error) {
	if !isPDF(pdfContent) {
		return "", errors.New("invalid PDF format")
	}

	tmpFile, err := os.CreateTemp("", "upload_*.pdf")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(pdfContent); err != nil {
		tmpFile.Close()
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	tmpFile.Close()

	conf := model.NewDefaultConfiguration()

	pageCount, err := api.PageCountFile(tmpFile.Name())
	if err != nil {
		return "", fmt.Errorf("failed to read PDF page count: %w", err)
	}

	tempDir, err := os.MkdirTemp("", "pdf_content_*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	if err := api.ExtractContentFile(tmpFile.Name(), tempDir, nil, conf); err != nil {
		return "", fmt.Errorf("failed to extract PDF content: %w", err)
	}

	baseName := strings.TrimSuffix(filepath.Base(tmpFile.Name()), ".pdf")

	var pages []string
	for page := 1; page <= pageCount; page++ {
		contentFile := filepath.Join(tempDir, fmt.Sprintf("%s_Content_page_%d.txt", baseName, page))
		contentBytes, err := os.ReadFile(contentFile)
		if err != nil {
			// Pages without content streams produce no file.
			continue
		}
		if text := parseContentStream(string(contentBytes)); text != "" {
			pages = append(pages, text)
		}
	}

	if len(pages) == 0 {
		return "", ErrNoText
	}
	return strings.Join(pages, "\n"), nil
}

var textLiteralPattern = regexp.MustCompile(`\(((?:\\.|[^\\()])*)\)`)

// parseContentStream collects the string literals of Tj/TJ text show
// operations from a raw PDF content stream.
func parseContentStream(content string) string {
	var texts []string

	for _, line := range strings.Split(content, "\n") {
		if !strings.Contains(line, "Tj") && !strings.Contains(line, "TJ") {
			continue
		}
		for _, match := range textLiteralPattern.FindAllStringSubmatch(line, -1) {
			if text := unescapeTextLiteral(match[1]); strings.TrimSpace(text) != "" {
				texts = append(texts, text)
			}
		}
	}

	result := strings.Join(texts, " ")
	return strings.TrimSpace(collapseWhitespace(result))
}

func unescapeTextLiteral(s string) string {
	replacer := strings.NewReplacer(
		`\(`, "(",
		`\)`, ")",
		`\\`, `\`,
		`\n`, "\n",
		`\r`, "\r",
		`\t`, "\t",
	)
	return replacer.Replace(s)
}

var whitespacePattern = regexp.MustCompile(`\s+`)

func collapseWhitespace(s string) string {
	return whitespacePattern.ReplaceAllString(s, " ")
}

// isPDF checks if data starts with PDF magic bytes
func isPDF(data []byte) bool {
	return len(data) > 4 && string(data[:4]) == "%PDF"
}
