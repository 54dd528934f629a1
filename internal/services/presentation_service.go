package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path"
	"strings"

	"presentation-service/internal/ai"
	"presentation-service/internal/models"
	"presentation-service/internal/queue"
)

// DownloadPathPrefix is the public route generated decks are served
// from. Worker results are rewritten against it when they carry a bare
// file name.
const DownloadPathPrefix = "/api/download/"

var (
	// ErrInvalidSpec reports a structurally invalid slide specification.
	ErrInvalidSpec = errors.New("invalid presentation spec")
	// ErrExtraction reports an unreadable uploaded document.
	ErrExtraction = errors.New("failed to extract text from document")
	// ErrSynthesis reports a failed language-model call.
	ErrSynthesis = errors.New("failed to synthesize presentation content")
)

// TextExtractor turns raw document bytes into plain text.
type TextExtractor interface {
	ExtractText(content []byte) (string, error)
}

// PresentationService routes both submission paths onto the job queue
// and translates queue state into the client-visible status contract.
type PresentationService struct {
	queue       queue.Queue
	extractor   TextExtractor
	synthesizer ai.Synthesizer
}

func NewPresentationService(q queue.Queue, extractor TextExtractor, synthesizer ai.Synthesizer) *PresentationService {
	return &PresentationService{
		queue:       q,
		extractor:   extractor,
		synthesizer: synthesizer,
	}
}

// Submit validates a complete slide specification and queues it.
// Returns immediately with the task handle; deck construction happens
// on a worker.
func (s *PresentationService) Submit(ctx context.Context, spec *models.Presentation) (models.PresentationResponse, error) {
	if err := spec.Validate(); err != nil {
		return models.PresentationResponse{}, fmt.Errorf("%w: %v", ErrInvalidSpec, err)
	}

	taskID, err := s.queue.Enqueue(ctx, spec)
	if err != nil {
		return models.PresentationResponse{}, fmt.Errorf("failed to enqueue presentation task: %w", err)
	}

	log.Printf("Queued presentation task %s: %q (%d slides)", taskID, spec.Title, len(spec.Slides))
	return models.PresentationResponse{TaskID: taskID, Status: "pending"}, nil
}

// SubmitFromPDF extracts text from an uploaded document, synthesizes a
// slide specification from it, and queues the result exactly as Submit
// would. No job is created when extraction or synthesis fails.
func (s *PresentationService) SubmitFromPDF(ctx context.Context, pdfContent []byte, req models.PDFPresentationRequest) (models.PresentationResponse, error) {
	text, err := s.extractor.ExtractText(pdfContent)
	if err != nil {
		return models.PresentationResponse{}, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	spec, err := s.synthesizer.Synthesize(ctx, ai.Request{
		Text:      text,
		Title:     req.Title,
		Author:    req.Author,
		Theme:     req.Theme,
		NumSlides: req.NumSlides,
	})
	if err != nil {
		return models.PresentationResponse{}, fmt.Errorf("%w: %v", ErrSynthesis, err)
	}

	return s.Submit(ctx, spec)
}

// GetStatus maps queue state onto the four externally visible statuses.
// Unknown handles read as pending; failed tasks always carry a message.
func (s *PresentationService) GetStatus(ctx context.Context, taskID string) (models.PresentationStatus, error) {
	status, err := s.queue.Status(ctx, taskID)
	if err != nil {
		return models.PresentationStatus{}, fmt.Errorf("failed to query task %s: %w", taskID, err)
	}

	result := models.PresentationStatus{TaskID: taskID}
	switch status.State {
	case queue.StatePending:
		result.Status = "pending"
		result.Message = "Task is pending"
	case queue.StateSuccess:
		result.Status = "completed"
		if status.Result != nil {
			result.FileURL = absoluteFileURL(status.Result.FileURL)
			result.Message = status.Result.Message
		}
	case queue.StateFailure:
		result.Status = "failed"
		result.Message = status.ErrorMessage
		if strings.TrimSpace(result.Message) == "" {
			result.Message = "Unknown error"
		}
	default:
		result.Status = "in_progress"
		result.Message = "Task is in progress"
	}

	return result, nil
}

// absoluteFileURL rewrites a worker-reported file reference to the
// fully qualified download route.
func absoluteFileURL(fileURL string) string {
	if fileURL == "" {
		return ""
	}
	if strings.HasPrefix(fileURL, DownloadPathPrefix) {
		return fileURL
	}
	return DownloadPathPrefix + path.Base(fileURL)
}
