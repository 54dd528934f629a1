package queue

import (
	"context"

	"presentation-service/internal/models"
)

// State is the lifecycle state of a queued generation task.
type State string

const (
	StatePending State = "PENDING"
	StateStarted State = "STARTED"
	StateSuccess State = "SUCCESS"
	StateFailure State = "FAILURE"
)

// Task is the unit of work handed to a worker.
type Task struct {
	ID   string               `json:"id"`
	Spec *models.Presentation `json:"spec"`
}

// Result is what a successful worker run records for a task.
type Result struct {
	FileURL string `json:"file_url"`
	Message string `json:"message"`
}

// Status is the polled view of a task. Result is set only on success,
// ErrorMessage only on failure. Terminal states never change again.
type Status struct {
	State        State
	Result       *Result
	ErrorMessage string
}

// Queue is the submission/polling contract the API layer depends on.
// Submission never blocks on deck construction.
type Queue interface {
	Enqueue(ctx context.Context, spec *models.Presentation) (string, error)
	Status(ctx context.Context, taskID string) (Status, error)
}
