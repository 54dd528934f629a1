package queue

import (
	"context"
	"errors"
	"testing"
	"time"

	"presentation-service/internal/models"

	"github.com/stretchr/testify/assert"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

func createQueueTestSpec() *models.Presentation {
	return &models.Presentation{
		Title:  "Deck",
		Author: "Author",
		Slides: []models.Slide{
			{Type: models.SlideTitle, Title: "Deck", Body: models.TitleBody{}},
		},
	}
}

func waitForState(t *testing.T, q *MemoryQueue, taskID string, want State) Status {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		status, err := q.Status(context.Background(), taskID)
		assert.NoError(t, err)
		if status.State == want {
			return status
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("task %s never reached state %s", taskID, want)
	return Status{}
}

// ============================================================================
// TEST SUITE 1: SUBMISSION AND POLLING
// ============================================================================

func TestMemoryQueue_EnqueueWithoutHandlerStaysPending(t *testing.T) {
	q := NewMemoryQueue(nil)

	taskID, err := q.Enqueue(context.Background(), createQueueTestSpec())
	assert.NoError(t, err)
	assert.NotEmpty(t, taskID)

	status, err := q.Status(context.Background(), taskID)
	assert.NoError(t, err)
	assert.Equal(t, StatePending, status.State)
}

func TestMemoryQueue_UnknownTaskReadsPending(t *testing.T) {
	q := NewMemoryQueue(nil)

	status, err := q.Status(context.Background(), "no-such-task")
	assert.NoError(t, err)
	assert.Equal(t, StatePending, status.State)
}

// ============================================================================
// TEST SUITE 2: HANDLER EXECUTION
// ============================================================================

func TestMemoryQueue_HandlerSuccess(t *testing.T) {
	q := NewMemoryQueue(func(ctx context.Context, task *Task) (Result, error) {
		return Result{FileURL: "/api/download/x.pptx", Message: "done"}, nil
	})

	taskID, err := q.Enqueue(context.Background(), createQueueTestSpec())
	assert.NoError(t, err)

	status := waitForState(t, q, taskID, StateSuccess)
	assert.NotNil(t, status.Result)
	assert.Equal(t, "/api/download/x.pptx", status.Result.FileURL)
}

func TestMemoryQueue_HandlerFailure(t *testing.T) {
	q := NewMemoryQueue(func(ctx context.Context, task *Task) (Result, error) {
		return Result{}, errors.New("render blew up")
	})

	taskID, err := q.Enqueue(context.Background(), createQueueTestSpec())
	assert.NoError(t, err)

	status := waitForState(t, q, taskID, StateFailure)
	assert.Equal(t, "render blew up", status.ErrorMessage)
	assert.Nil(t, status.Result)
}
