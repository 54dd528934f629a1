package queue

import (
	"context"
	"sync"

	"presentation-service/internal/models"

	"github.com/google/uuid"
)

// Handler executes a task and returns its result.
type Handler func(ctx context.Context, task *Task) (Result, error)

// MemoryQueue is an in-process Queue. With a handler it executes tasks
// on a goroutine per submission; without one, tasks stay pending. Used
// by tests and single-process deployments without Redis.
type MemoryQueue struct {
	mu       sync.Mutex
	statuses map[string]Status
	handler  Handler
}

func NewMemoryQueue(handler Handler) *MemoryQueue {
	return &MemoryQueue{
		statuses: make(map[string]Status),
		handler:  handler,
	}
}

func (q *MemoryQueue) Enqueue(ctx context.Context, spec *models.Presentation) (string, error) {
	task := &Task{
		ID:   uuid.NewString(),
		Spec: spec,
	}

	q.setStatus(task.ID, Status{State: StatePending})

	if q.handler != nil {
		go q.run(task)
	}

	return task.ID, nil
}

func (q *MemoryQueue) Status(ctx context.Context, taskID string) (Status, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	status, ok := q.statuses[taskID]
	if !ok {
		return Status{State: StatePending}, nil
	}
	return status, nil
}

func (q *MemoryQueue) run(task *Task) {
	q.setStatus(task.ID, Status{State: StateStarted})

	result, err := q.handler(context.Background(), task)
	if err != nil {
		q.setStatus(task.ID, Status{State: StateFailure, ErrorMessage: err.Error()})
		return
	}
	q.setStatus(task.ID, Status{State: StateSuccess, Result: &result})
}

func (q *MemoryQueue) setStatus(taskID string, status Status) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.statuses[taskID] = status
}

// SetStatus overrides a task's state directly. Test helper.
func (q *MemoryQueue) SetStatus(taskID string, status Status) {
	q.setStatus(taskID, status)
}
