package worker

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"presentation-service/internal/deck"
	"presentation-service/internal/queue"
	"presentation-service/internal/storage"
)

const dequeueTimeout = 5 * time.Second

// Generator builds a deck for one queued task and persists it.
type Generator struct {
	builder *deck.Builder
	store   storage.DeckStore
}

func NewGenerator(builder *deck.Builder, store storage.DeckStore) *Generator {
	return &Generator{builder: builder, store: store}
}

// Execute renders the task's slide specification into a .pptx file and
// saves it under a fresh file id. The returned result carries the
// public download path.
func (g *Generator) Execute(ctx context.Context, task *queue.Task) (queue.Result, error) {
	data, err := g.builder.Build(task.Spec)
	if err != nil {
		return queue.Result{}, fmt.Errorf("failed to build presentation: %w", err)
	}

	fileName := uuid.NewString() + ".pptx"
	if err := g.store.Save(ctx, fileName, data, deck.ContentType); err != nil {
		return queue.Result{}, fmt.Errorf("failed to save presentation file: %w", err)
	}

	return queue.Result{
		FileURL: "/api/download/" + fileName,
		Message: "Presentation generated successfully",
	}, nil
}

// TaskSource is the queue surface the worker consumes: blocking
// dequeue plus per-task state transitions.
type TaskSource interface {
	Dequeue(ctx context.Context, timeout time.Duration) (*queue.Task, error)
	MarkStarted(ctx context.Context, taskID string) error
	MarkSuccess(ctx context.Context, taskID string, result queue.Result) error
	MarkFailure(ctx context.Context, taskID, message string) error
}

// Worker drains the task list and records per-task state transitions.
type Worker struct {
	queue     TaskSource
	generator *Generator
}

func NewWorker(q TaskSource, generator *Generator) *Worker {
	return &Worker{queue: q, generator: generator}
}

// Run blocks on the queue until ctx is cancelled. Individual task
// failures are recorded against the task and never stop the loop.
func (w *Worker) Run(ctx context.Context) error {
	log.Println("Presentation worker started")
	for {
		select {
		case <-ctx.Done():
			log.Println("Presentation worker stopping")
			return ctx.Err()
		default:
		}

		task, err := w.queue.Dequeue(ctx, dequeueTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Printf("Failed to dequeue task: %v", err)
			time.Sleep(time.Second)
			continue
		}
		if task == nil {
			continue
		}

		w.process(ctx, task)
	}
}

func (w *Worker) process(ctx context.Context, task *queue.Task) {
	// A corrupt payload can decode without a spec; record the failure
	// instead of letting the deref take the loop down.
	if task.Spec == nil {
		log.Printf("Task %s carries no slide specification", task.ID)
		if err := w.queue.MarkFailure(ctx, task.ID, "Error: task payload carries no slide specification"); err != nil {
			log.Printf("Failed to record failure for task %s: %v", task.ID, err)
		}
		return
	}

	log.Printf("Processing task %s: %q", task.ID, task.Spec.Title)

	if err := w.queue.MarkStarted(ctx, task.ID); err != nil {
		log.Printf("Failed to mark task %s started: %v", task.ID, err)
	}

	result, err := w.generator.Execute(ctx, task)
	if err != nil {
		log.Printf("Task %s failed: %v", task.ID, err)
		if markErr := w.queue.MarkFailure(ctx, task.ID, "Error: "+err.Error()); markErr != nil {
			log.Printf("Failed to record failure for task %s: %v", task.ID, markErr)
		}
		return
	}

	if err := w.queue.MarkSuccess(ctx, task.ID, result); err != nil {
		log.Printf("Failed to record success for task %s: %v", task.ID, err)
		return
	}
	log.Printf("Task %s completed: %s", task.ID, result.FileURL)
}
