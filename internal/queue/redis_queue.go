package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"presentation-service/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	taskListKey   = "presentation:tasks"
	taskKeyPrefix = "presentation:task:"

	// Task state is kept around long enough for clients to poll and
	// download, then expires with the queue's own housekeeping.
	taskStateTTL = 24 * time.Hour
)

// RedisQueue is the Redis-backed task queue. Tasks wait on a list,
// per-task state lives in a hash keyed by task ID.
type RedisQueue struct {
	client *redis.Client
}

func NewRedisQueue(client *redis.Client) *RedisQueue {
	return &RedisQueue{client: client}
}

func taskKey(taskID string) string {
	return taskKeyPrefix + taskID
}

// Enqueue records the task as pending and pushes it onto the work list.
func (q *RedisQueue) Enqueue(ctx context.Context, spec *models.Presentation) (string, error) {
	task := Task{
		ID:   uuid.NewString(),
		Spec: spec,
	}

	payload, err := json.Marshal(task)
	if err != nil {
		return "", fmt.Errorf("failed to marshal task: %w", err)
	}

	key := taskKey(task.ID)
	if err := q.client.HSet(ctx, key, "status", string(StatePending)).Err(); err != nil {
		return "", fmt.Errorf("failed to record task state: %w", err)
	}
	q.client.Expire(ctx, key, taskStateTTL)

	if err := q.client.LPush(ctx, taskListKey, payload).Err(); err != nil {
		return "", fmt.Errorf("failed to enqueue task: %w", err)
	}

	return task.ID, nil
}

// Status reads the task state hash. An unknown handle reads as pending:
// the task may simply not have reached a worker yet.
func (q *RedisQueue) Status(ctx context.Context, taskID string) (Status, error) {
	fields, err := q.client.HGetAll(ctx, taskKey(taskID)).Result()
	if err != nil {
		return Status{}, fmt.Errorf("failed to read task state: %w", err)
	}

	if len(fields) == 0 {
		return Status{State: StatePending}, nil
	}

	status := Status{State: State(fields["status"])}
	switch status.State {
	case StateSuccess:
		var result Result
		if raw, ok := fields["result"]; ok {
			if err := json.Unmarshal([]byte(raw), &result); err != nil {
				return Status{}, fmt.Errorf("failed to decode task result: %w", err)
			}
		}
		status.Result = &result
	case StateFailure:
		status.ErrorMessage = fields["error"]
	}

	return status, nil
}

// Dequeue blocks up to timeout waiting for the next task. A nil task
// with nil error means the wait timed out.
func (q *RedisQueue) Dequeue(ctx context.Context, timeout time.Duration) (*Task, error) {
	values, err := q.client.BRPop(ctx, timeout, taskListKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to pop task: %w", err)
	}
	if len(values) != 2 {
		return nil, fmt.Errorf("unexpected BRPOP reply length: %d", len(values))
	}

	var task Task
	if err := json.Unmarshal([]byte(values[1]), &task); err != nil {
		return nil, fmt.Errorf("failed to decode task payload: %w", err)
	}
	return &task, nil
}

// MarkStarted transitions a task to the started state.
func (q *RedisQueue) MarkStarted(ctx context.Context, taskID string) error {
	return q.setState(ctx, taskID, map[string]any{"status": string(StateStarted)})
}

// MarkSuccess records the terminal success state with its result.
func (q *RedisQueue) MarkSuccess(ctx context.Context, taskID string, result Result) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal task result: %w", err)
	}
	return q.setState(ctx, taskID, map[string]any{
		"status": string(StateSuccess),
		"result": payload,
	})
}

// MarkFailure records the terminal failure state with a message.
func (q *RedisQueue) MarkFailure(ctx context.Context, taskID, message string) error {
	return q.setState(ctx, taskID, map[string]any{
		"status": string(StateFailure),
		"error":  message,
	})
}

func (q *RedisQueue) setState(ctx context.Context, taskID string, fields map[string]any) error {
	key := taskKey(taskID)
	if err := q.client.HSet(ctx, key, fields).Err(); err != nil {
		return fmt.Errorf("failed to update task %s: %w", taskID, err)
	}
	q.client.Expire(ctx, key, taskStateTTL)
	return nil
}
