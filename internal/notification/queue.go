package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	TypeSend  = "notification:send"
	QueueName = "notifications"

	maxRetry = 5
)

// Enqueuer is the part of *asynq.Client the queue notifier needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// NewSendTask wraps a notification in an asynq task.
func NewSendTask(kind Kind, payload Payload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(Notification{Kind: kind, Payload: payload})
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSend, b)
	opts := []asynq.Option{asynq.Queue(QueueName), asynq.MaxRetry(maxRetry)}

	return task, opts, nil
}

// QueueNotifier hands notifications to the background worker through Redis.
type QueueNotifier struct {
	client Enqueuer
}

func NewQueueNotifier(client Enqueuer) *QueueNotifier {
	return &QueueNotifier{client: client}
}

func (n *QueueNotifier) Notify(ctx context.Context, kind Kind, payload Payload) error {
	task, opts, err := NewSendTask(kind, payload)
	if err != nil {
		return fmt.Errorf("failed to build notification task: %w", err)
	}
	if _, err := n.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue notification: %w", err)
	}
	return nil
}
