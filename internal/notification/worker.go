package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Message is a rendered notification ready to be sent to one recipient.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer sends rendered messages.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// LogMailer logs messages instead of sending them.
type LogMailer struct {
	log *zap.Logger
}

func NewLogMailer(log *zap.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(_ context.Context, msg Message) error {
	m.log.Info("mail",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Body),
	)
	return nil
}

// HandleSendTask returns the worker handler for TypeSend tasks.
func HandleSendTask(mailer Mailer, log *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var n Notification
		if err := json.Unmarshal(task.Payload(), &n); err != nil {
			log.Error("invalid notification payload", zap.Error(err))
			return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
		}

		msg, ok := Render(n.Kind, n.Payload)
		if !ok {
			log.Warn("unknown notification kind", zap.String("kind", string(n.Kind)))
			return nil
		}

		if msg.To == "" {
			log.Error("notification has no recipient",
				zap.String("kind", string(n.Kind)),
				zap.String("booking_id", n.Payload.BookingID),
			)
			return fmt.Errorf("%w: %s notification for booking %s has no recipient", asynq.SkipRetry, n.Kind, n.Payload.BookingID)
		}

		if err := mailer.Send(ctx, msg); err != nil {
			log.Error("failed to send notification",
				zap.String("kind", string(n.Kind)),
				zap.String("booking_id", n.Payload.BookingID),
				zap.Error(err),
			)
			return err
		}
		return nil
	}
}
