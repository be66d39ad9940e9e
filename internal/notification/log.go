package notification

import (
	"context"

	"go.uber.org/zap"
)

// LogNotifier writes notifications to the application log.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(_ context.Context, kind Kind, p Payload) error {
	n.log.Info("booking notification",
		zap.String("kind", string(kind)),
		zap.String("booking_id", p.BookingID),
		zap.String("trainer_id", p.TrainerID),
		zap.String("client_id", p.ClientID),
		zap.String("status", p.Status),
		zap.String("date", p.Date),
		zap.String("time_range", p.TimeRange),
		zap.Strings("alternative_times", p.AlternativeTimes),
	)
	return nil
}
