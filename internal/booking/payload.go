package booking

import (
	"github.com/nekogravitycat/trainer-booking-backend/internal/notification"
	"github.com/nekogravitycat/trainer-booking-backend/internal/pkg/clocktime"
)

func (b *Booking) payload(prev Slot, message string) notification.Payload {
	p := notification.Payload{
		BookingID:    b.ID,
		TrainerID:    b.TrainerID,
		ClientID:     b.ClientID,
		TrainerName:  b.TrainerName,
		TrainerEmail: b.TrainerEmail,
		ClientName:   b.ClientName,
		ClientEmail:  b.ClientEmail,
		SessionType:  b.SessionType.Label(),
		Date:         clocktime.FormatLongDate(b.Date),
		TimeRange:    b.TimeRange(),
		Status:       string(b.Status),
		Message:      message,
	}
	if !prev.Date.IsZero() && (!prev.Date.Equal(b.Date) || prev.StartTime != b.StartTime || prev.EndTime != b.EndTime) {
		p.OriginalDate = clocktime.FormatLongDate(prev.Date)
		p.OriginalTimeRange = clocktime.FormatRange(prev.StartTime, prev.EndTime)
	}
	return p
}

// Payload builds the notification payload for an applied event.
func (e Event) Payload(b *Booking) notification.Payload {
	p := b.payload(e.Previous, e.Message)
	p.AlternativeTimes = e.AlternativeTimes
	return p
}
