// Package notification carries booking events to whoever has to hear about
// them. Delivery is asynchronous and best effort: a failed notification is
// logged and counted but never undoes the booking change that caused it.
package notification

import "context"

type Kind string

const (
	KindBookingRequested       Kind = "BOOKING_REQUESTED"
	KindBookingReceived        Kind = "BOOKING_RECEIVED"
	KindConfirmation           Kind = "CONFIRMATION"
	KindCancellation           Kind = "CANCELLATION"
	KindAlternateTimesProposed Kind = "ALTERNATE_TIMES_PROPOSED"
	KindTimeUpdated            Kind = "TIME_UPDATED"
	KindStatusChanged          Kind = "STATUS_CHANGED"
)

// Payload is everything a message template needs about a booking event.
type Payload struct {
	BookingID         string   `json:"bookingId"`
	TrainerID         string   `json:"trainerId"`
	ClientID          string   `json:"clientId"`
	TrainerName       string   `json:"trainerName"`
	TrainerEmail      string   `json:"trainerEmail"`
	ClientName        string   `json:"clientName"`
	ClientEmail       string   `json:"clientEmail"`
	SessionType       string   `json:"sessionType"`
	Date              string   `json:"date"`
	TimeRange         string   `json:"timeRange"`
	OriginalDate      string   `json:"originalDate,omitempty"`
	OriginalTimeRange string   `json:"originalTimeRange,omitempty"`
	Status            string   `json:"status"`
	Message           string   `json:"message,omitempty"`
	AlternativeTimes  []string `json:"alternativeTimes,omitempty"`
}

// Notification pairs a kind with its payload. It is the unit put on the queue.
type Notification struct {
	Kind    Kind    `json:"kind"`
	Payload Payload `json:"payload"`
}

// Notifier delivers a single notification.
type Notifier interface {
	Notify(ctx context.Context, kind Kind, payload Payload) error
}

// Publisher accepts notifications without blocking the caller.
type Publisher interface {
	Publish(kind Kind, payload Payload)
}
