package notification

import (
	"fmt"
	"strings"
)

// Render builds the message for a notification. Booking requests go to the
// trainer; everything else goes to the client.
func Render(kind Kind, p Payload) (Message, bool) {
	var (
		subject string
		lines   []string
		to      = p.ClientEmail
	)

	switch kind {
	case KindBookingRequested:
		to = p.TrainerEmail
		subject = fmt.Sprintf("New Session Booking: %s - %s", p.ClientName, p.Date)
		lines = []string{
			fmt.Sprintf("Hello %s,", p.TrainerName),
			fmt.Sprintf("You have a new %s booked with %s.", p.SessionType, p.ClientName),
			"Date: " + p.Date,
			"Time: " + p.TimeRange,
			"Please log in to your dashboard to confirm this booking.",
		}
	case KindBookingReceived:
		subject = fmt.Sprintf("Booking Request Sent: %s with %s", p.SessionType, p.TrainerName)
		lines = []string{
			fmt.Sprintf("Hello %s,", p.ClientName),
			fmt.Sprintf("Your %s request with %s has been sent.", p.SessionType, p.TrainerName),
			"Date: " + p.Date,
			"Time: " + p.TimeRange,
			"You will receive an email once your trainer confirms the booking.",
		}
	case KindConfirmation:
		subject = fmt.Sprintf("Session Confirmed: %s with %s", p.SessionType, p.TrainerName)
		lines = []string{
			fmt.Sprintf("Hello %s,", p.ClientName),
			fmt.Sprintf("%s has confirmed your %s.", p.TrainerName, p.SessionType),
			"Date: " + p.Date,
			"Time: " + p.TimeRange,
		}
	case KindCancellation:
		subject = fmt.Sprintf("Session Cancelled: %s with %s", p.SessionType, p.TrainerName)
		lines = []string{
			fmt.Sprintf("Hello %s,", p.ClientName),
			fmt.Sprintf("Your %s with %s on %s at %s has been cancelled.", p.SessionType, p.TrainerName, p.Date, p.TimeRange),
		}
	case KindAlternateTimesProposed:
		subject = fmt.Sprintf("Alternative Times Proposed: %s with %s", p.SessionType, p.TrainerName)
		lines = []string{
			fmt.Sprintf("Hello %s,", p.ClientName),
			fmt.Sprintf("%s cannot make %s at %s and proposes:", p.TrainerName, p.Date, p.TimeRange),
		}
		lines = append(lines, p.AlternativeTimes...)
	case KindTimeUpdated:
		subject = fmt.Sprintf("Session Time Updated: %s with %s", p.SessionType, p.TrainerName)
		lines = []string{
			fmt.Sprintf("Hello %s,", p.ClientName),
			fmt.Sprintf("Your %s has moved from %s %s to %s %s.", p.SessionType, p.OriginalDate, p.OriginalTimeRange, p.Date, p.TimeRange),
		}
	case KindStatusChanged:
		subject = fmt.Sprintf("Session Update: %s with %s", p.SessionType, p.TrainerName)
		lines = []string{
			fmt.Sprintf("Hello %s,", p.ClientName),
			fmt.Sprintf("Your %s on %s at %s is now %s.", p.SessionType, p.Date, p.TimeRange, strings.ToLower(p.Status)),
		}
	default:
		return Message{}, false
	}

	if p.Message != "" {
		label := "Message from your trainer: "
		switch kind {
		case KindBookingRequested:
			label = "Client notes: "
		case KindBookingReceived:
			label = "Your notes: "
		}
		lines = append(lines, "", label+p.Message)
	}
	return Message{To: to, Subject: subject, Body: strings.Join(lines, "\n")}, true
}
