package booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/nekogravitycat/trainer-booking-backend/internal/notification"
	"github.com/nekogravitycat/trainer-booking-backend/internal/pkg/clocktime"
)

// AlternativeTime is a candidate slot offered to the client. Times may be
// given in 12-hour or 24-hour form; a missing EndTime follows the session length.
type AlternativeTime struct {
	Date      string
	StartTime string
	EndTime   string
}

// Proposal is the outcome of offering alternative times for a booking.
type Proposal struct {
	Slots   []Slot
	Lines   []string
	Note    NoteEntry
	Payload notification.Payload
}

// FormattedNote renders the note entry appended to the trainer notes.
func (p *Proposal) FormattedNote() string {
	return p.Note.String()
}

// ProposeAlternates builds the proposal for b without modifying it. Candidates
// lacking a date or a start time are skipped.
func ProposeAlternates(b *Booking, actorID string, candidates []AlternativeTime, message string, now time.Time) (*Proposal, error) {
	if err := checkMessage(message); err != nil {
		return nil, err
	}

	var slots []Slot
	for _, c := range candidates {
		if strings.TrimSpace(c.Date) == "" || strings.TrimSpace(c.StartTime) == "" {
			continue
		}
		date, err := clocktime.ParseDate(c.Date)
		if err != nil {
			return nil, err
		}
		slot, err := b.nextSlot(date, c.StartTime, c.EndTime, now)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	if len(slots) == 0 {
		return nil, ErrNoAlternatives
	}

	lines := make([]string, len(slots))
	for i, s := range slots {
		lines[i] = fmt.Sprintf("- %s from %s to %s", clocktime.FormatLongDate(s.Date), s.StartTime, s.EndTime)
	}

	message = strings.TrimSpace(message)
	note := NoteEntry{
		At:      now.UTC(),
		ActorID: actorID,
		Action:  ActionAlternatesProposed,
		Summary: "Proposed alternative times:",
		Message: message,
		Details: lines,
	}

	payload := b.payload(b.slot(), message)
	payload.AlternativeTimes = lines

	return &Proposal{Slots: slots, Lines: lines, Note: note, Payload: payload}, nil
}

// ProposeAlternates records a proposal on a pending booking. The booking stays
// pending until the trainer confirms one of the times.
func (b *Booking) ProposeAlternates(actorID string, candidates []AlternativeTime, message string, now time.Time) (*Proposal, Event, error) {
	if err := b.authorize(actorID); err != nil {
		return nil, Event{}, err
	}
	if b.Status != StatusPending {
		return nil, Event{}, InvalidTransitionError(b.Status, StatusPending)
	}

	p, err := ProposeAlternates(b, actorID, candidates, message, now)
	if err != nil {
		return nil, Event{}, err
	}

	b.TrainerNotes = b.TrainerNotes.Append(p.Note)
	ev := Event{
		Kind:             notification.KindAlternateTimesProposed,
		From:             b.Status,
		Previous:         b.slot(),
		Message:          p.Note.Message,
		AlternativeTimes: p.Lines,
	}
	return p, ev, nil
}
