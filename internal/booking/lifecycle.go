package booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/nekogravitycat/trainer-booking-backend/internal/notification"
	"github.com/nekogravitycat/trainer-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/trainer-booking-backend/internal/pkg/clocktime"
	"github.com/nekogravitycat/trainer-booking-backend/internal/session"
)

// Action names the operation recorded in a note entry.
type Action string

const (
	ActionConfirmed               Action = "confirmed"
	ActionRescheduledAndConfirmed Action = "rescheduled_and_confirmed"
	ActionTimeUpdated             Action = "time_updated"
	ActionAlternatesProposed      Action = "alternates_proposed"
	ActionStatusChanged           Action = "status_changed"
)

// transitions lists, for each status, the statuses it may move to.
// Self-loops are only reachable through UpdateTime and ProposeAlternates.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled, StatusPending},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow, StatusConfirmed},
	StatusCancelled: {StatusPending},
	StatusNoShow:    {StatusPending},
	StatusCompleted: {},
}

func (s Status) CanTransitionTo(to Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// InvalidTransitionError is returned for any status change not in the table.
func InvalidTransitionError(from, to Status) error {
	return apperror.Newf(apperror.KindInvalidTransition, "cannot change booking status from %s to %s", from, to)
}

// Event describes a transition that has been applied to a booking.
type Event struct {
	Kind             notification.Kind
	From             Status
	Previous         Slot
	Message          string
	AlternativeTimes []string
}

func (b *Booking) authorize(actorID string) error {
	if actorID == "" || actorID != b.TrainerID {
		return ErrUnauthorized
	}
	return nil
}

func (b *Booking) checkTransition(to Status) error {
	if !b.Status.CanTransitionTo(to) {
		return InvalidTransitionError(b.Status, to)
	}
	return nil
}

func (b *Booking) record(actorID string, action Action, summary, message string, details []string, now time.Time) {
	b.TrainerNotes = b.TrainerNotes.Append(NoteEntry{
		At:      now.UTC(),
		ActorID: actorID,
		Action:  action,
		Summary: summary,
		Message: strings.TrimSpace(message),
		Details: details,
	})
}

func (b *Booking) event(kind notification.Kind, from Status, prev Slot, message string) Event {
	return Event{Kind: kind, From: from, Previous: prev, Message: strings.TrimSpace(message)}
}

// Confirm accepts a pending booking as requested.
func (b *Booking) Confirm(actorID, message string, now time.Time) (Event, error) {
	if err := b.authorize(actorID); err != nil {
		return Event{}, err
	}
	if err := b.checkTransition(StatusConfirmed); err != nil {
		return Event{}, err
	}
	if err := checkMessage(message); err != nil {
		return Event{}, err
	}

	from, prev := b.Status, b.slot()
	b.Status = StatusConfirmed
	b.record(actorID, ActionConfirmed, "Session confirmed.", message, nil, now)
	return b.event(notification.KindConfirmation, from, prev, message), nil
}

// EditAndConfirm moves a pending booking to a new date and start time and
// confirms it in one step.
func (b *Booking) EditAndConfirm(actorID string, date time.Time, startTime, message string, now time.Time) (Event, error) {
	if err := b.authorize(actorID); err != nil {
		return Event{}, err
	}
	if b.Status != StatusPending {
		return Event{}, InvalidTransitionError(b.Status, StatusConfirmed)
	}

	from, prev := b.Status, b.slot()
	next, err := b.reschedule(date, startTime, message, now)
	if err != nil {
		return Event{}, err
	}

	b.Status = StatusConfirmed
	b.record(actorID, ActionRescheduledAndConfirmed,
		fmt.Sprintf("Session rescheduled and confirmed. Previous: %s. New: %s.", prev, next),
		message, nil, now)
	return b.event(notification.KindConfirmation, from, prev, message), nil
}

// UpdateTime moves a confirmed booking to a new date and start time.
func (b *Booking) UpdateTime(actorID string, date time.Time, startTime, message string, now time.Time) (Event, error) {
	if err := b.authorize(actorID); err != nil {
		return Event{}, err
	}
	if b.Status != StatusConfirmed {
		return Event{}, InvalidTransitionError(b.Status, StatusConfirmed)
	}

	from, prev := b.Status, b.slot()
	next, err := b.reschedule(date, startTime, message, now)
	if err != nil {
		return Event{}, err
	}

	b.record(actorID, ActionTimeUpdated,
		fmt.Sprintf("Session time updated from %s to %s.", prev, next),
		message, nil, now)
	return b.event(notification.KindTimeUpdated, from, prev, message), nil
}

// ChangeStatus performs a plain status change. Staying in the same status is
// not a status change and is rejected.
func (b *Booking) ChangeStatus(actorID string, to Status, message string, now time.Time) (Event, error) {
	if err := b.authorize(actorID); err != nil {
		return Event{}, err
	}
	if to == b.Status {
		return Event{}, InvalidTransitionError(b.Status, to)
	}
	if err := b.checkTransition(to); err != nil {
		return Event{}, err
	}
	if err := checkMessage(message); err != nil {
		return Event{}, err
	}

	from, prev := b.Status, b.slot()
	b.Status = to
	b.record(actorID, ActionStatusChanged,
		fmt.Sprintf("Status changed from %s to %s.", from, to),
		message, nil, now)
	return b.event(statusChangeKind(to), from, prev, message), nil
}

func statusChangeKind(to Status) notification.Kind {
	switch to {
	case StatusConfirmed:
		return notification.KindConfirmation
	case StatusCancelled:
		return notification.KindCancellation
	default:
		return notification.KindStatusChanged
	}
}

// reschedule validates and applies a new slot, recomputing the end time.
func (b *Booking) reschedule(date time.Time, startTime, message string, now time.Time) (Slot, error) {
	slot, err := b.nextSlot(date, startTime, "", now)
	if err != nil {
		return Slot{}, err
	}
	if err := checkMessage(message); err != nil {
		return Slot{}, err
	}

	b.Date, b.StartTime, b.EndTime = slot.Date, slot.StartTime, slot.EndTime
	return slot, nil
}

// nextSlot builds a slot for this booking's session starting at startTime.
// An explicit endTime is kept as given; otherwise it follows the session length.
func (b *Booking) nextSlot(date time.Time, startTime, endTime string, now time.Time) (Slot, error) {
	if date.IsZero() {
		return Slot{}, ErrDateRequired
	}
	if strings.TrimSpace(startTime) == "" {
		return Slot{}, ErrStartTimeRequired
	}
	day := clocktime.Day(date)
	if day.Before(clocktime.Day(now)) {
		return Slot{}, ErrDateInPast
	}

	start, err := clocktime.Normalize(startTime)
	if err != nil {
		return Slot{}, err
	}

	if strings.TrimSpace(endTime) == "" {
		end, err := session.EndTime(start, b.SessionType, b.Duration)
		if err != nil {
			return Slot{}, err
		}
		return Slot{Date: day, StartTime: start, EndTime: end}, nil
	}

	// An explicit end time must fall later on the same day.
	end, err := clocktime.Normalize(endTime)
	if err != nil {
		return Slot{}, err
	}
	startMin, _ := clocktime.MinuteOfDay(start)
	endMin, _ := clocktime.MinuteOfDay(end)
	if endMin <= startMin {
		return Slot{}, ErrEndNotAfterStart
	}
	return Slot{Date: day, StartTime: start, EndTime: end}, nil
}

func checkMessage(message string) error {
	if len(message) > MaxMessageLength {
		return ErrMessageTooLong
	}
	return nil
}
