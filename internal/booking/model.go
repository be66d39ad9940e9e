package booking

import (
	"strings"
	"time"

	"github.com/nekogravitycat/trainer-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/trainer-booking-backend/internal/pkg/clocktime"
	"github.com/nekogravitycat/trainer-booking-backend/internal/session"
)

var (
	ErrNotFound          = apperror.New(apperror.KindNotFound, "booking not found")
	ErrProfileNotFound   = apperror.New(apperror.KindNotFound, "profile not found")
	ErrTrainerNotFound   = apperror.New(apperror.KindNotFound, "trainer not found")
	ErrUnauthorized      = apperror.New(apperror.KindUnauthorized, "only the booking's trainer can change it")
	ErrForbiddenView     = apperror.New(apperror.KindUnauthorized, "booking belongs to another trainer or client")
	ErrTrainerOnly       = apperror.New(apperror.KindUnauthorized, "only trainers have a dashboard")
	ErrVersionConflict   = apperror.New(apperror.KindConflict, "booking was modified concurrently, please retry")
	ErrDateRequired      = apperror.New(apperror.KindValidation, "date is required")
	ErrStartTimeRequired = apperror.New(apperror.KindValidation, "start time is required")
	ErrEndNotAfterStart  = apperror.New(apperror.KindValidation, "end time must be after start time")
	ErrDateInPast        = apperror.New(apperror.KindValidation, "date cannot be in the past")
	ErrInvalidStatus     = apperror.New(apperror.KindValidation, "invalid booking status")
	ErrNoAlternatives    = apperror.New(apperror.KindValidation, "at least one alternative time with a date and a start time is required")
	ErrSelfBooking       = apperror.New(apperror.KindValidation, "a trainer cannot book their own session")
	ErrNotesTooLong      = apperror.New(apperror.KindValidation, "notes are too long")
	ErrMessageTooLong    = apperror.New(apperror.KindValidation, "message is too long")
)

const (
	MaxNotesLength   = 2000
	MaxMessageLength = 2000
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
	StatusNoShow    Status = "NO_SHOW"
)

// ParseStatus validates a status name, case-insensitively.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := transitions[st]; !ok {
		return "", ErrInvalidStatus
	}
	return st, nil
}

// Booking is a client's request for a session with a trainer.
type Booking struct {
	ID           string
	TrainerID    string
	ClientID     string
	SessionType  session.Type
	Duration     session.Duration
	Date         time.Time // calendar day, UTC midnight
	StartTime    string    // "H:MM AM|PM"
	EndTime      string    // "H:MM AM|PM"
	Status       Status
	Notes        *string // client supplied, never rewritten
	TrainerNotes Notes   // append-only audit trail
	Price        *float64
	IsPaid       bool
	Version      int
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined from profiles on read.
	TrainerName  string
	TrainerEmail string
	ClientName   string
	ClientEmail  string
}

// TimeRange renders "start - end".
func (b *Booking) TimeRange() string {
	return clocktime.FormatRange(b.StartTime, b.EndTime)
}

// Slot is a date and time range a booking occupies.
type Slot struct {
	Date      time.Time
	StartTime string
	EndTime   string
}

func (b *Booking) slot() Slot {
	return Slot{Date: b.Date, StartTime: b.StartTime, EndTime: b.EndTime}
}

// String renders "2025-03-10 2:00 PM-3:30 PM".
func (s Slot) String() string {
	return clocktime.FormatDate(s.Date) + " " + s.StartTime + "-" + s.EndTime
}

// Dashboard groups a trainer's bookings the way the trainer dashboard shows them.
type Dashboard struct {
	Pending   []*Booking
	Confirmed []*Booking
	Completed []*Booking
	Cancelled []*Booking
	All       []*Booking
}

// Filter narrows a booking list. A zero PageSize returns every match.
type Filter struct {
	TrainerID string
	ClientID  string
	Status    Status
	Page      int
	PageSize  int
}
