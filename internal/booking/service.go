package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nekogravitycat/trainer-booking-backend/internal/notification"
	"github.com/nekogravitycat/trainer-booking-backend/internal/pkg/clocktime"
	"github.com/nekogravitycat/trainer-booking-backend/internal/profile"
	"github.com/nekogravitycat/trainer-booking-backend/internal/session"
)

const (
	maxWriteAttempts = 3
	defaultDBTimeout = 5 * time.Second
)

type CreateRequest struct {
	ClientID    string
	TrainerID   string
	SessionType string
	Duration    string
	Date        string
	StartTime   string
	Notes       *string
}

// RescheduleRequest moves a booking to a new date and start time.
type RescheduleRequest struct {
	Date      string
	StartTime string
	Message   string
}

type ProposeRequest struct {
	AlternativeTimes []AlternativeTime
	Message          string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, actorID, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	Dashboard(ctx context.Context, trainerID string) (*Dashboard, error)

	Confirm(ctx context.Context, actorID, bookingID, message string) (*Booking, error)
	EditAndConfirm(ctx context.Context, actorID, bookingID string, req RescheduleRequest) (*Booking, error)
	UpdateTime(ctx context.Context, actorID, bookingID string, req RescheduleRequest) (*Booking, error)
	ProposeAlternates(ctx context.Context, actorID, bookingID string, req ProposeRequest) (*Booking, *Proposal, error)
	// ChangeStatus parses to only after the actor is known to own the booking.
	ChangeStatus(ctx context.Context, actorID, bookingID, to, message string) (*Booking, error)
}

// TransitionRecorder observes applied status transitions.
type TransitionRecorder interface {
	BookingTransition(from, to string)
}

type Option func(*service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

// WithDBTimeout bounds each repository call.
func WithDBTimeout(d time.Duration) Option {
	return func(s *service) {
		if d > 0 {
			s.dbTimeout = d
		}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(s *service) { s.log = log }
}

func WithTransitionRecorder(r TransitionRecorder) Option {
	return func(s *service) { s.transitions = r }
}

type service struct {
	repo        Repository
	profiles    profile.Service
	publisher   notification.Publisher
	transitions TransitionRecorder
	log         *zap.Logger
	now         func() time.Time
	dbTimeout   time.Duration
}

func NewService(repo Repository, profiles profile.Service, publisher notification.Publisher, opts ...Option) Service {
	s := &service{
		repo:      repo,
		profiles:  profiles,
		publisher: publisher,
		log:       zap.NewNop(),
		now:       time.Now,
		dbTimeout: defaultDBTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	sessionType, err := session.ParseType(req.SessionType)
	if err != nil {
		return nil, err
	}
	duration, err := session.ParseDuration(req.Duration)
	if err != nil {
		return nil, err
	}
	if err := session.ValidatePair(sessionType, duration); err != nil {
		return nil, err
	}
	if req.TrainerID == req.ClientID {
		return nil, ErrSelfBooking
	}
	if req.Notes != nil && len(*req.Notes) > MaxNotesLength {
		return nil, ErrNotesTooLong
	}

	date, err := clocktime.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}

	b := &Booking{
		TrainerID:   req.TrainerID,
		ClientID:    req.ClientID,
		SessionType: sessionType,
		Duration:    duration,
		Status:      StatusPending,
		Notes:       req.Notes,
		Price:       session.Price(sessionType, duration),
	}
	slot, err := b.nextSlot(date, req.StartTime, "", s.now())
	if err != nil {
		return nil, err
	}
	b.Date, b.StartTime, b.EndTime = slot.Date, slot.StartTime, slot.EndTime

	trainer, err := s.profiles.GetByID(ctx, req.TrainerID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}
	if !trainer.IsTrainer {
		return nil, ErrTrainerNotFound
	}

	dbCtx, cancel := context.WithTimeout(ctx, s.dbTimeout)
	defer cancel()
	if err := s.repo.Create(dbCtx, b); err != nil {
		return nil, err
	}

	created, err := s.load(ctx, b.ID)
	if err != nil {
		return nil, err
	}

	payload := created.payload(Slot{}, "")
	if created.Notes != nil {
		payload.Message = strings.TrimSpace(*created.Notes)
	}
	s.publisher.Publish(notification.KindBookingRequested, payload)
	s.publisher.Publish(notification.KindBookingReceived, payload)
	return created, nil
}

func (s *service) GetByID(ctx context.Context, actorID, id string) (*Booking, error) {
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if actorID != b.TrainerID && actorID != b.ClientID {
		return nil, ErrForbiddenView
	}
	return b, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	dbCtx, cancel := context.WithTimeout(ctx, s.dbTimeout)
	defer cancel()
	return s.repo.List(dbCtx, filter)
}

func (s *service) Dashboard(ctx context.Context, trainerID string) (*Dashboard, error) {
	bookings, _, err := s.List(ctx, Filter{TrainerID: trainerID})
	if err != nil {
		return nil, err
	}
	return GroupForDashboard(bookings, s.now()), nil
}

// GroupForDashboard sorts a trainer's bookings into dashboard sections.
// Pending and confirmed only list sessions from today on.
func GroupForDashboard(bookings []*Booking, now time.Time) *Dashboard {
	today := clocktime.Day(now)
	d := &Dashboard{
		Pending:   []*Booking{},
		Confirmed: []*Booking{},
		Completed: []*Booking{},
		Cancelled: []*Booking{},
		All:       bookings,
	}
	if d.All == nil {
		d.All = []*Booking{}
	}

	for _, b := range bookings {
		upcoming := !b.Date.Before(today)
		switch b.Status {
		case StatusPending:
			if upcoming {
				d.Pending = append(d.Pending, b)
			}
		case StatusConfirmed:
			if upcoming {
				d.Confirmed = append(d.Confirmed, b)
			}
		case StatusCompleted:
			d.Completed = append(d.Completed, b)
		case StatusCancelled, StatusNoShow:
			d.Cancelled = append(d.Cancelled, b)
		}
	}
	return d
}

func (s *service) Confirm(ctx context.Context, actorID, bookingID, message string) (*Booking, error) {
	return s.mutate(ctx, bookingID, func(b *Booking, now time.Time) (Event, error) {
		return b.Confirm(actorID, message, now)
	})
}

func (s *service) EditAndConfirm(ctx context.Context, actorID, bookingID string, req RescheduleRequest) (*Booking, error) {
	return s.mutate(ctx, bookingID, func(b *Booking, now time.Time) (Event, error) {
		if err := b.authorize(actorID); err != nil {
			return Event{}, err
		}
		date, err := clocktime.ParseDate(req.Date)
		if err != nil {
			return Event{}, err
		}
		return b.EditAndConfirm(actorID, date, req.StartTime, req.Message, now)
	})
}

func (s *service) UpdateTime(ctx context.Context, actorID, bookingID string, req RescheduleRequest) (*Booking, error) {
	return s.mutate(ctx, bookingID, func(b *Booking, now time.Time) (Event, error) {
		if err := b.authorize(actorID); err != nil {
			return Event{}, err
		}
		date, err := clocktime.ParseDate(req.Date)
		if err != nil {
			return Event{}, err
		}
		return b.UpdateTime(actorID, date, req.StartTime, req.Message, now)
	})
}

func (s *service) ProposeAlternates(ctx context.Context, actorID, bookingID string, req ProposeRequest) (*Booking, *Proposal, error) {
	var proposal *Proposal
	b, err := s.mutate(ctx, bookingID, func(b *Booking, now time.Time) (Event, error) {
		p, ev, err := b.ProposeAlternates(actorID, req.AlternativeTimes, req.Message, now)
		if err != nil {
			return Event{}, err
		}
		proposal = p
		return ev, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return b, proposal, nil
}

func (s *service) ChangeStatus(ctx context.Context, actorID, bookingID, to, message string) (*Booking, error) {
	return s.mutate(ctx, bookingID, func(b *Booking, now time.Time) (Event, error) {
		if err := b.authorize(actorID); err != nil {
			return Event{}, err
		}
		status, err := ParseStatus(to)
		if err != nil {
			return Event{}, err
		}
		return b.ChangeStatus(actorID, status, message, now)
	})
}

// mutate runs one read-modify-write cycle per attempt. apply works on a fresh
// copy each time, so a lost race simply replays it against the newer row.
func (s *service) mutate(ctx context.Context, bookingID string, apply func(b *Booking, now time.Time) (Event, error)) (*Booking, error) {
	for attempt := 1; attempt <= maxWriteAttempts; attempt++ {
		b, err := s.load(ctx, bookingID)
		if err != nil {
			return nil, err
		}

		ev, err := apply(b, s.now())
		if err != nil {
			return nil, err
		}

		err = s.save(ctx, b)
		if errors.Is(err, ErrVersionConflict) {
			s.log.Info("booking version conflict, retrying",
				zap.String("booking_id", bookingID),
				zap.Int("attempt", attempt),
			)
			continue
		}
		if err != nil {
			return nil, err
		}

		if s.transitions != nil {
			s.transitions.BookingTransition(string(ev.From), string(b.Status))
		}
		s.publisher.Publish(ev.Kind, ev.Payload(b))
		return b, nil
	}
	return nil, ErrVersionConflict
}

func (s *service) load(ctx context.Context, id string) (*Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.dbTimeout)
	defer cancel()
	return s.repo.GetByID(ctx, id)
}

func (s *service) save(ctx context.Context, b *Booking) error {
	ctx, cancel := context.WithTimeout(ctx, s.dbTimeout)
	defer cancel()
	return s.repo.Update(ctx, b)
}
