package availability

import (
	"context"
	"errors"
	"time"

	"github.com/nekogravitycat/trainer-booking-backend/internal/profile"
)

const defaultDBTimeout = 5 * time.Second

type Service interface {
	// Get returns a trainer's week in display form.
	Get(ctx context.Context, trainerID string) ([]DisplaySlot, error)
	// Replace swaps the trainer's whole week for slots.
	Replace(ctx context.Context, actorID, trainerID string, slots []DisplaySlot) ([]DisplaySlot, error)
}

type service struct {
	repo      Repository
	profiles  profile.Service
	dbTimeout time.Duration
}

func NewService(repo Repository, profiles profile.Service, dbTimeout time.Duration) Service {
	if dbTimeout <= 0 {
		dbTimeout = defaultDBTimeout
	}
	return &service{repo: repo, profiles: profiles, dbTimeout: dbTimeout}
}

func (s *service) Get(ctx context.Context, trainerID string) ([]DisplaySlot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.dbTimeout)
	defer cancel()

	days, err := s.repo.ListByTrainer(ctx, trainerID)
	if err != nil {
		return nil, err
	}
	return ToDisplay(days)
}

func (s *service) Replace(ctx context.Context, actorID, trainerID string, slots []DisplaySlot) ([]DisplaySlot, error) {
	if actorID == "" || actorID != trainerID {
		return nil, ErrUnauthorized
	}

	p, err := s.profiles.GetByID(ctx, trainerID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return nil, ErrNotTrainer
		}
		return nil, err
	}
	if !p.IsTrainer {
		return nil, ErrNotTrainer
	}

	days, err := ToEditable(slots)
	if err != nil {
		return nil, err
	}
	if err := validateWeek(days); err != nil {
		return nil, err
	}
	for i := range days {
		days[i].TrainerID = trainerID
	}

	dbCtx, cancel := context.WithTimeout(ctx, s.dbTimeout)
	defer cancel()
	if err := s.repo.ReplaceAll(dbCtx, trainerID, days); err != nil {
		return nil, err
	}
	return ToDisplay(days)
}

func validateWeek(days []DayAvailability) error {
	seen := make(map[string]bool, len(days))
	for _, d := range days {
		if seen[d.Day] {
			return ErrDuplicateDay
		}
		seen[d.Day] = true

		if len(d.TimeRanges) > maxRangesPerDay {
			return ErrTooManyRanges
		}
		for _, r := range d.TimeRanges {
			// "HH:MM" strings order the same way as the times they hold.
			if r.EndTime <= r.StartTime {
				return ErrInvalidRange
			}
		}
	}
	return nil
}
