package review

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/nekogravitycat/trainer-booking-backend/internal/profile"
)

const defaultDBTimeout = 5 * time.Second

type CreateRequest struct {
	ClientID  string
	TrainerID string
	Rating    int
	Comment   *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Review, error)
	// ListByTrainer returns a trainer's reviews newest first with their summary.
	ListByTrainer(ctx context.Context, trainerID string) ([]*Review, Summary, error)
	// Eligible reports whether the client has a completed session with the
	// trainer that is still unreviewed.
	Eligible(ctx context.Context, clientID, trainerID string) (bool, error)
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

func (s *service) Create(ctx context.Context, req CreateRequest) (*Review, error) {
	if req.Rating < MinRating || req.Rating > MaxRating {
		return nil, ErrInvalidRating
	}
	var comment *string
	if req.Comment != nil {
		trimmed := strings.TrimSpace(*req.Comment)
		if len(trimmed) > MaxCommentLength {
			return nil, ErrCommentTooLong
		}
		if trimmed != "" {
			comment = &trimmed
		}
	}
	if req.ClientID == req.TrainerID {
		return nil, ErrSelfReview
	}
	if err := s.requireTrainer(ctx, req.TrainerID); err != nil {
		return nil, err
	}

	r := &Review{
		TrainerID: req.TrainerID,
		ClientID:  req.ClientID,
		Rating:    req.Rating,
		Comment:   comment,
	}

	ctx, cancel := context.WithTimeout(ctx, s.dbTimeout)
	defer cancel()
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *service) ListByTrainer(ctx context.Context, trainerID string) ([]*Review, Summary, error) {
	if err := s.requireTrainer(ctx, trainerID); err != nil {
		return nil, Summary{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.dbTimeout)
	defer cancel()
	reviews, err := s.repo.ListByTrainer(ctx, trainerID)
	if err != nil {
		return nil, Summary{}, err
	}
	return reviews, Summarize(reviews), nil
}

func (s *service) Eligible(ctx context.Context, clientID, trainerID string) (bool, error) {
	if clientID == "" || clientID == trainerID {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.dbTimeout)
	defer cancel()
	return s.repo.HasUnreviewedBooking(ctx, trainerID, clientID)
}

func (s *service) requireTrainer(ctx context.Context, trainerID string) error {
	p, err := s.profiles.GetByID(ctx, trainerID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return ErrTrainerNotFound
		}
		return err
	}
	if !p.IsTrainer {
		return ErrTrainerNotFound
	}
	return nil
}

// Summarize averages ratings rounded to one decimal place.
func Summarize(reviews []*Review) Summary {
	if len(reviews) == 0 {
		return Summary{}
	}
	total := 0
	for _, r := range reviews {
		total += r.Rating
	}
	avg := float64(total) / float64(len(reviews))
	return Summary{
		Count:   len(reviews),
		Average: float64(int(avg*10+0.5)) / 10,
	}
}
