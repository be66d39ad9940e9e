package review

import (
	"time"

	"github.com/nekogravitycat/trainer-booking-backend/internal/pkg/apperror"
)

var (
	ErrInvalidRating     = apperror.New(apperror.KindValidation, "rating must be between 1 and 5")
	ErrCommentTooLong    = apperror.New(apperror.KindValidation, "comment is too long")
	ErrSelfReview        = apperror.New(apperror.KindValidation, "trainers cannot review themselves")
	ErrNoEligibleBooking = apperror.New(apperror.KindConflict, "no completed session left to review")
	ErrTrainerNotFound   = apperror.New(apperror.KindNotFound, "trainer not found")
)

const (
	MinRating        = 1
	MaxRating        = 5
	MaxCommentLength = 2000
)

// Review is a client's rating of one completed session. A booking has at
// most one review.
type Review struct {
	ID        string
	BookingID string
	TrainerID string
	ClientID  string
	Rating    int
	Comment   *string
	CreatedAt time.Time

	// Joined from the booking and the client profile on read.
	SessionDate time.Time
	ClientName  string
}

// Summary aggregates a trainer's ratings.
type Summary struct {
	Count   int
	Average float64
}
