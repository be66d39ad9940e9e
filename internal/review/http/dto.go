package http

import (
	"time"

	"github.com/nekogravitycat/trainer-booking-backend/internal/pkg/clocktime"
	"github.com/nekogravitycat/trainer-booking-backend/internal/review"
)

type CreateReviewRequest struct {
	Rating  int     `json:"rating" binding:"required"`
	Comment *string `json:"comment"`
}

type ReviewResponse struct {
	ID          string    `json:"id"`
	BookingID   string    `json:"booking_id"`
	ClientName  string    `json:"client_name,omitempty"`
	Rating      int       `json:"rating"`
	Comment     *string   `json:"comment"`
	SessionDate string    `json:"session_date,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type ReviewListResponse struct {
	TrainerID     string           `json:"trainer_id"`
	Count         int              `json:"count"`
	AverageRating float64          `json:"average_rating"`
	Reviews       []ReviewResponse `json:"reviews"`
}

type EligibilityResponse struct {
	CanReview bool `json:"can_review"`
}

func NewReviewResponse(r *review.Review) ReviewResponse {
	resp := ReviewResponse{
		ID:         r.ID,
		BookingID:  r.BookingID,
		ClientName: r.ClientName,
		Rating:     r.Rating,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
	}
	if !r.SessionDate.IsZero() {
		resp.SessionDate = clocktime.FormatDate(r.SessionDate)
	}
	return resp
}

func NewReviewListResponse(trainerID string, reviews []*review.Review, summary review.Summary) ReviewListResponse {
	items := make([]ReviewResponse, len(reviews))
	for i, r := range reviews {
		items[i] = NewReviewResponse(r)
	}
	return ReviewListResponse{
		TrainerID:     trainerID,
		Count:         summary.Count,
		AverageRating: summary.Average,
		Reviews:       items,
	}
}
