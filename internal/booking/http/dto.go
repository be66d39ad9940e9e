package http

import (
	"time"

	"github.com/nekogravitycat/trainer-booking-backend/internal/booking"
	"github.com/nekogravitycat/trainer-booking-backend/internal/pkg/clocktime"
)

// ListBookingsRequest defines query parameters for listing the caller's bookings.
type ListBookingsRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Status   string `form:"status" binding:"omitempty,oneof=PENDING CONFIRMED CANCELLED COMPLETED NO_SHOW"`
	Role     string `form:"role" binding:"omitempty,oneof=client trainer"`
}

type PersonTag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type NoteEntryResponse struct {
	At      time.Time `json:"at"`
	ActorID string    `json:"actor_id"`
	Action  string    `json:"action"`
	Summary string    `json:"summary"`
	Message string    `json:"message,omitempty"`
	Details []string  `json:"details,omitempty"`
}

type BookingResponse struct {
	ID           string              `json:"id"`
	Trainer      PersonTag           `json:"trainer"`
	Client       PersonTag           `json:"client"`
	SessionType  string              `json:"session_type"`
	Duration     string              `json:"duration"`
	Date         string              `json:"date"`
	StartTime    string              `json:"start_time"`
	EndTime      string              `json:"end_time"`
	Status       string              `json:"status"`
	Notes        *string             `json:"notes"`
	TrainerNotes string              `json:"trainer_notes"`
	NoteEntries  []NoteEntryResponse `json:"note_entries"`
	Price        *float64            `json:"price"`
	IsPaid       bool                `json:"is_paid"`
	Version      int                 `json:"version"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	entries := make([]NoteEntryResponse, len(b.TrainerNotes))
	for i, e := range b.TrainerNotes {
		entries[i] = NoteEntryResponse{
			At:      e.At,
			ActorID: e.ActorID,
			Action:  string(e.Action),
			Summary: e.Summary,
			Message: e.Message,
			Details: e.Details,
		}
	}

	return BookingResponse{
		ID:           b.ID,
		Trainer:      PersonTag{ID: b.TrainerID, Name: b.TrainerName},
		Client:       PersonTag{ID: b.ClientID, Name: b.ClientName, Email: b.ClientEmail},
		SessionType:  string(b.SessionType),
		Duration:     string(b.Duration),
		Date:         clocktime.FormatDate(b.Date),
		StartTime:    b.StartTime,
		EndTime:      b.EndTime,
		Status:       string(b.Status),
		Notes:        b.Notes,
		TrainerNotes: b.TrainerNotes.String(),
		NoteEntries:  entries,
		Price:        b.Price,
		IsPaid:       b.IsPaid,
		Version:      b.Version,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

func newBookingResponses(bookings []*booking.Booking) []BookingResponse {
	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}
	return items
}

type DashboardResponse struct {
	Pending   []BookingResponse `json:"pending"`
	Confirmed []BookingResponse `json:"confirmed"`
	Completed []BookingResponse `json:"completed"`
	Cancelled []BookingResponse `json:"cancelled"`
	All       []BookingResponse `json:"all"`
}

func NewDashboardResponse(d *booking.Dashboard) DashboardResponse {
	return DashboardResponse{
		Pending:   newBookingResponses(d.Pending),
		Confirmed: newBookingResponses(d.Confirmed),
		Completed: newBookingResponses(d.Completed),
		Cancelled: newBookingResponses(d.Cancelled),
		All:       newBookingResponses(d.All),
	}
}

type CreateBookingRequest struct {
	TrainerID   string  `json:"trainer_id" binding:"required,uuid"`
	SessionType string  `json:"session_type" binding:"required"`
	Duration    string  `json:"duration" binding:"required"`
	Date        string  `json:"date" binding:"required"`
	StartTime   string  `json:"start_time" binding:"required"`
	Notes       *string `json:"notes"`
}

type ConfirmRequest struct {
	Message string `json:"message"`
}

// RescheduleRequest is shared by edit-and-confirm and update-time.
type RescheduleRequest struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	Message   string `json:"message"`
}

type AlternativeTimeRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type ProposeAlternatesRequest struct {
	AlternativeTimes []AlternativeTimeRequest `json:"alternative_times" binding:"required,min=1"`
	Message          string                   `json:"message"`
}

type ProposeAlternatesResponse struct {
	Booking          BookingResponse `json:"booking"`
	AlternativeTimes []string        `json:"alternative_times"`
	Note             string          `json:"note"`
}

type ChangeStatusRequest struct {
	Status  string `json:"status" binding:"required"`
	Message string `json:"message"`
}
