package http

import "github.com/nekogravitycat/trainer-booking-backend/internal/availability"

type DaySlot struct {
	Day        string   `json:"day" binding:"required"`
	TimeRanges []string `json:"time_ranges" binding:"required"`
}

type ReplaceAvailabilityRequest struct {
	Availability []DaySlot `json:"availability" binding:"omitempty,dive"`
}

type AvailabilityResponse struct {
	TrainerID    string    `json:"trainer_id"`
	Availability []DaySlot `json:"availability"`
}

func NewAvailabilityResponse(trainerID string, slots []availability.DisplaySlot) AvailabilityResponse {
	items := make([]DaySlot, len(slots))
	for i, s := range slots {
		items[i] = DaySlot{Day: s.Day, TimeRanges: s.TimeRanges}
	}
	return AvailabilityResponse{TrainerID: trainerID, Availability: items}
}
