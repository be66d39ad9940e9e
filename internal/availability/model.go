package availability

import (
	"github.com/nekogravitycat/trainer-booking-backend/internal/pkg/apperror"
)

var (
	ErrDuplicateDay  = apperror.New(apperror.KindValidation, "each weekday may only appear once")
	ErrInvalidRange  = apperror.New(apperror.KindValidation, "time range must end after it starts")
	ErrUnauthorized  = apperror.New(apperror.KindUnauthorized, "only the trainer can edit their availability")
	ErrNotTrainer    = apperror.New(apperror.KindNotFound, "trainer not found")
	ErrTooManyRanges = apperror.New(apperror.KindValidation, "too many time ranges for one day")
)

const maxRangesPerDay = 24

// Weekdays in display order.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// TimeRange is a window within a day in 24-hour "HH:MM" form.
type TimeRange struct {
	ID        string
	StartTime string
	EndTime   string
}

// DayAvailability holds a trainer's time ranges for one weekday.
type DayAvailability struct {
	ID         string
	TrainerID  string
	Day        string
	TimeRanges []TimeRange
}

// DisplaySlot is the display form of a day: ranges read "9:00 AM - 5:00 PM".
type DisplaySlot struct {
	Day        string
	TimeRanges []string
}
