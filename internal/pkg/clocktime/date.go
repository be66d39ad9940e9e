package clocktime

import (
	"strings"
	"time"

	"github.com/nekogravitycat/trainer-booking-backend/internal/pkg/apperror"
)

// DateLayout is the calendar date format accepted and emitted by the API.
const DateLayout = "2006-01-02"

// ParseDate parses a "YYYY-MM-DD" date, also accepting a full RFC3339
// timestamp of which only the calendar day is kept. The result is UTC midnight.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, apperror.New(apperror.KindValidation, "date is required")
	}
	if d, err := time.Parse(DateLayout, s); err == nil {
		return d, nil
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return Day(ts), nil
	}
	return time.Time{}, apperror.Newf(apperror.KindFormat, "invalid date %q: expected YYYY-MM-DD", s)
}

// Day truncates t to its UTC calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a date as "YYYY-MM-DD".
func FormatDate(d time.Time) string {
	return d.UTC().Format(DateLayout)
}

// FormatLongDate renders a date as "Monday, March 10, 2025".
func FormatLongDate(d time.Time) string {
	return d.UTC().Format("Monday, January 2, 2006")
}

// FormatRange renders "start - end" for display.
func FormatRange(start, end string) string {
	return start + " - " + end
}
