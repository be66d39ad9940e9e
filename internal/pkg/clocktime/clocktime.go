// Package clocktime converts wall-clock strings between the 12-hour form
// used on bookings ("3:15 PM") and the 24-hour form used for availability
// ("15:15"). All functions are pure.
package clocktime

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nekogravitycat/trainer-booking-backend/internal/pkg/apperror"
)

const minutesPerDay = 24 * 60

// MinuteOfDay parses a 12-hour time ("H:MM AM") into minutes since midnight.
func MinuteOfDay(t12 string) (int, error) {
	clock, period, ok := strings.Cut(strings.TrimSpace(t12), " ")
	if !ok {
		return 0, formatError(t12, "expected \"H:MM AM\" or \"H:MM PM\"")
	}

	hour, minute, err := splitClock(t12, clock)
	if err != nil {
		return 0, err
	}
	if hour < 1 || hour > 12 {
		return 0, formatError(t12, "hour must be between 1 and 12")
	}

	switch strings.ToUpper(period) {
	case "AM":
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour != 12 {
			hour += 12
		}
	default:
		return 0, formatError(t12, "period must be AM or PM")
	}

	return hour*60 + minute, nil
}

// FromMinuteOfDay formats minutes since midnight as a canonical 12-hour time.
// Values outside a single day wrap modulo 24h.
func FromMinuteOfDay(m int) string {
	m %= minutesPerDay
	if m < 0 {
		m += minutesPerDay
	}
	hour, minute := m/60, m%60

	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	hour12 := hour % 12
	if hour12 == 0 {
		hour12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", hour12, minute, period)
}

// To24Hour converts "H:MM AM|PM" to zero-padded "HH:MM".
func To24Hour(t12 string) (string, error) {
	m, err := MinuteOfDay(t12)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60), nil
}

// To12Hour converts "H:MM" or "HH:MM" (hour 0-23) to canonical "H:MM AM|PM".
func To12Hour(t24 string) (string, error) {
	m, err := minuteOf24(t24)
	if err != nil {
		return "", err
	}
	return FromMinuteOfDay(m), nil
}

// AddMinutes adds minutes to a 12-hour time. The result wraps around
// midnight; there is no date to carry into, so callers that need the next
// calendar day must advance it themselves.
func AddMinutes(t12 string, minutes int) (string, error) {
	m, err := MinuteOfDay(t12)
	if err != nil {
		return "", err
	}
	return FromMinuteOfDay(m + minutes), nil
}

// Normalize accepts either a 12-hour or a 24-hour time and returns the
// canonical 12-hour form.
func Normalize(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", formatError(s, "time is empty")
	}
	if strings.Contains(s, " ") {
		m, err := MinuteOfDay(s)
		if err != nil {
			return "", err
		}
		return FromMinuteOfDay(m), nil
	}
	return To12Hour(s)
}

func minuteOf24(t24 string) (int, error) {
	clock := strings.TrimSpace(t24)
	hour, minute, err := splitClock(t24, clock)
	if err != nil {
		return 0, err
	}
	if hour < 0 || hour > 23 {
		return 0, formatError(t24, "hour must be between 0 and 23")
	}
	return hour*60 + minute, nil
}

func splitClock(raw, clock string) (int, int, error) {
	hourStr, minuteStr, ok := strings.Cut(clock, ":")
	if !ok {
		return 0, 0, formatError(raw, "missing ':' separator")
	}
	if len(hourStr) == 0 || len(hourStr) > 2 {
		return 0, 0, formatError(raw, "hour must have one or two digits")
	}
	if len(minuteStr) != 2 {
		return 0, 0, formatError(raw, "minute must have two digits")
	}

	if !digits(hourStr) || !digits(minuteStr) {
		return 0, 0, formatError(raw, "hour and minute must be numeric")
	}

	hour, _ := strconv.Atoi(hourStr)
	minute, _ := strconv.Atoi(minuteStr)
	if minute > 59 {
		return 0, 0, formatError(raw, "minute must be between 00 and 59")
	}
	return hour, minute, nil
}

func digits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func formatError(raw, reason string) error {
	return apperror.Newf(apperror.KindFormat, "invalid time %q: %s", raw, reason)
}
