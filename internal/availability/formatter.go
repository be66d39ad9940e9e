package availability

import (
	"strings"

	"github.com/google/uuid"

	"github.com/nekogravitycat/trainer-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/trainer-booking-backend/internal/pkg/clocktime"
)

const rangeSeparator = " - "

// ToDisplay renders each day's ranges in 12-hour form, keeping order.
func ToDisplay(days []DayAvailability) ([]DisplaySlot, error) {
	out := make([]DisplaySlot, 0, len(days))
	for _, d := range days {
		slot := DisplaySlot{Day: d.Day, TimeRanges: make([]string, 0, len(d.TimeRanges))}
		for _, r := range d.TimeRanges {
			start, err := clocktime.To12Hour(r.StartTime)
			if err != nil {
				return nil, err
			}
			end, err := clocktime.To12Hour(r.EndTime)
			if err != nil {
				return nil, err
			}
			slot.TimeRanges = append(slot.TimeRanges, clocktime.FormatRange(start, end))
		}
		out = append(out, slot)
	}
	return out, nil
}

// ToEditable parses display slots back into days with fresh ids. Plural
// labels such as "Mondays" map to the weekday name. Duplicate days are kept.
func ToEditable(slots []DisplaySlot) ([]DayAvailability, error) {
	out := make([]DayAvailability, 0, len(slots))
	for _, s := range slots {
		day, err := CanonicalDay(s.Day)
		if err != nil {
			return nil, err
		}

		d := DayAvailability{ID: uuid.NewString(), Day: day, TimeRanges: make([]TimeRange, 0, len(s.TimeRanges))}
		for _, raw := range s.TimeRanges {
			r, err := parseRange(raw)
			if err != nil {
				return nil, err
			}
			r.ID = uuid.NewString()
			d.TimeRanges = append(d.TimeRanges, r)
		}
		out = append(out, d)
	}
	return out, nil
}

// CanonicalDay maps a label to its weekday name, case-insensitively.
func CanonicalDay(label string) (string, error) {
	l := strings.ToLower(strings.TrimSpace(label))
	for _, w := range Weekdays {
		lw := strings.ToLower(w)
		if l == lw || l == lw+"s" {
			return w, nil
		}
	}
	return "", apperror.Newf(apperror.KindValidation, "unknown weekday %q", label)
}

func parseRange(raw string) (TimeRange, error) {
	startRaw, endRaw, ok := strings.Cut(raw, rangeSeparator)
	if !ok {
		return TimeRange{}, apperror.Newf(apperror.KindFormat, "invalid time range %q: expected \"start - end\"", raw)
	}

	start, err := to24(startRaw)
	if err != nil {
		return TimeRange{}, err
	}
	end, err := to24(endRaw)
	if err != nil {
		return TimeRange{}, err
	}
	return TimeRange{StartTime: start, EndTime: end}, nil
}

// to24 accepts either form; the edit form has historically sent both.
func to24(s string) (string, error) {
	t12, err := clocktime.Normalize(s)
	if err != nil {
		return "", err
	}
	return clocktime.To24Hour(t12)
}
