package availability

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/trainer-booking-backend/internal/pkg/apperror"
)

func TestToDisplay(t *testing.T) {
	days := []DayAvailability{
		{Day: "Monday", TimeRanges: []TimeRange{{StartTime: "09:00", EndTime: "12:00"}, {StartTime: "13:30", EndTime: "17:00"}}},
		{Day: "Saturday", TimeRanges: []TimeRange{{StartTime: "00:00", EndTime: "06:15"}}},
		{Day: "Sunday", TimeRanges: []TimeRange{}},
	}

	got, err := ToDisplay(days)
	require.NoError(t, err)
	assert.Equal(t, []DisplaySlot{
		{Day: "Monday", TimeRanges: []string{"9:00 AM - 12:00 PM", "1:30 PM - 5:00 PM"}},
		{Day: "Saturday", TimeRanges: []string{"12:00 AM - 6:15 AM"}},
		{Day: "Sunday", TimeRanges: []string{}},
	}, got)

	_, err = ToDisplay([]DayAvailability{{Day: "Monday", TimeRanges: []TimeRange{{StartTime: "9am", EndTime: "10:00"}}}})
	assert.Equal(t, apperror.KindFormat, apperror.KindOf(err))
}

func TestToEditable(t *testing.T) {
	got, err := ToEditable([]DisplaySlot{
		{Day: "Mondays", TimeRanges: []string{"9:00 AM - 12:00 PM", "13:30 - 17:00"}},
		{Day: "friday", TimeRanges: nil},
	})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Monday", got[0].Day)
	assert.Equal(t, "Friday", got[1].Day)
	require.Len(t, got[0].TimeRanges, 2)
	assert.Equal(t, "09:00", got[0].TimeRanges[0].StartTime)
	assert.Equal(t, "12:00", got[0].TimeRanges[0].EndTime)
	assert.Equal(t, "13:30", got[0].TimeRanges[1].StartTime)

	ids := map[string]bool{}
	for _, d := range got {
		_, err := uuid.Parse(d.ID)
		assert.NoError(t, err)
		ids[d.ID] = true
		for _, r := range d.TimeRanges {
			_, err := uuid.Parse(r.ID)
			assert.NoError(t, err)
			ids[r.ID] = true
		}
	}
	assert.Len(t, ids, 4, "every day and range gets its own id")
}

func TestToEditable_KeepsDuplicates(t *testing.T) {
	got, err := ToEditable([]DisplaySlot{{Day: "Monday"}, {Day: "Mondays"}})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestToEditable_Errors(t *testing.T) {
	_, err := ToEditable([]DisplaySlot{{Day: "Funday"}})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, err = ToEditable([]DisplaySlot{{Day: "Monday", TimeRanges: []string{"9:00 AM to 5:00 PM"}}})
	assert.Equal(t, apperror.KindFormat, apperror.KindOf(err))

	_, err = ToEditable([]DisplaySlot{{Day: "Monday", TimeRanges: []string{"9:00 AM - 25:00"}}})
	assert.Equal(t, apperror.KindFormat, apperror.KindOf(err))
}

func TestDisplayRoundTrip(t *testing.T) {
	slots := []DisplaySlot{
		{Day: "Tuesday", TimeRanges: []string{"6:00 AM - 7:30 AM", "12:00 PM - 1:00 PM"}},
		{Day: "Thursday", TimeRanges: []string{"11:45 PM - 11:59 PM"}},
	}

	days, err := ToEditable(slots)
	require.NoError(t, err)
	back, err := ToDisplay(days)
	require.NoError(t, err)
	assert.Equal(t, slots, back)
}
