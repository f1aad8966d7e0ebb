package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSlot(t *testing.T) {
	t.Run("valid slot derives instants", func(t *testing.T) {
		slot, err := NewSlot("2024-03-01", "09:00", "09:30")
		require.NoError(t, err)

		assert.Equal(t, "09:00", slot.StartTime.String())
		assert.Equal(t, "09:30", slot.EndTime.String())
		assert.True(t, slot.EndAt.After(slot.StartAt))
		assert.Equal(t, 30*time.Minute, slot.EndAt.Sub(slot.StartAt))

		// date component of the derived instant matches the date field
		y, m, d := slot.StartAt.Date()
		assert.Equal(t, 2024, y)
		assert.Equal(t, time.March, m)
		assert.Equal(t, 1, d)
	})

	t.Run("seconds are truncated", func(t *testing.T) {
		slot, err := NewSlot("2024-03-01", "09:00:45", "10:00:00")
		require.NoError(t, err)
		assert.Equal(t, "09:00", slot.StartTime.String())
		assert.Equal(t, "10:00", slot.EndTime.String())
	})

	t.Run("invalid inputs", func(t *testing.T) {
		testCases := []struct {
			name    string
			date    string
			start   string
			end     string
			wantErr error
		}{
			{"bad date pattern", "01-03-2024", "09:00", "10:00", ErrInvalidFormat},
			{"date with time", "2024-03-01T09:00", "09:00", "10:00", ErrInvalidFormat},
			{"bad start time", "2024-03-01", "9am", "10:00", ErrInvalidFormat},
			{"single-digit hour", "2024-03-01", "9:00", "10:00", ErrInvalidFormat},
			{"single-digit end hour", "2024-03-01", "09:00", "9:30", ErrInvalidFormat},
			{"hour out of range", "2024-03-01", "25:00", "26:00", ErrInvalidFormat},
			{"minute out of range", "2024-03-01", "09:61", "10:00", ErrInvalidFormat},
			{"empty end time", "2024-03-01", "09:00", "", ErrInvalidFormat},
			{"end equals start", "2024-03-01", "09:00", "09:00", ErrInvalidRange},
			{"end before start", "2024-03-01", "10:00", "09:00", ErrInvalidRange},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := NewSlot(tc.date, tc.start, tc.end)
				assert.ErrorIs(t, err, tc.wantErr)
			})
		}
	})
}

func TestSlot_Overlaps(t *testing.T) {
	mustSlot := func(start, end string) Slot {
		slot, err := NewSlot("2024-03-01", start, end)
		require.NoError(t, err)
		return slot
	}

	testCases := []struct {
		name  string
		slot  Slot
		other Slot
		want  bool
	}{
		{"identical ranges", mustSlot("09:00", "09:30"), mustSlot("09:00", "09:30"), true},
		{"partial overlap", mustSlot("09:00", "09:30"), mustSlot("09:15", "09:45"), true},
		{"containment", mustSlot("09:00", "10:00"), mustSlot("09:15", "09:30"), true},
		{"adjacent before", mustSlot("09:00", "09:30"), mustSlot("08:30", "09:00"), false},
		{"adjacent after", mustSlot("09:00", "09:30"), mustSlot("09:30", "10:00"), false},
		{"disjoint", mustSlot("09:00", "09:30"), mustSlot("11:00", "12:00"), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.slot.Overlaps(tc.other.StartAt, tc.other.EndAt))
			// overlap is symmetric
			assert.Equal(t, tc.want, tc.other.Overlaps(tc.slot.StartAt, tc.slot.EndAt))
		})
	}
}

func TestSlot_InPast(t *testing.T) {
	slot, err := NewSlot("2024-03-01", "09:00", "09:30")
	require.NoError(t, err)

	now := time.Date(2024, time.March, 2, 0, 30, 0, 0, time.Local)
	assert.True(t, slot.InPast(now))

	// same day is not past, regardless of time of day
	now = time.Date(2024, time.March, 1, 23, 59, 0, 0, time.Local)
	assert.False(t, slot.InPast(now))

	now = time.Date(2024, time.February, 28, 12, 0, 0, 0, time.Local)
	assert.False(t, slot.InPast(now))
}

func TestMonthWindow(t *testing.T) {
	t.Run("leap year february", func(t *testing.T) {
		start, end, err := MonthWindow(2024, 2)
		require.NoError(t, err)

		assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.Local), start)
		assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.Local), end)

		// 2024-02-29 23:59:59 falls inside the window
		leapTail := time.Date(2024, time.February, 29, 23, 59, 59, 0, time.Local)
		assert.True(t, leapTail.After(start) && leapTail.Before(end))
	})

	t.Run("december rolls into next year", func(t *testing.T) {
		start, end, err := MonthWindow(2024, 12)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, time.December, 1, 0, 0, 0, 0, time.Local), start)
		assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.Local), end)
	})

	t.Run("invalid arguments", func(t *testing.T) {
		for _, args := range [][2]int{{2024, 0}, {2024, 13}, {0, 5}, {-1, 5}} {
			_, _, err := MonthWindow(args[0], args[1])
			assert.ErrorIs(t, err, ErrInvalidFormat, "year=%d month=%d", args[0], args[1])
		}
	})
}

func TestParseStatus(t *testing.T) {
	status, err := ParseStatus("confirmed")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, status)

	status, err = ParseStatus("cancelled")
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, status)

	for _, raw := range []string{"", "pending", "rejected", "CONFIRMED"} {
		_, err := ParseStatus(raw)
		assert.ErrorIs(t, err, ErrInvalidStatus, "status %q", raw)
	}
}
