package domain

import (
	"fmt"
	"regexp"
	"time"

	"github.com/m04kA/PPB-BookingService/pkg/types"
)

// Slot is a validated time interval on a single calendar day.
// StartAt/EndAt are derived from Date + the wall-clock times in the
// local timezone; EndAt is always strictly after StartAt.
type Slot struct {
	Date      time.Time // midnight local
	StartTime types.TimeString
	EndTime   types.TimeString
	StartAt   time.Time
	EndAt     time.Time
}

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// NewSlot validates the raw date/time strings and derives the absolute
// instants. Returns ErrInvalidFormat when a pattern does not match and
// ErrInvalidRange when the combination is unparseable or end <= start.
func NewSlot(date, startTime, endTime string) (Slot, error) {
	if !dateRe.MatchString(date) {
		return Slot{}, fmt.Errorf("%w: date %q, expected YYYY-MM-DD", ErrInvalidFormat, date)
	}

	day, err := time.ParseInLocation(DateFormat, date, time.Local)
	if err != nil {
		return Slot{}, fmt.Errorf("%w: date %q: %v", ErrInvalidRange, date, err)
	}

	start, err := types.NewTimeStringFromString(startTime)
	if err != nil {
		return Slot{}, fmt.Errorf("%w: startTime %q, expected HH:MM", ErrInvalidFormat, startTime)
	}

	end, err := types.NewTimeStringFromString(endTime)
	if err != nil {
		return Slot{}, fmt.Errorf("%w: endTime %q, expected HH:MM", ErrInvalidFormat, endTime)
	}

	startAt, err := start.ToTime(day)
	if err != nil {
		return Slot{}, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	endAt, err := end.ToTime(day)
	if err != nil {
		return Slot{}, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}

	if !endAt.After(startAt) {
		return Slot{}, fmt.Errorf("%w: end %s is not after start %s", ErrInvalidRange, end, start)
	}

	return Slot{
		Date:      day,
		StartTime: start,
		EndTime:   end,
		StartAt:   startAt,
		EndAt:     endAt,
	}, nil
}

// Overlaps reports whether the slot intersects [startAt, endAt).
// Half-open semantics: slots that merely touch do not overlap.
func (s Slot) Overlaps(startAt, endAt time.Time) bool {
	return s.StartAt.Before(endAt) && startAt.Before(s.EndAt)
}

// InPast reports whether the slot's calendar day is strictly before
// the day of now. Time of day is ignored on both sides.
func (s Slot) InPast(now time.Time) bool {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return s.Date.Before(today)
}

// MonthWindow returns the half-open interval [first instant of the
// month, first instant of the next month) in local time. Computed from
// the calendar, so variable month lengths and leap years are handled.
func MonthWindow(year, month int) (time.Time, time.Time, error) {
	if year <= 0 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: year %d", ErrInvalidFormat, year)
	}
	if month < 1 || month > 12 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: month %d", ErrInvalidFormat, month)
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	return first, first.AddDate(0, 1, 0), nil
}
