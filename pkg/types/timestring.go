package types

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// TimeString represents a wall-clock time of day in "HH:MM" form.
// The zero value is an empty, invalid time.
type TimeString string

const timeLayout = "15:04"

// timeRe требует ровно два знака в часах и минутах: time.Parse
// допускает "9:00", а сравнение строк внутри типа рассчитано на
// фиксированную ширину
var timeRe = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("types: invalid time string format")
)

// NewTimeString builds a TimeString from the wall-clock part of t.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString parses s as "HH:MM". A trailing seconds
// component ("HH:MM:SS") is accepted and truncated.
func NewTimeStringFromString(s string) (TimeString, error) {
	if len(s) == len("15:04:05") {
		if _, err := time.Parse("15:04:05", s); err != nil {
			return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
		}
		s = s[:len(timeLayout)]
	}

	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// Validate checks that the value matches the 24-hour "HH:MM" layout,
// two digits in each component.
func (t TimeString) Validate() error {
	if !timeRe.MatchString(string(t)) {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

// IsZero reports whether the value is empty.
func (t TimeString) IsZero() bool {
	return t == ""
}

// String returns the "HH:MM" representation.
func (t TimeString) String() string {
	return string(t)
}

// ToTime combines the wall-clock value with the calendar date of day,
// producing an absolute instant in day's location.
func (t TimeString) ToTime(day time.Time) (time.Time, error) {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return time.Date(
		day.Year(), day.Month(), day.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0,
		day.Location(),
	), nil
}

// IsBefore reports whether t is strictly earlier in the day than other.
// Both values must be valid "HH:MM" strings; lexicographic comparison
// is correct for the fixed-width layout.
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter reports whether t is strictly later in the day than other.
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

// AddMinutes returns the time shifted forward by n minutes, wrapping
// within the same day is not performed: 23:30 + 60 fails.
func (t TimeString) AddMinutes(n int) (TimeString, error) {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}

	total := parsed.Hour()*60 + parsed.Minute() + n
	if total < 0 || total >= 24*60 {
		return "", fmt.Errorf("%w: %q + %d minutes leaves the day", ErrInvalidTimeString, string(t), n)
	}

	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}
