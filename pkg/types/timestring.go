package types

import (
	"errors"
	"fmt"
	"time"
)

// TimeString represents a wall-clock time of day in "HH:MM" format.
// Used for meal slot boundaries which are fixed times, not instants.
type TimeString string

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("invalid time string format")
)

const timeLayout = "15:04"

// String returns the "HH:MM" representation.
func (t TimeString) String() string {
	return string(t)
}

// On combines the wall-clock time with a calendar date in the given location,
// producing the absolute instant for that day.
func (t TimeString) On(date time.Time, loc *time.Location) (time.Time, error) {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, loc), nil
}
