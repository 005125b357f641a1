package utils

import (
	"errors"
	"time"
)

const dayLayout = "2006-01-02"

var (
	ErrInvalidDate = errors.New("invalid date format")
	ErrDateOrder   = errors.New("end date must be greater than or equal to start date")
)

// ParseDay accepts YYYY-MM-DD or RFC3339 and returns the start of that day
// in the local time zone.
func ParseDay(value string) (time.Time, error) {
	if t, err := time.ParseInLocation(dayLayout, value, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return StartOfDay(t.In(time.Local)), nil
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay is the last millisecond of t's day.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// DayRange parses an inclusive day range. Equal days are a single day.
func DayRange(start, end string) (time.Time, time.Time, error) {
	from, err := ParseDay(start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := ParseDay(end)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, ErrDateOrder
	}
	return from, EndOfDay(to), nil
}
