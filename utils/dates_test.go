package utils

import (
	"errors"
	"testing"
	"time"
)

func TestParseDay(t *testing.T) {
	d, err := ParseDay("2024-06-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Year() != 2024 || d.Month() != time.June || d.Day() != 1 || d.Hour() != 0 {
		t.Errorf("unexpected day: %v", d)
	}

	if _, err := ParseDay("01/06/2024"); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
}

func TestDayRange_EndOfDayInclusive(t *testing.T) {
	from, to, err := DayRange("2024-06-01", "2024-06-02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if from.Day() != 1 || from.Hour() != 0 {
		t.Errorf("unexpected start: %v", from)
	}
	if to.Day() != 2 || to.Hour() != 23 || to.Minute() != 59 || to.Second() != 59 || to.Nanosecond() != 999000000 {
		t.Errorf("unexpected end: %v", to)
	}
}

func TestDayRange_SameDay(t *testing.T) {
	from, to, err := DayRange("2024-06-01", "2024-06-01")
	if err != nil {
		t.Fatalf("equal dates should be accepted: %v", err)
	}
	if !to.After(from) {
		t.Errorf("expected a full day, got %v..%v", from, to)
	}
}

func TestDayRange_Reversed(t *testing.T) {
	if _, _, err := DayRange("2024-06-02", "2024-06-01"); !errors.Is(err, ErrDateOrder) {
		t.Errorf("expected ErrDateOrder, got %v", err)
	}
}
