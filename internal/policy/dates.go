// Package policy implements the pure booking rules of the seat
// rotation engine: batch rotation, booking-window admission and seat
// visibility. Nothing in this package touches the database or the
// wall clock; the current instant is always passed in by the caller
// so every decision is reproducible in tests.
package policy

import (
	"errors"
	"regexp"
	"time"
)

// dateKeyLayout is the canonical calendar-day format used across the
// API and the bookings table.
const dateKeyLayout = "2006-01-02"

var dateKeyPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ErrInvalidDate is returned by ParseDateOnly for anything that is
// not a valid YYYY-MM-DD calendar date.
var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

// ParseDateOnly parses a strict YYYY-MM-DD string into a UTC
// midnight time.Time. Values like "2026-02-30" are rejected rather
// than normalized.
func ParseDateOnly(s string) (time.Time, error) {
	if !dateKeyPattern.MatchString(s) {
		return time.Time{}, ErrInvalidDate
	}
	t, err := time.ParseInLocation(dateKeyLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	// time.Parse normalizes out-of-range components; round-trip to catch them.
	if t.Format(dateKeyLayout) != s {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// DateKey formats a time as its YYYY-MM-DD calendar day.
func DateKey(t time.Time) string { return t.Format(dateKeyLayout) }

// dayUTC strips the time-of-day and location from t, returning the
// same calendar day at UTC midnight. All day arithmetic goes through
// this so that a local `now` and a parsed target date compare on
// calendar days only.
func dayUTC(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the number of calendar days from `from` to
// `target` (negative when target is in the past).
func daysBetween(target, from time.Time) int {
	return int(dayUTC(target).Sub(dayUTC(from)).Hours() / 24)
}

// sameDay reports whether two instants fall on the same calendar day.
func sameDay(a, b time.Time) bool { return dayUTC(a).Equal(dayUTC(b)) }
