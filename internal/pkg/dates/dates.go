// Package dates parses and formats the wire date format DD-MM-YYYY at UTC
// midnight, keeping interval arithmetic free of timezone drift.
package dates

import (
	"errors"
	"time"
)

const Layout = "02-01-2006"

var ErrBadFormat = errors.New("date must be in DD-MM-YYYY format")

// Parse interprets a DD-MM-YYYY string as UTC midnight.
func Parse(s string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, s, time.UTC)
	if err != nil {
		return time.Time{}, ErrBadFormat
	}
	return t, nil
}

func Format(t time.Time) string {
	return t.UTC().Format(Layout)
}

// Today returns the current UTC date truncated to midnight.
func Today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
