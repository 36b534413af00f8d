package timex

import (
	"fmt"
	"time"
)

// DateIn returns midnight of t's calendar day as observed in loc.
func DateIn(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// AddDays moves a calendar date by n days. Going through AddDate keeps the
// result at midnight across DST changes.
func AddDays(date time.Time, n int) time.Time {
	return date.AddDate(0, 0, n)
}

// ParseClock parses a "HH:MM" wall-clock time.
func ParseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to parse clock time %q: %w", s, err)
	}
	return t.Hour(), t.Minute(), nil
}
