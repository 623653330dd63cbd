// Package dateutil converts instants to timezone-local calendar days and
// computes whole-day arithmetic over them.
package dateutil

import (
	"fmt"
	"time"
)

// CalendarDay is a local date rendered as YYYY-MM-DD with no time component.
type CalendarDay string

const dayLayout = "2006-01-02"

// FormatDay renders the year-month-day of the instant in its location.
// Same instant and location always produce the same string.
func FormatDay(t time.Time) CalendarDay {
	return CalendarDay(t.Format(dayLayout))
}

// ParseDay parses a calendar-day string into a UTC-midnight instant.
// Anchoring at UTC midnight keeps day arithmetic immune to DST transitions:
// every day is exactly 24 hours long in this coordinate system.
func ParseDay(day CalendarDay) (time.Time, error) {
	t, err := time.ParseInLocation(dayLayout, string(day), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid calendar day %q: %w", day, err)
	}
	return t, nil
}

// ordinal returns the number of whole days since the Unix epoch.
func ordinal(day CalendarDay) (int64, error) {
	t, err := ParseDay(day)
	if err != nil {
		return 0, err
	}
	return t.Unix() / 86400, nil
}

// DayDifference returns the absolute number of calendar days between a and b.
func DayDifference(a, b CalendarDay) (int, error) {
	oa, err := ordinal(a)
	if err != nil {
		return 0, err
	}
	ob, err := ordinal(b)
	if err != nil {
		return 0, err
	}
	diff := oa - ob
	if diff < 0 {
		diff = -diff
	}
	return int(diff), nil
}

// AreConsecutiveDays reports whether later falls exactly one calendar day
// after earlier.
func AreConsecutiveDays(earlier, later CalendarDay) bool {
	oe, err := ordinal(earlier)
	if err != nil {
		return false
	}
	ol, err := ordinal(later)
	if err != nil {
		return false
	}
	return ol-oe == 1
}

// AddDays shifts the calendar day by n days (n may be negative).
func AddDays(day CalendarDay, n int) (CalendarDay, error) {
	t, err := ParseDay(day)
	if err != nil {
		return "", err
	}
	return FormatDay(t.AddDate(0, 0, n)), nil
}

// InMonth reports whether the day belongs to the given year and month.
func InMonth(day CalendarDay, year int, month time.Month) bool {
	t, err := ParseDay(day)
	if err != nil {
		return false
	}
	return t.Year() == year && t.Month() == month
}
