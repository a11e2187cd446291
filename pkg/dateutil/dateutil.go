package dateutil

import (
	"fmt"
	"iter"
	"time"
)

// DateFormat is the canonical day format used in config, flags and JSON.
const DateFormat = "2006-01-02"

// MonthKeyFormat formats a month bucket key ("YYYY-MM").
const MonthKeyFormat = "2006-01"

// StartOfDay returns midnight UTC of the calendar day of date.
// All day arithmetic in this module runs on these normalized values.
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
}

// NewDate returns the normalized date for year, month and day.
func NewDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// StartOfMonth returns the first day of the month containing date.
func StartOfMonth(date time.Time) time.Time {
	return NewDate(date.Year(), date.Month(), 1)
}

// EndOfMonth returns the last day of the month containing date.
func EndOfMonth(date time.Time) time.Time {
	// Day 0 of next month is the last day of this one
	return NewDate(date.Year(), date.Month()+1, 0)
}

// NthWeekday returns the n-th (1-based) weekday of the given month,
// e.g. NthWeekday(2025, time.November, time.Thursday, 4) is Thanksgiving.
func NthWeekday(year int, month time.Month, weekday time.Weekday, n int) time.Time {
	first := NewDate(year, month, 1)
	offset := (int(weekday) - int(first.Weekday()) + 7) % 7
	return first.AddDate(0, 0, offset+7*(n-1))
}

// IsWeekday returns true if the date is Monday-Friday
func IsWeekday(date time.Time) bool {
	weekday := date.Weekday()
	return weekday >= time.Monday && weekday <= time.Friday
}

// IsWeekend returns true if the date is Saturday or Sunday
func IsWeekend(date time.Time) bool {
	weekday := date.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// IsSameDay returns true if two dates are on the same day
func IsSameDay(date1, date2 time.Time) bool {
	return date1.Year() == date2.Year() &&
		date1.Month() == date2.Month() &&
		date1.Day() == date2.Day()
}

// InRange reports whether date falls within [start, end], both inclusive.
func InRange(date, start, end time.Time) bool {
	d := StartOfDay(date)
	return !d.Before(StartOfDay(start)) && !d.After(StartOfDay(end))
}

// Days yields every calendar day from start to end inclusive.
func Days(start, end time.Time) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		last := StartOfDay(end)
		for d := StartOfDay(start); !d.After(last); d = d.AddDate(0, 0, 1) {
			if !yield(d) {
				return
			}
		}
	}
}

// MonthKey returns the "YYYY-MM" bucket key of date.
func MonthKey(date time.Time) string {
	return date.Format(MonthKeyFormat)
}

// MonthLabel formats a month key for display ("2025-01" -> "Jan 2025").
// Unparseable keys are returned unchanged.
func MonthLabel(key string) string {
	t, err := time.Parse(MonthKeyFormat, key)
	if err != nil {
		return key
	}
	return t.Format("Jan 2006")
}

// ParseDate parses date string in various formats
func ParseDate(dateStr string) (time.Time, error) {
	formats := []string{
		DateFormat,
		"2006-1-2",
		"01/02/2006",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04:05Z07:00",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return StartOfDay(t), nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid date %q, want format %s", dateStr, DateFormat)
}

// Today returns today's date (start of day)
func Today() time.Time {
	return StartOfDay(time.Now())
}

// StartOfYear returns January 1 of year.
func StartOfYear(year int) time.Time { return NewDate(year, time.January, 1) }

// EndOfYear returns December 31 of year.
func EndOfYear(year int) time.Time { return NewDate(year, time.December, 31) }
