package calendar

import (
	"slices"
	"time"

	"github.com/username/rto-planner/pkg/dateutil"
)

// DayType represents the type of day
type DayType int

const (
	DayTypeWorkday DayType = iota + 1
	DayTypeWeekend
	DayTypeHoliday
)

func (t DayType) String() string {
	switch t {
	case DayTypeWorkday:
		return "workday"
	case DayTypeWeekend:
		return "weekend"
	case DayTypeHoliday:
		return "holiday"
	default:
		return "unknown"
	}
}

// Holiday is a non-working date with its display name.
type Holiday struct {
	Date time.Time
	Name string
}

// HolidaySet is an ordered-by-date sequence of holidays with at most one
// entry per calendar date. Values are never mutated once built.
type HolidaySet []Holiday

// NewHolidaySet normalizes dates, drops later duplicates of an already
// seen date and sorts ascending.
func NewHolidaySet(holidays ...Holiday) HolidaySet {
	seen := make(map[time.Time]struct{}, len(holidays))
	set := make(HolidaySet, 0, len(holidays))
	for _, h := range holidays {
		day := dateutil.StartOfDay(h.Date)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		set = append(set, Holiday{Date: day, Name: h.Name})
	}
	slices.SortStableFunc(set, func(a, b Holiday) int { return a.Date.Compare(b.Date) })
	return set
}

// Merge combines sets keyed by date. On collisions the entry from the
// earliest set wins.
func Merge(sets ...HolidaySet) HolidaySet {
	var all []Holiday
	for _, s := range sets {
		all = append(all, s...)
	}
	return NewHolidaySet(all...)
}

// Len returns the number of holidays.
func (s HolidaySet) Len() int { return len(s) }

// Lookup returns the holiday on date, if any.
func (s HolidaySet) Lookup(date time.Time) (Holiday, bool) {
	day := dateutil.StartOfDay(date)
	i, found := slices.BinarySearchFunc(s, day, func(h Holiday, t time.Time) int {
		return h.Date.Compare(t)
	})
	if !found {
		return Holiday{}, false
	}
	return s[i], true
}

// Contains reports whether date is a holiday.
func (s HolidaySet) Contains(date time.Time) bool {
	_, ok := s.Lookup(date)
	return ok
}

// Between returns the holidays within [start, end].
func (s HolidaySet) Between(start, end time.Time) HolidaySet {
	out := make(HolidaySet, 0)
	for _, h := range s {
		if dateutil.InRange(h.Date, start, end) {
			out = append(out, h)
		}
	}
	return out
}
