package accounting

import (
	"time"

	"github.com/username/rto-planner/internal/calendar"
	"github.com/username/rto-planner/pkg/dateutil"
)

// MonthBucket is the part of one calendar month that lies inside the
// planning range.
type MonthBucket struct {
	Key      string // "YYYY-MM"
	Start    time.Time
	End      time.Time
	Workdays int
}

// WorkdaysInRange counts the dates in [start, end] that are neither a
// Saturday/Sunday nor in holidays.
func WorkdaysInRange(start, end time.Time, holidays calendar.HolidaySet) int {
	count := 0
	for d := range dateutil.Days(start, end) {
		if dateutil.IsWeekday(d) && !holidays.Contains(d) {
			count++
		}
	}
	return count
}

// MonthlyWorkdays partitions [start, end] into calendar months in
// chronological order and counts workdays in each partition.
func MonthlyWorkdays(start, end time.Time, holidays calendar.HolidaySet) []MonthBucket {
	start, end = dateutil.StartOfDay(start), dateutil.StartOfDay(end)
	buckets := []MonthBucket{}

	for from := start; !from.After(end); from = dateutil.StartOfMonth(from).AddDate(0, 1, 0) {
		to := dateutil.EndOfMonth(from)
		if to.After(end) {
			to = end
		}
		buckets = append(buckets, MonthBucket{
			Key:      dateutil.MonthKey(from),
			Start:    from,
			End:      to,
			Workdays: WorkdaysInRange(from, to, holidays),
		})
	}

	return buckets
}

// SumWorkdays adds up the workdays of all buckets.
func SumWorkdays(buckets []MonthBucket) int {
	total := 0
	for _, b := range buckets {
		total += b.Workdays
	}
	return total
}
