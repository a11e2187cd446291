package calendar

import (
	"time"

	"github.com/username/rto-planner/pkg/dateutil"
)

const (
	// DayAfterThanksgivingName labels the Friday after Thanksgiving.
	DayAfterThanksgivingName = "Day After Thanksgiving"
	// ChristmasBreakName labels the extended end-of-year break days.
	ChristmasBreakName = "Christmas Break"
)

// BuildHolidays produces the company holiday set for [start, end].
//
// The set is the US federal calendar plus the day after Thanksgiving and,
// when extendedBreak is set, every weekday from Dec 24 to Dec 31. The two
// computed additions only use start's year, so a range that runs into a
// second year gets that year's federal holidays but not its Thanksgiving
// Friday or end-of-year break. Optional extra sets (e.g. a company holiday
// file) are merged last. On date collisions federal names win, then the
// computed additions, then extras.
func BuildHolidays(start, end time.Time, extendedBreak bool, extra ...HolidaySet) HolidaySet {
	start, end = dateutil.StartOfDay(start), dateutil.StartOfDay(end)
	if start.After(end) {
		return HolidaySet{}
	}

	federal := FederalHolidays(start, end)
	additional := companyAdditions(start, end, extendedBreak)

	sets := append([]HolidaySet{federal, additional}, extra...)
	merged := Merge(sets...)
	return merged.Between(start, end)
}

// DayAfterThanksgiving returns the Friday after the 4th Thursday of November.
func DayAfterThanksgiving(year int) time.Time {
	return dateutil.NthWeekday(year, time.November, time.Thursday, 4).AddDate(0, 0, 1)
}

// ChristmasBreak returns the weekdays from Dec 24 to Dec 31 of year.
func ChristmasBreak(year int) []time.Time {
	var days []time.Time
	for d := range dateutil.Days(dateutil.NewDate(year, time.December, 24), dateutil.EndOfYear(year)) {
		if dateutil.IsWeekday(d) {
			days = append(days, d)
		}
	}
	return days
}

func companyAdditions(start, end time.Time, extendedBreak bool) HolidaySet {
	year := start.Year()
	var found []Holiday

	if d := DayAfterThanksgiving(year); dateutil.InRange(d, start, end) {
		found = append(found, Holiday{Date: d, Name: DayAfterThanksgivingName})
	}

	if extendedBreak {
		for _, d := range ChristmasBreak(year) {
			if dateutil.InRange(d, start, end) {
				found = append(found, Holiday{Date: d, Name: ChristmasBreakName})
			}
		}
	}

	return NewHolidaySet(found...)
}

// SpansMultipleYears reports whether the range crosses a year boundary,
// i.e. whether BuildHolidays skips computed additions for later years.
func SpansMultipleYears(start, end time.Time) bool {
	return end.Year() > start.Year()
}
