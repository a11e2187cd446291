package calendar

import (
	"fmt"
	"time"

	"github.com/username/rto-planner/pkg/dateutil"
)

// DayInfo represents information about a specific day
type DayInfo struct {
	Date      time.Time
	Type      DayType
	IsWorkday bool
	Note      string
}

// MonthInfo represents calendar information for the part of a month that
// lies inside the planning range
type MonthInfo struct {
	Key      string
	Year     int
	Month    time.Month
	WorkDays int
	Weekends int
	Holidays int
	Days     []DayInfo
}

// Calendar answers workday questions for dates
type Calendar interface {
	// IsWorkday checks if the given date is a working day
	IsWorkday(date time.Time) bool

	// GetMonthInfo returns calendar info for the month
	GetMonthInfo(year int, month time.Month) (*MonthInfo, error)

	// GetDayInfo returns detailed info for a specific day
	GetDayInfo(date time.Time) (*DayInfo, error)
}

// WorkCalendar is a Calendar over a fixed range and holiday set.
type WorkCalendar struct {
	start    time.Time
	end      time.Time
	holidays HolidaySet
}

var _ Calendar = (*WorkCalendar)(nil)

// NewWorkCalendar creates a WorkCalendar for [start, end].
func NewWorkCalendar(start, end time.Time, holidays HolidaySet) *WorkCalendar {
	return &WorkCalendar{
		start:    dateutil.StartOfDay(start),
		end:      dateutil.StartOfDay(end),
		holidays: holidays,
	}
}

// IsWorkday checks if the given date is a working day: not a weekend and
// not a holiday.
func (wc *WorkCalendar) IsWorkday(date time.Time) bool {
	return dateutil.IsWeekday(date) && !wc.holidays.Contains(date)
}

// GetDayInfo returns detailed info for a specific day
func (wc *WorkCalendar) GetDayInfo(date time.Time) (*DayInfo, error) {
	if !dateutil.InRange(date, wc.start, wc.end) {
		return nil, fmt.Errorf("day outside planning range: %s", date.Format(dateutil.DateFormat))
	}

	day := dateutil.StartOfDay(date)
	info := &DayInfo{Date: day}

	switch h, isHoliday := wc.holidays.Lookup(day); {
	case dateutil.IsWeekend(day):
		info.Type = DayTypeWeekend
		if isHoliday {
			info.Note = h.Name
		}
	case isHoliday:
		info.Type = DayTypeHoliday
		info.Note = h.Name
	default:
		info.Type = DayTypeWorkday
		info.IsWorkday = true
	}

	return info, nil
}

// GetMonthInfo returns calendar info for the month, clipped to the range
func (wc *WorkCalendar) GetMonthInfo(year int, month time.Month) (*MonthInfo, error) {
	first := dateutil.NewDate(year, month, 1)
	from, to := first, dateutil.EndOfMonth(first)
	if from.Before(wc.start) {
		from = wc.start
	}
	if to.After(wc.end) {
		to = wc.end
	}
	if from.After(to) {
		return nil, fmt.Errorf("month outside planning range: %s", dateutil.MonthKey(first))
	}

	monthInfo := &MonthInfo{
		Key:   dateutil.MonthKey(first),
		Year:  year,
		Month: month,
		Days:  []DayInfo{},
	}

	for d := range dateutil.Days(from, to) {
		info, err := wc.GetDayInfo(d)
		if err != nil {
			return nil, err
		}
		switch info.Type {
		case DayTypeWorkday:
			monthInfo.WorkDays++
		case DayTypeWeekend:
			monthInfo.Weekends++
		case DayTypeHoliday:
			monthInfo.Holidays++
		}
		monthInfo.Days = append(monthInfo.Days, *info)
	}

	return monthInfo, nil
}
