package calendar

import (
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"

	"github.com/username/rto-planner/pkg/dateutil"
)

// federalHoliday pairs a rickar/cal rule with the name shown to users.
type federalHoliday struct {
	name string
	rule *cal.Holiday
}

// The US federal set in calendar order.
var federalHolidays = []federalHoliday{
	{"New Year's Day", us.NewYear},
	{"Martin Luther King Jr. Day", us.MlkDay},
	{"Washington's Birthday", us.PresidentsDay},
	{"Memorial Day", us.MemorialDay},
	{"Juneteenth National Independence Day", us.Juneteenth},
	{"Independence Day", us.IndependenceDay},
	{"Labor Day", us.LaborDay},
	{"Columbus Day", us.ColumbusDay},
	{"Veterans Day", us.VeteransDay},
	{"Thanksgiving", us.ThanksgivingDay},
	{"Christmas Day", us.ChristmasDay},
}

// FederalHolidays returns the US federal holidays within [start, end].
// When a holiday falls on a weekend and is observed on a neighbouring
// weekday, both dates are included; the observed one is suffixed with
// "(observed)".
func FederalHolidays(start, end time.Time) HolidaySet {
	start, end = dateutil.StartOfDay(start), dateutil.StartOfDay(end)
	if start.After(end) {
		return HolidaySet{}
	}

	var found []Holiday
	// Next year's New Year's Day can be observed on Dec 31 of end's year.
	for year := start.Year(); year <= end.Year()+1; year++ {
		for _, fh := range federalHolidays {
			actual, observed := fh.rule.Calc(year)
			if actual.IsZero() {
				continue // rule not in effect that year
			}
			if dateutil.InRange(actual, start, end) {
				found = append(found, Holiday{Date: actual, Name: fh.name})
			}
			if !observed.IsZero() && !dateutil.IsSameDay(actual, observed) &&
				dateutil.InRange(observed, start, end) {
				found = append(found, Holiday{Date: observed, Name: fh.name + " (observed)"})
			}
		}
	}

	return NewHolidaySet(found...)
}
