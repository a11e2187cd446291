package accounting

import (
	"github.com/shopspring/decimal"

	"github.com/username/rto-planner/pkg/dateutil"
)

// MonthlySummary is the office-day figure for one month bucket.
type MonthlySummary struct {
	Month              string // "YYYY-MM"
	Label              string // "Jan 2025"
	WorkDays           int
	PTODays            decimal.Decimal
	NetWorkDays        decimal.Decimal
	OfficeDaysRequired decimal.Decimal
}

// BuildMonthlySummary applies OfficeDaysRequired to every month with the
// PTO taken from alloc. Months keep the order of the input buckets.
func BuildMonthlySummary(months []MonthBucket, alloc PTOAllocation, policy Policy, requiredFraction decimal.Decimal) []MonthlySummary {
	summary := make([]MonthlySummary, 0, len(months))
	for _, m := range months {
		workdays := decimal.NewFromInt(int64(m.Workdays))
		pto := alloc.For(m.Key)
		summary = append(summary, MonthlySummary{
			Month:              m.Key,
			Label:              dateutil.MonthLabel(m.Key),
			WorkDays:           m.Workdays,
			PTODays:            pto,
			NetWorkDays:        NetWorkdays(workdays, pto, policy),
			OfficeDaysRequired: OfficeDaysRequired(workdays, pto, policy, requiredFraction),
		})
	}
	return summary
}

// Totals aggregates a summary for the report and advisory layers.
type Totals struct {
	Months     int
	Holidays   int
	PTO        decimal.Decimal
	Workdays   decimal.Decimal // monthly workdays minus PTO
	OfficeDays decimal.Decimal
	// AverageMonthlyOfficeDays is rounded to one decimal, display only.
	AverageMonthlyOfficeDays decimal.Decimal
}

// ComputeTotals sums a summary. holidayCount is the size of the holiday set.
func ComputeTotals(summary []MonthlySummary, holidayCount int) Totals {
	totals := Totals{
		Months:                   len(summary),
		Holidays:                 holidayCount,
		PTO:                      decimal.Zero,
		Workdays:                 decimal.Zero,
		OfficeDays:               decimal.Zero,
		AverageMonthlyOfficeDays: decimal.Zero,
	}

	workdays := decimal.Zero
	for _, s := range summary {
		workdays = workdays.Add(decimal.NewFromInt(int64(s.WorkDays)))
		totals.PTO = totals.PTO.Add(s.PTODays)
		totals.OfficeDays = totals.OfficeDays.Add(s.OfficeDaysRequired)
	}
	totals.Workdays = workdays.Sub(totals.PTO)

	if len(summary) > 0 {
		avg := totals.OfficeDays.DivRound(decimal.NewFromInt(int64(len(summary))), 8)
		totals.AverageMonthlyOfficeDays = avg.RoundBank(1)
	}

	return totals
}

// CheckAllowance fails with *AllowanceExceededError when totalPTO is above
// allowance. Equal is allowed.
func CheckAllowance(totalPTO, allowance decimal.Decimal) error {
	if totalPTO.GreaterThan(allowance) {
		return &AllowanceExceededError{Total: totalPTO, Allowance: allowance}
	}
	return nil
}
