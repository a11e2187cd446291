package accounting

import (
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

// AllocationMode tells how PTO is spread over the months.
type AllocationMode int

const (
	// AverageMode applies the same PTO count to every month.
	AverageMode AllocationMode = iota + 1
	// PerMonthMode reads each month's PTO from a month-key mapping.
	PerMonthMode
)

func (m AllocationMode) String() string {
	if m == PerMonthMode {
		return "per_month"
	}
	return "average"
}

// PTOAllocation is either a uniform per-month PTO count or an explicit
// per-month mapping. The two modes never mix.
type PTOAllocation struct {
	mode     AllocationMode
	average  decimal.Decimal
	perMonth map[string]decimal.Decimal
}

// AveragePTO allocates perMonth PTO days to every month of the range.
func AveragePTO(perMonth decimal.Decimal) PTOAllocation {
	return PTOAllocation{mode: AverageMode, average: perMonth}
}

// PerMonthPTO allocates days[key] PTO days to month key; absent months get
// zero. The map is copied.
func PerMonthPTO(days map[string]decimal.Decimal) PTOAllocation {
	return PTOAllocation{mode: PerMonthMode, perMonth: maps.Clone(days)}
}

// Mode returns the allocation mode.
func (a PTOAllocation) Mode() AllocationMode {
	if a.mode == 0 {
		return AverageMode
	}
	return a.mode
}

// Average returns the uniform per-month value (zero in per-month mode).
func (a PTOAllocation) Average() decimal.Decimal {
	if a.Mode() != AverageMode {
		return decimal.Zero
	}
	return a.average
}

// For returns the PTO planned for month key.
func (a PTOAllocation) For(key string) decimal.Decimal {
	if a.Mode() == AverageMode {
		return a.average
	}
	return a.perMonth[key]
}

// Keys returns the months named in a per-month allocation, sorted.
func (a PTOAllocation) Keys() []string {
	return slices.Sorted(maps.Keys(a.perMonth))
}

// Total sums the PTO planned across months.
func (a PTOAllocation) Total(months []MonthBucket) decimal.Decimal {
	total := decimal.Zero
	for _, m := range months {
		total = total.Add(a.For(m.Key))
	}
	return total
}
