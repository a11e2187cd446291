// Package planner ties the holiday calendar, the office-day accounting and
// the advisory service together. A Plan is computed from an immutable
// Input in one call; changing any input means computing a new Plan.
package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/username/rto-planner/internal/accounting"
	"github.com/username/rto-planner/internal/advisory"
	"github.com/username/rto-planner/internal/calendar"
	"github.com/username/rto-planner/internal/report"
	"github.com/username/rto-planner/pkg/dateutil"
)

var (
	// ErrInvalidRange means the start date is after the end date.
	ErrInvalidRange = errors.New("start date is after end date")
	// ErrPTOExceedsWorkdays means a month has more PTO than workdays.
	ErrPTOExceedsWorkdays = errors.New("PTO exceeds workdays in month")
	// ErrUnknownMonth means PTO was given for a month outside the range.
	ErrUnknownMonth = errors.New("month is outside the planning range")
	// ErrInvalidPTO means a negative PTO value.
	ErrInvalidPTO = errors.New("PTO days must not be negative")
	// ErrInvalidFraction means a required fraction outside [0, 1].
	ErrInvalidFraction = errors.New("required office fraction must be between 0 and 1")
)

// Input is one planning scenario.
type Input struct {
	Start            time.Time
	End              time.Time
	ExtendedBreak    bool
	RequiredFraction decimal.Decimal
	Allowance        decimal.Decimal
	Policy           accounting.Policy
	PTO              accounting.PTOAllocation
}

// Plan is the computed result for an Input.
type Plan struct {
	Input    Input
	Holidays calendar.HolidaySet
	Months   []accounting.MonthBucket
	Summary  []accounting.MonthlySummary
	Totals   accounting.Totals
	Formula  string
}

// Report returns the plan in the shape the report renderer expects.
func (p *Plan) Report() report.Document {
	return report.Document{
		Start:            p.Input.Start,
		End:              p.Input.End,
		Policy:           p.Input.Policy,
		RequiredFraction: p.Input.RequiredFraction,
		Allowance:        p.Input.Allowance,
		Holidays:         p.Holidays,
		Summary:          p.Summary,
		Totals:           p.Totals,
		Formula:          p.Formula,
	}
}

// Calendar returns a day-level view of the plan's range.
func (p *Plan) Calendar() *calendar.WorkCalendar {
	return calendar.NewWorkCalendar(p.Input.Start, p.Input.End, p.Holidays)
}

// Planner computes plans and asks for advice on them.
type Planner struct {
	company *calendar.FileCalendar
	advisor *advisory.Service
	logger  *zap.Logger
}

// Option configures a Planner.
type Option func(*Planner)

// WithCompanyHolidays merges holidays from a loaded holiday file into
// every plan, below federal and computed holidays.
func WithCompanyHolidays(fc *calendar.FileCalendar) Option {
	return func(p *Planner) { p.company = fc }
}

// WithAdvisor enables Advise.
func WithAdvisor(svc *advisory.Service) Option {
	return func(p *Planner) { p.advisor = svc }
}

// New creates a Planner.
func New(logger *zap.Logger, opts ...Option) *Planner {
	p := &Planner{logger: logger}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Holidays returns the holiday set for a range.
func (p *Planner) Holidays(start, end time.Time, extendedBreak bool) (calendar.HolidaySet, error) {
	start, end = dateutil.StartOfDay(start), dateutil.StartOfDay(end)
	if start.After(end) {
		return nil, fmt.Errorf("%w: %s > %s", ErrInvalidRange,
			start.Format(dateutil.DateFormat), end.Format(dateutil.DateFormat))
	}

	if calendar.SpansMultipleYears(start, end) {
		p.logger.Warn("Range spans several years; Day After Thanksgiving and Christmas Break only added for the start year",
			zap.Time("start", start),
			zap.Time("end", end))
	}

	var extra []calendar.HolidaySet
	if p.company != nil {
		extra = append(extra, p.company.Holidays(start, end))
	}

	return calendar.BuildHolidays(start, end, extendedBreak, extra...), nil
}

// Plan validates in and computes the monthly office-day plan. Validation
// failures return no partial plan.
func (p *Planner) Plan(in Input) (*Plan, error) {
	in.Start, in.End = dateutil.StartOfDay(in.Start), dateutil.StartOfDay(in.End)
	if in.Policy == 0 {
		in.Policy = accounting.SubtractFromWorkdays
	}
	if in.RequiredFraction.IsNegative() || in.RequiredFraction.GreaterThan(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidFraction, in.RequiredFraction)
	}

	// 1. Holidays
	holidays, err := p.Holidays(in.Start, in.End, in.ExtendedBreak)
	if err != nil {
		return nil, err
	}

	// 2. Workdays per month
	months := accounting.MonthlyWorkdays(in.Start, in.End, holidays)

	// 3. PTO sanity
	if err := validatePTO(in.PTO, months); err != nil {
		return nil, err
	}

	totalPTO := in.PTO.Total(months)
	if err := accounting.CheckAllowance(totalPTO, in.Allowance); err != nil {
		p.logger.Info("PTO plan rejected",
			zap.String("total_pto", totalPTO.String()),
			zap.String("allowance", in.Allowance.String()))
		return nil, err
	}

	// 4. Summary
	summary := accounting.BuildMonthlySummary(months, in.PTO, in.Policy, in.RequiredFraction)
	totals := accounting.ComputeTotals(summary, holidays.Len())

	p.logger.Debug("Plan computed",
		zap.Time("start", in.Start),
		zap.Time("end", in.End),
		zap.String("policy", in.Policy.String()),
		zap.String("allocation", in.PTO.Mode().String()),
		zap.Int("months", len(months)),
		zap.Int("holidays", holidays.Len()),
		zap.String("office_days", totals.OfficeDays.String()))

	return &Plan{
		Input:    in,
		Holidays: holidays,
		Months:   months,
		Summary:  summary,
		Totals:   totals,
		Formula:  accounting.FormulaDescription(in.Policy, in.RequiredFraction),
	}, nil
}

func validatePTO(alloc accounting.PTOAllocation, months []accounting.MonthBucket) error {
	if alloc.Mode() == accounting.AverageMode {
		if alloc.Average().IsNegative() {
			return fmt.Errorf("%w: average %s", ErrInvalidPTO, alloc.Average())
		}
		return nil
	}

	workdays := make(map[string]int, len(months))
	for _, m := range months {
		workdays[m.Key] = m.Workdays
	}

	for _, key := range alloc.Keys() {
		pto := alloc.For(key)
		if pto.IsNegative() {
			return fmt.Errorf("%w: %s has %s", ErrInvalidPTO, key, pto)
		}
		w, ok := workdays[key]
		if !ok {
			if pto.IsZero() {
				continue
			}
			return fmt.Errorf("%w: %s", ErrUnknownMonth, key)
		}
		if pto.GreaterThan(decimal.NewFromInt(int64(w))) {
			return fmt.Errorf("%w: %s has %s PTO days but %d workdays", ErrPTOExceedsWorkdays, key, pto, w)
		}
	}
	return nil
}

// AdviceRequest carries what the user adds to a plan when asking for advice.
type AdviceRequest struct {
	Criteria string
	// FromScratch ignores the plan's PTO and asks for DesiredPTO days in
	// total instead.
	FromScratch bool
	DesiredPTO  decimal.Decimal
}

// Prompt builds the advisory prompt for plan.
func (p *Planner) Prompt(plan *Plan, req AdviceRequest) string {
	summary := plan.Summary
	if req.FromScratch {
		summary = accounting.BuildMonthlySummary(plan.Months, accounting.AveragePTO(decimal.Zero),
			plan.Input.Policy, plan.Input.RequiredFraction)
	}

	return advisory.BuildPrompt(advisory.PromptInput{
		Summary:       summary,
		Holidays:      plan.Holidays,
		Formula:       plan.Formula,
		Criteria:      req.Criteria,
		Allowance:     plan.Input.Allowance,
		ExtendedBreak: plan.Input.ExtendedBreak,
		FromScratch:   req.FromScratch,
		DesiredPTO:    req.DesiredPTO,
	})
}

// Advise asks the advisory service about plan. The plan itself is never
// changed by the outcome.
func (p *Planner) Advise(ctx context.Context, plan *Plan, req AdviceRequest) (*advisory.Advice, error) {
	if p.advisor == nil || !p.advisor.Enabled() {
		return nil, advisory.ErrNotConfigured
	}
	if req.FromScratch && req.DesiredPTO.IsNegative() {
		return nil, fmt.Errorf("%w: desired %s", ErrInvalidPTO, req.DesiredPTO)
	}
	return p.advisor.Suggest(ctx, p.Prompt(plan, req))
}
