package api

import (
	"github.com/username/rto-planner/internal/accounting"
	"github.com/username/rto-planner/internal/calendar"
	"github.com/username/rto-planner/internal/planner"
	"github.com/username/rto-planner/internal/report"
	"github.com/username/rto-planner/pkg/dateutil"
)

// =============================================================================
// REQUESTS
// =============================================================================

// PlanRequest describes a planning scenario. Omitted fields take the
// server's configured defaults.
type PlanRequest struct {
	StartDate       string             `json:"start_date,omitempty"`
	EndDate         string             `json:"end_date,omitempty"`
	ExtendedBreak   *bool              `json:"extended_break,omitempty"`
	RequiredPercent *float64           `json:"required_percent,omitempty"`
	Allowance       *float64           `json:"pto_allowance,omitempty"`
	Policy          string             `json:"policy,omitempty"`
	AveragePTO      *float64           `json:"average_pto,omitempty"`
	MonthlyPTO      map[string]float64 `json:"monthly_pto,omitempty"`
}

// AdviceRequest asks for planning advice on a scenario.
type AdviceRequest struct {
	Plan        PlanRequest `json:"plan"`
	Criteria    string      `json:"criteria,omitempty"`
	FromScratch bool        `json:"from_scratch,omitempty"`
	DesiredPTO  float64     `json:"desired_pto,omitempty"`
}

// =============================================================================
// RESPONSES
// =============================================================================

type HealthResponse struct {
	Status          string `json:"status"`
	AdviceAvailable bool   `json:"advice_available"`
}

type HolidayDTO struct {
	Date    string `json:"date"`    // 2006-01-02
	Display string `json:"display"` // Jan 02, 2006
	Name    string `json:"name"`
}

type HolidaysResponse struct {
	StartDate string       `json:"start_date"`
	EndDate   string       `json:"end_date"`
	Holidays  []HolidayDTO `json:"holidays"`
}

type MonthDTO struct {
	Month              string  `json:"month"`
	Label              string  `json:"label"`
	WorkDays           int     `json:"work_days"`
	PTODays            float64 `json:"pto_days"`
	NetWorkDays        float64 `json:"net_work_days"`
	OfficeDaysRequired float64 `json:"office_days_required"`
}

type TotalsDTO struct {
	Months                   int     `json:"months"`
	Holidays                 int     `json:"holidays"`
	PTO                      float64 `json:"pto"`
	Workdays                 float64 `json:"workdays"`
	OfficeDays               float64 `json:"office_days"`
	AverageMonthlyOfficeDays float64 `json:"average_monthly_office_days"`
}

type PlanResponse struct {
	StartDate        string       `json:"start_date"`
	EndDate          string       `json:"end_date"`
	Policy           string       `json:"policy"`
	RequiredFraction float64      `json:"required_fraction"`
	Allowance        float64      `json:"pto_allowance"`
	Holidays         []HolidayDTO `json:"holidays"`
	Months           []MonthDTO   `json:"months"`
	Totals           TotalsDTO    `json:"totals"`
	Formula          string       `json:"formula"`
}

type AdviceResponse struct {
	RequestID string `json:"request_id"`
	Advice    string `json:"advice"`
	Shared    bool   `json:"shared,omitempty"`
}

type DayDTO struct {
	Date      string `json:"date"`
	Type      string `json:"type"`
	IsWorkday bool   `json:"is_workday"`
	Note      string `json:"note,omitempty"`
}

type MonthCalendarResponse struct {
	Month    string   `json:"month"`
	Label    string   `json:"label"`
	WorkDays int      `json:"work_days"`
	Weekends int      `json:"weekends"`
	Holidays int      `json:"holidays"`
	Days     []DayDTO `json:"days"`
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toHolidayDTOs(set calendar.HolidaySet) []HolidayDTO {
	out := make([]HolidayDTO, 0, set.Len())
	for _, h := range set {
		out = append(out, HolidayDTO{
			Date:    h.Date.Format(dateutil.DateFormat),
			Display: h.Date.Format(report.HolidayDateFormat),
			Name:    h.Name,
		})
	}
	return out
}

func toMonthDTO(s accounting.MonthlySummary) MonthDTO {
	return MonthDTO{
		Month:              s.Month,
		Label:              s.Label,
		WorkDays:           s.WorkDays,
		PTODays:            s.PTODays.InexactFloat64(),
		NetWorkDays:        s.NetWorkDays.InexactFloat64(),
		OfficeDaysRequired: s.OfficeDaysRequired.InexactFloat64(),
	}
}

func toPlanResponse(p *planner.Plan) PlanResponse {
	months := make([]MonthDTO, 0, len(p.Summary))
	for _, s := range p.Summary {
		months = append(months, toMonthDTO(s))
	}
	return PlanResponse{
		StartDate:        p.Input.Start.Format(dateutil.DateFormat),
		EndDate:          p.Input.End.Format(dateutil.DateFormat),
		Policy:           p.Input.Policy.String(),
		RequiredFraction: p.Input.RequiredFraction.InexactFloat64(),
		Allowance:        p.Input.Allowance.InexactFloat64(),
		Holidays:         toHolidayDTOs(p.Holidays),
		Months:           months,
		Totals: TotalsDTO{
			Months:                   p.Totals.Months,
			Holidays:                 p.Totals.Holidays,
			PTO:                      p.Totals.PTO.InexactFloat64(),
			Workdays:                 p.Totals.Workdays.InexactFloat64(),
			OfficeDays:               p.Totals.OfficeDays.InexactFloat64(),
			AverageMonthlyOfficeDays: p.Totals.AverageMonthlyOfficeDays.InexactFloat64(),
		},
		Formula: p.Formula,
	}
}

func toMonthCalendarResponse(info *calendar.MonthInfo) MonthCalendarResponse {
	days := make([]DayDTO, 0, len(info.Days))
	for _, d := range info.Days {
		days = append(days, DayDTO{
			Date:      d.Date.Format(dateutil.DateFormat),
			Type:      d.Type.String(),
			IsWorkday: d.IsWorkday,
			Note:      d.Note,
		})
	}
	return MonthCalendarResponse{
		Month:    info.Key,
		Label:    dateutil.MonthLabel(info.Key),
		WorkDays: info.WorkDays,
		Weekends: info.Weekends,
		Holidays: info.Holidays,
		Days:     days,
	}
}
