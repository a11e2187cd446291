package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/username/rto-planner/internal/accounting"
	"github.com/username/rto-planner/internal/advisory"
	"github.com/username/rto-planner/internal/calendar"
	"github.com/username/rto-planner/internal/config"
	"github.com/username/rto-planner/internal/planner"
	"github.com/username/rto-planner/pkg/dateutil"
)

// maxBodyBytes caps request bodies; plans are small.
const maxBodyBytes = 64 << 10

// Handler holds the dependencies of the HTTP handlers.
type Handler struct {
	planner  *planner.Planner
	advisor  *advisory.Service
	defaults config.PlanConfig
	logger   *zap.Logger
}

// NewHandler creates a Handler. defaults fill fields a request omits.
func NewHandler(p *planner.Planner, advisor *advisory.Service, defaults config.PlanConfig, logger *zap.Logger) *Handler {
	return &Handler{
		planner:  p,
		advisor:  advisor,
		defaults: defaults,
		logger:   logger,
	}
}

// Health reports liveness and whether advice can be requested.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:          "ok",
		AdviceAvailable: h.advisor != nil && h.advisor.Enabled(),
	})
}

// ListHolidays handles GET /api/holidays.
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start, end, err := h.parseRange(q.Get("start"), q.Get("end"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", err)
		return
	}
	extendedBreak, err := parseBoolParam(q.Get("extended_break"), h.defaults.ExtendedBreak)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid extended_break", err)
		return
	}

	holidays, err := h.planner.Holidays(start, end, extendedBreak)
	if err != nil {
		writePlanError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, HolidaysResponse{
		StartDate: start.Format(dateutil.DateFormat),
		EndDate:   end.Format(dateutil.DateFormat),
		Holidays:  toHolidayDTOs(holidays),
	})
}

// GetMonthCalendar handles GET /api/calendar/{month}: the day-by-day view
// of one month.
func (h *Handler) GetMonthCalendar(w http.ResponseWriter, r *http.Request) {
	first, err := time.Parse(dateutil.MonthKeyFormat, chi.URLParam(r, "month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "month must be YYYY-MM", err)
		return
	}
	extendedBreak, err := parseBoolParam(r.URL.Query().Get("extended_break"), h.defaults.ExtendedBreak)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid extended_break", err)
		return
	}

	first = dateutil.StartOfMonth(first)
	last := dateutil.EndOfMonth(first)
	holidays, err := h.planner.Holidays(first, last, extendedBreak)
	if err != nil {
		writePlanError(w, err)
		return
	}

	info, err := calendar.NewWorkCalendar(first, last, holidays).GetMonthInfo(first.Year(), first.Month())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build month calendar", err)
		return
	}

	writeJSON(w, http.StatusOK, toMonthCalendarResponse(info))
}

// CreatePlan handles POST /api/plan.
func (h *Handler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var req PlanRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	plan, err := h.plan(req)
	if err != nil {
		writePlanError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toPlanResponse(plan))
}

// CreateAdvice handles POST /api/advice.
func (h *Handler) CreateAdvice(w http.ResponseWriter, r *http.Request) {
	var req AdviceRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	plan, err := h.plan(req.Plan)
	if err != nil {
		writePlanError(w, err)
		return
	}

	advice, err := h.planner.Advise(r.Context(), plan, planner.AdviceRequest{
		Criteria:    req.Criteria,
		FromScratch: req.FromScratch,
		DesiredPTO:  decimal.NewFromFloat(req.DesiredPTO),
	})
	if err != nil {
		h.writeAdviceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, AdviceResponse{
		RequestID: advice.RequestID,
		Advice:    advice.Text,
		Shared:    advice.Shared,
	})
}

func (h *Handler) writeAdviceError(w http.ResponseWriter, r *http.Request, err error) {
	var advErr *advisory.Error
	switch {
	case errors.Is(err, advisory.ErrNotConfigured):
		writeError(w, http.StatusServiceUnavailable, "advice is not available on this server", err)
	case errors.As(err, &advErr):
		h.logger.Warn("Advice failed",
			zap.String("http_request_id", middleware.GetReqID(r.Context())),
			zap.String("request_id", advErr.RequestID),
			zap.Error(err))
		writeJSON(w, http.StatusBadGateway, ErrorResponse{
			Error:   advisory.Apology,
			Code:    "advisory_failure",
			Details: map[string]string{"request_id": advErr.RequestID},
		})
	case errors.Is(err, context.Canceled):
		// Client went away; nobody reads the answer.
		h.logger.Debug("Advice request canceled by client")
	case errors.Is(err, planner.ErrInvalidPTO):
		writeError(w, http.StatusUnprocessableEntity, "invalid advice request", err)
	default:
		writeError(w, http.StatusInternalServerError, "failed to get advice", err)
	}
}

// plan merges req over the configured defaults and computes the plan.
func (h *Handler) plan(req PlanRequest) (*planner.Plan, error) {
	start, end, err := h.parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, &requestError{err}
	}

	policyName := h.defaults.Policy
	if req.Policy != "" {
		policyName = req.Policy
	}
	policy := accounting.SubtractFromWorkdays
	if policyName != "" {
		if policy, err = accounting.ParsePolicy(policyName); err != nil {
			return nil, &requestError{err}
		}
	}

	defaults := h.defaults
	if req.RequiredPercent != nil {
		defaults.RequiredPercent = *req.RequiredPercent
	}
	if req.Allowance != nil {
		defaults.PTOAllowance = *req.Allowance
	}
	switch {
	case req.AveragePTO != nil:
		defaults.AveragePTO = *req.AveragePTO
		defaults.MonthlyPTO = nil
	case len(req.MonthlyPTO) > 0:
		defaults.MonthlyPTO = req.MonthlyPTO
	}

	extendedBreak := h.defaults.ExtendedBreak
	if req.ExtendedBreak != nil {
		extendedBreak = *req.ExtendedBreak
	}

	return h.planner.Plan(planner.Input{
		Start:            start,
		End:              end,
		ExtendedBreak:    extendedBreak,
		RequiredFraction: defaults.GetRequiredFraction(),
		Allowance:        defaults.GetAllowance(),
		Policy:           policy,
		PTO:              defaults.GetAllocation(),
	})
}

func (h *Handler) parseRange(startStr, endStr string) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if startStr != "" {
		start, err = dateutil.ParseDate(startStr)
	} else {
		start, err = h.defaults.GetStartDate()
	}
	if err != nil {
		return start, end, err
	}

	if endStr != "" {
		end, err = dateutil.ParseDate(endStr)
	} else {
		end, err = h.defaults.GetEndDate()
	}
	return start, end, err
}

// requestError marks a malformed field in an otherwise valid body.
type requestError struct{ err error }

func (e *requestError) Error() string { return e.err.Error() }
func (e *requestError) Unwrap() error { return e.err }

func writePlanError(w http.ResponseWriter, err error) {
	var reqErr *requestError
	switch {
	case errors.As(err, &reqErr):
		writeError(w, http.StatusBadRequest, "invalid request", err)
	case errors.Is(err, planner.ErrInvalidRange):
		writeError(w, http.StatusUnprocessableEntity, "invalid date range", err)
	case errors.Is(err, accounting.ErrAllowanceExceeded):
		writeError(w, http.StatusUnprocessableEntity, "PTO allowance exceeded", err)
	case errors.Is(err, planner.ErrPTOExceedsWorkdays),
		errors.Is(err, planner.ErrUnknownMonth),
		errors.Is(err, planner.ErrInvalidPTO),
		errors.Is(err, planner.ErrInvalidFraction):
		writeError(w, http.StatusUnprocessableEntity, "invalid PTO plan", err)
	default:
		writeError(w, http.StatusInternalServerError, "failed to compute plan", err)
	}
}

func parseBoolParam(s string, def bool) (bool, error) {
	if s == "" {
		return def, nil
	}
	return strconv.ParseBool(s)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	// An empty body means "all defaults".
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
