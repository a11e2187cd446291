package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/username/rto-planner/internal/advisory"
	"github.com/username/rto-planner/internal/calendar"
	"github.com/username/rto-planner/internal/config"
	"github.com/username/rto-planner/internal/planner"
	"github.com/username/rto-planner/internal/report"
	"github.com/username/rto-planner/pkg/dateutil"
)

// planFlags override the plan section of the config when set
type planFlags struct {
	start           string
	end             string
	extendedBreak   bool
	requiredPercent float64
	allowance       float64
	policy          string
	averagePTO      float64
	monthPTO        []string
	holidaysFile    string
	plain           bool
}

func (f *planFlags) register(cmd *cobra.Command, withPTO bool) {
	cmd.Flags().StringVar(&f.start, "start", "", "Start date YYYY-MM-DD (default Jan 1 of this year)")
	cmd.Flags().StringVar(&f.end, "end", "", "End date YYYY-MM-DD (default Dec 31 of this year)")
	cmd.Flags().BoolVar(&f.extendedBreak, "extended-break", true, "Treat Dec 24-31 weekdays as company holidays")
	cmd.Flags().StringVar(&f.holidaysFile, "holidays-file", "", "Extra company holidays, one 'YYYY-MM-DD Name' per line")
	cmd.Flags().BoolVar(&f.plain, "plain", false, "Print raw markdown instead of rendering it")
	if !withPTO {
		return
	}
	cmd.Flags().Float64Var(&f.requiredPercent, "required-percent", 60, "Share of workdays to spend in office")
	cmd.Flags().Float64Var(&f.allowance, "allowance", 20, "Total PTO days available in the period")
	cmd.Flags().StringVar(&f.policy, "policy", "", "PTO accounting: subtract_from_workdays or pto_as_office_day")
	cmd.Flags().Float64Var(&f.averagePTO, "average-pto", 0, "PTO days taken every month")
	cmd.Flags().StringArrayVar(&f.monthPTO, "month-pto", nil, "PTO for one month as YYYY-MM=DAYS (repeatable)")
	cmd.MarkFlagsMutuallyExclusive("average-pto", "month-pto")
}

// apply copies explicitly set flags over the config and revalidates it
func (f *planFlags) apply(cmd *cobra.Command, c *config.Config) error {
	changed := cmd.Flags().Changed
	if changed("start") {
		c.Plan.StartDate = f.start
	}
	if changed("end") {
		c.Plan.EndDate = f.end
	}
	if changed("extended-break") {
		c.Plan.ExtendedBreak = f.extendedBreak
	}
	if changed("holidays-file") {
		c.Plan.HolidaysFile = f.holidaysFile
	}
	if changed("required-percent") {
		c.Plan.RequiredPercent = f.requiredPercent
	}
	if changed("allowance") {
		c.Plan.PTOAllowance = f.allowance
	}
	if changed("policy") {
		c.Plan.Policy = f.policy
	}
	if changed("average-pto") {
		c.Plan.AveragePTO = f.averagePTO
		c.Plan.MonthlyPTO = nil
	}
	if changed("month-pto") {
		monthly, err := parseMonthPTO(f.monthPTO)
		if err != nil {
			return err
		}
		c.Plan.MonthlyPTO = monthly
	}
	return c.Validate()
}

func parseMonthPTO(values []string) (map[string]float64, error) {
	monthly := make(map[string]float64, len(values))
	for _, v := range values {
		key, days, ok := strings.Cut(v, "=")
		if !ok {
			return nil, fmt.Errorf("--month-pto %q: want YYYY-MM=DAYS", v)
		}
		key = strings.TrimSpace(key)
		if _, err := time.Parse(dateutil.MonthKeyFormat, key); err != nil {
			return nil, fmt.Errorf("--month-pto %q: month must be YYYY-MM", v)
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(days), 64)
		if err != nil {
			return nil, fmt.Errorf("--month-pto %q: %w", v, err)
		}
		monthly[key] += n
	}
	return monthly, nil
}

func planInput(c *config.Config) (planner.Input, error) {
	start, err := c.Plan.GetStartDate()
	if err != nil {
		return planner.Input{}, err
	}
	end, err := c.Plan.GetEndDate()
	if err != nil {
		return planner.Input{}, err
	}
	policy, err := c.Plan.GetPolicy()
	if err != nil {
		return planner.Input{}, err
	}
	return planner.Input{
		Start:            start,
		End:              end,
		ExtendedBreak:    c.Plan.ExtendedBreak,
		RequiredFraction: c.Plan.GetRequiredFraction(),
		Allowance:        c.Plan.GetAllowance(),
		Policy:           policy,
		PTO:              c.Plan.GetAllocation(),
	}, nil
}

// initializePlanner wires the company holiday file and, when a key is
// configured, the advisory service
func initializePlanner(ctx context.Context, c *config.Config, withAdvisor bool) (*planner.Planner, *advisory.Service, error) {
	var opts []planner.Option

	if c.Plan.HolidaysFile != "" {
		fileCal := calendar.NewFileCalendar(c.Plan.HolidaysFile, logger)
		if err := fileCal.Load(); err != nil {
			logger.Warn("Failed to load company holidays, continuing with federal holidays only",
				zap.String("file", c.Plan.HolidaysFile),
				zap.Error(err))
		} else {
			opts = append(opts, planner.WithCompanyHolidays(fileCal))
		}
	}

	var svc *advisory.Service
	if withAdvisor {
		var gen advisory.Generator
		g, err := advisory.NewGeminiGenerator(ctx, c.Advisory.GetAPIKey(), c.Advisory.Model, logger)
		switch {
		case err == nil:
			gen = g
		case errors.Is(err, advisory.ErrNotConfigured):
			logger.Warn("No Gemini API key configured, advice disabled")
		default:
			return nil, nil, fmt.Errorf("failed to initialize advisory model: %w", err)
		}
		svc = advisory.NewService(gen, c.Advisory.GetTimeout(), logger)
		opts = append(opts, planner.WithAdvisor(svc))
	}

	return planner.New(logger, opts...), svc, nil
}

func printMarkdown(w io.Writer, markdown string, plain bool) error {
	if plain {
		_, err := io.WriteString(w, markdown)
		return err
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := r.Render(markdown)
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}

func holidaysCmd() *cobra.Command {
	var flags planFlags

	cmd := &cobra.Command{
		Use:   "holidays",
		Short: "List federal and company holidays in a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.apply(cmd, cfg); err != nil {
				return err
			}
			p, _, err := initializePlanner(cmd.Context(), cfg, false)
			if err != nil {
				return err
			}

			start, _ := cfg.Plan.GetStartDate()
			end, _ := cfg.Plan.GetEndDate()
			holidays, err := p.Holidays(start, end, cfg.Plan.ExtendedBreak)
			if err != nil {
				return err
			}

			md := fmt.Sprintf("# Holidays %s to %s\n\n%s",
				start.Format(report.HolidayDateFormat), end.Format(report.HolidayDateFormat),
				report.HolidayList(holidays))
			return printMarkdown(cmd.OutOrStdout(), md, flags.plain)
		},
	}
	flags.register(cmd, false)
	return cmd
}

func summaryCmd() *cobra.Command {
	var flags planFlags

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show workdays, PTO and required office days per month",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.apply(cmd, cfg); err != nil {
				return err
			}
			p, _, err := initializePlanner(cmd.Context(), cfg, false)
			if err != nil {
				return err
			}
			in, err := planInput(cfg)
			if err != nil {
				return err
			}

			plan, err := p.Plan(in)
			if err != nil {
				return err
			}
			return printMarkdown(cmd.OutOrStdout(), report.Markdown(plan.Report()), flags.plain)
		},
	}
	flags.register(cmd, true)
	return cmd
}

func adviseCmd() *cobra.Command {
	var flags planFlags
	var criteria string
	var fromScratch bool
	var desiredPTO float64

	cmd := &cobra.Command{
		Use:   "advise",
		Short: "Ask the planning assistant where to put PTO",
		Long:  "Ask the planning assistant where to put PTO. AI can make mistakes, verify the result.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.apply(cmd, cfg); err != nil {
				return err
			}
			p, _, err := initializePlanner(cmd.Context(), cfg, true)
			if err != nil {
				return err
			}
			in, err := planInput(cfg)
			if err != nil {
				return err
			}
			plan, err := p.Plan(in)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.ErrOrStderr(), "Thinking... feel free to grab a beverage while you wait")

			advice, err := p.Advise(cmd.Context(), plan, planner.AdviceRequest{
				Criteria:    criteria,
				FromScratch: fromScratch,
				DesiredPTO:  decimal.NewFromFloat(desiredPTO),
			})
			if err != nil {
				if errors.Is(err, advisory.ErrServiceFailure) {
					fmt.Fprintln(cmd.ErrOrStderr(), advisory.Apology)
				}
				return err
			}

			md := "# Suggested PTO Plan\n\n" + advice.Text
			return printMarkdown(cmd.OutOrStdout(), md, flags.plain)
		},
	}
	flags.register(cmd, true)
	cmd.Flags().StringVar(&criteria, "criteria", "", "Other criteria, e.g. 'I want to take 2 weeks off in July'")
	cmd.Flags().BoolVar(&fromScratch, "from-scratch", false, "Ignore entered PTO and plan from scratch")
	cmd.Flags().Float64Var(&desiredPTO, "desired-pto", 3, "Total PTO to plan with --from-scratch")
	return cmd
}
