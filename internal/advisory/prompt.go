package advisory

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/username/rto-planner/internal/accounting"
	"github.com/username/rto-planner/internal/calendar"
	"github.com/username/rto-planner/internal/report"
)

// PromptInput is the data serialized into the model prompt.
type PromptInput struct {
	Summary       []accounting.MonthlySummary
	Holidays      calendar.HolidaySet
	Formula       string
	Criteria      string
	Allowance     decimal.Decimal
	ExtendedBreak bool
	// FromScratch asks for a plan ignoring entered PTO. Summary is then
	// expected to carry zero PTO for every month.
	FromScratch bool
	DesiredPTO  decimal.Decimal
}

// BuildPrompt renders in as the model prompt. Equal inputs always give the
// same text.
func BuildPrompt(in PromptInput) string {
	var b strings.Builder

	b.WriteString("Use the monthly data and holidays to help me optimize my PTO plan.\n")
	fmt.Fprintf(&b, "I have a total %s number of PTO days to take in this period.\n\n", in.Allowance.String())

	b.WriteString("Focus on which month I should take PTO to minimize the total office days required.\n")
	b.WriteString("Factor in weekends and company holidays to maximize day offs.\n")
	if in.ExtendedBreak {
		b.WriteString("Do not suggest day offs between Christmas and New year since this is already a company holiday.\n")
	}
	b.WriteString("Also avoid suggesting taking day off for a whole week if I need to take Monday to Friday off using PTOs.\n\n")

	b.WriteString("Here is the monthly data of how many work days, holidays, PTO days and office days required for each month:\n")
	b.WriteString(report.SummaryTable(in.Summary))
	b.WriteString("\n")

	b.WriteString("Here are the company holidays during this period:\n")
	b.WriteString(report.HolidayList(in.Holidays))
	b.WriteString("\n")

	criteria := strings.TrimSpace(in.Criteria)
	if in.FromScratch || criteria != "" {
		b.WriteString("Here are additional criteria I want you to consider:\n")
		if in.FromScratch {
			b.WriteString("Ignore any PTO I have already entered and plan from scratch.\n")
			fmt.Fprintf(&b, "Total PTO I want to take: %s\n", in.DesiredPTO.String())
		}
		if criteria != "" {
			fmt.Fprintf(&b, "Additional criteria: %s\n", criteria)
		}
		b.WriteString("\n")
	}

	b.WriteString("Use this formula and calculator tool to calculate the required office days:\n")
	b.WriteString(in.Formula)
	b.WriteString("\n\n")

	b.WriteString(outputFormat)
	return b.String()
}

const outputFormat = `Use this format for your suggestions:
**Overall summary**:
[summary of the strategy]

PTO strategy by month:
- Month: [Month]
  - PTO Days: [Number of PTO Days]
  - Total required office days: [Number of days to go into office subtracting the suggested PTO and holidays]
  - Dates to take: [Dates to take PTO to maximize day offs including weekends and holidays]
`
