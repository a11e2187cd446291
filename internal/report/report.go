// Package report renders planning results as markdown for the terminal and
// as the data blocks of the advisory prompt.
package report

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"

	"github.com/username/rto-planner/internal/accounting"
	"github.com/username/rto-planner/internal/calendar"
)

// HolidayDateFormat is how holiday dates are shown to users.
const HolidayDateFormat = "Jan 02, 2006"

// Document is everything a full plan report shows.
type Document struct {
	Start            time.Time
	End              time.Time
	Policy           accounting.Policy
	RequiredFraction decimal.Decimal
	Allowance        decimal.Decimal
	Holidays         calendar.HolidaySet
	Summary          []accounting.MonthlySummary
	Totals           accounting.Totals
	Formula          string
}

// Markdown renders the whole plan.
func Markdown(d Document) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Office Day Plan %s to %s",
		d.Start.Format(HolidayDateFormat), d.End.Format(HolidayDateFormat)))
	doc.PlainText(fmt.Sprintf("Policy: %s, %s of workdays in office.",
		d.Policy.Label(), percent(d.RequiredFraction)))

	doc.H2("Totals")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Metric", "Days"},
		Rows: [][]string{
			{"Holidays", strconv.Itoa(d.Totals.Holidays)},
			{"PTO planned", d.Totals.PTO.StringFixed(1)},
			{"PTO allowance", d.Allowance.StringFixed(1)},
			{"Workdays after PTO", d.Totals.Workdays.String()},
			{"Office days required", d.Totals.OfficeDays.String()},
			{"Average office days per month", d.Totals.AverageMonthlyOfficeDays.StringFixed(1)},
		},
	})

	doc.H2("Monthly")
	doc.Table(summaryTableSet(d.Summary))

	doc.H2("Holidays")
	if d.Holidays.Len() == 0 {
		doc.PlainText("No holidays in this period.")
	} else {
		doc.BulletList(holidayItems(d.Holidays)...)
	}

	doc.H2("Formula")
	doc.PlainText(d.Formula)

	return doc.String()
}

// SummaryTable renders the monthly summary as a markdown table.
func SummaryTable(summary []accounting.MonthlySummary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.Table(summaryTableSet(summary))
	return doc.String()
}

// HolidayList renders one "Jan 02, 2006: Name" bullet per holiday in date
// order.
func HolidayList(holidays calendar.HolidaySet) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	if holidays.Len() == 0 {
		doc.PlainText("None")
	} else {
		doc.BulletList(holidayItems(holidays)...)
	}
	return doc.String()
}

func summaryTableSet(summary []accounting.MonthlySummary) md.TableSet {
	rows := make([][]string, 0, len(summary))
	for _, s := range summary {
		rows = append(rows, []string{
			s.Label,
			strconv.Itoa(s.WorkDays),
			s.PTODays.String(),
			s.NetWorkDays.String(),
			s.OfficeDaysRequired.String(),
		})
	}
	return md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Month", "Work Days", "PTO Days", "Net Work Days", "Office Days Required"},
		Rows:      rows,
	}
}

func holidayItems(holidays calendar.HolidaySet) []string {
	items := make([]string, 0, holidays.Len())
	for _, h := range holidays {
		items = append(items, fmt.Sprintf("%s: %s", h.Date.Format(HolidayDateFormat), h.Name))
	}
	return items
}

func percent(fraction decimal.Decimal) string {
	return fraction.Mul(decimal.NewFromInt(100)).String() + "%"
}
