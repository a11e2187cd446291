package accounting

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Policy selects how PTO offsets the office-day requirement.
type Policy int

const (
	// SubtractFromWorkdays removes PTO from the workdays before applying
	// the required fraction: round((workdays - pto) * fraction).
	SubtractFromWorkdays Policy = iota + 1
	// PTOAsOfficeDay counts each PTO day as an office day:
	// round(workdays * fraction) - pto.
	PTOAsOfficeDay
)

// DefaultRequiredFraction is the share of workdays spent in the office.
var DefaultRequiredFraction = decimal.RequireFromString("0.6")

var policyNames = map[Policy]string{
	SubtractFromWorkdays: "subtract_from_workdays",
	PTOAsOfficeDay:       "pto_as_office_day",
}

// String returns the config name of the policy.
func (p Policy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// Label returns the wording shown to users.
func (p Policy) Label() string {
	switch p {
	case PTOAsOfficeDay:
		return "PTO as a day in office"
	default:
		return "PTO subtracted from workdays"
	}
}

// ParsePolicy accepts the config name or the user-facing label.
func ParsePolicy(s string) (Policy, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	for p, name := range policyNames {
		if norm == name || norm == strings.ToLower(p.Label()) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown PTO accounting policy %q (want %s or %s)",
		s, SubtractFromWorkdays, PTOAsOfficeDay)
}

// MarshalText implements encoding.TextMarshaler.
func (p Policy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Policy) UnmarshalText(text []byte) error {
	parsed, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// OfficeDaysRequired returns the office days owed for one month.
//
// The two policies round different quantities and are not equivalent:
// with 22 workdays, 10 PTO and 0.6, SubtractFromWorkdays gives
// round(7.2) = 7 while PTOAsOfficeDay gives round(13.2) - 10 = 3.
// Any value other than PTOAsOfficeDay is treated as SubtractFromWorkdays.
func OfficeDaysRequired(workdays, pto decimal.Decimal, policy Policy, requiredFraction decimal.Decimal) decimal.Decimal {
	switch policy {
	case PTOAsOfficeDay:
		return workdays.Mul(requiredFraction).RoundBank(0).Sub(pto)
	default:
		return workdays.Sub(pto).Mul(requiredFraction).RoundBank(0)
	}
}

// NetWorkdays is the workday figure the policy applies the fraction to.
func NetWorkdays(workdays, pto decimal.Decimal, policy Policy) decimal.Decimal {
	if policy == PTOAsOfficeDay {
		return workdays
	}
	return workdays.Sub(pto)
}
