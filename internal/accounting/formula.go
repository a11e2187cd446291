package accounting

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	exampleWorkdays = decimal.NewFromInt(22)
	examplePTO      = decimal.NewFromInt(10)
)

// FormulaDescription explains the active policy in words with a worked
// example. It is part of the advisory prompt so the model applies the same
// arithmetic.
func FormulaDescription(policy Policy, requiredFraction decimal.Decimal) string {
	f := requiredFraction.String()
	switch policy {
	case PTOAsOfficeDay:
		result := exampleWorkdays.Mul(requiredFraction).Sub(examplePTO)
		return fmt.Sprintf("The formula of required office day is: [Number of workday * %s - PTO days]\n\n"+
			"For example, if there are 22 work days, and I take 10 PTO, then required office day is 22*%s - 10 = %s days",
			f, f, result.String())
	default:
		result := exampleWorkdays.Sub(examplePTO).Mul(requiredFraction)
		return fmt.Sprintf("The formula of required office day is: [(Number of workday - PTO days) * %s]\n\n"+
			"For example, if there are 22 work days, and I take 10 PTO, then required office day is (22-10)*%s = %s days",
			f, f, result.String())
	}
}
