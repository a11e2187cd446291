package accounting

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrAllowanceExceeded matches *AllowanceExceededError with errors.Is.
var ErrAllowanceExceeded = errors.New("total PTO exceeds allowance")

// AllowanceExceededError reports a PTO plan larger than the allowance.
type AllowanceExceededError struct {
	Total     decimal.Decimal
	Allowance decimal.Decimal
}

func (e *AllowanceExceededError) Error() string {
	return fmt.Sprintf("total PTO exceeds allowance: planned %s days, allowance %s days",
		e.Total.String(), e.Allowance.String())
}

func (e *AllowanceExceededError) Is(target error) bool {
	return target == ErrAllowanceExceeded
}
