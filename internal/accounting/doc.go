// Package accounting turns a date range and a holiday set into per-month
// workday counts and the number of office days an employee must attend
// after planned PTO.
//
// Day counts that can be fractional (PTO is planned in half days, office
// requirements are a fraction of workdays) are decimal.Decimal so that the
// rounding step is exact. Office-day requirements are rounded half to
// even: 2.5 becomes 2 and 3.5 becomes 4.
//
// Every function here is pure. Inputs outside the documented domain
// (negative PTO, end before start) are the caller's to reject.
package accounting
