/*
errors.go - Error types for the payroll engine

ERROR CATEGORIES:
  1. Period errors - an operator-chosen pay period breaks the cadence rules
  2. Aggregation warnings - one employee's facts are missing or malformed

Period errors are returned to the caller. Aggregation warnings never abort a
bulk run: the employee is skipped and the warning collected.
*/
package payroll

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	ErrInvalidRange         = errors.New("invalid period: end before start")
	ErrFutureDate           = errors.New("invalid period: date is in the future")
	ErrWrongSpan            = errors.New("invalid period: must span exactly 13 calendar days")
	ErrWrongWorkingDayCount = errors.New("invalid period: must contain exactly 12 working days")
	ErrSeventhDayNotSunday  = errors.New("invalid period: 7th day must be a Sunday")
	ErrInvalidCut           = errors.New("invalid period: cut must be first or second")

	ErrMissingFacts   = errors.New("employee facts missing")
	ErrMalformedFacts = errors.New("employee facts malformed")
)

// =============================================================================
// PERIOD ERROR
// =============================================================================

type PeriodErrorKind string

const (
	PeriodInvalidRange         PeriodErrorKind = "InvalidRange"
	PeriodFutureDate           PeriodErrorKind = "FutureDate"
	PeriodWrongSpan            PeriodErrorKind = "WrongSpan"
	PeriodWrongWorkingDayCount PeriodErrorKind = "WrongWorkingDayCount"
	PeriodSeventhDayNotSunday  PeriodErrorKind = "SeventhDayNotSunday"
	PeriodInvalidCut           PeriodErrorKind = "InvalidCut"
)

var periodSentinels = map[PeriodErrorKind]error{
	PeriodInvalidRange:         ErrInvalidRange,
	PeriodFutureDate:           ErrFutureDate,
	PeriodWrongSpan:            ErrWrongSpan,
	PeriodWrongWorkingDayCount: ErrWrongWorkingDayCount,
	PeriodSeventhDayNotSunday:  ErrSeventhDayNotSunday,
	PeriodInvalidCut:           ErrInvalidCut,
}

// PeriodError reports why an operator-chosen period was rejected.
// Suggestion is the nearest canonical period; it is advisory only.
type PeriodError struct {
	Kind       PeriodErrorKind
	Start      Date
	End        Date
	Suggestion *PayPeriod
}

func (e *PeriodError) Error() string {
	msg := fmt.Sprintf("%v (%s to %s)", e.Unwrap(), e.Start, e.End)
	if e.Suggestion != nil {
		msg += fmt.Sprintf("; nearest valid period is %s to %s", e.Suggestion.Start, e.Suggestion.End)
	}
	return msg
}

func (e *PeriodError) Unwrap() error {
	return periodSentinels[e.Kind]
}

// =============================================================================
// AGGREGATION WARNING
// =============================================================================

// EmployeeAggregationWarning records an employee skipped during bulk assembly.
type EmployeeAggregationWarning struct {
	EmployeeID EmployeeID
	Err        error
}

func (w *EmployeeAggregationWarning) Error() string {
	return fmt.Sprintf("employee %s skipped: %v", w.EmployeeID, w.Err)
}

func (w *EmployeeAggregationWarning) Unwrap() error { return w.Err }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsPeriodError returns true if err is a rejected pay period.
func IsPeriodError(err error) bool {
	var pe *PeriodError
	return errors.As(err, &pe)
}

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return IsPeriodError(err) ||
		errors.Is(err, ErrMissingFacts) ||
		errors.Is(err, ErrMalformedFacts)
}
