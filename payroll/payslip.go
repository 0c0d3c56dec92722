/*
payslip.go - Payslip assembly, single and bulk

PURPOSE:
  Combines earnings and deductions into an immutable Payslip:
    grossPay        = sum(earnings lines)
    totalDeductions = sum(deduction lines)
    netPay          = grossPay - totalDeductions   (never clamped)

  A negative net pay is valid output. It signals deductions exceeding
  earnings and must reach the operator as-is.

BULK ASSEMBLY:
  AssembleBulk computes every employee independently on a bounded worker
  pool. Output order always matches input order. An employee with missing
  or malformed facts is skipped with an EmployeeAggregationWarning; the rest
  of the run continues. Nothing is shared between employees.
*/
package payroll

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultHoursPerDay = 8
	DefaultWorkers     = 4
)

// =============================================================================
// ENGINE
// =============================================================================

// Engine holds the few knobs the computation needs. The zero value is usable.
type Engine struct {
	HoursPerDay decimal.Decimal
	Workers     int
	Logger      logrus.FieldLogger
}

func NewEngine() *Engine {
	return &Engine{
		HoursPerDay: decimal.NewFromInt(DefaultHoursPerDay),
		Workers:     DefaultWorkers,
		Logger:      logrus.StandardLogger(),
	}
}

func (e *Engine) hoursPerDay() decimal.Decimal {
	if e.HoursPerDay.IsPositive() {
		return e.HoursPerDay
	}
	return decimal.NewFromInt(DefaultHoursPerDay)
}

func (e *Engine) workers() int {
	if e.Workers > 0 {
		return e.Workers
	}
	return DefaultWorkers
}

func (e *Engine) logger() logrus.FieldLogger {
	if e.Logger != nil {
		return e.Logger
	}
	return logrus.StandardLogger()
}

// =============================================================================
// SINGLE PAYSLIP
// =============================================================================

// AssemblePayslip builds a payslip from already-computed lines.
func AssemblePayslip(emp Employee, period PayPeriod, earnings []EarningsLine, deductions []DeductionLine) Payslip {
	gross := decimal.Zero
	for _, l := range earnings {
		gross = gross.Add(l.Amount)
	}
	total := decimal.Zero
	for _, l := range deductions {
		total = total.Add(l.Amount)
	}
	return Payslip{
		EmployeeID:      emp.ID,
		EmployeeName:    emp.Name,
		Branch:          emp.Branch,
		Period:          period,
		DailyRate:       emp.DailyRate,
		Earnings:        earnings,
		Deductions:      deductions,
		GrossPay:        gross,
		TotalDeductions: total,
		NetPay:          gross.Sub(total),
	}
}

// Compute runs the whole pipeline for one employee.
func (e *Engine) Compute(run Run, emp Employee, facts EmployeeFacts, holidays []HolidayFact) (Payslip, error) {
	if err := ValidateFacts(emp, facts); err != nil {
		return Payslip{}, err
	}

	summary := e.Aggregate(emp, run.Period, facts, holidays)
	earnings := e.CalculateEarnings(emp, summary)
	deductions := CalculateDeductions(emp, summary, facts)

	slip := AssemblePayslip(emp, run.Period, earnings.Lines, deductions.Lines)
	slip.RunID = run.ID
	slip.Summary = summary
	return slip, nil
}

// ValidateFacts rejects fact sets the engine cannot compute from.
func ValidateFacts(emp Employee, facts EmployeeFacts) error {
	malformed := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrMalformedFacts, fmt.Sprintf(format, args...))
	}

	if emp.ID == "" {
		return malformed("employee has no identifier")
	}
	if !emp.DailyRate.IsPositive() {
		return malformed("daily rate %s is not positive", emp.DailyRate)
	}
	if facts.AbsentDays.IsNegative() {
		return malformed("absent days %s is negative", facts.AbsentDays)
	}
	for _, a := range facts.Attendance {
		switch {
		case !belongsTo(a.EmployeeID, emp.ID):
			return malformed("attendance on %s belongs to %s", a.Date, a.EmployeeID)
		case a.Date.IsZero():
			return malformed("attendance without a date")
		case a.Hours.IsNegative() || a.LateMinutes < 0 || a.UndertimeMinutes < 0:
			return malformed("attendance on %s has negative hours or minutes", a.Date)
		}
	}
	for _, l := range facts.Leaves {
		switch {
		case !belongsTo(l.EmployeeID, emp.ID):
			return malformed("leave from %s belongs to %s", l.Start, l.EmployeeID)
		case l.Start.IsZero() || l.End.IsZero():
			return malformed("leave without dates")
		case l.End.Before(l.Start):
			return malformed("leave ends %s before it starts %s", l.End, l.Start)
		case l.UsedCredits.IsNegative():
			return malformed("leave from %s uses negative credits", l.Start)
		}
	}
	for _, o := range facts.Overtime {
		switch {
		case !belongsTo(o.EmployeeID, emp.ID):
			return malformed("overtime on %s belongs to %s", o.Date, o.EmployeeID)
		case o.Date.IsZero():
			return malformed("overtime without a date")
		case o.RegularHours.IsNegative() || o.NightHours.IsNegative():
			return malformed("overtime on %s has negative hours", o.Date)
		}
	}
	return nil
}

// =============================================================================
// BULK
// =============================================================================

// BulkResult is the outcome of one bulk run.
type BulkResult struct {
	Run      Run
	Payslips []Payslip
	Warnings []*EmployeeAggregationWarning
}

// AssembleBulk computes a payslip for every employee in order. Employees
// without usable facts are skipped and reported in Warnings.
func (e *Engine) AssembleBulk(run Run, employees []Employee, factsByEmployee map[EmployeeID]EmployeeFacts, holidays []HolidayFact) BulkResult {
	slips := make([]*Payslip, len(employees))
	warnings := make([]*EmployeeAggregationWarning, len(employees))

	var g errgroup.Group
	g.SetLimit(e.workers())
	for i, emp := range employees {
		i, emp := i, emp
		g.Go(func() error {
			slip, err := e.computeIsolated(run, emp, factsByEmployee, holidays)
			if err != nil {
				warnings[i] = &EmployeeAggregationWarning{EmployeeID: emp.ID, Err: err}
				return nil
			}
			slips[i] = &slip
			return nil
		})
	}
	// Workers never return errors; failures are per-employee warnings.
	_ = g.Wait()

	result := BulkResult{Run: run}
	log := e.logger().WithField("run_id", run.ID.String())
	for i := range employees {
		if w := warnings[i]; w != nil {
			log.WithField("employee_id", string(w.EmployeeID)).WithError(w.Err).Warn("Skipping employee")
			result.Warnings = append(result.Warnings, w)
			continue
		}
		result.Payslips = append(result.Payslips, *slips[i])
	}
	log.WithFields(logrus.Fields{
		"period":   run.Period.String(),
		"payslips": len(result.Payslips),
		"skipped":  len(result.Warnings),
	}).Info("Payroll run assembled")
	return result
}

func (e *Engine) computeIsolated(run Run, emp Employee, factsByEmployee map[EmployeeID]EmployeeFacts, holidays []HolidayFact) (slip Payslip, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrMalformedFacts, r)
		}
	}()

	facts, ok := factsByEmployee[emp.ID]
	if !ok {
		return Payslip{}, ErrMissingFacts
	}
	return e.Compute(run, emp, facts, holidays)
}
