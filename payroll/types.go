/*
Package payroll provides the payroll computation engine.

PURPOSE:
  Turns already-fetched employee, attendance, leave, holiday, overtime and
  contribution records into payslips and a payroll report for one pay period.
  The engine performs no I/O: callers fetch the facts, the engine computes.

KEY CONCEPTS IN THIS FILE (types.go):
  - Employee: rate, allowances and deduction obligations snapshot
  - Facts: attendance, leave, holiday and overtime records for a period
  - PayPeriod: the resolved 13-day / 12-working-day window
  - EarningsLine / DeductionLine: itemized payslip lines

PIPELINE:
  Resolver.Validate / ResolveCanonicalPeriod  ->  PayPeriod
  Aggregate(...)                              ->  AttendanceSummary
  CalculateEarnings / CalculateDeductions     ->  lines + totals
  Assemble / AssembleBulk                     ->  Payslip(s)
  BuildReport                                 ->  Report

SEE ALSO:
  - period.go: period resolution and validation
  - earnings.go: pay-rate rules
  - payslip.go: single and bulk assembly
*/
package payroll

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type EmployeeID string
type BranchID string

// =============================================================================
// EMPLOYEE - Read-only snapshot from the employee directory
// =============================================================================

type Employee struct {
	ID     EmployeeID
	Name   string
	Branch BranchID

	DailyRate decimal.Decimal
	// HourlyRate overrides DailyRate / hours-per-day when positive.
	HourlyRate decimal.Decimal

	Allowances  []Allowance
	Obligations []Obligation
}

// Allowance is paid per counted day when PerDay is set, otherwise once per period.
type Allowance struct {
	Description string
	Amount      decimal.Decimal
	PerDay      bool
}

// ObligationKind tags a contribution or loan amortization.
type ObligationKind string

const (
	ContributionSSS        ObligationKind = "sss"
	ContributionPhilHealth ObligationKind = "philhealth"
	ContributionPagIBIG    ObligationKind = "pagibig"

	LoanSSSSalary       ObligationKind = "sss_salary_loan"
	LoanSSSCalamity     ObligationKind = "sss_calamity_loan"
	LoanPagIBIGSalary   ObligationKind = "pagibig_salary_loan"
	LoanPagIBIGCalamity ObligationKind = "pagibig_calamity_loan"
)

var obligationLabels = map[ObligationKind]string{
	ContributionSSS:        "SSS Contribution",
	ContributionPhilHealth: "PhilHealth Contribution",
	ContributionPagIBIG:    "Pag-IBIG Contribution",
	LoanSSSSalary:          "SSS Salary Loan",
	LoanSSSCalamity:        "SSS Calamity Loan",
	LoanPagIBIGSalary:      "Pag-IBIG Salary Loan",
	LoanPagIBIGCalamity:    "Pag-IBIG Calamity Loan",
}

// IsLoan reports whether the obligation is a loan amortization rather than a
// statutory contribution.
func (k ObligationKind) IsLoan() bool {
	switch k {
	case LoanSSSSalary, LoanSSSCalamity, LoanPagIBIGSalary, LoanPagIBIGCalamity:
		return true
	}
	return false
}

// Label returns the display label, falling back to the raw tag.
func (k ObligationKind) Label() string {
	if l, ok := obligationLabels[k]; ok {
		return l
	}
	return string(k)
}

// Obligation is one active contribution or loan for the period. Amount is
// taken as supplied; the engine never recomputes contribution schedules.
type Obligation struct {
	Kind        ObligationKind
	Description string // optional override of Kind.Label()
	Amount      decimal.Decimal
	Balance     *decimal.Decimal // remaining loan balance, if known
}

// =============================================================================
// FACTS - Raw inputs for one period
// =============================================================================

type AttendanceFact struct {
	EmployeeID       EmployeeID
	Date             Date
	Worked           bool
	Hours            decimal.Decimal // zero means a full day when Worked
	LateMinutes      int
	UndertimeMinutes int
}

// LeaveFact counts toward a period only when [Start, End] lies entirely
// inside it.
type LeaveFact struct {
	EmployeeID  EmployeeID
	Start       Date
	End         Date
	UsedCredits decimal.Decimal
}

type HolidayKind string

const (
	HolidayLegal             HolidayKind = "legal"
	HolidaySpecialNonWorking HolidayKind = "special_non_working"
)

func (k HolidayKind) Valid() bool {
	return k == HolidayLegal || k == HolidaySpecialNonWorking
}

// ParseHolidayKind accepts "legal" and "special_non_working" in any case,
// with or without separators ("SpecialNonWorking", "special non-working").
func ParseHolidayKind(s string) (HolidayKind, bool) {
	folded := strings.Map(func(r rune) rune {
		switch r {
		case '_', '-', ' ':
			return -1
		}
		return unicode.ToLower(r)
	}, s)
	switch folded {
	case "legal":
		return HolidayLegal, true
	case "specialnonworking":
		return HolidaySpecialNonWorking, true
	}
	return HolidayKind(s), false
}

// HolidayFact is organization-wide.
type HolidayFact struct {
	Date Date
	Kind HolidayKind
	Name string
}

type OvertimeFact struct {
	EmployeeID   EmployeeID
	Date         Date
	RegularHours decimal.Decimal
	NightHours   decimal.Decimal
	Rate         decimal.Decimal // hourly rate; employee rate when zero
}

// EmployeeFacts groups every per-employee input for one period.
type EmployeeFacts struct {
	// AbsentDays is derived upstream and taken as given.
	AbsentDays decimal.Decimal
	Attendance []AttendanceFact
	Leaves     []LeaveFact
	Overtime   []OvertimeFact
	// LateDeduction is the policy amount for the period's late and
	// undertime minutes.
	LateDeduction decimal.Decimal
}

// =============================================================================
// PAY PERIOD
// =============================================================================

type Cut string

const (
	CutFirst  Cut = "first"
	CutSecond Cut = "second"
)

func (c Cut) Valid() bool { return c == CutFirst || c == CutSecond }

const (
	PeriodCalendarDays = 13
	PeriodWorkingDays  = 12
	// SundayOffset is the 0-indexed day of the period that must be a Sunday.
	SundayOffset = 6
)

// PayPeriod is a resolved pay window. Build one with ResolveCanonicalPeriod
// or Resolver.Validate.
type PayPeriod struct {
	Start Date `json:"start"`
	End   Date `json:"end"`
	Cut   Cut  `json:"cut"`
}

// Contains returns true if d is within [Start, End].
func (p PayPeriod) Contains(d Date) bool {
	return d.AfterOrEqual(p.Start) && d.BeforeOrEqual(p.End)
}

// ContainsRange returns true if [start, end] lies entirely inside the period.
func (p PayPeriod) ContainsRange(start, end Date) bool {
	return p.Contains(start) && p.Contains(end) && !end.Before(start)
}

// Days returns every calendar day of the period.
func (p PayPeriod) Days() []Date {
	var days []Date
	for d := p.Start; d.BeforeOrEqual(p.End); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}

func (p PayPeriod) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "] " + string(p.Cut)
}

// =============================================================================
// LINES
// =============================================================================

type EarningCategory string

const (
	EarningDailyRate      EarningCategory = "daily_rate"
	EarningAllowance      EarningCategory = "allowance"
	EarningLeave          EarningCategory = "leave"
	EarningOvertime       EarningCategory = "overtime"
	EarningSundayPremium  EarningCategory = "sunday_premium"
	EarningSpecialHoliday EarningCategory = "special_holiday"
	EarningLegalHoliday   EarningCategory = "legal_holiday"
)

type EarningsLine struct {
	Category    EarningCategory `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

type DeductionCategory string

const (
	DeductionContribution DeductionCategory = "contribution"
	DeductionLoan         DeductionCategory = "loan"
	DeductionLate         DeductionCategory = "late"
	DeductionTax          DeductionCategory = "tax"
)

type DeductionLine struct {
	Category    DeductionCategory `json:"category"`
	Kind        ObligationKind    `json:"kind,omitempty"` // contributions and loans only
	Description string            `json:"description"`
	Amount      decimal.Decimal   `json:"amount"`
	Balance     *decimal.Decimal  `json:"balance,omitempty"`
}

// =============================================================================
// PAYSLIP
// =============================================================================

// Payslip is built once per run and never mutated afterwards.
type Payslip struct {
	RunID        uuid.UUID       `json:"run_id"`
	EmployeeID   EmployeeID      `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	Branch       BranchID        `json:"branch"`
	Period       PayPeriod       `json:"period"`
	DailyRate    decimal.Decimal `json:"daily_rate"`

	Summary    AttendanceSummary `json:"summary"`
	Earnings   []EarningsLine    `json:"earnings"`
	Deductions []DeductionLine   `json:"deductions"`

	GrossPay        decimal.Decimal `json:"gross_pay"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetPay          decimal.Decimal `json:"net_pay"`
}

// EarningsBy sums earnings lines of one category.
func (p Payslip) EarningsBy(c EarningCategory) decimal.Decimal {
	total := decimal.Zero
	for _, l := range p.Earnings {
		if l.Category == c {
			total = total.Add(l.Amount)
		}
	}
	return total
}

// DeductionsBy sums deduction lines of one obligation kind, or of one
// category when kind is empty.
func (p Payslip) DeductionsBy(c DeductionCategory, kind ObligationKind) decimal.Decimal {
	total := decimal.Zero
	for _, l := range p.Deductions {
		if l.Category != c {
			continue
		}
		if kind != "" && l.Kind != kind {
			continue
		}
		total = total.Add(l.Amount)
	}
	return total
}
