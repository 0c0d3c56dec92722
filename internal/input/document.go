/*
document.go - JSON input document for a payroll run

PURPOSE:
  Carries the already-fetched facts for one run into the engine. These types
  decouple the engine's model from the file format handed over by the data
  export, so a renamed column never reaches the calculators.

LENIENT VALUES:
  - Amounts may be JSON numbers or strings. Blank or unparseable amounts
    become 0.00 (payroll.ParseAmount).
  - Dates are "2006-01-02" strings. An unparseable date becomes the zero
    date, which the engine rejects as malformed for that employee only.
  - An employee without a "facts" object is reported as missing facts.
  - Holiday kinds are matched case-insensitively ("Legal", "SpecialNonWorking",
    "special_non_working"). Any other kind fails the whole decode, since
    holidays apply to every employee.

SEE ALSO:
  - payroll/types.go: engine types produced here
  - cmd/payroll/main.go: reads the document
*/
package input

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/itselaivy/Capstone-AutoPayroll-sub000/payroll"
	"github.com/shopspring/decimal"
)

// =============================================================================
// LENIENT SCALARS
// =============================================================================

// Amount is a monetary or count value that accepts numbers and strings.
type Amount string

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	if string(data) == "null" {
		*a = ""
		return nil
	}
	*a = Amount(data)
	return nil
}

func (a Amount) Decimal() decimal.Decimal { return payroll.ParseAmount(string(a)) }

func parseDate(s string) payroll.Date {
	d, err := payroll.ParseDate(s)
	if err != nil {
		return payroll.Date{}
	}
	return d
}

// =============================================================================
// DOCUMENT
// =============================================================================

type Document struct {
	LastPayrollDate string        `json:"last_payroll_date"`
	Period          *PeriodDTO    `json:"period,omitempty"`
	Holidays        []HolidayDTO  `json:"holidays"`
	Employees       []EmployeeDTO `json:"employees"`
}

type PeriodDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Cut   string `json:"cut"`
}

type HolidayDTO struct {
	Date string `json:"date"`
	Kind string `json:"kind"`
	Name string `json:"name"`
}

type EmployeeDTO struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Branch      string          `json:"branch"`
	DailyRate   Amount          `json:"daily_rate"`
	HourlyRate  Amount          `json:"hourly_rate"`
	Allowances  []AllowanceDTO  `json:"allowances"`
	Obligations []ObligationDTO `json:"obligations"`
	Facts       *FactsDTO       `json:"facts"`
}

type AllowanceDTO struct {
	Description string `json:"description"`
	Amount      Amount `json:"amount"`
	PerDay      bool   `json:"per_day"`
}

type ObligationDTO struct {
	Kind        string  `json:"kind"`
	Description string  `json:"description"`
	Amount      Amount  `json:"amount"`
	Balance     *Amount `json:"balance,omitempty"`
}

type FactsDTO struct {
	AbsentDays    Amount          `json:"absent_days"`
	LateDeduction Amount          `json:"late_deduction"`
	Attendance    []AttendanceDTO `json:"attendance"`
	Leaves        []LeaveDTO      `json:"leaves"`
	Overtime      []OvertimeDTO   `json:"overtime"`
}

type AttendanceDTO struct {
	Date             string `json:"date"`
	Worked           bool   `json:"worked"`
	Hours            Amount `json:"hours"`
	LateMinutes      int    `json:"late_minutes"`
	UndertimeMinutes int    `json:"undertime_minutes"`
}

type LeaveDTO struct {
	Start       string `json:"start"`
	End         string `json:"end"`
	UsedCredits Amount `json:"used_credits"`
}

type OvertimeDTO struct {
	Date         string `json:"date"`
	RegularHours Amount `json:"regular_hours"`
	NightHours   Amount `json:"night_hours"`
	Rate         Amount `json:"rate"`
}

// Decode reads a document.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode input document: %w", err)
	}
	for i, h := range doc.Holidays {
		kind, ok := payroll.ParseHolidayKind(h.Kind)
		if !ok {
			return nil, fmt.Errorf("decode input document: holiday %s %q: unknown kind %q", h.Date, h.Name, h.Kind)
		}
		doc.Holidays[i].Kind = string(kind)
	}
	return &doc, nil
}

// =============================================================================
// CONVERSION
// =============================================================================

func (d *Document) Anchor() payroll.Date { return parseDate(d.LastPayrollDate) }

func (d *Document) HolidayFacts() []payroll.HolidayFact {
	out := make([]payroll.HolidayFact, 0, len(d.Holidays))
	for _, h := range d.Holidays {
		out = append(out, payroll.HolidayFact{
			Date: parseDate(h.Date),
			Kind: payroll.HolidayKind(h.Kind),
			Name: h.Name,
		})
	}
	return out
}

// EmployeeSet returns employees in document order plus the facts of every
// employee that has a facts object.
func (d *Document) EmployeeSet() ([]payroll.Employee, map[payroll.EmployeeID]payroll.EmployeeFacts) {
	employees := make([]payroll.Employee, 0, len(d.Employees))
	facts := make(map[payroll.EmployeeID]payroll.EmployeeFacts, len(d.Employees))
	for _, e := range d.Employees {
		emp := e.toEmployee()
		employees = append(employees, emp)
		if e.Facts != nil {
			facts[emp.ID] = e.Facts.toFacts(emp.ID)
		}
	}
	return employees, facts
}

func (e EmployeeDTO) toEmployee() payroll.Employee {
	emp := payroll.Employee{
		ID:         payroll.EmployeeID(e.ID),
		Name:       e.Name,
		Branch:     payroll.BranchID(e.Branch),
		DailyRate:  e.DailyRate.Decimal(),
		HourlyRate: e.HourlyRate.Decimal(),
	}
	for _, a := range e.Allowances {
		emp.Allowances = append(emp.Allowances, payroll.Allowance{
			Description: a.Description,
			Amount:      a.Amount.Decimal(),
			PerDay:      a.PerDay,
		})
	}
	for _, o := range e.Obligations {
		ob := payroll.Obligation{
			Kind:        payroll.ObligationKind(o.Kind),
			Description: o.Description,
			Amount:      o.Amount.Decimal(),
		}
		if o.Balance != nil {
			b := o.Balance.Decimal()
			ob.Balance = &b
		}
		emp.Obligations = append(emp.Obligations, ob)
	}
	return emp
}

func (f FactsDTO) toFacts(id payroll.EmployeeID) payroll.EmployeeFacts {
	facts := payroll.EmployeeFacts{
		AbsentDays:    f.AbsentDays.Decimal(),
		LateDeduction: f.LateDeduction.Decimal(),
	}
	for _, a := range f.Attendance {
		facts.Attendance = append(facts.Attendance, payroll.AttendanceFact{
			EmployeeID:       id,
			Date:             parseDate(a.Date),
			Worked:           a.Worked,
			Hours:            a.Hours.Decimal(),
			LateMinutes:      a.LateMinutes,
			UndertimeMinutes: a.UndertimeMinutes,
		})
	}
	for _, l := range f.Leaves {
		facts.Leaves = append(facts.Leaves, payroll.LeaveFact{
			EmployeeID:  id,
			Start:       parseDate(l.Start),
			End:         parseDate(l.End),
			UsedCredits: l.UsedCredits.Decimal(),
		})
	}
	for _, o := range f.Overtime {
		facts.Overtime = append(facts.Overtime, payroll.OvertimeFact{
			EmployeeID:   id,
			Date:         parseDate(o.Date),
			RegularHours: o.RegularHours.Decimal(),
			NightHours:   o.NightHours.Decimal(),
			Rate:         o.Rate.Decimal(),
		})
	}
	return facts
}
