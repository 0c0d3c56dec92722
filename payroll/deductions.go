package payroll

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Deductions is the itemized result of CalculateDeductions.
type Deductions struct {
	Lines []DeductionLine

	Contributions   decimal.Decimal
	Loans           decimal.Decimal
	Late            decimal.Decimal
	Tax             decimal.Decimal
	TotalDeductions decimal.Decimal
}

// CalculateDeductions lists the employee's contributions and loans as
// supplied, the late/undertime amount, and a zero withholding tax line.
//
// The late amount comes from facts.LateDeduction; minutes only appear in the
// label.
func CalculateDeductions(emp Employee, s AttendanceSummary, facts EmployeeFacts) Deductions {
	out := Deductions{}

	for _, o := range emp.Obligations {
		amount := RoundMoney(o.Amount)
		label := o.Description
		if label == "" {
			label = o.Kind.Label()
		}
		line := DeductionLine{Kind: o.Kind, Description: label, Amount: amount, Balance: o.Balance}
		if o.Kind.IsLoan() {
			line.Category = DeductionLoan
			out.Loans = out.Loans.Add(amount)
		} else {
			line.Category = DeductionContribution
			out.Contributions = out.Contributions.Add(amount)
		}
		out.Lines = append(out.Lines, line)
	}

	out.Late = RoundMoney(facts.LateDeduction)
	if minutes := s.LateMinutes + s.UndertimeMinutes; minutes > 0 || !out.Late.IsZero() {
		out.Lines = append(out.Lines, DeductionLine{
			Category:    DeductionLate,
			Description: fmt.Sprintf("Late/Undertime (%d mins)", minutes),
			Amount:      out.Late,
		})
	}

	// Withholding is not computed; the line is kept at zero.
	out.Tax = decimal.Zero
	out.Lines = append(out.Lines, DeductionLine{
		Category:    DeductionTax,
		Description: "Withholding Tax",
		Amount:      out.Tax,
	})

	out.TotalDeductions = SumMoney(out.Contributions, out.Loans, out.Late, out.Tax)
	return out
}
