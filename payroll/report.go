package payroll

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// REPORT - One row per payslip plus grand totals
// =============================================================================

// ReportRow flattens a payslip into named columns.
type ReportRow struct {
	EmployeeID   EmployeeID      `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	Branch       BranchID        `json:"branch"`
	Rate         decimal.Decimal `json:"rate"`
	DaysPresent  decimal.Decimal `json:"days_present"`

	DailyRateAmount       decimal.Decimal `json:"daily_rate_amount"`
	Allowance             decimal.Decimal `json:"allowance"`
	BasicPay              decimal.Decimal `json:"basic_pay"` // daily rate amount plus allowance
	LeavePay              decimal.Decimal `json:"leave_pay"`
	SundayPremium         decimal.Decimal `json:"sunday_premium"`
	SpecialHolidayPremium decimal.Decimal `json:"special_holiday_premium"`
	LegalHolidayPremium   decimal.Decimal `json:"legal_holiday_premium"`
	Overtime              decimal.Decimal `json:"overtime"`
	GrossPay              decimal.Decimal `json:"gross_pay"`

	SSS                 decimal.Decimal `json:"sss"`
	PhilHealth          decimal.Decimal `json:"philhealth"`
	PagIBIG             decimal.Decimal `json:"pagibig"`
	SSSSalaryLoan       decimal.Decimal `json:"sss_salary_loan"`
	SSSCalamityLoan     decimal.Decimal `json:"sss_calamity_loan"`
	PagIBIGSalaryLoan   decimal.Decimal `json:"pagibig_salary_loan"`
	PagIBIGCalamityLoan decimal.Decimal `json:"pagibig_calamity_loan"`
	OtherDeductions     decimal.Decimal `json:"other_deductions"`
	Late                decimal.Decimal `json:"late"`
	Tax                 decimal.Decimal `json:"tax"`
	TotalDeductions     decimal.Decimal `json:"total_deductions"`
	NetPay              decimal.Decimal `json:"net_pay"`

	// Signature is a blank column for the printed sheet.
	Signature string `json:"signature"`
}

// ReportTotals are the only report-level sums.
type ReportTotals struct {
	GrossPay        decimal.Decimal `json:"gross_pay"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetPay          decimal.Decimal `json:"net_pay"`
}

type Report struct {
	RunID  string       `json:"run_id"`
	Period PayPeriod    `json:"period"`
	Rows   []ReportRow  `json:"rows"`
	Totals ReportTotals `json:"totals"`
}

var namedObligations = []ObligationKind{
	ContributionSSS, ContributionPhilHealth, ContributionPagIBIG,
	LoanSSSSalary, LoanSSSCalamity, LoanPagIBIGSalary, LoanPagIBIGCalamity,
}

// NewReportRow flattens one payslip.
func NewReportRow(p Payslip) ReportRow {
	row := ReportRow{
		EmployeeID:   p.EmployeeID,
		EmployeeName: p.EmployeeName,
		Branch:       p.Branch,
		Rate:         p.DailyRate,
		DaysPresent:  p.Summary.DaysPresent,

		DailyRateAmount:       p.EarningsBy(EarningDailyRate),
		Allowance:             p.EarningsBy(EarningAllowance),
		LeavePay:              p.EarningsBy(EarningLeave),
		SundayPremium:         p.EarningsBy(EarningSundayPremium),
		SpecialHolidayPremium: p.EarningsBy(EarningSpecialHoliday),
		LegalHolidayPremium:   p.EarningsBy(EarningLegalHoliday),
		Overtime:              p.EarningsBy(EarningOvertime),
		GrossPay:              p.GrossPay,

		SSS:                 p.DeductionsBy(DeductionContribution, ContributionSSS),
		PhilHealth:          p.DeductionsBy(DeductionContribution, ContributionPhilHealth),
		PagIBIG:             p.DeductionsBy(DeductionContribution, ContributionPagIBIG),
		SSSSalaryLoan:       p.DeductionsBy(DeductionLoan, LoanSSSSalary),
		SSSCalamityLoan:     p.DeductionsBy(DeductionLoan, LoanSSSCalamity),
		PagIBIGSalaryLoan:   p.DeductionsBy(DeductionLoan, LoanPagIBIGSalary),
		PagIBIGCalamityLoan: p.DeductionsBy(DeductionLoan, LoanPagIBIGCalamity),
		Late:                p.DeductionsBy(DeductionLate, ""),
		Tax:                 p.DeductionsBy(DeductionTax, ""),
		TotalDeductions:     p.TotalDeductions,
		NetPay:              p.NetPay,
	}

	// Contributions or loans with an unrecognized tag still show up somewhere.
	named := decimal.Zero
	for _, k := range namedObligations {
		named = named.Add(p.DeductionsBy(DeductionContribution, k)).Add(p.DeductionsBy(DeductionLoan, k))
	}
	all := p.DeductionsBy(DeductionContribution, "").Add(p.DeductionsBy(DeductionLoan, ""))
	row.OtherDeductions = all.Sub(named)
	row.BasicPay = row.DailyRateAmount.Add(row.Allowance)
	return row
}

// BuildReport flattens payslips in the given order and totals gross,
// deductions and net pay.
func BuildReport(run Run, payslips []Payslip) Report {
	report := Report{
		RunID:  run.ID.String(),
		Period: run.Period,
		Rows:   make([]ReportRow, 0, len(payslips)),
		Totals: ReportTotals{GrossPay: decimal.Zero, TotalDeductions: decimal.Zero, NetPay: decimal.Zero},
	}
	for _, p := range payslips {
		row := NewReportRow(p)
		report.Rows = append(report.Rows, row)
		report.Totals.GrossPay = report.Totals.GrossPay.Add(row.GrossPay)
		report.Totals.TotalDeductions = report.Totals.TotalDeductions.Add(row.TotalDeductions)
		report.Totals.NetPay = report.Totals.NetPay.Add(row.NetPay)
	}
	return report
}
