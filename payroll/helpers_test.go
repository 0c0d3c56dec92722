package payroll_test

import (
	"testing"
	"time"

	"github.com/itselaivy/Capstone-AutoPayroll-sub000/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func date(year int, month time.Month, day int) payroll.Date {
	return payroll.NewDate(year, month, day)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func fixedClock(year int, month time.Month, day int) func() time.Time {
	return func() time.Time { return time.Date(year, month, day, 12, 0, 0, 0, time.UTC) }
}

// mayPeriod is Monday 2025-04-28 through Saturday 2025-05-10.
func mayPeriod() payroll.PayPeriod {
	return payroll.PayPeriod{
		Start: date(2025, time.April, 28),
		End:   date(2025, time.May, 10),
		Cut:   payroll.CutFirst,
	}
}

func testEngine() *payroll.Engine {
	return payroll.NewEngine()
}

// clerk earns 500.00/day (62.50/hour) with a 50.00/day transport allowance.
func clerk(id string) payroll.Employee {
	return payroll.Employee{
		ID:        payroll.EmployeeID(id),
		Name:      "Clerk " + id,
		Branch:    "main",
		DailyRate: dec("500.00"),
		Allowances: []payroll.Allowance{
			{Description: "Transport Allowance", Amount: dec("50.00"), PerDay: true},
		},
	}
}

func assertMoney(t *testing.T, expected string, actual decimal.Decimal, label string) {
	t.Helper()
	assert.True(t, dec(expected).Equal(actual), "%s: expected %s, got %s", label, expected, actual)
}
