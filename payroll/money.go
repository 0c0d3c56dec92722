package payroll

import (
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// MONEY - Two-decimal fixed point amounts
// =============================================================================

// MoneyPlaces is the number of decimal places kept on every line item.
const MoneyPlaces = 2

var (
	// Pay multipliers.
	RegularOvertimeMultiplier = decimal.RequireFromString("1.25")
	NightOvertimeMultiplier   = decimal.RequireFromString("1.375")
	SundayMultiplier          = decimal.RequireFromString("1.30")
	SpecialHolidayMultiplier  = decimal.RequireFromString("1.30")
	LegalHolidayMultiplier    = decimal.RequireFromString("2.00")
)

// RoundMoney rounds to two places, half away from zero.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// ParseAmount reads a monetary amount from text. Blank or unparseable input
// is 0.00; currency symbols, thousands separators and surrounding spaces are
// tolerated.
func ParseAmount(s string) decimal.Decimal {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.TrimPrefix(cleaned, "₱")
	cleaned = strings.TrimPrefix(cleaned, "PHP")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// SumMoney adds amounts without further rounding.
func SumMoney(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
