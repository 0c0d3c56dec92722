/*
earnings.go - Earnings lines and gross pay

RULES (per employee, per period):
  dailyRateAmount = dailyRate * daysPresent
  allowances      = perDay * countedDays   (countedDays = present + leave + holidays)
                  | flat amount            (per-period allowances)
  basicPay        = dailyRateAmount + allowances
  leavePay        = dailyRate * leaveDaysUsed
  overtimePay     = regularHours * rate * 1.25 + nightHours * rate * 1.375
  sunday          = hours * hourly * 1.30, overtime also 1.30
  special holiday = hours * hourly * 1.30, overtime also 1.30
  legal holiday   = hours * hourly * 2.00, overtime also 2.00
  legal holiday, not worked = dailyRate * 1.00
  grossPay        = basicPay + leavePay + overtimePay + premiums

ROUNDING:
  Every line is rounded to two places on its own. Totals are sums of the
  rounded lines, so grossPay always equals the sum of the itemized lines.
  Zero lines are left off the payslip.
*/
package payroll

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Earnings is the itemized result of CalculateEarnings.
type Earnings struct {
	Lines []EarningsLine

	DailyRateAmount decimal.Decimal
	AllowanceAmount decimal.Decimal
	BasicPay        decimal.Decimal
	LeavePay        decimal.Decimal
	OvertimePay     decimal.Decimal
	SundayPremium   decimal.Decimal
	HolidayPremium  decimal.Decimal
	GrossPay        decimal.Decimal
}

// lineBuilder rounds, records and totals lines in one place.
type lineBuilder struct {
	lines  []EarningsLine
	totals map[EarningCategory]decimal.Decimal
}

func (b *lineBuilder) add(c EarningCategory, description string, raw decimal.Decimal) {
	amount := RoundMoney(raw)
	if amount.IsZero() {
		return
	}
	b.lines = append(b.lines, EarningsLine{Category: c, Description: description, Amount: amount})
	b.totals[c] = b.totals[c].Add(amount)
}

// premiumTotals accumulates unrounded hours and pay for one premium line.
type premiumTotals struct {
	hours decimal.Decimal
	pay   decimal.Decimal
}

func (p *premiumTotals) add(hours, rate, multiplier decimal.Decimal) {
	p.hours = p.hours.Add(hours)
	p.pay = p.pay.Add(hours.Mul(rate).Mul(multiplier))
}

// HourlyRate returns the employee's explicit hourly rate, or the daily rate
// spread over the engine's hours per day.
func (e *Engine) HourlyRate(emp Employee) decimal.Decimal {
	if emp.HourlyRate.IsPositive() {
		return emp.HourlyRate
	}
	return emp.DailyRate.Div(e.hoursPerDay())
}

// CalculateEarnings converts an attendance summary into earnings lines.
func (e *Engine) CalculateEarnings(emp Employee, s AttendanceSummary) Earnings {
	b := &lineBuilder{totals: make(map[EarningCategory]decimal.Decimal)}
	hourly := e.HourlyRate(emp)

	// Basic pay
	b.add(EarningDailyRate,
		fmt.Sprintf("Daily Rate (%s days @ %s)", s.DaysPresent, emp.DailyRate.StringFixed(MoneyPlaces)),
		emp.DailyRate.Mul(s.DaysPresent))

	counted := s.CountedDays()
	for _, a := range emp.Allowances {
		if a.PerDay {
			b.add(EarningAllowance, fmt.Sprintf("%s (%s days)", a.Description, counted), a.Amount.Mul(counted))
			continue
		}
		b.add(EarningAllowance, a.Description, a.Amount)
	}

	b.add(EarningLeave, fmt.Sprintf("Leave Pay (%s days)", s.LeaveDaysUsed), emp.DailyRate.Mul(s.LeaveDaysUsed))

	// Overtime, split by day kind
	var regularOT, nightOT premiumTotals
	premiumOT := make(map[DayKind]*premiumTotals)
	for _, o := range s.Overtime {
		rate := hourly
		if o.Rate.IsPositive() {
			rate = o.Rate
		}
		if o.Kind == DayRegular {
			regularOT.add(o.RegularHours, rate, RegularOvertimeMultiplier)
			nightOT.add(o.NightHours, rate, NightOvertimeMultiplier)
			continue
		}
		t, ok := premiumOT[o.Kind]
		if !ok {
			t = &premiumTotals{}
			premiumOT[o.Kind] = t
		}
		t.add(o.RegularHours.Add(o.NightHours), rate, dayMultiplier(o.Kind))
	}
	b.add(EarningOvertime, fmt.Sprintf("Regular Overtime (%s hrs)", regularOT.hours), regularOT.pay)
	b.add(EarningOvertime, fmt.Sprintf("Night Differential Overtime (%s hrs)", nightOT.hours), nightOT.pay)

	// Premium work
	worked := make(map[DayKind]*premiumTotals)
	for _, p := range s.PremiumDays {
		t, ok := worked[p.Kind]
		if !ok {
			t = &premiumTotals{}
			worked[p.Kind] = t
		}
		t.add(p.Hours, hourly, dayMultiplier(p.Kind))
	}
	for _, kind := range []DayKind{DaySunday, DaySpecialHoliday, DayLegalHoliday} {
		category, label := premiumCategory(kind)
		if t, ok := worked[kind]; ok {
			b.add(category, fmt.Sprintf("%s (%s hrs)", label, t.hours), t.pay)
		}
		if t, ok := premiumOT[kind]; ok {
			b.add(category, fmt.Sprintf("%s Overtime (%s hrs)", label, t.hours), t.pay)
		}
	}

	if n := len(s.UnworkedLegalHolidays); n > 0 {
		b.add(EarningLegalHoliday, fmt.Sprintf("Legal Holiday Pay (%d days, not worked)", n),
			emp.DailyRate.Mul(decimal.NewFromInt(int64(n))))
	}

	out := Earnings{
		Lines:           b.lines,
		DailyRateAmount: b.totals[EarningDailyRate],
		AllowanceAmount: b.totals[EarningAllowance],
		LeavePay:        b.totals[EarningLeave],
		OvertimePay:     b.totals[EarningOvertime],
		SundayPremium:   b.totals[EarningSundayPremium],
		HolidayPremium:  b.totals[EarningSpecialHoliday].Add(b.totals[EarningLegalHoliday]),
	}
	out.BasicPay = out.DailyRateAmount.Add(out.AllowanceAmount)
	out.GrossPay = SumMoney(out.BasicPay, out.LeavePay, out.OvertimePay, out.SundayPremium, out.HolidayPremium)
	return out
}

func dayMultiplier(k DayKind) decimal.Decimal {
	switch k {
	case DayLegalHoliday:
		return LegalHolidayMultiplier
	case DaySpecialHoliday:
		return SpecialHolidayMultiplier
	case DaySunday:
		return SundayMultiplier
	}
	return decimal.NewFromInt(1)
}

func premiumCategory(k DayKind) (EarningCategory, string) {
	switch k {
	case DayLegalHoliday:
		return EarningLegalHoliday, "Legal Holiday Premium"
	case DaySpecialHoliday:
		return EarningSpecialHoliday, "Special Holiday Premium"
	}
	return EarningSundayPremium, "Sunday Premium"
}
