/*
attendance.go - Reduce raw facts to per-period counts

PURPOSE:
  Aggregate turns one employee's attendance, leave, holiday and overtime
  facts into an AttendanceSummary for a resolved period. Only facts dated
  inside the period count. Aggregation is idempotent: the same facts always
  produce the same summary, and duplicate dates are counted once.

COUNTS:
  expectedWorkingDays = CountWorkingDays(period.Start, period.End)
  leaveDaysUsed       = sum of UsedCredits for leaves fully inside the period
  holidayDays         = distinct holiday dates inside the period (inclusive),
                        counting only legal and special non-working kinds
  daysPresent         = expected - absent - leave - holidays   (not clamped)

Partially overlapping leaves are excluded, not pro-rated.

PREMIUM DAYS:
  A worked date is classified once: legal holiday, then special holiday,
  then Sunday. Overtime on such a date is rated at the day's multiplier by
  the earnings calculator instead of the overtime tiers.
*/
package payroll

import (
	"sort"

	"github.com/shopspring/decimal"
)

// DayKind classifies a calendar day for premium pay.
type DayKind string

const (
	DayRegular        DayKind = "regular"
	DaySunday         DayKind = "sunday"
	DaySpecialHoliday DayKind = "special_holiday"
	DayLegalHoliday   DayKind = "legal_holiday"
)

// PremiumDay is a worked Sunday or holiday.
type PremiumDay struct {
	Date  Date            `json:"date"`
	Kind  DayKind         `json:"kind"`
	Hours decimal.Decimal `json:"hours"`
}

// OvertimeEntry is an in-period overtime fact with its day classification.
type OvertimeEntry struct {
	Date         Date            `json:"date"`
	Kind         DayKind         `json:"kind"`
	RegularHours decimal.Decimal `json:"regular_hours"`
	NightHours   decimal.Decimal `json:"night_hours"`
	Rate         decimal.Decimal `json:"rate"`
}

// AttendanceSummary is the intermediate result for one employee and period.
type AttendanceSummary struct {
	ExpectedWorkingDays int             `json:"expected_working_days"`
	AbsentDays          decimal.Decimal `json:"absent_days"`
	LeaveDaysUsed       decimal.Decimal `json:"leave_days_used"`
	HolidayDays         int             `json:"holiday_days"`
	DaysPresent         decimal.Decimal `json:"days_present"`

	LateMinutes      int `json:"late_minutes"`
	UndertimeMinutes int `json:"undertime_minutes"`

	PremiumDays []PremiumDay `json:"premium_days"`
	// UnworkedLegalHolidays are legal holidays with no worked attendance.
	UnworkedLegalHolidays []Date          `json:"unworked_legal_holidays"`
	Overtime              []OvertimeEntry `json:"overtime"`
}

// CountedDays is the number of days that earn per-day allowances: worked,
// on paid leave, or a holiday.
func (s AttendanceSummary) CountedDays() decimal.Decimal {
	return s.DaysPresent.Add(s.LeaveDaysUsed).Add(decimal.NewFromInt(int64(s.HolidayDays)))
}

// =============================================================================
// HOLIDAY INDEX
// =============================================================================

type holidayIndex map[Date]HolidayKind

func indexHolidays(period PayPeriod, holidays []HolidayFact) holidayIndex {
	idx := make(holidayIndex)
	for _, h := range holidays {
		// An unrecognized kind earns no holiday pay, so it must not reduce
		// days present either.
		if !h.Kind.Valid() || !period.Contains(h.Date) {
			continue
		}
		// A legal holiday outranks a special one on the same date.
		if existing, ok := idx[h.Date]; ok && existing == HolidayLegal {
			continue
		}
		idx[h.Date] = h.Kind
	}
	return idx
}

func (idx holidayIndex) classify(d Date) DayKind {
	switch idx[d] {
	case HolidayLegal:
		return DayLegalHoliday
	case HolidaySpecialNonWorking:
		return DaySpecialHoliday
	}
	if d.IsSunday() {
		return DaySunday
	}
	return DayRegular
}

// =============================================================================
// AGGREGATE
// =============================================================================

// Aggregate reduces one employee's facts over period.
func (e *Engine) Aggregate(emp Employee, period PayPeriod, facts EmployeeFacts, holidays []HolidayFact) AttendanceSummary {
	idx := indexHolidays(period, holidays)

	summary := AttendanceSummary{
		ExpectedWorkingDays: CountWorkingDays(period.Start, period.End),
		AbsentDays:          facts.AbsentDays,
		LeaveDaysUsed:       decimal.Zero,
		HolidayDays:         len(idx),
	}

	for _, l := range facts.Leaves {
		if !belongsTo(l.EmployeeID, emp.ID) || !period.ContainsRange(l.Start, l.End) {
			continue
		}
		summary.LeaveDaysUsed = summary.LeaveDaysUsed.Add(l.UsedCredits)
	}

	summary.DaysPresent = decimal.NewFromInt(int64(summary.ExpectedWorkingDays)).
		Sub(summary.AbsentDays).
		Sub(summary.LeaveDaysUsed).
		Sub(decimal.NewFromInt(int64(summary.HolidayDays)))

	worked := make(map[Date]bool)
	seen := make(map[Date]bool)
	for _, a := range facts.Attendance {
		if !belongsTo(a.EmployeeID, emp.ID) || !period.Contains(a.Date) || seen[a.Date] {
			continue
		}
		seen[a.Date] = true
		summary.LateMinutes += a.LateMinutes
		summary.UndertimeMinutes += a.UndertimeMinutes
		if !a.Worked {
			continue
		}
		worked[a.Date] = true

		kind := idx.classify(a.Date)
		if kind == DayRegular {
			continue
		}
		hours := a.Hours
		if hours.IsZero() {
			hours = e.hoursPerDay()
		}
		summary.PremiumDays = append(summary.PremiumDays, PremiumDay{Date: a.Date, Kind: kind, Hours: hours})
	}
	sort.Slice(summary.PremiumDays, func(i, j int) bool {
		return summary.PremiumDays[i].Date.Before(summary.PremiumDays[j].Date)
	})

	for d, kind := range idx {
		if kind == HolidayLegal && !worked[d] {
			summary.UnworkedLegalHolidays = append(summary.UnworkedLegalHolidays, d)
		}
	}
	sort.Slice(summary.UnworkedLegalHolidays, func(i, j int) bool {
		return summary.UnworkedLegalHolidays[i].Before(summary.UnworkedLegalHolidays[j])
	})

	for _, o := range facts.Overtime {
		if !belongsTo(o.EmployeeID, emp.ID) || !period.Contains(o.Date) {
			continue
		}
		summary.Overtime = append(summary.Overtime, OvertimeEntry{
			Date:         o.Date,
			Kind:         idx.classify(o.Date),
			RegularHours: o.RegularHours,
			NightHours:   o.NightHours,
			Rate:         o.Rate,
		})
	}

	return summary
}

// belongsTo accepts facts with no employee reference, since fact sets are
// already grouped per employee.
func belongsTo(factEmployee, emp EmployeeID) bool {
	return factEmployee == "" || factEmployee == emp
}
