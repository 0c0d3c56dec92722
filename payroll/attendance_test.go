package payroll_test

import (
	"testing"
	"time"

	"github.com/itselaivy/Capstone-AutoPayroll-sub000/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func worked(d payroll.Date) payroll.AttendanceFact {
	return payroll.AttendanceFact{EmployeeID: "emp-1", Date: d, Worked: true}
}

// =============================================================================
// COUNTS
// =============================================================================

func TestAggregate_DaysPresentFormula(t *testing.T) {
	// GIVEN: 12 working days, 1 absence, 1 leave day, 1 holiday
	// THEN: 9 days present
	facts := payroll.EmployeeFacts{
		AbsentDays: dec("1"),
		Leaves: []payroll.LeaveFact{
			{EmployeeID: "emp-1", Start: date(2025, time.May, 6), End: date(2025, time.May, 6), UsedCredits: dec("1")},
		},
	}
	holidays := []payroll.HolidayFact{{Date: date(2025, time.May, 1), Kind: payroll.HolidayLegal, Name: "Labor Day"}}

	s := testEngine().Aggregate(clerk("emp-1"), mayPeriod(), facts, holidays)

	assert.Equal(t, 12, s.ExpectedWorkingDays)
	assert.Equal(t, 1, s.HolidayDays)
	assertMoney(t, "1", s.LeaveDaysUsed, "leave")
	assertMoney(t, "9", s.DaysPresent, "present")
	assertMoney(t, "11", s.CountedDays(), "counted")
}

func TestAggregate_PartialLeaveOverlapExcluded(t *testing.T) {
	facts := payroll.EmployeeFacts{
		Leaves: []payroll.LeaveFact{
			// starts before the period
			{Start: date(2025, time.April, 25), End: date(2025, time.April, 29), UsedCredits: dec("3")},
			// ends after the period
			{Start: date(2025, time.May, 9), End: date(2025, time.May, 12), UsedCredits: dec("2")},
			// exactly on both boundaries
			{Start: date(2025, time.April, 28), End: date(2025, time.April, 28), UsedCredits: dec("1")},
			{Start: date(2025, time.May, 10), End: date(2025, time.May, 10), UsedCredits: dec("0.5")},
		},
	}

	s := testEngine().Aggregate(clerk("emp-1"), mayPeriod(), facts, nil)

	assertMoney(t, "1.5", s.LeaveDaysUsed, "leave")
}

func TestAggregate_HolidayBoundariesInclusiveAndDeduplicated(t *testing.T) {
	holidays := []payroll.HolidayFact{
		// the day before the period
		{Date: date(2025, time.April, 27), Kind: payroll.HolidayLegal},
		{Date: date(2025, time.April, 28), Kind: payroll.HolidaySpecialNonWorking},
		{Date: date(2025, time.May, 10), Kind: payroll.HolidayLegal},
		// same date again
		{Date: date(2025, time.May, 10), Kind: payroll.HolidaySpecialNonWorking},
		// the day after the period
		{Date: date(2025, time.May, 11), Kind: payroll.HolidayLegal},
	}

	s := testEngine().Aggregate(clerk("emp-1"), mayPeriod(), payroll.EmployeeFacts{}, holidays)

	assert.Equal(t, 2, s.HolidayDays)
	require.Len(t, s.UnworkedLegalHolidays, 1)
	assert.True(t, s.UnworkedLegalHolidays[0].Equal(date(2025, time.May, 10)))
}

func TestAggregate_NegativeDaysPresentNotClamped(t *testing.T) {
	facts := payroll.EmployeeFacts{AbsentDays: dec("13")}

	s := testEngine().Aggregate(clerk("emp-1"), mayPeriod(), facts, nil)

	assertMoney(t, "-1", s.DaysPresent, "present")
}

func TestAggregate_Idempotent(t *testing.T) {
	facts := payroll.EmployeeFacts{
		Attendance: []payroll.AttendanceFact{worked(date(2025, time.May, 4)), {EmployeeID: "emp-1", Date: date(2025, time.May, 5), Worked: true, LateMinutes: 15}},
	}
	holidays := []payroll.HolidayFact{{Date: date(2025, time.May, 1), Kind: payroll.HolidayLegal}}
	engine := testEngine()

	first := engine.Aggregate(clerk("emp-1"), mayPeriod(), facts, holidays)
	second := engine.Aggregate(clerk("emp-1"), mayPeriod(), facts, holidays)

	assert.Equal(t, first, second)
}

// =============================================================================
// ATTENDANCE FACTS
// =============================================================================

func TestAggregate_LateAndUndertimeMinutes(t *testing.T) {
	facts := payroll.EmployeeFacts{
		Attendance: []payroll.AttendanceFact{
			{EmployeeID: "emp-1", Date: date(2025, time.April, 29), Worked: true, LateMinutes: 10},
			{EmployeeID: "emp-1", Date: date(2025, time.April, 30), Worked: true, LateMinutes: 5, UndertimeMinutes: 30},
			// duplicate date is counted once
			{EmployeeID: "emp-1", Date: date(2025, time.April, 30), Worked: true, LateMinutes: 5, UndertimeMinutes: 30},
			// outside the period
			{EmployeeID: "emp-1", Date: date(2025, time.May, 12), Worked: true, LateMinutes: 60},
		},
	}

	s := testEngine().Aggregate(clerk("emp-1"), mayPeriod(), facts, nil)

	assert.Equal(t, 15, s.LateMinutes)
	assert.Equal(t, 30, s.UndertimeMinutes)
}

func TestAggregate_ClassifiesPremiumDays(t *testing.T) {
	// GIVEN: worked Sunday 05-04, worked legal holiday 05-01,
	//        worked special holiday 05-02 with 4 hours, regular Monday 05-05
	facts := payroll.EmployeeFacts{
		Attendance: []payroll.AttendanceFact{
			worked(date(2025, time.May, 5)),
			worked(date(2025, time.May, 4)),
			worked(date(2025, time.May, 1)),
			{EmployeeID: "emp-1", Date: date(2025, time.May, 2), Worked: true, Hours: dec("4")},
		},
	}
	holidays := []payroll.HolidayFact{
		{Date: date(2025, time.May, 1), Kind: payroll.HolidayLegal},
		{Date: date(2025, time.May, 2), Kind: payroll.HolidaySpecialNonWorking},
	}

	s := testEngine().Aggregate(clerk("emp-1"), mayPeriod(), facts, holidays)

	require.Len(t, s.PremiumDays, 3)
	assert.Equal(t, payroll.DayLegalHoliday, s.PremiumDays[0].Kind)
	assertMoney(t, "8", s.PremiumDays[0].Hours, "legal hours default to a full day")
	assert.Equal(t, payroll.DaySpecialHoliday, s.PremiumDays[1].Kind)
	assertMoney(t, "4", s.PremiumDays[1].Hours, "special hours")
	assert.Equal(t, payroll.DaySunday, s.PremiumDays[2].Kind)
	assert.Empty(t, s.UnworkedLegalHolidays)
}

func TestAggregate_HolidayOnSundayUsesHolidayKind(t *testing.T) {
	facts := payroll.EmployeeFacts{Attendance: []payroll.AttendanceFact{worked(date(2025, time.May, 4))}}
	holidays := []payroll.HolidayFact{{Date: date(2025, time.May, 4), Kind: payroll.HolidaySpecialNonWorking}}

	s := testEngine().Aggregate(clerk("emp-1"), mayPeriod(), facts, holidays)

	require.Len(t, s.PremiumDays, 1)
	assert.Equal(t, payroll.DaySpecialHoliday, s.PremiumDays[0].Kind)
}

func TestAggregate_OvertimePassedThroughByTier(t *testing.T) {
	facts := payroll.EmployeeFacts{
		Overtime: []payroll.OvertimeFact{
			{EmployeeID: "emp-1", Date: date(2025, time.April, 29), RegularHours: dec("2"), NightHours: dec("1")},
			{EmployeeID: "emp-1", Date: date(2025, time.May, 4), RegularHours: dec("3")},
			{EmployeeID: "emp-1", Date: date(2025, time.May, 20), RegularHours: dec("9")},
		},
	}

	s := testEngine().Aggregate(clerk("emp-1"), mayPeriod(), facts, nil)

	require.Len(t, s.Overtime, 2)
	assert.Equal(t, payroll.DayRegular, s.Overtime[0].Kind)
	assertMoney(t, "2", s.Overtime[0].RegularHours, "regular")
	assertMoney(t, "1", s.Overtime[0].NightHours, "night")
	assert.Equal(t, payroll.DaySunday, s.Overtime[1].Kind)
	assert.True(t, s.Overtime[1].NightHours.Equal(decimal.Zero))
}

func TestAggregate_UnknownHolidayKindNotCounted(t *testing.T) {
	// GIVEN: a holiday with a kind that earns no premium or holiday pay
	// THEN: it does not reduce days present either
	holidays := []payroll.HolidayFact{{Date: date(2025, time.May, 1), Kind: "regional"}}

	s := testEngine().Aggregate(clerk("emp-1"), mayPeriod(), payroll.EmployeeFacts{}, holidays)

	assert.Equal(t, 0, s.HolidayDays)
	assertMoney(t, "12", s.DaysPresent, "present")
	assert.Empty(t, s.UnworkedLegalHolidays)
}

func TestAggregate_HolidayCountMatchesPay(t *testing.T) {
	// Every counted holiday is either paid as unworked legal, worked at a
	// premium, or a special non-working day off.
	facts := payroll.EmployeeFacts{Attendance: []payroll.AttendanceFact{worked(date(2025, time.May, 2))}}
	holidays := []payroll.HolidayFact{
		{Date: date(2025, time.May, 1), Kind: payroll.HolidayLegal},
		{Date: date(2025, time.May, 2), Kind: payroll.HolidayLegal},
		{Date: date(2025, time.May, 3), Kind: payroll.HolidaySpecialNonWorking},
		{Date: date(2025, time.May, 5), Kind: "Legal"},
	}

	s := testEngine().Aggregate(clerk("emp-1"), mayPeriod(), facts, holidays)

	assert.Equal(t, 3, s.HolidayDays)
	assert.Len(t, s.UnworkedLegalHolidays, 1)
	require.Len(t, s.PremiumDays, 1)
	assert.Equal(t, payroll.DayLegalHoliday, s.PremiumDays[0].Kind)
}

func TestParseHolidayKind(t *testing.T) {
	tests := []struct {
		in   string
		want payroll.HolidayKind
		ok   bool
	}{
		{"legal", payroll.HolidayLegal, true},
		{"Legal", payroll.HolidayLegal, true},
		{"LEGAL", payroll.HolidayLegal, true},
		{"special_non_working", payroll.HolidaySpecialNonWorking, true},
		{"SpecialNonWorking", payroll.HolidaySpecialNonWorking, true},
		{"special non-working", payroll.HolidaySpecialNonWorking, true},
		{"regional", payroll.HolidayKind("regional"), false},
		{"", payroll.HolidayKind(""), false},
	}
	for _, tt := range tests {
		kind, ok := payroll.ParseHolidayKind(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, kind, tt.in)
		assert.Equal(t, tt.ok, kind.Valid(), tt.in)
	}
}
