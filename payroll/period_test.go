package payroll_test

import (
	"errors"
	"testing"
	"time"

	"github.com/itselaivy/Capstone-AutoPayroll-sub000/payroll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResolver(anchor payroll.Date) *payroll.Resolver {
	r := payroll.NewResolver(anchor)
	r.Now = fixedClock(2025, time.June, 30)
	return r
}

// =============================================================================
// CANONICAL PERIOD
// =============================================================================

func TestResolveCanonicalPeriod_SaturdayAnchor(t *testing.T) {
	p := payroll.ResolveCanonicalPeriod(date(2025, time.May, 10))

	assert.True(t, p.Start.Equal(date(2025, time.April, 28)), "start %s", p.Start)
	assert.True(t, p.End.Equal(date(2025, time.May, 10)))
	assert.Equal(t, payroll.CutFirst, p.Cut)
	assert.Equal(t, 12, payroll.CountWorkingDays(p.Start, p.End))
	assert.Len(t, p.Days(), 13)
}

func TestResolveCanonicalPeriod_MidWeekAnchor(t *testing.T) {
	// GIVEN: Wednesday 2025-05-21
	// THEN: 11 non-Sundays before it reach back to Thursday 2025-05-08
	p := payroll.ResolveCanonicalPeriod(date(2025, time.May, 21))

	assert.True(t, p.Start.Equal(date(2025, time.May, 8)), "start %s", p.Start)
	assert.Equal(t, payroll.CutSecond, p.Cut)
	assert.Equal(t, 12, payroll.CountWorkingDays(p.Start, p.End))
}

func TestCutFor(t *testing.T) {
	assert.Equal(t, payroll.CutFirst, payroll.CutFor(date(2025, time.May, 15)))
	assert.Equal(t, payroll.CutSecond, payroll.CutFor(date(2025, time.May, 16)))
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestValidate_AcceptsCanonicalWindow(t *testing.T) {
	r := newTestResolver(payroll.Date{})

	p, err := r.Validate(date(2025, time.April, 28), date(2025, time.May, 10), payroll.CutFirst)

	require.NoError(t, err)
	assert.Equal(t, mayPeriod(), p)
}

func TestValidate_ShiftedEndIsWrongSpan(t *testing.T) {
	r := newTestResolver(payroll.Date{})

	for _, end := range []payroll.Date{date(2025, time.May, 9), date(2025, time.May, 11)} {
		_, err := r.Validate(date(2025, time.April, 28), end, payroll.CutFirst)
		require.Error(t, err)
		assert.ErrorIs(t, err, payroll.ErrWrongSpan, "end %s", end)
	}
}

func TestValidate_ErrorKinds(t *testing.T) {
	r := newTestResolver(payroll.Date{})

	tests := []struct {
		name  string
		start payroll.Date
		end   payroll.Date
		cut   payroll.Cut
		want  error
		kind  payroll.PeriodErrorKind
	}{
		{"reversed", date(2025, time.May, 10), date(2025, time.April, 28), payroll.CutFirst, payroll.ErrInvalidRange, payroll.PeriodInvalidRange},
		{"future", date(2025, time.June, 30), date(2025, time.July, 12), payroll.CutFirst, payroll.ErrFutureDate, payroll.PeriodFutureDate},
		{"two sundays", date(2025, time.May, 1), date(2025, time.May, 13), payroll.CutFirst, payroll.ErrWrongWorkingDayCount, payroll.PeriodWrongWorkingDayCount},
		{"bad cut", date(2025, time.April, 28), date(2025, time.May, 10), payroll.Cut("third"), payroll.ErrInvalidCut, payroll.PeriodInvalidCut},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Validate(tt.start, tt.end, tt.cut)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var pe *payroll.PeriodError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.kind, pe.Kind)
			assert.True(t, payroll.IsPeriodError(err))
			assert.True(t, payroll.IsClientError(err))
		})
	}
}

func TestValidate_TodayIsNotFuture(t *testing.T) {
	// GIVEN: the clock reads Saturday 2025-05-10
	r := payroll.NewResolver(payroll.Date{})
	r.Now = fixedClock(2025, time.May, 10)

	_, err := r.Validate(date(2025, time.April, 28), date(2025, time.May, 10), payroll.CutFirst)

	assert.NoError(t, err)
}

// =============================================================================
// SUGGESTION
// =============================================================================

func TestValidate_SuggestsNearestCanonicalPeriod(t *testing.T) {
	// GIVEN: last payroll on Saturday 2025-05-10
	// WHEN: operator picks Wednesday 2025-05-14 as start
	// THEN: the period starting Monday 2025-05-12 is suggested
	r := newTestResolver(date(2025, time.May, 10))

	_, err := r.Validate(date(2025, time.May, 14), date(2025, time.May, 26), payroll.CutSecond)

	var pe *payroll.PeriodError
	require.True(t, errors.As(err, &pe))
	require.NotNil(t, pe.Suggestion)
	assert.True(t, pe.Suggestion.Start.Equal(date(2025, time.May, 12)), "start %s", pe.Suggestion.Start)
	assert.True(t, pe.Suggestion.End.Equal(date(2025, time.May, 24)), "end %s", pe.Suggestion.End)
	assert.Contains(t, err.Error(), "2025-05-12")
}

func TestSuggest_FollowsChainFromAnchor(t *testing.T) {
	r := newTestResolver(date(2025, time.May, 10))

	// 2025-05-20 is 8 days after 2025-05-12 and 6 days before 2025-05-26.
	s := r.Suggest(date(2025, time.May, 20))
	assert.True(t, s.Start.Equal(date(2025, time.May, 26)), "start %s", s.Start)

	// Before the anchor the chain runs backwards.
	s = r.Suggest(date(2025, time.April, 16))
	assert.True(t, s.Start.Equal(date(2025, time.April, 14)), "start %s", s.Start)
}

func TestSuggest_WithoutAnchorUsesNearestMonday(t *testing.T) {
	r := newTestResolver(payroll.Date{})

	// Thursday rounds back to Monday, Friday rounds forward.
	assert.True(t, r.Suggest(date(2025, time.May, 1)).Start.Equal(date(2025, time.April, 28)))
	assert.True(t, r.Suggest(date(2025, time.May, 2)).Start.Equal(date(2025, time.May, 5)))
}
