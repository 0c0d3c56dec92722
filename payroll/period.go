/*
period.go - Pay period resolution and validation

PURPOSE:
  The organization pays on a fixed cadence: every period spans 13 calendar
  days, 12 of them working days (Monday-Saturday), with the 7th day a
  Sunday. In practice that is Monday through the Saturday of the following
  week. Consecutive periods start 14 days apart.

TWO ENTRY POINTS:
  ResolveCanonicalPeriod(anchor): derive the window ending at the last
  payroll date (the anchor) from the 11 working days before it.

  Resolver.Validate(start, end, cut): check an operator-chosen window. On
  failure the returned *PeriodError names the broken rule and carries the
  nearest canonical period as a suggestion. The suggestion is never applied.

VALIDATION ORDER:
  0. cut is first or second           -> InvalidCut
  1. end >= start                     -> InvalidRange
  2. neither date after today         -> FutureDate
  3. 13 calendar days                 -> WrongSpan
  4. 12 working days                  -> WrongWorkingDayCount
  5. start + 6 is a Sunday            -> SeventhDayNotSunday
*/
package payroll

import (
	"time"
)

// chainStep is the distance between the starts of consecutive periods.
const chainStep = 14

// ResolveCanonicalPeriod returns the period ending at anchor whose start is
// the earliest of the 11 non-Sunday days strictly before anchor.
func ResolveCanonicalPeriod(anchor Date) PayPeriod {
	start := anchor
	collected := 0
	for d := anchor.AddDays(-1); collected < PeriodWorkingDays-1; d = d.AddDays(-1) {
		if d.IsSunday() {
			continue
		}
		collected++
		start = d
	}
	return PayPeriod{Start: start, End: anchor, Cut: CutFor(anchor)}
}

// CutFor labels a period by its end date: first half or second half of the month.
func CutFor(end Date) Cut {
	if end.Day() <= 15 {
		return CutFirst
	}
	return CutSecond
}

// =============================================================================
// RESOLVER
// =============================================================================

// Resolver validates operator-chosen periods against the canonical cadence.
type Resolver struct {
	// LastPayrollDate anchors the canonical chain. When zero, every Monday
	// is treated as a canonical start.
	LastPayrollDate Date

	// Now is the clock used for the future-date rule. Defaults to time.Now.
	Now func() time.Time
}

func NewResolver(lastPayrollDate Date) *Resolver {
	return &Resolver{LastPayrollDate: lastPayrollDate, Now: time.Now}
}

func (r *Resolver) today() Date {
	if r.Now == nil {
		return Today()
	}
	return DateOf(r.Now())
}

// Validate checks an operator-chosen period and returns it tagged with cut.
func (r *Resolver) Validate(start, end Date, cut Cut) (PayPeriod, error) {
	if kind, ok := r.check(start, end, cut); !ok {
		suggestion := r.Suggest(start)
		return PayPeriod{}, &PeriodError{Kind: kind, Start: start, End: end, Suggestion: &suggestion}
	}
	return PayPeriod{Start: start, End: end, Cut: cut}, nil
}

func (r *Resolver) check(start, end Date, cut Cut) (PeriodErrorKind, bool) {
	if !cut.Valid() {
		return PeriodInvalidCut, false
	}
	if end.Before(start) {
		return PeriodInvalidRange, false
	}
	today := r.today()
	if start.After(today) || end.After(today) {
		return PeriodFutureDate, false
	}
	if DaysBetween(start, end)+1 != PeriodCalendarDays {
		return PeriodWrongSpan, false
	}
	if CountWorkingDays(start, end) != PeriodWorkingDays {
		return PeriodWrongWorkingDayCount, false
	}
	if !start.AddDays(SundayOffset).IsSunday() {
		return PeriodSeventhDayNotSunday, false
	}
	return "", true
}

// Suggest returns the canonical period whose start is nearest to attempted.
// Ties go to the earlier period.
func (r *Resolver) Suggest(attempted Date) PayPeriod {
	if r.LastPayrollDate.IsZero() {
		return nearestMondayPeriod(attempted)
	}

	base := ResolveCanonicalPeriod(r.LastPayrollDate)
	diff := DaysBetween(base.Start, attempted)
	k := floorDiv(diff, chainStep)
	if diff-k*chainStep > chainStep/2 {
		k++
	}
	return ResolveCanonicalPeriod(base.End.AddDays(k * chainStep))
}

func nearestMondayPeriod(attempted Date) PayPeriod {
	offset := (int(attempted.Weekday()) - int(time.Monday) + 7) % 7
	monday := attempted.AddDays(-offset)
	if offset > 3 {
		monday = monday.AddDays(7)
	}
	return ResolveCanonicalPeriod(monday.AddDays(PeriodCalendarDays - 1))
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
