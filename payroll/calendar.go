package payroll

// CountWorkingDays returns the number of Monday-Saturday days in the
// inclusive range [start, end]. A reversed range counts as zero.
func CountWorkingDays(start, end Date) int {
	if end.Before(start) {
		return 0
	}
	span := DaysBetween(start, end) + 1
	count := (span / 7) * 6

	// Remainder days after the whole weeks.
	for d := start.AddDays((span / 7) * 7); d.BeforeOrEqual(end); d = d.AddDays(1) {
		if d.IsWorkingDay() {
			count++
		}
	}
	return count
}
