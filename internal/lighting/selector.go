package lighting

import "time"

// monthDayLE reports whether calendar day (m1, d1) is on or before
// (m2, d2). Months and days must be compared as one composite value;
// comparing the two scalars independently would wrongly match, for
// example, day 1 of any month past FirstMonth.
func monthDayLE(m1, d1, m2, d2 int) bool {
	if m1 != m2 {
		return m1 < m2
	}
	return d1 <= d2
}

// Contains reports whether the given date falls inside the range.
func (r DateRange) Contains(year, month, day int) bool {
	if r.Year != 0 && r.Year != year {
		return false
	}
	return monthDayLE(r.FirstMonth, r.FirstDay, month, day) &&
		monthDayLE(month, day, r.LastMonth, r.LastDay)
}

// SelectPattern returns the first registered pattern whose date ranges
// contain the given date, or nil when no holiday matches. Identical input
// always yields the identical result.
func SelectPattern(patterns []Pattern, year, month, day int) *Pattern {
	for i := range patterns {
		for _, r := range patterns[i].Ranges {
			if r.Contains(year, month, day) {
				return &patterns[i]
			}
		}
	}
	return nil
}

// SelectPatternAround selects for today's date and, when nothing matches,
// probes tomorrow. The lookahead makes a holiday visible the evening
// before its calendar date.
func SelectPatternAround(patterns []Pattern, t time.Time) *Pattern {
	if p := SelectPattern(patterns, t.Year(), int(t.Month()), t.Day()); p != nil {
		return p
	}
	next := t.AddDate(0, 0, 1)
	return SelectPattern(patterns, next.Year(), int(next.Month()), next.Day())
}
