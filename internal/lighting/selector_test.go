package lighting

import (
	"testing"
	"time"
)

func TestDateRangeContains(t *testing.T) {
	r := DateRange{FirstMonth: 12, FirstDay: 1, LastMonth: 12, LastDay: 26}
	cases := []struct {
		month, day int
		want       bool
	}{
		{11, 30, false},
		{12, 1, true},
		{12, 25, true},
		{12, 26, true},
		{12, 27, false},
	}
	for _, tc := range cases {
		if got := r.Contains(2025, tc.month, tc.day); got != tc.want {
			t.Errorf("Contains(12/1..12/26, %d/%d) = %v, want %v", tc.month, tc.day, got, tc.want)
		}
	}
}

func TestDateRangeYearBound(t *testing.T) {
	r := DateRange{Year: 2026, FirstMonth: 4, FirstDay: 4, LastMonth: 4, LastDay: 5}
	if !r.Contains(2026, 4, 4) {
		t.Error("matching year rejected")
	}
	if r.Contains(2027, 4, 4) {
		t.Error("non-matching year accepted")
	}
}

func TestSelectPatternRegistrationOrder(t *testing.T) {
	a := Pattern{Name: "a", Ranges: []DateRange{{FirstMonth: 5, FirstDay: 1, LastMonth: 5, LastDay: 10}}}
	b := Pattern{Name: "b", Ranges: []DateRange{{FirstMonth: 5, FirstDay: 5, LastMonth: 5, LastDay: 15}}}

	got := SelectPattern([]Pattern{a, b}, 2025, 5, 7)
	if got == nil || got.Name != "a" {
		t.Fatalf("overlap resolved to %+v, want first-registered", got)
	}
}

func TestSelectPatternNoMatch(t *testing.T) {
	patterns := Patterns(DefaultLayout.PanelSize)
	if got := SelectPattern(patterns, 2025, 6, 10); got != nil {
		t.Errorf("June 10 matched %q, want none", got.Name)
	}
}

func TestSelectPatternAroundLooksAhead(t *testing.T) {
	patterns := Patterns(DefaultLayout.PanelSize)

	// The evening before the window opens already shows the pattern.
	eve := time.Date(2025, 11, 30, 20, 0, 0, 0, time.UTC)
	got := SelectPatternAround(patterns, eve)
	if got == nil || got.Name != "christmas" {
		t.Fatalf("Nov 30 evening selected %+v, want christmas", got)
	}

	// Today's match wins over tomorrow's.
	last := time.Date(2025, 12, 26, 20, 0, 0, 0, time.UTC)
	if got := SelectPatternAround(patterns, last); got == nil || got.Name != "christmas" {
		t.Fatalf("Dec 26 selected %+v, want christmas", got)
	}
}

func TestEasterTableMatchesPerYear(t *testing.T) {
	patterns := Patterns(DefaultLayout.PanelSize)

	cases := []struct {
		y, m, d int
	}{
		{2024, 3, 31},
		{2025, 4, 20},
		{2026, 4, 5},
		{2049, 4, 18},
	}
	for _, tc := range cases {
		got := SelectPattern(patterns, tc.y, tc.m, tc.d)
		if got == nil || got.Name != "easter" {
			t.Errorf("%d-%02d-%02d selected %+v, want easter", tc.y, tc.m, tc.d, got)
		}
	}

	// Same calendar date in a different year must not match.
	if got := SelectPattern(patterns, 2025, 3, 31); got != nil {
		t.Errorf("2025-03-31 selected %q, want none", got.Name)
	}
}
