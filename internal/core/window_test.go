package core

import (
	"testing"
	"time"
)

func TestMonthWindow(t *testing.T) {
	w := MonthWindow(2025, time.March)
	cases := []struct {
		t  time.Time
		in bool
	}{
		{time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), true},
		{time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC), true},
		{time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), false},
		{time.Date(2025, 2, 28, 12, 0, 0, 0, time.UTC), false},
	}
	for i, tc := range cases {
		if got := w.Contains(tc.t); got != tc.in {
			t.Fatalf("case %d: Contains(%v) = %v, want %v", i, tc.t, got, tc.in)
		}
	}
}

func TestWindowFor(t *testing.T) {
	m := WindowFor(Monthly, 2025, time.February)
	if !m.Start.Equal(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("monthly start = %v", m.Start)
	}
	if !m.End.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("monthly end = %v", m.End)
	}

	// Monthly without a month falls back to the full year.
	y := WindowFor(Monthly, 2025, 0)
	if !y.Start.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) || !y.End.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("fallback year window = %+v", y)
	}

	y2 := WindowFor(Yearly, 2024, time.June)
	if !y2.Start.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("yearly start = %v", y2.Start)
	}
}

func TestOpenEndedWindow(t *testing.T) {
	w := Since(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	if !w.Contains(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("open-ended window must contain far future dates")
	}
	if w.Contains(time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("window must exclude dates before start")
	}

	var unbounded Window
	if unbounded.Bounded() {
		t.Fatalf("zero window must be unbounded")
	}
	if !unbounded.Contains(time.Now()) {
		t.Fatalf("unbounded window must contain everything")
	}
}
