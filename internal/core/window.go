package core

import "time"

// Window is a half-open date range [Start, End) over which sums are
// computed. A zero Start or End leaves that side unbounded.
type Window struct {
	Start time.Time
	End   time.Time
}

// MonthWindow covers one full calendar month.
func MonthWindow(year int, month time.Month) Window {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Window{Start: start, End: start.AddDate(0, 1, 0)}
}

// YearWindow covers one full calendar year.
func YearWindow(year int) Window {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return Window{Start: start, End: start.AddDate(1, 0, 0)}
}

// WindowFor derives a window from a dashboard period selection: monthly
// narrows to one calendar month, yearly spans the whole year. A monthly
// period without a month falls back to the full year, matching the
// dashboard contract.
func WindowFor(period Period, year int, month time.Month) Window {
	if period == Monthly && month >= time.January && month <= time.December {
		return MonthWindow(year, month)
	}
	return YearWindow(year)
}

// Since is an open-ended window from start onward.
func Since(start time.Time) Window {
	return Window{Start: start}
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	if !w.Start.IsZero() && t.Before(w.Start) {
		return false
	}
	if !w.End.IsZero() && !t.Before(w.End) {
		return false
	}
	return true
}

// Bounded reports whether either side of the window is set.
func (w Window) Bounded() bool {
	return !w.Start.IsZero() || !w.End.IsZero()
}
