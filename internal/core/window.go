package core

import "time"

const (
	PeriodAll     Period = "all"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodCustom  Period = "custom"
)

type (
	// Period selects a named time window relative to a reference instant.
	Period string

	// Window is an inclusive [From, To] instant range. A transaction date
	// matches when its midnight UTC instant falls within the range.
	Window struct {
		From time.Time
		To   time.Time
	}
)

// Contains reports whether t falls inside the inclusive window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.From) && !t.After(w.To)
}

// ResolveWindow computes the instant range for a period relative to now.
// A nil result means unbounded: every date matches. Custom ranges with an
// unparseable bound resolve to unbounded rather than erroring, matching the
// all-time behavior. Windows are anchored to now's calendar date in UTC, the
// same frame ParseDay places transaction dates in.
func ResolveWindow(p Period, customStart, customEnd string, now time.Time) *Window {
	switch p {
	case PeriodWeekly:
		start := startOfWeek(now)
		return &Window{From: start, To: endOfDay(start.AddDate(0, 0, 6))}
	case PeriodMonthly:
		y, m, _ := now.Date()
		start := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
		return &Window{From: start, To: endOfDay(start.AddDate(0, 1, -1))}
	case PeriodCustom:
		from, okFrom := ParseDay(customStart)
		to, okTo := ParseDay(customEnd)
		if !okFrom || !okTo {
			return nil
		}
		return &Window{From: from, To: endOfDay(to)}
	default:
		return nil
	}
}

// startOfWeek returns Monday 00:00:00 of now's ISO week.
func startOfWeek(now time.Time) time.Time {
	y, m, d := now.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	wd := int(day.Weekday())
	if wd == 0 {
		wd = 7 // Sunday closes the week, it does not open it
	}
	return day.AddDate(0, 0, -(wd - 1))
}

// endOfDay returns 23:59:59.999 of the calendar day starting at t.
func endOfDay(t time.Time) time.Time {
	return t.AddDate(0, 0, 1).Add(-time.Millisecond)
}
