package payroll

import "time"

// SameDay reports whether t falls on the calendar day of ref, using ref's location.
func SameDay(t, ref time.Time) bool {
	y1, m1, d1 := t.In(ref.Location()).Date()
	y2, m2, d2 := ref.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// StartOfDay returns midnight of t's day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// MonthBounds returns the first and the last instant of ref's month, both inclusive.
func MonthBounds(ref time.Time) (time.Time, time.Time) {
	y, m, _ := ref.Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, ref.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

// InMonth reports whether t lies within [monthStart, monthEnd] of ref's month.
func InMonth(t, ref time.Time) bool {
	start, end := MonthBounds(ref)
	return !t.Before(start) && !t.After(end)
}
