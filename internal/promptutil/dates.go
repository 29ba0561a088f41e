// Package promptutil holds the pure helpers shared by the nudge engines:
// day arithmetic, nudge ids, course classification, stage inference,
// streak status and template interpolation.
package promptutil

import (
	"math"
	"time"
)

const msPerDay = 86_400_000

// DaysBetween returns the whole days from a to b, rounding any fractional
// day up. A result of 0 means b is later today or has only just passed.
func DaysBetween(a, b time.Time) int {
	ms := b.Sub(a).Milliseconds()
	return int(math.Ceil(float64(ms) / msPerDay))
}

// DaysUntil returns DaysBetween(now, t).
func DaysUntil(t, now time.Time) int {
	return DaysBetween(now, t)
}

// DaysSince returns DaysBetween(t, now).
func DaysSince(t, now time.Time) int {
	return DaysBetween(t, now)
}

// IsToday reports whether t falls on the same calendar day as now, with
// both instants read in now's location.
func IsToday(t, now time.Time) bool {
	return sameDay(t.In(now.Location()), now)
}

// IsTomorrow reports whether t falls on the calendar day after now, with
// both instants read in now's location.
func IsTomorrow(t, now time.Time) bool {
	return sameDay(t.In(now.Location()), now.AddDate(0, 0, 1))
}

// CalendarDaysSince counts midnights crossed between t and now, reading
// both in now's location. A time earlier today is 0 days ago.
func CalendarDaysSince(t, now time.Time) int {
	y1, m1, d1 := t.In(now.Location()).Date()
	y2, m2, d2 := now.Date()
	from := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	to := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
