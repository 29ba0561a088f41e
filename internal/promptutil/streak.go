package promptutil

import "time"

// StreakStatus is the login streak as of now.
type StreakStatus struct {
	Streak       int
	AtRisk       bool
	StreakBroken bool
}

// CalculateStreakStatus applies the one-day grace period over calendar days
// in now's location: a login today keeps the streak, a login yesterday
// leaves it at risk, and anything older resets it to zero.
func CalculateStreakStatus(streak int, lastLoginAt *time.Time, now time.Time) StreakStatus {
	if lastLoginAt == nil {
		return StreakStatus{Streak: streak}
	}
	days := CalendarDaysSince(*lastLoginAt, now)
	switch {
	case days <= 0:
		return StreakStatus{Streak: streak}
	case days == 1:
		return StreakStatus{Streak: streak, AtRisk: true}
	default:
		return StreakStatus{Streak: 0, StreakBroken: streak > 0}
	}
}
