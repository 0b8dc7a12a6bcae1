package srs

import "time"

// Civil-day helpers. All due/not-due decisions in this package are
// date-based in the anchor zone, never instant-based.

// CivilDate truncates t to midnight of its civil day in loc.
func CivilDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// StartOfDay is an alias of CivilDate kept for call-site readability.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	return CivilDate(t, loc)
}

// EndOfDay returns 23:59:59.999 in loc on t's civil day. Scheduling an item
// for the end of its target day makes due-comparisons date-based: an item
// reviewed at 9am becomes due at the start of the target day, not 9am.
func EndOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), loc)
}

// SameCivilDay reports whether a and b fall on the same civil day in loc.
func SameCivilDay(a, b time.Time, loc *time.Location) bool {
	return CivilDate(a, loc).Equal(CivilDate(b, loc))
}
