package dates

import "time"

// Advance moves a stored booking date forward by one day. The booking
// site is closed on Sundays, so a roll that would land there moves on
// to Monday instead. Pure calendar arithmetic; persisting the result
// back to the date store is the caller's job.
func Advance(stored time.Time) time.Time {
	next := Midnight(stored).AddDate(0, 0, 1)
	if next.Weekday() == time.Sunday {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
