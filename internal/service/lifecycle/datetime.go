package lifecycle

import "time"

// startOfDayUTC truncates t to 00:00:00 UTC of its calendar day. All window
// comparisons use UTC; locale formatting happens only at the notification
// boundary.
func startOfDayUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the whole-day count from now to end, both truncated to
// their UTC calendar day. Negative when end is in the past.
func daysBetween(now, end time.Time) int {
	return int(startOfDayUTC(end).Sub(startOfDayUTC(now)).Hours() / 24)
}
