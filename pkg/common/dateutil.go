package common

import "time"

// Today returns the current date in UTC, truncated to midnight (00:00:00).
// Start-date checks are calendar-day granular, so comparisons always go
// through this truncation.
func Today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}

// TruncateToDateUTC truncates the given time to midnight (00:00:00) in UTC.
//
// Example:
//   - Input: 2026-09-01 14:23:45 UTC
//   - Output: 2026-09-01 00:00:00 UTC
func TruncateToDateUTC(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}

// IsBeforeToday reports whether t falls on a calendar day before today
// (UTC). A time later today is not before today.
func IsBeforeToday(t time.Time) bool {
	return TruncateToDateUTC(t).Before(Today())
}
