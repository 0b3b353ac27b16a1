package utils

import "time"

// NextDailyRun returns the next occurrence of the given UTC hour, rolling to
// tomorrow when today's slot has already passed.
func NextDailyRun(now time.Time, hourUTC int) time.Time {
	now = now.UTC()

	next := time.Date(now.Year(), now.Month(), now.Day(), hourUTC, 0, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}

	return next
}
