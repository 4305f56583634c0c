// Package util provides utility functions for the application
package util

import (
	"time"
)

const (
	// DropHourUTC is when .se/.nu domains are dropped (04:00 UTC)
	DropHourUTC = 4
	// DefaultCacheMaxAge is how long a downloaded list is reused before fetching again
	DefaultCacheMaxAge = 24 * time.Hour
)

// NextDrop returns the next date at 04:00 UTC strictly after now.
func NextDrop(now time.Time) time.Time {
	utc := now.UTC()
	drop := time.Date(utc.Year(), utc.Month(), utc.Day(), DropHourUTC, 0, 0, 0, time.UTC)
	if !utc.Before(drop) {
		drop = drop.Add(24 * time.Hour)
	}
	return drop
}

// GetReferenceDate returns the release date whose domains are of interest.
// If the current UTC time is after the drop time (4 AM UTC), it returns the next day's date.
//
// IMPORTANT: Always pass local time (time.Now()) to this function, not UTC time (time.Now().UTC()).
// The calendar day is taken from the local clock, the drop check from UTC.
func GetReferenceDate(now time.Time) time.Time {
	utcNow := now.UTC()
	localDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	todayDropTime := time.Date(utcNow.Year(), utcNow.Month(), utcNow.Day(), DropHourUTC, 0, 0, 0, time.UTC)

	if utcNow.After(todayDropTime) {
		return localDate.Add(24 * time.Hour)
	}
	return localDate
}

// SameDay reports whether a and b fall on the same calendar date
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// CacheFresh reports whether a list cached at last may still be used at now.
// A cache expires after maxAge or at the first drop after it was written.
func CacheFresh(last, now time.Time, maxAge time.Duration) bool {
	if last.IsZero() || now.Before(last) {
		return false
	}
	if maxAge <= 0 {
		maxAge = DefaultCacheMaxAge
	}
	if now.Sub(last) >= maxAge {
		return false
	}
	return now.Before(NextDrop(last))
}
