package repository

import (
	"fmt"
	"time"
)

// TokenDay returns the day key for a timestamp, in server-local time. The
// counter resets at local midnight, so the key and the visitorsToday stat use
// the same boundary.
func TokenDay(t time.Time) string {
	return t.Format("20060102")
}

// FormatTokenID builds the human-readable token: day key plus a zero-padded
// three-digit sequence.
func FormatTokenID(day string, seq int64) string {
	return fmt.Sprintf("%s%03d", day, seq)
}

// StartOfDay returns local midnight for the given timestamp.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
