package parser

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// DateLayout is the calendar date format used for filter bounds.
const DateLayout = "2006-01-02"

var missingValues = map[string]bool{
	"":      true,
	"nan":   true,
	"na":    true,
	"nat":   true,
	"null":  true,
	"none":  true,
	"<nil>": true,
}

// IsMissing reports whether a raw cell means "no value".
func IsMissing(s string) bool {
	return missingValues[strings.ToLower(strings.TrimSpace(s))]
}

// ParseTimestamp parses a timestamp in any common layout. Values without an
// offset are read as UTC wall time.
func ParseTimestamp(s string) (time.Time, bool) {
	if IsMissing(s) {
		return time.Time{}, false
	}

	t, err := dateparse.ParseIn(strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}

// ParseNaiveTimestamp parses like ParseTimestamp and then drops the offset.
func ParseNaiveTimestamp(s string) (time.Time, bool) {
	t, ok := ParseTimestamp(s)
	if !ok {
		return time.Time{}, false
	}
	return Naive(t), true
}

// Naive keeps the wall clock reading of t and discards its zone, returning
// the same reading in UTC. "2024-01-01T10:00:00+05:30" -> 2024-01-01 10:00 UTC.
func Naive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date at midnight UTC.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
