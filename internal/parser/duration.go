// Package parser holds the field-level parse functions used by both ingestion
// paths. Every function reports success instead of failing so the caller
// decides whether a bad value drops the row or becomes a null.
package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sosodev/duration"
)

// ParseClockDuration converts a colon separated clock string to minutes.
// "H:MM:SS" yields h*60 + m + s/60 and "M:SS" yields m + s/60. Any other
// shape, or a part that is not an integer, is reported as not ok.
func ParseClockDuration(s string) (float64, bool) {
	if !strings.Contains(s, ":") {
		return 0, false
	}

	parts := strings.Split(s, ":")
	values := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return 0, false
		}
		values[i] = v
	}

	switch len(values) {
	case 3:
		h, m, sec := values[0], values[1], values[2]
		return float64(h*60+m) + float64(sec)/60, true
	case 2:
		m, sec := values[0], values[1]
		return float64(m) + float64(sec)/60, true
	default:
		return 0, false
	}
}

// isoDurationShape accepts the fixed-length designators in order, each at
// most once. Years and months have no fixed length and do not match.
var isoDurationShape = regexp.MustCompile(
	`^P(\d+([.,]\d+)?W)?(\d+([.,]\d+)?D)?(T(\d+([.,]\d+)?H)?(\d+([.,]\d+)?M)?(\d+([.,]\d+)?S)?)?$`,
)

// ParseISODuration converts an ISO 8601 duration to minutes.
// Example: "PT4M13S" -> 4.2166... Weeks, days, hours, minutes and seconds are
// accepted and may be fractional.
func ParseISODuration(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "P" || strings.HasSuffix(s, "T") || !isoDurationShape.MatchString(s) {
		return 0, false
	}

	d, err := duration.Parse(strings.ReplaceAll(s, ",", "."))
	if err != nil || d.Negative || d.Years != 0 || d.Months != 0 {
		return 0, false
	}

	days := d.Weeks*7 + d.Days
	return days*24*60 + d.Hours*60 + d.Minutes + d.Seconds/60, true
}
