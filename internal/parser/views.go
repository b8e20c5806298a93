package parser

import (
	"strconv"
	"strings"
)

// ParseViewCount strips thousands separators and parses what remains as a
// non-negative integer. "1,234,567" -> 1234567; "12a", "" and "-5" are not ok.
func ParseViewCount(s string) (int64, bool) {
	digits := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if digits == "" {
		return 0, false
	}

	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false
		}
	}

	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}

	return n, true
}
