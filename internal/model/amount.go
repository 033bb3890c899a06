package model

import (
	"strconv"
	"strings"
)

// ParseAmount parses a monetary field value into a number. Currency markers
// (₹, Rs, INR) and thousands separators are tolerated. The second return is
// false when the value cannot be evaluated as a number; callers treat that
// as "cannot evaluate", never as an error.
func ParseAmount(value string) (float64, bool) {
	s := strings.TrimSpace(value)
	for _, marker := range []string{"₹", "Rs.", "Rs", "INR"} {
		s = strings.ReplaceAll(s, marker, "")
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	amount, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return amount, true
}
