package locale

import (
	"strconv"
	"strings"
)

// Number parses an Indonesian-formatted numeric string, where the dot is a
// thousands separator and the comma a decimal point ("31.700,00" -> 31700.0).
// The second return value is false when the input is empty or unparseable,
// so callers can tell a missing value from a genuine zero.
func Number(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// NumberOr parses like Number but degrades to def on a miss instead of
// reporting it. It never fails.
func NumberOr(raw string, def float64) float64 {
	if v, ok := Number(raw); ok {
		return v
	}
	return def
}
