package report

import (
	"strconv"
	"strings"

	"wilayah-analytics/internal/region"
)

// formatDecimal renders a number the Indonesian way: dots for thousands,
// comma for the two decimals ("31.700,00"), the inverse of the input
// parsing in internal/locale.
func formatDecimal(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	parts := strings.SplitN(s, ".", 2)
	out := groupThousands(parts[0]) + "," + parts[1]
	if neg {
		out = "-" + out
	}
	return out
}

func formatRupiah(v float64) string {
	return "Rp " + formatDecimal(v)
}

func formatCount(n int) string {
	return groupThousands(strconv.Itoa(n))
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

func formatRatio(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// shortRegion drops the shared "Jakarta" prefix for chart axis labels.
func shortRegion(r region.Region) string {
	return strings.TrimPrefix(string(r), "Jakarta ")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-2] + ".."
}
