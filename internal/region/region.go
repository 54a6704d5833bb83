package region

import (
	"regexp"
	"strings"
)

// Region is one of the six DKI Jakarta wilayah. Records whose store address
// matches none of them are excluded from every downstream computation.
type Region string

const (
	JakartaPusat    Region = "Jakarta Pusat"
	JakartaUtara    Region = "Jakarta Utara"
	JakartaTimur    Region = "Jakarta Timur"
	JakartaBarat    Region = "Jakarta Barat"
	JakartaSelatan  Region = "Jakarta Selatan"
	KepulauanSeribu Region = "Kepulauan Seribu"
	Unknown         Region = "Unknown"
)

// All returns the six wilayah in report priority order. Detection and every
// per-region output iterate in this order.
func All() []Region {
	return []Region{
		JakartaPusat,
		JakartaUtara,
		JakartaTimur,
		JakartaBarat,
		JakartaSelatan,
		KepulauanSeribu,
	}
}

// ColumnName is the short identifier used for per-region table columns,
// e.g. "trx_pusat" or "trx_kepulauan_seribu".
func (r Region) ColumnName() string {
	name := strings.ToLower(string(r))
	name = strings.TrimPrefix(name, "jakarta ")
	return "trx_" + strings.ReplaceAll(name, " ", "_")
}

// Patterns tolerate optional internal whitespace, and Kepulauan Seribu
// additionally matches the common "KEP SERIBU" and "KEP. SERIBU" forms.
var patterns = []struct {
	region Region
	re     *regexp.Regexp
}{
	{JakartaPusat, regexp.MustCompile(`JAKARTA\s*PUSAT`)},
	{JakartaUtara, regexp.MustCompile(`JAKARTA\s*UTARA`)},
	{JakartaTimur, regexp.MustCompile(`JAKARTA\s*TIMUR`)},
	{JakartaBarat, regexp.MustCompile(`JAKARTA\s*BARAT`)},
	{JakartaSelatan, regexp.MustCompile(`JAKARTA\s*SELATAN`)},
	{KepulauanSeribu, regexp.MustCompile(`KEP(?:ULAUAN)?\.?\s*SERIBU`)},
}

// Detect maps a raw store address to a wilayah. The address is uppercased
// and the patterns are tried in fixed priority order; the first match wins,
// and no match yields Unknown.
func Detect(address string) Region {
	upper := strings.ToUpper(address)
	for _, p := range patterns {
		if p.re.MatchString(upper) {
			return p.region
		}
	}
	return Unknown
}
