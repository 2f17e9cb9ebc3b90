// etl/normalize.go
package etl

import (
	"regexp"
	"strconv"
)

// First run of digits, optionally followed by a dot and more digits.
// "12." matches as "12." and parses as 12.
var priceRegex = regexp.MustCompile(`\d+\.?\d*`)

// NormalizePriceString pulls the numeric value out of a messy price string such as
// "$ 22.65", "23.88 GBP" or "Â£51.77". Currency symbols and codes are discarded;
// only the first numeric run is used. Input without digits yields 0.
func NormalizePriceString(raw string) float64 {
	match := priceRegex.FindString(raw)
	if match == "" {
		return 0.0
	}
	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		// Only reachable for runs too long to represent; treat like missing.
		return 0.0
	}
	return value
}

// NormalizePrice is NormalizePriceString for an optional value. A nil input yields 0.
func NormalizePrice(raw *string) float64 {
	if raw == nil {
		return 0.0
	}
	return NormalizePriceString(*raw)
}
