// Package calc derives the rows of the load test results table from the
// structural dimensions of a report.
package calc

import (
	"math"
	"strconv"
)

// Round2 rounds half-up to two decimals. Rounding works on the shortest decimal
// form of x, so 6.075 (stored as 6.07499…) becomes 6.08.
func Round2(x float64) float64 {
	scaled, err := strconv.ParseFloat(strconv.FormatFloat(x*100, 'f', 6, 64), 64)
	if err != nil {
		scaled = x * 100
	}
	return math.Round(scaled) / 100
}

// KGF converts kN to kgf, truncating to an integer.
func KGF(kn float64) int {
	return int(math.Trunc(kn*100 + 1e-6))
}
