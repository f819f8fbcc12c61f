package suggest

import (
	"math"
	"math/big"
	"strconv"
)

// fixed formats v with the given number of decimals. Rounding is done on the
// exact binary value, so 8.45 (stored just below) yields "8.4". Exact ties
// round away from zero. Infinities saturate to the largest finite float.
func fixed(v float64, digits int) string {
	switch {
	case math.IsNaN(v):
		v = 0
	case math.IsInf(v, 0):
		v = math.Copysign(math.MaxFloat64, v)
	}
	if isTie(v, digits) {
		v = math.Nextafter(v, math.Copysign(math.Inf(1), v))
	}
	return strconv.FormatFloat(v, 'f', digits, 64)
}

// isTie reports whether v lies exactly halfway between two values with the
// given number of decimals.
func isTie(v float64, digits int) bool {
	scaled := new(big.Float).SetPrec(512).SetFloat64(math.Abs(v))
	scaled.Mul(scaled, new(big.Float).SetPrec(512).SetFloat64(math.Pow10(digits)))
	whole, _ := scaled.Int(nil)
	frac := scaled.Sub(scaled, new(big.Float).SetInt(whole))
	return frac.Cmp(big.NewFloat(0.5)) == 0
}

// shortest formats v with the fewest digits that represent it exactly.
func shortest(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
