package quiz

import (
	"math"
	"math/big"
	"strconv"
)

// Percentage returns round-half-up(100*part/total), or 0 when total is 0.
func Percentage(part, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*part + total) / (2 * total)
}

// PassingScore is the minimum number of correct answers needed to pass:
// ceil(total*threshold), computed exactly on the threshold's shortest
// decimal form so 0.7 means 7/10 and 0.7000000001 means slightly more.
func PassingScore(total int, threshold float64) int {
	if total <= 0 || threshold <= 0 {
		return 0
	}
	need := new(big.Rat).Mul(big.NewRat(int64(total), 1), decimalRat(threshold))
	q, r := new(big.Int).QuoRem(need.Num(), need.Denom(), new(big.Int))
	if r.Sign() > 0 {
		q.Add(q, big.NewInt(1))
	}
	return int(q.Int64())
}

// decimalRat returns f as the exact rational of its shortest decimal
// representation.
func decimalRat(f float64) *big.Rat {
	if r, ok := new(big.Rat).SetString(strconv.FormatFloat(f, 'g', -1, 64)); ok {
		return r
	}
	return new(big.Rat).SetFloat64(f)
}

// Passed reports whether score/total >= threshold.
func Passed(score, total int, threshold float64) bool {
	if total <= 0 {
		return false
	}
	return score >= PassingScore(total, threshold)
}

// roundSeconds converts seconds to a whole number, rounding half up.
func roundSeconds(secs float64) int64 {
	if secs <= 0 {
		return 0
	}
	return int64(math.Floor(secs + 0.5))
}
