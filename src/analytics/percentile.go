package analytics

import (
	"math"

	"github.com/shopspring/decimal"
)

// percentile computes the p-th percentile (0 <= p <= 1) of an ascending
// sorted, non-empty value list using linear interpolation between the two
// nearest ranks. Interpolation is done in decimal arithmetic so boundaries
// are exact for exact inputs; the method is spelled out here instead of
// delegated to a stats library so tie-handling stays reproducible.
func percentile(sorted []decimal.Decimal, p float64) decimal.Decimal {
	if len(sorted) == 1 {
		return sorted[0]
	}

	rank := p * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}

	frac := decimal.NewFromFloat(rank - float64(lo))
	return sorted[lo].Add(sorted[hi].Sub(sorted[lo]).Mul(frac))
}
