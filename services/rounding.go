package services

import (
	"math"
	"math/rand"

	"github.com/shopspring/decimal"
)

// round2 rounds half away from zero to two decimal places. NaN and ±Inf
// come back unchanged.
func round2(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}
	return decimal.NewFromFloat(f).Round(2).InexactFloat64()
}

// uniform draws from [lo, hi).
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}
