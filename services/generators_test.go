package services

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"catalog-sim/models"
)

func newRng() *rand.Rand { return rand.New(rand.NewSource(7)) }

func TestCleanPrice(t *testing.T) {
	tests := []struct {
		raw  string
		want models.Field[float64]
	}{
		{"₹1,299.00", models.PresentOf(1299.0)},
		{"₹12,999", models.PresentOf(12999.0)},
		{"$45.50", models.PresentOf(45.5)},
		{"Rs. 1,299", models.PresentOf(1299.0)},
		{"", models.MissingOf[float64]()},
		{"   ", models.MissingOf[float64]()},
		{"N/A", models.MissingOf[float64]()},
		{"-5", models.MissingOf[float64]()},
		{"₹-1,299", models.MissingOf[float64]()},
		{"17" + strings.Repeat("0", 307), models.MissingOf[float64]()},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanPrice(tt.raw), "CleanPrice(%q)", tt.raw)
	}
}

func TestVaryPriceBounds(t *testing.T) {
	rng := newRng()
	base := models.PresentOf(1000.0)
	for i := 0; i < 1000; i++ {
		got := VaryPrice(rng, base)
		assert.Equal(t, models.Present, got.Source)
		assert.GreaterOrEqual(t, got.Value, 950.0)
		assert.LessOrEqual(t, got.Value, 1050.0)
	}
}

func TestVaryPriceMissing(t *testing.T) {
	got := VaryPrice(newRng(), models.MissingOf[float64]())
	assert.False(t, got.Ok())
}

func TestSafeRating(t *testing.T) {
	rng := newRng()

	assert.Equal(t, models.PresentOf(4.3), SafeRating(rng, "4.3"))
	assert.Equal(t, models.PresentOf(1.0), SafeRating(rng, " 1 "))
	assert.Equal(t, models.PresentOf(5.0), SafeRating(rng, "5"))

	for _, raw := range []string{"", "New", "0.5", "7", "NaN"} {
		got := SafeRating(rng, raw)
		assert.Equal(t, models.Fabricated, got.Source, "SafeRating(%q)", raw)
		assert.GreaterOrEqual(t, got.Value, 3.0)
		assert.LessOrEqual(t, got.Value, 4.5)
	}
}

func TestVaryRatingClamped(t *testing.T) {
	rng := newRng()
	for _, base := range []float64{1.0, 3.7, 5.0} {
		for i := 0; i < 500; i++ {
			got := VaryRating(rng, models.PresentOf(base))
			assert.GreaterOrEqual(t, got.Value, 1.0)
			assert.LessOrEqual(t, got.Value, 5.0)
			assert.InDelta(t, base, got.Value, 0.2+1e-9)
		}
	}
	assert.False(t, VaryRating(rng, models.MissingOf[float64]()).Ok())
}

func TestVaryRatingKeepsProvenance(t *testing.T) {
	got := VaryRating(newRng(), models.FabricatedOf(4.0))
	assert.Equal(t, models.Fabricated, got.Source)
}

func TestParseReviews(t *testing.T) {
	rng := newRng()

	assert.Equal(t, models.PresentOf(1234), ParseReviews(rng, "1,234"))
	assert.Equal(t, models.PresentOf(87), ParseReviews(rng, "87 Reviews"))
	assert.Equal(t, models.PresentOf(12), ParseReviews(rng, "12.0"))

	for _, raw := range []string{"", "no reviews", "-5", "99999999999999999999"} {
		got := ParseReviews(rng, raw)
		assert.Equal(t, models.Fabricated, got.Source)
		assert.GreaterOrEqual(t, got.Value, 10, "ParseReviews(%q)", raw)
		assert.Less(t, got.Value, 100, "ParseReviews(%q)", raw)
	}
}

func TestVaryReviews(t *testing.T) {
	rng := newRng()
	for i := 0; i < 500; i++ {
		got := VaryReviews(rng, models.PresentOf(200))
		assert.GreaterOrEqual(t, got.Value, 180)
		assert.LessOrEqual(t, got.Value, 220)
	}

	assert.Equal(t, 0, VaryReviews(rng, models.PresentOf(0)).Value)

	missing := VaryReviews(rng, models.MissingOf[int]())
	assert.Equal(t, 0, missing.Value)
	assert.Equal(t, models.Missing, missing.Source)
}

func TestAvailabilityBinary(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"In Stock", 1},
		{"Only 2 left IN STOCK", 1},
		{"Out of Stock", 0},
		{"Coming soon", 0},
		{"", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AvailabilityBinary(tt.raw), "AvailabilityBinary(%q)", tt.raw)
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 6.53, round2(16.59/2.54))
	assert.Equal(t, 1299.0, round2(1299))
	assert.Equal(t, -0.13, round2(-0.125))

	assert.True(t, math.IsInf(round2(math.Inf(1)), 1))
	assert.True(t, math.IsInf(round2(math.Inf(-1)), -1))
	assert.True(t, math.IsNaN(round2(math.NaN())))
}
