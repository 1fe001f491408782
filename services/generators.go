package services

import (
	"math/rand"
	"regexp"
	"strconv"
	"strings"

	"catalog-sim/models"
)

var (
	// priceRegexp captures the first numeric amount, with its sign, once
	// separators are gone.
	priceRegexp = regexp.MustCompile(`-?\d+(?:\.\d+)?`)
	// countRegexp captures a signed review count such as "1234" or "1234.0".
	countRegexp = regexp.MustCompile(`-?\d+(?:\.\d+)?`)
)

// Perturbation bounds.
const (
	priceJitter   = 0.05
	ratingJitter  = 0.2
	reviewsJitter = 0.10

	minRating = 1.0
	maxRating = 5.0

	fabricatedRatingLo  = 3.0
	fabricatedRatingHi  = 4.5
	fabricatedReviewsLo = 10
	fabricatedReviewsHi = 100

	// Larger values are treated as malformed. They keep every derived
	// column finite and every count inside int.
	maxPrice       = 1e12
	maxReviewCount = 1e12
)

// CleanPrice strips currency symbols and thousands separators from a raw price.
// Empty, unparseable, negative or absurdly large input is Missing, never zero.
func CleanPrice(raw string) models.Field[float64] {
	s := strings.NewReplacer("₹", "", "$", "", ",", "").Replace(raw)
	s = strings.TrimSpace(s)
	if s == "" {
		return models.MissingOf[float64]()
	}

	match := priceRegexp.FindString(s)
	if match == "" {
		return models.MissingOf[float64]()
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil || v < 0 || v > maxPrice {
		return models.MissingOf[float64]()
	}
	return models.PresentOf(v)
}

// VaryPrice applies a uniform ±5% perturbation and rounds to cents.
func VaryPrice(rng *rand.Rand, base models.Field[float64]) models.Field[float64] {
	if !base.Ok() {
		return base
	}
	v := base.Value + base.Value*uniform(rng, -priceJitter, priceJitter)
	return models.Field[float64]{Value: round2(v), Source: base.Source}
}

// SafeRating parses a rating in [1,5]. Anything else is replaced with a
// plausible value in [3,4.5] tagged Fabricated.
func SafeRating(rng *rand.Rand, raw string) models.Field[float64] {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err == nil && v >= minRating && v <= maxRating {
		return models.PresentOf(v)
	}
	return models.FabricatedOf(round2(uniform(rng, fabricatedRatingLo, fabricatedRatingHi)))
}

// VaryRating perturbs a rating by up to ±0.2, clamped to [1,5].
func VaryRating(rng *rand.Rand, base models.Field[float64]) models.Field[float64] {
	if !base.Ok() {
		return base
	}
	v := base.Value + uniform(rng, -ratingJitter, ratingJitter)
	v = min(max(v, minRating), maxRating)
	return models.Field[float64]{Value: round2(v), Source: base.Source}
}

// ParseReviews reads a base review count. Commas and trailing words are
// ignored; when no usable count is found (including negative or overflowing
// ones) a value in [10,100) is fabricated.
func ParseReviews(rng *rand.Rand, raw string) models.Field[int] {
	s := strings.ReplaceAll(raw, ",", "")
	if match := countRegexp.FindString(s); match != "" {
		if v, err := strconv.ParseFloat(match, 64); err == nil && v >= 0 && v <= maxReviewCount {
			return models.PresentOf(int(v))
		}
	}
	n := fabricatedReviewsLo + rng.Intn(fabricatedReviewsHi-fabricatedReviewsLo)
	return models.FabricatedOf(n)
}

// VaryReviews perturbs a review count by up to ±10%, floored at zero.
// A Missing base yields zero.
func VaryReviews(rng *rand.Rand, base models.Field[int]) models.Field[int] {
	if !base.Ok() {
		return models.Field[int]{Value: 0, Source: models.Missing}
	}
	b := float64(base.Value)
	v := int(b + b*uniform(rng, -reviewsJitter, reviewsJitter))
	if v < 0 {
		v = 0
	}
	return models.Field[int]{Value: v, Source: base.Source}
}

// AvailabilityBinary is 1 when the status mentions "in stock", else 0.
func AvailabilityBinary(status string) int {
	if strings.Contains(strings.ToLower(status), "in stock") {
		return 1
	}
	return 0
}
