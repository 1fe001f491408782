package services

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"catalog-sim/models"
	"catalog-sim/utils"
)

// DefaultDays is the default simulation horizon.
const DefaultDays = 60

// ErrInvalidHorizon is returned when the horizon is not a positive day count.
var ErrInvalidHorizon = errors.New("simulator: days must be positive")

const (
	competitorLo   = 0.9
	competitorHi   = 1.1
	costLo         = 0.6
	costHi         = 0.85
	promotionOdds  = 0.10
	adSpendCeiling = 200.0
)

// SimulatorOptions configures a Simulator.
type SimulatorOptions struct {
	Days        int
	Concurrency int
	// Now anchors the window; the last simulated day is the day before Now.
	Now func() time.Time
}

// Simulator expands a product catalog into a per-day synthetic dataset.
type Simulator struct {
	logger      *utils.Logger
	days        int
	concurrency int
	now         func() time.Time
}

// NewSimulator creates a Simulator. Zero values in opts take defaults.
func NewSimulator(logger *utils.Logger, opts SimulatorOptions) *Simulator {
	s := &Simulator{
		logger:      logger,
		days:        opts.Days,
		concurrency: opts.Concurrency,
		now:         opts.Now,
	}
	if s.days == 0 {
		s.days = DefaultDays
	}
	if s.concurrency < 1 {
		s.concurrency = 1
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Days returns the simulation horizon.
func (s *Simulator) Days() int { return s.days }

// Run expands the catalog and back-fills market share.
func (s *Simulator) Run(catalog []*models.ProductRecord, rng *rand.Rand) ([]*models.DailySimRow, error) {
	rows, _, err := s.Expand(catalog, rng)
	if err != nil {
		return nil, err
	}
	ApplyMarketShare(rows)
	return rows, nil
}

// Expand emits one row per (product, day) without market share. Rows come
// back in catalog order, then day order.
//
// The event calendar and one child seed per product are drawn from rng in
// catalog order before any work starts, so the result depends only on the
// seed and not on worker scheduling.
func (s *Simulator) Expand(catalog []*models.ProductRecord, rng *rand.Rand) ([]*models.DailySimRow, *EventCalendar, error) {
	if s.days <= 0 {
		return nil, nil, fmt.Errorf("%w: got %d", ErrInvalidHorizon, s.days)
	}

	calendar := NewEventCalendar(rng, s.days)
	s.logger.Debug("[simulator] Event days: %v", calendar.Days())

	seeds := make([]int64, len(catalog))
	for i := range seeds {
		seeds[i] = rng.Int63()
	}

	start := truncateToDay(s.now()).AddDate(0, 0, -s.days)

	ids := utils.NewKeySet()
	perProduct := make([][]*models.DailySimRow, len(catalog))

	pool := utils.NewWorkerPool(s.concurrency)
	for i, rec := range catalog {
		if !ids.Add(ProductID(rec.Title)) {
			s.logger.Warn("[simulator] Duplicate title shares product id: %q", rec.Title)
		}
		pool.Submit(func() {
			productRng := rand.New(rand.NewSource(seeds[i]))
			perProduct[i] = s.expandProduct(rec, calendar, productRng, start)
		})
	}
	pool.Wait()

	rows := make([]*models.DailySimRow, 0, len(catalog)*s.days)
	for _, pr := range perProduct {
		rows = append(rows, pr...)
	}

	s.logger.Info("[simulator] Expanded %d products (%d unique ids) × %d days → %d rows",
		len(catalog), ids.Size(), s.days, len(rows))
	return rows, calendar, nil
}

func (s *Simulator) expandProduct(
	rec *models.ProductRecord,
	calendar *EventCalendar,
	rng *rand.Rand,
	start time.Time,
) []*models.DailySimRow {
	specs := ExtractSpecs(rec.Features)
	id := ProductID(rec.Title)
	basePrice := CleanPrice(rec.PriceRaw)
	baseRating := SafeRating(rng, rec.RatingRaw)
	baseReviews := ParseReviews(rng, rec.ReviewsRaw)
	available := AvailabilityBinary(rec.AvailabilityRaw)

	rows := make([]*models.DailySimRow, 0, s.days)
	for day := 0; day < s.days; day++ {
		price := VaryPrice(rng, basePrice)
		reviews := VaryReviews(rng, baseReviews)

		row := &models.DailySimRow{
			Date:         start.AddDate(0, 0, day),
			ProductID:    id,
			Title:        rec.Title,
			Category:     rec.Category,
			Price:        price,
			Rating:       VaryRating(rng, baseRating),
			Reviews:      reviews,
			Availability: available,
			ProductSpecs: specs,
		}

		row.CompetitorPrice = scale(price, uniform(rng, competitorLo, competitorHi))
		if rng.Float64() < promotionOdds {
			row.PromotionFlag = 1
		}
		row.EstimatedDemand = reviews.Value * available
		row.CostPrice = scale(price, uniform(rng, costLo, costHi))
		row.ProfitMargin = margin(price, row.CostPrice)
		row.Event, row.EventImpact = calendar.Simulate(rng, day)
		row.AdSpend = round2(uniform(rng, 0, adSpendCeiling))

		rows = append(rows, row)
	}
	return rows
}

// ApplyMarketShare sets each row's market share to its percentage of the
// total estimated demand of its (date, category) group. Groups with no
// demand get zero. Safe to call more than once.
func ApplyMarketShare(rows []*models.DailySimRow) {
	totals := make(map[string]int)
	for _, r := range rows {
		totals[groupKey(r)] += r.EstimatedDemand
	}

	for _, r := range rows {
		total := totals[groupKey(r)]
		if total <= 0 {
			r.MarketShare = 0
			continue
		}
		r.MarketShare = round2(100 * float64(r.EstimatedDemand) / float64(total))
	}
}

func groupKey(r *models.DailySimRow) string {
	return r.DateKey() + "\x00" + r.Category
}

func scale(price models.Field[float64], factor float64) models.Field[float64] {
	if !price.Ok() {
		return models.MissingOf[float64]()
	}
	return models.Field[float64]{Value: round2(price.Value * factor), Source: price.Source}
}

func margin(price, cost models.Field[float64]) models.Field[float64] {
	if !price.Ok() || !cost.Ok() {
		return models.MissingOf[float64]()
	}
	return models.Field[float64]{Value: round2(price.Value - cost.Value), Source: price.Source}
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
