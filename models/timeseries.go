package models

import "time"

// DateLayout is the on-disk format of DailySimRow.Date.
const DateLayout = "2006-01-02"

// DailySimRow is one simulated (product, day) observation.
// MarketShare is zero until the market share pass has run over the full table.
type DailySimRow struct {
	Date      time.Time
	ProductID string
	Title     string
	Category  string

	Price           Field[float64]
	Rating          Field[float64]
	Reviews         Field[int]
	Availability    int
	CompetitorPrice Field[float64]
	PromotionFlag   int
	EstimatedDemand int
	CostPrice       Field[float64]
	ProfitMargin    Field[float64]
	Event           int
	EventImpact     float64
	AdSpend         float64

	ProductSpecs

	MarketShare float64
}

// DateKey returns the row date in DateLayout.
func (r *DailySimRow) DateKey() string {
	return r.Date.Format(DateLayout)
}
