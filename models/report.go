package models

// ProductSummary aggregates one product's rows for positioning and ranking.
type ProductSummary struct {
	ProductID      string
	Title          string
	Category       string
	AvgPrice       float64
	AvgMargin      float64
	AvgMarketShare float64
	Days           int
}

// InsightReport holds the computed analytics over a simulated dataset.
type InsightReport struct {
	TotalRows       int
	Products        int
	Categories      map[string]int
	AveragePrice    float64
	AverageRating   float64
	AverageMargin   float64
	FabricatedRows  int
	EventDays       int
	EventDemandLift float64
	TopByShare      []*ProductSummary
	Positioning     []*ProductSummary
}

// PricePoint is one sample on the pricing optimizer grid.
type PricePoint struct {
	Price  float64
	Demand float64
	Margin float64
	Profit float64
}

// PriceSimulation is the optimizer output for a single product.
type PriceSimulation struct {
	ProductID  string
	Title      string
	BasePrice  float64
	CostPrice  float64
	BaseDemand int
	Elasticity float64
	Grid       []PricePoint
	Best       PricePoint
}

// SellerTotal is one product's summed estimated demand within a period.
type SellerTotal struct {
	ProductID string
	Title     string
	Demand    int
}

// PeriodLeaders lists the best sellers of one day, week or month.
type PeriodLeaders struct {
	Period  string
	Leaders []SellerTotal
}

// ShareTrend is the per-date market share of a set of products.
type ShareTrend struct {
	Products []ProductSummary
	Dates    []string
	// Shares[i][j] is the share of Products[j] on Dates[i].
	Shares [][]float64
}
