package services

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"catalog-sim/models"
	"catalog-sim/utils"
)

const (
	topProductCount = 5
	optimizerPoints = 50
)

// ErrNoPriceData is returned when a product has no usable priced row to optimise from.
var ErrNoPriceData = errors.New("insights: no priced rows for product")

type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// Generate computes dashboard metrics over a simulated dataset. When category
// is non-empty only rows of that category are considered.
func (s *InsightService) Generate(rows []*models.DailySimRow, category string) *models.InsightReport {
	report := &models.InsightReport{
		Categories: make(map[string]int),
	}

	type acc struct {
		summary   *models.ProductSummary
		priceSum  float64
		marginSum float64
		shareSum  float64
		priced    int
	}
	byProduct := make(map[string]*acc)
	var order []string

	var priceSum, ratingSum, marginSum float64
	var priced, rated, margined int
	eventDates := make(map[string]struct{})
	var eventDemand, normalDemand, eventRows, normalRows int

	for _, r := range rows {
		if category != "" && r.Category != category {
			continue
		}
		report.TotalRows++
		report.Categories[r.Category]++

		if r.Price.Ok() {
			priceSum += r.Price.Value
			priced++
		}
		if r.Rating.Ok() {
			ratingSum += r.Rating.Value
			rated++
		}
		if r.ProfitMargin.Ok() {
			marginSum += r.ProfitMargin.Value
			margined++
		}
		if r.Rating.Source == models.Fabricated || r.Reviews.Source == models.Fabricated {
			report.FabricatedRows++
		}

		if r.Event == 1 {
			eventDates[r.DateKey()] = struct{}{}
			eventDemand += r.EstimatedDemand
			eventRows++
		} else {
			normalDemand += r.EstimatedDemand
			normalRows++
		}

		a, ok := byProduct[r.ProductID]
		if !ok {
			a = &acc{summary: &models.ProductSummary{
				ProductID: r.ProductID,
				Title:     r.Title,
				Category:  r.Category,
			}}
			byProduct[r.ProductID] = a
			order = append(order, r.ProductID)
		}
		a.summary.Days++
		a.shareSum += r.MarketShare
		if r.Price.Ok() {
			a.priceSum += r.Price.Value
			a.priced++
		}
		if r.ProfitMargin.Ok() {
			a.marginSum += r.ProfitMargin.Value
		}
	}

	if report.TotalRows == 0 {
		return report
	}

	report.Products = len(byProduct)
	report.AveragePrice = mean(priceSum, priced)
	report.AverageRating = mean(ratingSum, rated)
	report.AverageMargin = mean(marginSum, margined)
	report.EventDays = len(eventDates)

	if eventRows > 0 && normalRows > 0 && normalDemand > 0 {
		eventAvg := float64(eventDemand) / float64(eventRows)
		normalAvg := float64(normalDemand) / float64(normalRows)
		report.EventDemandLift = round2(eventAvg / normalAvg)
	}

	for _, id := range order {
		a := byProduct[id]
		a.summary.AvgPrice = mean(a.priceSum, a.priced)
		a.summary.AvgMargin = mean(a.marginSum, a.priced)
		a.summary.AvgMarketShare = mean(a.shareSum, a.summary.Days)
		report.Positioning = append(report.Positioning, a.summary)
	}

	ranked := make([]*models.ProductSummary, len(report.Positioning))
	copy(ranked, report.Positioning)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].AvgMarketShare > ranked[j].AvgMarketShare
	})
	if len(ranked) > topProductCount {
		ranked = ranked[:topProductCount]
	}
	report.TopByShare = ranked

	s.logger.Debug("[insights] %d rows, %d products, %d event days",
		report.TotalRows, report.Products, report.EventDays)
	return report
}

// OptimizePrice sweeps candidate prices for a product using a constant
// elasticity demand curve anchored at its most recent priced row:
//
//	demand(p) = baseDemand × (basePrice / p) ^ elasticity
//
// The grid spans [cost+1, 1.5 × basePrice].
func (s *InsightService) OptimizePrice(rows []*models.DailySimRow, productID string, elasticity float64) (*models.PriceSimulation, error) {
	var latest *models.DailySimRow
	for _, r := range rows {
		if r.ProductID != productID || !r.Price.Ok() || !r.CostPrice.Ok() {
			continue
		}
		if latest == nil || r.Date.After(latest.Date) {
			latest = r
		}
	}
	if latest == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoPriceData, productID)
	}

	sim := &models.PriceSimulation{
		ProductID:  latest.ProductID,
		Title:      latest.Title,
		BasePrice:  latest.Price.Value,
		CostPrice:  latest.CostPrice.Value,
		BaseDemand: latest.EstimatedDemand,
		Elasticity: elasticity,
	}

	lo := sim.CostPrice + 1
	hi := sim.BasePrice * 1.5
	if hi < lo {
		hi = lo
	}

	sim.Grid = make([]models.PricePoint, 0, optimizerPoints)
	for i := 0; i < optimizerPoints; i++ {
		p := lo + (hi-lo)*float64(i)/float64(optimizerPoints-1)
		demand := float64(sim.BaseDemand) * math.Pow(sim.BasePrice/p, elasticity)
		m := p - sim.CostPrice
		pt := models.PricePoint{Price: p, Demand: demand, Margin: m, Profit: demand * m}
		sim.Grid = append(sim.Grid, pt)
		if i == 0 || pt.Profit > sim.Best.Profit {
			sim.Best = pt
		}
	}

	return sim, nil
}

// Print renders the report as terminal tables.
func (s *InsightService) Print(w io.Writer, r *models.InsightReport) {
	overview := table.NewWriter()
	overview.SetOutputMirror(w)
	overview.SetTitle("Simulation Overview")
	overview.AppendRows([]table.Row{
		{"Rows", r.TotalRows},
		{"Products", r.Products},
		{"Categories", len(r.Categories)},
		{"Average price", fmt.Sprintf("₹%.2f", r.AveragePrice)},
		{"Average rating", fmt.Sprintf("%.2f", r.AverageRating)},
		{"Average profit margin", fmt.Sprintf("₹%.2f", r.AverageMargin)},
		{"Rows with fabricated fields", r.FabricatedRows},
		{"Event days", r.EventDays},
		{"Event demand lift", fmt.Sprintf("%.2fx", r.EventDemandLift)},
	})
	overview.SetStyle(table.StyleRounded)
	overview.Render()

	top := table.NewWriter()
	top.SetOutputMirror(w)
	top.SetTitle(fmt.Sprintf("Top %d Products by Avg Market Share", topProductCount))
	top.AppendHeader(table.Row{"#", "Product", "Category", "Market share (%)"})
	if len(r.TopByShare) == 0 {
		top.AppendRow(table.Row{"-", "No products", "", ""})
	}
	for i, p := range r.TopByShare {
		top.AppendRow(table.Row{i + 1, truncate(p.Title, 40), p.Category, fmt.Sprintf("%.2f", round2(p.AvgMarketShare))})
	}
	top.SetStyle(table.StyleRounded)
	top.Render()

	pos := table.NewWriter()
	pos.SetOutputMirror(w)
	pos.SetTitle("Market Positioning")
	pos.AppendHeader(table.Row{"Product", "Avg price", "Avg margin", "Avg share (%)"})
	for _, p := range r.Positioning {
		pos.AppendRow(table.Row{
			truncate(p.Title, 40),
			fmt.Sprintf("%.2f", p.AvgPrice),
			fmt.Sprintf("%.2f", p.AvgMargin),
			fmt.Sprintf("%.2f", p.AvgMarketShare),
		})
	}
	pos.SetStyle(table.StyleRounded)
	pos.Render()
}

// PrintSimulation renders the optimizer result with a coarse sample of its grid.
func (s *InsightService) PrintSimulation(w io.Writer, sim *models.PriceSimulation) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Pricing Optimizer: " + truncate(sim.Title, 40))
	t.AppendHeader(table.Row{"Price", "Demand", "Margin", "Total profit"})

	step := len(sim.Grid) / 10
	if step < 1 {
		step = 1
	}
	for i := 0; i < len(sim.Grid); i += step {
		pt := sim.Grid[i]
		t.AppendRow(table.Row{
			fmt.Sprintf("%.2f", pt.Price),
			fmt.Sprintf("%.0f", pt.Demand),
			fmt.Sprintf("%.2f", pt.Margin),
			fmt.Sprintf("%.0f", pt.Profit),
		})
	}
	t.AppendFooter(table.Row{
		"best " + fmt.Sprintf("%.2f", sim.Best.Price),
		fmt.Sprintf("%.0f", sim.Best.Demand),
		fmt.Sprintf("%.2f", sim.Best.Margin),
		fmt.Sprintf("%.0f", sim.Best.Profit),
	})
	t.SetStyle(table.StyleRounded)
	t.Render()
}

func mean(sum float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return round2(sum / float64(n))
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return strings.TrimSpace(string(r[:max-3])) + "..."
}
