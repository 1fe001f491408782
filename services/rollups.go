package services

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"catalog-sim/models"
)

// Rollup periods accepted by TopSellers.
const (
	PeriodDay   = "day"
	PeriodWeek  = "week"
	PeriodMonth = "month"
)

// ErrUnknownPeriod is returned for a rollup period other than day, week or month.
var ErrUnknownPeriod = errors.New("insights: unknown period")

// periodLabel names the period a date falls in. Weeks start on Monday.
func periodLabel(d time.Time, period string) (string, error) {
	switch period {
	case PeriodDay:
		return d.Format(models.DateLayout), nil
	case PeriodWeek:
		offset := (int(d.Weekday()) + 6) % 7
		return d.AddDate(0, 0, -offset).Format(models.DateLayout), nil
	case PeriodMonth:
		return d.Format("2006-01"), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPeriod, period)
	}
}

// TopSellers sums estimated demand per product within each period and keeps
// the n best of each. Periods come back in chronological order; ties go to
// the alphabetically first title.
func (s *InsightService) TopSellers(rows []*models.DailySimRow, period string, n int) ([]models.PeriodLeaders, error) {
	if _, err := periodLabel(time.Time{}, period); err != nil {
		return nil, err
	}

	totals := make(map[string]map[string]*models.SellerTotal)
	for _, r := range rows {
		label, _ := periodLabel(r.Date, period)
		byProduct, ok := totals[label]
		if !ok {
			byProduct = make(map[string]*models.SellerTotal)
			totals[label] = byProduct
		}
		st, ok := byProduct[r.ProductID]
		if !ok {
			st = &models.SellerTotal{ProductID: r.ProductID, Title: r.Title}
			byProduct[r.ProductID] = st
		}
		st.Demand += r.EstimatedDemand
	}

	labels := make([]string, 0, len(totals))
	for label := range totals {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	out := make([]models.PeriodLeaders, 0, len(labels))
	for _, label := range labels {
		leaders := make([]models.SellerTotal, 0, len(totals[label]))
		for _, st := range totals[label] {
			leaders = append(leaders, *st)
		}
		sort.Slice(leaders, func(i, j int) bool {
			if leaders[i].Demand != leaders[j].Demand {
				return leaders[i].Demand > leaders[j].Demand
			}
			if leaders[i].Title != leaders[j].Title {
				return leaders[i].Title < leaders[j].Title
			}
			return leaders[i].ProductID < leaders[j].ProductID
		})
		if n > 0 && len(leaders) > n {
			leaders = leaders[:n]
		}
		out = append(out, models.PeriodLeaders{Period: label, Leaders: leaders})
	}

	s.logger.Debug("[insights] %d %s periods", len(out), period)
	return out, nil
}

// Trend lays out the daily market share of the given products, one row per date.
// Products absent on a date get zero.
func (s *InsightService) Trend(rows []*models.DailySimRow, products []*models.ProductSummary) *models.ShareTrend {
	trend := &models.ShareTrend{}
	col := make(map[string]int, len(products))
	for i, p := range products {
		col[p.ProductID] = i
		trend.Products = append(trend.Products, *p)
	}

	byDate := make(map[string][]float64)
	for _, r := range rows {
		j, ok := col[r.ProductID]
		if !ok {
			continue
		}
		key := r.DateKey()
		shares, ok := byDate[key]
		if !ok {
			shares = make([]float64, len(products))
			byDate[key] = shares
			trend.Dates = append(trend.Dates, key)
		}
		shares[j] = r.MarketShare
	}

	sort.Strings(trend.Dates)
	for _, d := range trend.Dates {
		trend.Shares = append(trend.Shares, byDate[d])
	}
	return trend
}

// PrintTopSellers renders period leaders as a single table.
func (s *InsightService) PrintTopSellers(w io.Writer, period string, leaders []models.PeriodLeaders) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(fmt.Sprintf("Top Sellers per %s", period))
	t.AppendHeader(table.Row{"Period", "#", "Product", "Est. demand"})
	if len(leaders) == 0 {
		t.AppendRow(table.Row{"-", "", "No rows", ""})
	}
	for _, pl := range leaders {
		for i, l := range pl.Leaders {
			t.AppendRow(table.Row{pl.Period, i + 1, truncate(l.Title, 40), l.Demand})
		}
		t.AppendSeparator()
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}

// PrintTrend renders a ShareTrend with one column per product.
func (s *InsightService) PrintTrend(w io.Writer, trend *models.ShareTrend) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Market Share Trend (%)")

	header := table.Row{"Date"}
	for _, p := range trend.Products {
		header = append(header, truncate(p.Title, 20))
	}
	t.AppendHeader(header)

	for i, d := range trend.Dates {
		row := table.Row{d}
		for _, v := range trend.Shares[i] {
			row = append(row, fmt.Sprintf("%.2f", v))
		}
		t.AppendRow(row)
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}
