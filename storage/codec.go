package storage

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"catalog-sim/models"
)

// TimeSeriesHeader is the column order of the simulated dataset.
var TimeSeriesHeader = []string{
	"date", "product_id", "title", "category",
	"price", "rating", "reviews", "availability",
	"competitor_price", "promotion_flag", "estimated_demand",
	"cost_price", "profit_margin", "event", "event_impact", "ad_spend",
	"ram_gb", "storage_gb", "battery_mah", "display_inch",
	"processor_brand", "processor_type", "market_share",
}

// CatalogColumns are the columns a catalog CSV is expected to carry.
var CatalogColumns = []string{
	"title", "price", "rating", "reviews", "availability", "features", "category",
}

func encodeRow(r *models.DailySimRow) []string {
	return []string{
		r.DateKey(),
		r.ProductID,
		r.Title,
		r.Category,
		formatField(r.Price),
		formatField(r.Rating),
		strconv.Itoa(r.Reviews.Value),
		strconv.Itoa(r.Availability),
		formatField(r.CompetitorPrice),
		strconv.Itoa(r.PromotionFlag),
		strconv.Itoa(r.EstimatedDemand),
		formatField(r.CostPrice),
		formatField(r.ProfitMargin),
		strconv.Itoa(r.Event),
		formatFloat(r.EventImpact),
		formatFloat(r.AdSpend),
		formatIntPtr(r.RAMGB),
		formatIntPtr(r.StorageGB),
		formatIntPtr(r.BatteryMAh),
		formatFloatPtr(r.DisplayInch),
		formatStringPtr(r.ProcessorBrand),
		formatStringPtr(r.ProcessorType),
		formatFloat(r.MarketShare),
	}
}

// decodeRow parses a record laid out as TimeSeriesHeader. Non-empty values
// are read back as Present since the file carries no provenance.
func decodeRow(rec []string) (*models.DailySimRow, error) {
	if len(rec) != len(TimeSeriesHeader) {
		return nil, fmt.Errorf("expected %d columns, got %d", len(TimeSeriesHeader), len(rec))
	}

	d := &decoder{rec: rec}
	r := &models.DailySimRow{
		ProductID: rec[1],
		Title:     rec[2],
		Category:  rec[3],
	}

	date, err := time.Parse(models.DateLayout, rec[0])
	if err != nil {
		return nil, fmt.Errorf("date %q: %w", rec[0], err)
	}
	r.Date = date

	r.Price = d.field(4)
	r.Rating = d.field(5)
	r.Reviews = models.PresentOf(d.intAt(6))
	r.Availability = d.intAt(7)
	r.CompetitorPrice = d.field(8)
	r.PromotionFlag = d.intAt(9)
	r.EstimatedDemand = d.intAt(10)
	r.CostPrice = d.field(11)
	r.ProfitMargin = d.field(12)
	r.Event = d.intAt(13)
	r.EventImpact = d.floatAt(14)
	r.AdSpend = d.floatAt(15)
	r.RAMGB = d.intPtr(16)
	r.StorageGB = d.intPtr(17)
	r.BatteryMAh = d.intPtr(18)
	r.DisplayInch = d.floatPtr(19)
	r.ProcessorBrand = d.stringPtr(20)
	r.ProcessorType = d.stringPtr(21)
	r.MarketShare = d.floatAt(22)

	if d.err != nil {
		return nil, d.err
	}
	return r, nil
}

// decoder keeps the first parse error so decodeRow can read every column unconditionally.
type decoder struct {
	rec []string
	err error
}

func (d *decoder) fail(i int, err error) {
	if d.err == nil {
		d.err = fmt.Errorf("column %s: %w", TimeSeriesHeader[i], err)
	}
}

func (d *decoder) floatAt(i int) float64 {
	s := strings.TrimSpace(d.rec[i])
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		d.fail(i, err)
	}
	return f
}

func (d *decoder) intAt(i int) int {
	s := strings.TrimSpace(d.rec[i])
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		d.fail(i, err)
	}
	return n
}

func (d *decoder) field(i int) models.Field[float64] {
	if strings.TrimSpace(d.rec[i]) == "" {
		return models.MissingOf[float64]()
	}
	return models.PresentOf(d.floatAt(i))
}

func (d *decoder) intPtr(i int) *int {
	if strings.TrimSpace(d.rec[i]) == "" {
		return nil
	}
	n := d.intAt(i)
	return &n
}

func (d *decoder) floatPtr(i int) *float64 {
	if strings.TrimSpace(d.rec[i]) == "" {
		return nil
	}
	f := d.floatAt(i)
	return &f
}

func (d *decoder) stringPtr(i int) *string {
	if d.rec[i] == "" {
		return nil
	}
	s := d.rec[i]
	return &s
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatField(f models.Field[float64]) string {
	if !f.Ok() {
		return ""
	}
	return formatFloat(f.Value)
}

func formatIntPtr(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func formatFloatPtr(p *float64) string {
	if p == nil {
		return ""
	}
	return formatFloat(*p)
}

func formatStringPtr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// sqlValues returns the row as database arguments in TimeSeriesHeader order,
// followed by the rating and reviews provenance. Missing values become NULL.
func sqlValues(r *models.DailySimRow) []any {
	return []any{
		r.DateKey(),
		r.ProductID,
		r.Title,
		r.Category,
		nullField(r.Price),
		nullField(r.Rating),
		r.Reviews.Value,
		r.Availability,
		nullField(r.CompetitorPrice),
		r.PromotionFlag,
		r.EstimatedDemand,
		nullField(r.CostPrice),
		nullField(r.ProfitMargin),
		r.Event,
		r.EventImpact,
		r.AdSpend,
		nullIntPtr(r.RAMGB),
		nullIntPtr(r.StorageGB),
		nullIntPtr(r.BatteryMAh),
		nullFloatPtr(r.DisplayInch),
		nullStringPtr(r.ProcessorBrand),
		nullStringPtr(r.ProcessorType),
		r.MarketShare,
		r.Rating.Source.String(),
		r.Reviews.Source.String(),
	}
}

// sqlColumns is TimeSeriesHeader plus the provenance columns written by sqlValues.
var sqlColumns = append(append([]string{}, TimeSeriesHeader...), "rating_source", "reviews_source")

func nullField(f models.Field[float64]) any {
	if !f.Ok() {
		return nil
	}
	return f.Value
}

func nullIntPtr(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullFloatPtr(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullStringPtr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
