package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"catalog-sim/models"
)

const insertBatchSize = 50

// sqlDialect captures what differs between the database backends.
type sqlDialect struct {
	name        string
	placeholder func(n int) string
	quote       func(ident string) string
	realType    string
	dateType    string
	dateSelect  func(col string) string
}

// columnTypes maps every sqlColumns entry to a portable type class.
var columnTypes = map[string]string{
	"date": "date", "product_id": "text", "title": "text", "category": "text",
	"price": "real", "rating": "real", "reviews": "int", "availability": "int",
	"competitor_price": "real", "promotion_flag": "int", "estimated_demand": "int",
	"cost_price": "real", "profit_margin": "real", "event": "int", "event_impact": "real",
	"ad_spend": "real", "ram_gb": "int", "storage_gb": "int", "battery_mah": "int",
	"display_inch": "real", "processor_brand": "text", "processor_type": "text",
	"market_share": "real", "rating_source": "text", "reviews_source": "text",
}

// sqlTable holds the SQL shared by the database sinks.
type sqlTable struct {
	db      *sql.DB
	dialect sqlDialect
	name    string
}

func (t *sqlTable) migrate() error {
	defs := make([]string, 0, len(sqlColumns))
	for _, col := range sqlColumns {
		typ := "TEXT"
		switch columnTypes[col] {
		case "real":
			typ = t.dialect.realType
		case "int":
			typ = "INTEGER"
		case "date":
			typ = t.dialect.dateType + " NOT NULL"
		}
		defs = append(defs, fmt.Sprintf("%s %s", t.dialect.quote(col), typ))
	}

	table := t.dialect.quote(t.name)
	stmt := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			%s
		);
		CREATE INDEX IF NOT EXISTS %s ON %s(%s, %s);
		CREATE INDEX IF NOT EXISTS %s ON %s(%s);
	`,
		table, strings.Join(defs, ",\n\t\t\t"),
		t.dialect.quote("idx_"+t.name+"_date_category"), table, t.dialect.quote("date"), t.dialect.quote("category"),
		t.dialect.quote("idx_"+t.name+"_product"), table, t.dialect.quote("product_id"),
	)

	if _, err := t.db.Exec(stmt); err != nil {
		return fmt.Errorf("%s: migrate: %w", t.dialect.name, err)
	}
	return nil
}

// replace swaps the table contents for rows inside a single transaction.
func (t *sqlTable) replace(rows []*models.DailySimRow) error {
	tx, err := t.db.Begin()
	if err != nil {
		return fmt.Errorf("%s: begin: %w", t.dialect.name, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM " + t.dialect.quote(t.name)); err != nil {
		return fmt.Errorf("%s: clear: %w", t.dialect.name, err)
	}

	for i := 0; i < len(rows); i += insertBatchSize {
		end := min(i+insertBatchSize, len(rows))
		if err := t.insertBatch(tx, rows[i:end]); err != nil {
			return fmt.Errorf("%s: insert batch at %d: %w", t.dialect.name, i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", t.dialect.name, err)
	}
	return nil
}

func (t *sqlTable) insertBatch(tx *sql.Tx, batch []*models.DailySimRow) error {
	width := len(sqlColumns)
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]any, 0, len(batch)*width)

	for idx, r := range batch {
		base := idx * width
		ph := make([]string, width)
		for j := range ph {
			ph[j] = t.dialect.placeholder(base + j + 1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(ph, ",")+")")
		valueArgs = append(valueArgs, sqlValues(r)...)
	}

	cols := make([]string, len(sqlColumns))
	for i, c := range sqlColumns {
		cols[i] = t.dialect.quote(c)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		t.dialect.quote(t.name), strings.Join(cols, ","), strings.Join(valueStrings, ","))

	_, err := tx.Exec(query, valueArgs...)
	return err
}

// FetchAll retrieves all stored rows ordered by product and date.
func (t *sqlTable) FetchAll() ([]*models.DailySimRow, error) {
	cols := make([]string, len(sqlColumns))
	for i, c := range sqlColumns {
		cols[i] = t.dialect.quote(c)
	}
	cols[0] = t.dialect.dateSelect(t.dialect.quote("date"))

	rows, err := t.db.Query(fmt.Sprintf("SELECT %s FROM %s ORDER BY %s, %s",
		strings.Join(cols, ","), t.dialect.quote(t.name),
		t.dialect.quote("product_id"), t.dialect.quote("date")))
	if err != nil {
		return nil, fmt.Errorf("%s: fetch all: %w", t.dialect.name, err)
	}
	defer rows.Close()

	var out []*models.DailySimRow
	for rows.Next() {
		r, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan row: %w", t.dialect.name, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func scanRow(rows *sql.Rows) (*models.DailySimRow, error) {
	var date, ratingSource, reviewsSource string
	var price, rating, competitor, cost, margin, display sql.NullFloat64
	var ram, storageGB, battery sql.NullInt64
	var brand, procType sql.NullString
	r := &models.DailySimRow{}

	if err := rows.Scan(
		&date, &r.ProductID, &r.Title, &r.Category,
		&price, &rating, &r.Reviews.Value, &r.Availability,
		&competitor, &r.PromotionFlag, &r.EstimatedDemand,
		&cost, &margin, &r.Event, &r.EventImpact, &r.AdSpend,
		&ram, &storageGB, &battery, &display, &brand, &procType,
		&r.MarketShare, &ratingSource, &reviewsSource,
	); err != nil {
		return nil, err
	}

	d, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("date %q: %w", date, err)
	}
	r.Date = d

	r.Price = fieldFromNull(price, models.Present)
	r.Rating = fieldFromNull(rating, parseProvenance(ratingSource))
	r.Reviews.Source = parseProvenance(reviewsSource)
	r.CompetitorPrice = fieldFromNull(competitor, models.Present)
	r.CostPrice = fieldFromNull(cost, models.Present)
	r.ProfitMargin = fieldFromNull(margin, models.Present)

	r.RAMGB = intFromNull(ram)
	r.StorageGB = intFromNull(storageGB)
	r.BatteryMAh = intFromNull(battery)
	if display.Valid {
		v := display.Float64
		r.DisplayInch = &v
	}
	if brand.Valid {
		v := brand.String
		r.ProcessorBrand = &v
	}
	if procType.Valid {
		v := procType.String
		r.ProcessorType = &v
	}
	return r, nil
}

func fieldFromNull(n sql.NullFloat64, src models.Provenance) models.Field[float64] {
	if !n.Valid {
		return models.MissingOf[float64]()
	}
	return models.Field[float64]{Value: n.Float64, Source: src}
}

func intFromNull(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func parseProvenance(s string) models.Provenance {
	switch s {
	case "present":
		return models.Present
	case "fabricated":
		return models.Fabricated
	default:
		return models.Missing
	}
}
