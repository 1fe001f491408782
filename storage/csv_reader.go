package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"catalog-sim/models"
)

// ErrMissingHeader is returned when a CSV input has no header row.
var ErrMissingHeader = errors.New("csv: missing header row")

// ReadCatalog loads a product catalog from a CSV file.
func ReadCatalog(path string) ([]*models.ProductRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open catalog %q: %w", path, err)
	}
	defer f.Close()

	return DecodeCatalog(f)
}

// DecodeCatalog reads catalog rows. Columns are matched by header name,
// case-insensitively; a column absent from the header reads as empty.
func DecodeCatalog(r io.Reader) ([]*models.ProductRecord, error) {
	cr := newReader(r)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, fmt.Errorf("csv: read catalog header: %w", err)
	}
	idx := indexColumns(header)

	var records []*models.ProductRecord
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: read catalog row %d: %w", len(records)+1, err)
		}

		get := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return rec[i]
		}

		records = append(records, &models.ProductRecord{
			Title:           strings.TrimSpace(get("title")),
			Category:        strings.TrimSpace(get("category")),
			PriceRaw:        get("price"),
			RatingRaw:       get("rating"),
			ReviewsRaw:      get("reviews"),
			AvailabilityRaw: get("availability"),
			Features:        get("features"),
		})
	}
	return records, nil
}

// ReadTimeSeries loads a simulated dataset previously written by CSVWriter.
func ReadTimeSeries(path string) ([]*models.DailySimRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open time series %q: %w", path, err)
	}
	defer f.Close()

	return DecodeTimeSeries(f)
}

// DecodeTimeSeries parses rows laid out as TimeSeriesHeader.
func DecodeTimeSeries(r io.Reader) ([]*models.DailySimRow, error) {
	cr := newReader(r)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, fmt.Errorf("csv: read time series header: %w", err)
	}
	if len(header) != len(TimeSeriesHeader) {
		return nil, fmt.Errorf("csv: time series header has %d columns, want %d",
			len(header), len(TimeSeriesHeader))
	}

	var rows []*models.DailySimRow
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: read line %d: %w", line, err)
		}
		row, err := decodeRow(rec)
		if err != nil {
			return nil, fmt.Errorf("csv: line %d: %w", line, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr
}

func indexColumns(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}
	return idx
}
