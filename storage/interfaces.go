package storage

import "catalog-sim/models"

// TimeSeriesWriter is the interface any sink for simulated rows must satisfy.
type TimeSeriesWriter interface {
	Write(rows []*models.DailySimRow) error
	Close() error
}
