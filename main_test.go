package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-sim/config"
	"catalog-sim/models"
	"catalog-sim/storage"
	"catalog-sim/utils"
)

const testCatalog = `title,price,rating,reviews,availability,features,category
Redmi 13C,"₹8,999",4.2,"1,520",In Stock,4 GB RAM | 128 GB ROM | 5000 mAh Battery,mobile
POCO C65,"₹7,499",,,In Stock,6 GB RAM,mobile
Campus Running Shoes,,9,310,Out of Stock,,shoes
`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()

	catalog := filepath.Join(dir, "catalog.csv")
	require.NoError(t, os.WriteFile(catalog, []byte(testCatalog), 0o644))

	return &config.Config{
		CatalogPath:    catalog,
		OutputPath:     filepath.Join(dir, "out", "timeseries.csv"),
		SQLitePath:     filepath.Join(dir, "out", "timeseries.db"),
		TableName:      "product_timeseries",
		Sinks:          []string{config.SinkCSV, config.SinkSQLite},
		Days:           15,
		Seed:           42,
		MaxConcurrency: 2,
		MaxRetries:     1,
	}
}

func TestRunSimulateWritesAllSinks(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, runSimulate(cfg, utils.NewDiscardLogger()))

	fromCSV, err := loadRows(cfg, config.SinkCSV)
	require.NoError(t, err)
	assert.Len(t, fromCSV, 3*15)

	fromSQLite, err := loadRows(cfg, config.SinkSQLite)
	require.NoError(t, err)
	assert.Len(t, fromSQLite, 3*15)
}

func TestRunSimulateSameSeedSameOutput(t *testing.T) {
	cfg := testConfig(t)
	cfg.Sinks = []string{config.SinkCSV}

	require.NoError(t, runSimulate(cfg, utils.NewDiscardLogger()))
	first, err := os.ReadFile(cfg.OutputPath)
	require.NoError(t, err)

	cfg.MaxConcurrency = 1
	require.NoError(t, runSimulate(cfg, utils.NewDiscardLogger()))
	second, err := os.ReadFile(cfg.OutputPath)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestRunSimulateRejectsUnknownSink(t *testing.T) {
	cfg := testConfig(t)
	cfg.Sinks = []string{"kafka"}
	assert.Error(t, runSimulate(cfg, utils.NewDiscardLogger()))
}

func TestRunSimulateMissingCatalog(t *testing.T) {
	cfg := testConfig(t)
	cfg.CatalogPath = filepath.Join(t.TempDir(), "missing.csv")
	assert.Error(t, runSimulate(cfg, utils.NewDiscardLogger()))
}

func TestResolveProductID(t *testing.T) {
	cfg := testConfig(t)
	cfg.Sinks = []string{config.SinkCSV}
	require.NoError(t, runSimulate(cfg, utils.NewDiscardLogger()))

	rows, err := storage.ReadTimeSeries(cfg.OutputPath)
	require.NoError(t, err)

	id := rows[0].ProductID
	assert.Equal(t, id, resolveProductID(rows, id))
	assert.Equal(t, id, resolveProductID(rows, "Redmi 13C"))
}

func TestDefaultSource(t *testing.T) {
	tests := []struct {
		sinks []string
		want  string
	}{
		{[]string{config.SinkSQLite, config.SinkCSV}, config.SinkCSV},
		{[]string{config.SinkPostgres, config.SinkSQLite}, config.SinkPostgres},
		{[]string{config.SinkSQLite}, config.SinkSQLite},
		{nil, config.SinkCSV},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, defaultSource(&config.Config{Sinks: tt.sinks}), "sinks %v", tt.sinks)
	}
}

func TestFilterCategory(t *testing.T) {
	rows := []*models.DailySimRow{{Category: "mobile"}, {Category: "shoes"}, {Category: "mobile"}}
	assert.Len(t, filterCategory(rows, ""), 3)
	assert.Len(t, filterCategory(rows, "mobile"), 2)
	assert.Empty(t, filterCategory(rows, "tv"))
}
