package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SIM_DAYS", "")
	t.Setenv("SINKS", "")
	t.Setenv("SIM_SEED", "")

	cfg := Load()
	assert.Equal(t, 60, cfg.Days)
	assert.Equal(t, int64(0), cfg.Seed)
	assert.Equal(t, []string{SinkCSV}, cfg.Sinks)
	assert.Equal(t, 1.2, cfg.PriceElasticity)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SIM_DAYS", "30")
	t.Setenv("SIM_SEED", "42")
	t.Setenv("MAX_CONCURRENCY", "not-a-number")
	t.Setenv("SINKS", "csv,sqlite")

	cfg := Load()
	assert.Equal(t, 30, cfg.Days)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 4, cfg.MaxConcurrency, "bad ints fall back to the default")
	assert.True(t, cfg.HasSink(SinkSQLite))
	assert.False(t, cfg.HasSink(SinkPostgres))
}

func TestParseSinks(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"csv", []string{"csv"}},
		{" CSV , Postgres ", []string{"csv", "postgres"}},
		{"csv,,csv,sqlite", []string{"csv", "sqlite"}},
		{"", nil},
	}

	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, ParseSinks(tt.raw)); diff != "" {
			t.Errorf("ParseSinks(%q) mismatch (-want +got):\n%s", tt.raw, diff)
		}
	}
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		PostgresHost: "db", PostgresPort: "5433", PostgresUser: "u",
		PostgresPassword: "p", PostgresDB: "sales_db", PostgresSSLMode: "disable",
	}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=sales_db sslmode=disable", cfg.DSN())
}
