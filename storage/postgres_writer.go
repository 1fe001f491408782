package storage

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/lib/pq"

	"catalog-sim/models"
	"catalog-sim/utils"
)

var postgresDialect = sqlDialect{
	name:        "postgres",
	placeholder: func(n int) string { return "$" + strconv.Itoa(n) },
	quote:       pq.QuoteIdentifier,
	realType:    "DOUBLE PRECISION",
	dateType:    "DATE",
	dateSelect:  func(col string) string { return "to_char(" + col + ", 'YYYY-MM-DD')" },
}

// PostgresWriter persists simulated rows to a PostgreSQL table, replacing
// its previous contents on every Write.
type PostgresWriter struct {
	sqlTable
}

// NewPostgresWriter opens a connection to PostgreSQL, retrying the initial
// ping, runs schema migrations, and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn, table string, retry *utils.RetryConfig) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if retry == nil {
		retry = &utils.RetryConfig{MaxAttempts: 10, BaseDelay: 2 * time.Second}
	}
	if err := retry.Do("postgres ping", db.Ping); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	pw := &PostgresWriter{sqlTable{db: db, dialect: postgresDialect, name: table}}
	if err := pw.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return pw, nil
}

// Write replaces the table contents with rows.
func (pw *PostgresWriter) Write(rows []*models.DailySimRow) error {
	if len(rows) == 0 {
		return nil
	}
	return pw.replace(rows)
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}
