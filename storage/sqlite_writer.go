package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"catalog-sim/models"
)

var sqliteDialect = sqlDialect{
	name:        "sqlite",
	placeholder: func(int) string { return "?" },
	quote:       func(ident string) string { return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"` },
	realType:    "REAL",
	dateType:    "TEXT",
	dateSelect:  func(col string) string { return col },
}

// SQLiteWriter persists simulated rows to a local SQLite file.
type SQLiteWriter struct {
	sqlTable
}

// NewSQLiteWriter opens (or creates) the database at path and migrates the table.
func NewSQLiteWriter(path, table string) (*SQLiteWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite: create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	// A single connection keeps writes serialized on the file.
	db.SetMaxOpenConns(1)

	sw := &SQLiteWriter{sqlTable{db: db, dialect: sqliteDialect, name: table}}
	if err := sw.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return sw, nil
}

// Write replaces the table contents with rows.
func (sw *SQLiteWriter) Write(rows []*models.DailySimRow) error {
	if len(rows) == 0 {
		return nil
	}
	return sw.replace(rows)
}

func (sw *SQLiteWriter) Close() error {
	return sw.db.Close()
}
