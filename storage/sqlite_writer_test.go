package storage

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-sim/models"
)

func TestSQLiteWriterRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db", "timeseries.db")

	w, err := NewSQLiteWriter(path, "product_timeseries")
	require.NoError(t, err)
	defer w.Close()

	rows := sampleRows()
	rows[1].Rating = models.FabricatedOf(3.9)
	rows[1].Reviews = models.FabricatedOf(0)
	require.NoError(t, w.Write(rows))

	got, err := w.FetchAll()
	require.NoError(t, err)
	if diff := cmp.Diff(rows, got); diff != "" {
		t.Errorf("sqlite round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSQLiteWriterReplacesContents(t *testing.T) {
	w, err := NewSQLiteWriter(filepath.Join(t.TempDir(), "ts.db"), "ts")
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Write(sampleRows()))
	require.NoError(t, w.Write(sampleRows()[:1]))

	got, err := w.FetchAll()
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSQLiteWriterLargeBatch(t *testing.T) {
	w, err := NewSQLiteWriter(filepath.Join(t.TempDir(), "ts.db"), "ts")
	require.NoError(t, err)
	defer w.Close()

	base := sampleRows()[0]
	rows := make([]*models.DailySimRow, 0, 120)
	for i := 0; i < 120; i++ {
		r := *base
		r.Date = base.Date.AddDate(0, 0, i)
		rows = append(rows, &r)
	}
	require.NoError(t, w.Write(rows))

	got, err := w.FetchAll()
	require.NoError(t, err)
	assert.Len(t, got, 120)
}
