package duckdb

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/datavis/internal/testutil"
	"github.com/leapstack-labs/datavis/pkg/dataset"
	"github.com/leapstack-labs/datavis/pkg/source"
)

func TestSource_Query(t *testing.T) {
	ctx := context.Background()
	src := New(testutil.NewTestLogger(t))

	require.NoError(t, src.Open(ctx, source.Config{
		Query: "SELECT * FROM (VALUES ('a', 3), ('b', 7)) AS t(species, count)",
	}))
	defer func() { _ = src.Close() }()

	raw, err := src.ReadTable(ctx)
	require.NoError(t, err)
	assert.Equal(t, dataset.RawTable{{"species", "count"}, {"a", "3"}, {"b", "7"}}, raw)

	ds, err := dataset.Load(raw, dataset.Options{})
	require.NoError(t, err)
	assert.Equal(t, dataset.KindCategorical, ds.Kind())
}

func TestSource_CSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.csv")
	require.NoError(t, os.WriteFile(path, []byte("x,y\n0,1\n1,4\n2,9\n"), 0o600))

	raw, err := source.ReadTable(context.Background(), source.Config{Type: Name, Path: path}, nil)
	require.NoError(t, err)
	require.Len(t, raw, 4)
	assert.Equal(t, []string{"x", "y"}, raw[0])

	ds, err := dataset.Load(raw, dataset.Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Dimensions())
	assert.Equal(t, 9.0, ds.Ranges().Z.Max)
}

func TestSource_Settings(t *testing.T) {
	ctx := context.Background()
	src := New(nil)
	require.NoError(t, src.Open(ctx, source.Config{
		Query:  "SELECT current_setting('threads') AS threads",
		Params: map[string]any{"settings": map[string]any{"threads": "2"}},
	}))
	defer func() { _ = src.Close() }()

	raw, err := src.ReadTable(ctx)
	require.NoError(t, err)
	assert.Equal(t, dataset.RawTable{{"threads"}, {"2"}}, raw)
}

func TestSource_OpenErrors(t *testing.T) {
	ctx := context.Background()

	err := New(nil).Open(ctx, source.Config{})
	assert.ErrorContains(t, err, "either query or table")

	err = New(nil).Open(ctx, source.Config{Query: "SELECT 1", Params: map[string]any{"bogus": 1}})
	assert.ErrorContains(t, err, "invalid duckdb params")

	err = New(nil).Open(ctx, source.Config{Query: "SELECT 1", Params: map[string]any{"extensions": []any{"bad;name"}}})
	assert.ErrorContains(t, err, "invalid extension name")
}

func TestReadFileQuery(t *testing.T) {
	q, err := readFileQuery("/data/it's.csv", map[string]string{"delim": "';'", "header": "true"})
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM read_csv_auto('/data/it''s.csv', delim=';', header=true)", q)

	q, err = readFileQuery("/data/x.parquet", nil)
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM read_parquet('/data/x.parquet')", q)

	_, err = readFileQuery("/data/x.csv", map[string]string{"x); DROP": "1"})
	assert.Error(t, err)
}
