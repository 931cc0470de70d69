package dataset

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/datavis/internal/testutil"
	"github.com/leapstack-labs/datavis/pkg/core"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		raw        RawTable
		kind       Kind
		dims       int
		hasLabels  bool
		animable   bool
		tailLength int
	}{
		{
			name:      "numerical 2D with header",
			raw:       testutil.NumericalTable2D(),
			kind:      KindNumerical,
			dims:      2,
			hasLabels: true,
		},
		{
			name: "numerical 3D without header",
			raw:  testutil.NumericalTable3D(),
			kind: KindNumerical,
			dims: 3,
		},
		{
			name:       "numerical 3D with tail",
			raw:        testutil.AnimatedTable3D(),
			kind:       KindNumerical,
			dims:       3,
			hasLabels:  true,
			animable:   true,
			tailLength: 2,
		},
		{
			name:      "categorical",
			raw:       testutil.CategoricalTable(),
			kind:      KindCategorical,
			dims:      2,
			hasLabels: true,
		},
		{
			name:       "categorical with tail",
			raw:        testutil.AnimatedCategoricalTable(),
			kind:       KindCategorical,
			dims:       2,
			hasLabels:  true,
			animable:   true,
			tailLength: 2,
		},
		{
			name: "single data row",
			raw:  RawTable{{"1", "2"}},
			kind: KindNumerical,
			dims: 2,
		},
		{
			name: "whitespace around numbers",
			raw:  RawTable{{" 1", "2 "}, {"3", " 4 "}},
			kind: KindNumerical,
			dims: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Classify(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, c.Kind)
			assert.Equal(t, tt.dims, c.Dimensions)
			assert.Equal(t, tt.hasLabels, c.HasLabels)
			assert.Equal(t, tt.animable, c.Animable)
			assert.Equal(t, tt.tailLength, c.TailLength)
		})
	}
}

func TestClassify_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		raw     RawTable
		wantRow int
	}{
		{name: "empty table", raw: RawTable{}, wantRow: -1},
		{name: "header only", raw: RawTable{{"a", "b"}}, wantRow: -1},
		{name: "ragged row", raw: RawTable{{"1", "2"}, {"3"}}, wantRow: 1},
		{name: "signature mismatch on a later row", raw: RawTable{{"1", "2"}, {"3", "4"}, {"x", "5"}}, wantRow: 2},
		{name: "single numeric column", raw: RawTable{{"1"}, {"2"}}, wantRow: -1},
		{name: "two text columns", raw: RawTable{{"h1", "h2", "h3"}, {"a", "b", "1"}}, wantRow: -1},
		{name: "label not first", raw: RawTable{{"1", "a"}, {"2", "b"}}, wantRow: -1},
		{name: "non-finite cell is text", raw: RawTable{{"1", "2"}, {"NaN", "3"}}, wantRow: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Classify(tt.raw)
			require.Error(t, err)
			assert.Equal(t, KindInvalid, c.Kind)
			assert.Equal(t, 0, c.Dimensions)

			var invalid *core.InvalidDataError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, tt.wantRow, invalid.Row)
		})
	}
}

// Valid numerical tables always land on 2 or 3 dimensions with a
// non-negative tail.
func TestClassify_NumericalDimensions(t *testing.T) {
	for floats := 2; floats <= 8; floats++ {
		row := make([]string, floats)
		for i := range row {
			row[i] = "1.5"
		}
		c, err := Classify(RawTable{row, row})
		require.NoError(t, err)
		assert.Contains(t, []int{2, 3}, c.Dimensions)
		assert.Equal(t, floats-c.Dimensions, c.TailLength)
		assert.GreaterOrEqual(t, c.TailLength, 0)
		assert.Equal(t, floats > 3, c.Animable)
	}
}

func TestParseAs(t *testing.T) {
	t.Run("numeric labels read as categorical", func(t *testing.T) {
		raw := RawTable{{"2019", "5"}, {"2020", "7"}}
		c, rows, err := ParseAs(raw, KindCategorical, false)
		require.NoError(t, err)
		assert.Equal(t, KindCategorical, c.Kind)
		assert.Equal(t, 2, c.Dimensions)
		require.Len(t, rows, 2)
		assert.Equal(t, "2019", rows[0].Label)
		assert.Equal(t, []float64{5}, rows[0].Values)
	})

	t.Run("unparseable cell names its position", func(t *testing.T) {
		raw := RawTable{{"x", "y"}, {"1", "2"}, {"3", "oops"}}
		_, _, err := ParseAs(raw, KindNumerical, true)
		var invalid *core.InvalidDataError
		require.True(t, errors.As(err, &invalid))
		assert.Equal(t, 2, invalid.Row)
		assert.Equal(t, 1, invalid.Column)
	})

	t.Run("invalid kind is a configuration error", func(t *testing.T) {
		_, _, err := ParseAs(RawTable{{"1", "2"}}, KindInvalid, false)
		assert.True(t, core.IsConfiguration(err))
	})
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("Categorical")
	require.NoError(t, err)
	assert.Equal(t, KindCategorical, k)

	k, err = ParseKind("")
	require.NoError(t, err)
	assert.Equal(t, KindAuto, k)

	_, err = ParseKind("tabular")
	assert.Error(t, err)

	var kind Kind
	require.NoError(t, kind.UnmarshalText([]byte("numerical")))
	assert.Equal(t, KindNumerical, kind)
}
