package dataset

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/datavis/internal/testutil"
	"github.com/leapstack-labs/datavis/pkg/core"
)

func TestLoad_NumericalWithHeader(t *testing.T) {
	ds, err := Load(testutil.NumericalTable2D(), Options{})
	require.NoError(t, err)

	assert.True(t, ds.Valid())
	assert.True(t, ds.HasLabels())
	assert.Equal(t, KindNumerical, ds.Kind())
	assert.Equal(t, 2, ds.Dimensions())
	assert.Equal(t, 3, ds.Len())

	r := ds.Ranges()
	assert.Equal(t, 0.0, r.X.Min)
	assert.Equal(t, 2.0, r.X.Max)
	assert.Equal(t, 1.0, r.Z.Min)
	assert.Equal(t, 9.0, r.Z.Max)

	assert.Equal(t, Labels{X: "x", Z: "y"}, ds.Labels())
}

func TestLoad_Categorical(t *testing.T) {
	ds, err := Load(testutil.CategoricalTable(), Options{})
	require.NoError(t, err)

	assert.Equal(t, KindCategorical, ds.Kind())
	assert.Equal(t, 2, ds.Dimensions())

	r := ds.Ranges()
	assert.Equal(t, 0.0, r.X.Min)
	assert.Equal(t, 1.0, r.X.Max)
	assert.Equal(t, 3.0, r.Z.Min)
	assert.Equal(t, 7.0, r.Z.Max)
	assert.Equal(t, []string{"a", "b"}, ds.TickLabels())

	x, y, z := ds.Point(1)
	assert.Equal(t, 1.0, x)
	assert.Equal(t, 0.0, y)
	assert.Equal(t, 7.0, z)
}

func TestLoad_SingleRowWidensRanges(t *testing.T) {
	ds, err := Load(RawTable{{"a", "5"}}, Options{})
	require.NoError(t, err)

	r := ds.Ranges()
	assert.Equal(t, 0.0, r.X.Min)
	assert.Equal(t, 1.0, r.X.Max)
	assert.Equal(t, 5.0, r.Z.Min)
	assert.Equal(t, 6.0, r.Z.Max)
}

func TestLoad_AnimatedRanges(t *testing.T) {
	ds, err := Load(testutil.AnimatedTable3D(), Options{})
	require.NoError(t, err)

	r := ds.Ranges()
	assert.Equal(t, 1.0, r.Z.Min)
	assert.Equal(t, 4.0, r.Z.Max)
	// Union of z and both tail columns.
	assert.Equal(t, 0.0, r.ZAnim.Min)
	assert.Equal(t, 8.0, r.ZAnim.Max)

	assert.Equal(t, []float64{2, 3}, ds.Tail(0))
	assert.Equal(t, Labels{X: "x", Y: "y", Z: "z"}, ds.Labels())
}

// Every row value lies within the computed range of its axis.
func TestLoad_ValuesWithinRanges(t *testing.T) {
	tables := map[string]RawTable{
		"2d":          testutil.NumericalTable2D(),
		"3d":          testutil.NumericalTable3D(),
		"animated":    testutil.AnimatedTable3D(),
		"categorical": testutil.AnimatedCategoricalTable(),
	}
	for name, raw := range tables {
		t.Run(name, func(t *testing.T) {
			ds, err := Load(raw, Options{})
			require.NoError(t, err)
			r := ds.Ranges()
			for i := 0; i < ds.Len(); i++ {
				x, y, z := ds.Point(i)
				assert.True(t, r.X.InRange(x), "x=%v", x)
				assert.True(t, r.Z.InRange(z), "z=%v", z)
				if ds.Dimensions() == 3 {
					assert.True(t, r.Y.InRange(y), "y=%v", y)
				}
				for _, v := range ds.Tail(i) {
					assert.True(t, r.ZAnim.InRange(v), "tail=%v", v)
				}
			}
		})
	}
}

func TestLoad_UserLabelsOverride(t *testing.T) {
	ds, err := Load(testutil.NumericalTable2D(), Options{Labels: Labels{Z: "height"}})
	require.NoError(t, err)
	assert.Equal(t, Labels{X: "x", Z: "height"}, ds.Labels())
}

func TestLoad_Invalid(t *testing.T) {
	ds, err := Load(RawTable{{"1", "2"}, {"3"}}, Options{})
	require.Error(t, err)
	require.NotNil(t, ds)

	assert.False(t, ds.Valid())
	assert.Equal(t, KindInvalid, ds.Kind())
	assert.Equal(t, 0, ds.Dimensions())
	assert.Equal(t, err, ds.Err())
	assert.Equal(t, Ranges{}, ds.Ranges())
	assert.NotEmpty(t, ds.Summary().Error)
}

func TestLoad_DoesNotAliasInput(t *testing.T) {
	raw := testutil.CategoricalTable()
	ds, err := Load(raw, Options{})
	require.NoError(t, err)

	raw[1][0] = "changed"
	assert.Equal(t, "a", ds.Raw()[1][0])
}

func TestDataset_WithKind(t *testing.T) {
	raw := RawTable{{"year", "sales"}, {"2019", "5"}, {"2020", "7"}}
	ds, err := Load(raw, Options{})
	require.NoError(t, err)
	assert.Equal(t, KindNumerical, ds.Kind())

	cat, err := ds.WithKind(KindCategorical)
	require.NoError(t, err)
	assert.Equal(t, KindCategorical, cat.Kind())
	assert.Equal(t, []string{"2019", "2020"}, cat.TickLabels())
	assert.Equal(t, Labels{X: "year", Z: "sales"}, cat.Labels())

	// The original snapshot is untouched.
	assert.Equal(t, KindNumerical, ds.Kind())
}

func TestStore(t *testing.T) {
	store := NewStore(testutil.NewTestLogger(t))
	assert.Nil(t, store.Current())

	assert.Zero(t, store.Version())

	first, v, err := store.LoadTable(testutil.NumericalTable2D(), Options{})
	require.NoError(t, err)
	assert.Same(t, first, store.Current())
	assert.Equal(t, uint64(1), v)

	_, v, err = store.LoadTable(RawTable{}, Options{})
	require.Error(t, err)
	assert.False(t, store.Current().Valid())
	assert.Equal(t, uint64(2), v)

	prev := store.Swap(first)
	assert.False(t, prev.Valid())
	ds, v := store.Snapshot()
	assert.Same(t, first, ds)
	assert.Equal(t, uint64(3), v)
}

func TestStore_Reclassify(t *testing.T) {
	store := NewStore(testutil.NewTestLogger(t))
	_, _, err := store.Reclassify(KindCategorical)
	assert.True(t, core.IsInvalidData(err))

	first, _, err := store.LoadTable(RawTable{{"year", "sales"}, {"2019", "5"}, {"2020", "7"}}, Options{})
	require.NoError(t, err)
	require.Equal(t, KindNumerical, first.Kind())

	cat, v, err := store.Reclassify(KindCategorical)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), v)
	assert.Equal(t, KindCategorical, cat.Kind())
	assert.Same(t, cat, store.Current())
	assert.Equal(t, KindNumerical, first.Kind())
}

func TestStore_ConcurrentReadersSeeCompleteSnapshots(t *testing.T) {
	store := NewStore(nil)
	_, _, err := store.LoadTable(testutil.NumericalTable2D(), Options{})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				ds := store.Current()
				if ds.Valid() {
					assert.Equal(t, ds.Len(), len(ds.Rows()))
					assert.NotZero(t, ds.Dimensions())
				}
			}
		}()
	}
	for i := 0; i < 20; i++ {
		if i%2 == 0 {
			_, _, _ = store.LoadTable(testutil.CategoricalTable(), Options{})
		} else {
			_, _, _ = store.LoadTable(testutil.NumericalTable3D(), Options{})
		}
	}
	wg.Wait()
}
