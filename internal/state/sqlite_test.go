package state

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/datavis/pkg/core"
)

func setupTestStore(t *testing.T, path string) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore()
	require.NoError(t, store.Open(path))
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate())
	return store
}

func testLayout(id, kind string) *Layout {
	return &Layout{
		Spec: &core.ChartLayoutSpec{
			ID:         id,
			Kind:       kind,
			Dimensions: 2,
			Primitives: []core.Primitive{{
				Kind:          core.PrimitiveBox,
				Name:          "a",
				Transform:     core.IdentityTransform(),
				MaterialValue: 3,
			}},
			Ticks:      []core.Tick{{Axis: core.DirectionX, Value: 1, Label: "1"}},
			ValueRange: [2]float64{0, 3},
		},
	}
}

func TestSQLiteStore_NotOpened(t *testing.T) {
	store := NewSQLiteStore()
	ctx := context.Background()

	assert.Error(t, store.Migrate())
	assert.Error(t, store.SaveLayout(ctx, testLayout("a", "bar")))
	_, err := store.GetLayout(ctx, "a")
	assert.Error(t, err)
	_, err = store.ListLayouts(ctx, "", 10)
	assert.Error(t, err)
	_, err = store.PruneLayouts(ctx, 1)
	assert.Error(t, err)
	assert.NoError(t, store.Close())
}

func TestSQLiteStore_Migrate(t *testing.T) {
	store := setupTestStore(t, ":memory:")

	version, err := store.MigrationVersion()
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	// Migrating twice is a no-op.
	require.NoError(t, store.Migrate())
}

func TestSQLiteStore_SaveAndGet(t *testing.T) {
	store := setupTestStore(t, ":memory:")
	ctx := context.Background()

	l := testLayout("layout-1", "bar")
	l.DatasetVersion = 7
	l.Warnings = []core.DegradedOutputWarning{{Reason: "shrunk"}}
	require.NoError(t, store.SaveLayout(ctx, l))

	assert.Equal(t, "layout-1", l.ID, "ID defaults to the spec ID")
	assert.Equal(t, "bar", l.Kind, "Kind defaults to the spec kind")
	assert.False(t, l.CreatedAt.IsZero())

	got, err := store.GetLayout(ctx, "layout-1")
	require.NoError(t, err)
	assert.Equal(t, "bar", got.Kind)
	assert.Equal(t, uint64(7), got.DatasetVersion)
	assert.True(t, l.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, l.Spec, got.Spec)
	assert.Equal(t, l.Warnings, got.Warnings)

	_, err = store.GetLayout(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStore_SaveErrors(t *testing.T) {
	store := setupTestStore(t, ":memory:")
	ctx := context.Background()

	assert.Error(t, store.SaveLayout(ctx, nil))
	assert.Error(t, store.SaveLayout(ctx, &Layout{ID: "x"}))
	assert.Error(t, store.SaveLayout(ctx, testLayout("", "bar")))

	require.NoError(t, store.SaveLayout(ctx, testLayout("dup", "bar")))
	assert.Error(t, store.SaveLayout(ctx, testLayout("dup", "bar")), "IDs are unique")
}

func TestSQLiteStore_ListAndPrune(t *testing.T) {
	store := setupTestStore(t, ":memory:")
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, kind := range []string{"bar", "pie", "bar", "line"} {
		l := testLayout(string(rune('a'+i)), kind)
		l.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, store.SaveLayout(ctx, l))
	}

	tests := []struct {
		name  string
		kind  string
		limit int
		want  []string
	}{
		{"all newest first", "", 10, []string{"d", "c", "b", "a"}},
		{"limited", "", 2, []string{"d", "c"}},
		{"by kind", "bar", 10, []string{"c", "a"}},
		{"unknown kind", "surface", 10, nil},
		{"zero limit", "", 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.ListLayouts(ctx, tt.kind, tt.limit)
			require.NoError(t, err)
			var ids []string
			for _, l := range got {
				ids = append(ids, l.ID)
				assert.Nil(t, l.Spec, "listings carry no spec")
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	n, err := store.PruneLayouts(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	got, err := store.ListLayouts(ctx, "", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "d", got[0].ID)
	assert.Equal(t, base.Add(3*time.Minute), got[0].CreatedAt)
}

func TestSQLiteStore_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layouts.db")
	ctx := context.Background()

	store := setupTestStore(t, path)
	require.NoError(t, store.SaveLayout(ctx, testLayout("kept", "pie")))
	require.NoError(t, store.Close())

	reopened := setupTestStore(t, path)
	assert.Equal(t, path, reopened.Path())
	got, err := reopened.GetLayout(ctx, "kept")
	require.NoError(t, err)
	assert.Equal(t, "pie", got.Kind)
}
