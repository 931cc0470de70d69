package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/datavis/internal/cli/testutil"
	"github.com/leapstack-labs/datavis/pkg/dataset"
	"github.com/leapstack-labs/datavis/pkg/layout"
)

func TestNewClassifyCommand(t *testing.T) {
	cmd := NewClassifyCommand()

	assert.Equal(t, "classify [file]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	// Source flags are local; output is a global flag on root.
	for _, flag := range []string{"source-type", "query", "table", "delimiter", "comment", "kind", "label-x", "label-y", "label-z"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewLayoutCommand(t *testing.T) {
	cmd := NewLayoutCommand()

	assert.Equal(t, "layout <bar|line|pie|point|surface> [file]", cmd.Use)
	assert.Equal(t, []string{"bar", "line", "pie", "point", "surface"}, cmd.ValidArgs)
	for _, flag := range []string{"set", "animate", "source-type"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewScheduleCommand(t *testing.T) {
	cmd := NewScheduleCommand()
	assert.Equal(t, "schedule", cmd.Use)

	columns, _, err := cmd.Find([]string{"columns"})
	require.NoError(t, err)
	for _, flag := range []string{"tail", "key-spacing", "start-frame", "start-index", "end-index", "prefix"} {
		assert.NotNil(t, columns.Flags().Lookup(flag), "flag %q should exist", flag)
	}

	tween, _, err := cmd.Find([]string{"tween"})
	require.NoError(t, err)
	assert.Equal(t, "tween <param>", tween.Use)
	for _, flag := range []string{"start", "end", "start-frame", "duration", "interpolation", "reverse"} {
		assert.NotNil(t, tween.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewServeCommand(t *testing.T) {
	cmd := NewServeCommand()

	assert.Equal(t, "serve [file]", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("addr"))
	assert.NotNil(t, cmd.Flags().Lookup("watch"))
}

func TestParseSets(t *testing.T) {
	tests := []struct {
		name    string
		sets    []string
		want    map[string]any
		wantErr bool
	}{
		{
			name: "flat",
			sets: []string{"vertex_count=32"},
			want: map[string]any{"vertex_count": "32"},
		},
		{
			name: "nested keys share a section",
			sets: []string{"axis.step_z=0.5", "axis.create=false"},
			want: map[string]any{"axis": map[string]any{"step_z": "0.5", "create": "false"}},
		},
		{
			name: "list value",
			sets: []string{"bar_size=0.4, 0.6"},
			want: map[string]any{"bar_size": []any{"0.4", "0.6"}},
		},
		{
			name: "value may contain equals",
			sets: []string{"color.base_color=a=b"},
			want: map[string]any{"color": map[string]any{"base_color": "a=b"}},
		},
		{
			name:    "missing value",
			sets:    []string{"radius"},
			wantErr: true,
		},
		{
			name:    "missing key",
			sets:    []string{"=1"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSets(tt.sets)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderSummary(t *testing.T) {
	ds, err := dataset.Load(dataset.RawTable{{"city", "q1", "q2"}, {"berlin", "10", "12"}, {"paris", "8", "9"}}, dataset.Options{})
	require.NoError(t, err)

	tr := testutil.NewTestRendererMarkdown()
	renderSummary(tr.Renderer, ClassifyOutput{Summary: ds.Summary(), Charts: layout.AvailableKinds(ds)})

	out := tr.Output()
	testutil.AssertNoANSI(t, out)
	testutil.AssertValidMarkdown(t, out)
	assert.Contains(t, out, "# Dataset")
	assert.Contains(t, out, "- **Kind:** categorical")
	assert.Contains(t, out, "- **Animation tail:** 1")
	assert.Contains(t, out, "- **Charts:** bar, line, pie, point")
	assert.Contains(t, out, "z (animated)")
}

func TestRenderSummary_Invalid(t *testing.T) {
	ds, err := dataset.Load(dataset.RawTable{{"a", "b"}, {"c", "d"}}, dataset.Options{})
	require.Error(t, err)

	tr := testutil.NewTestRendererMarkdown()
	renderSummary(tr.Renderer, ClassifyOutput{Summary: ds.Summary()})

	assert.Contains(t, tr.Output(), "- **Kind:** invalid")
	assert.NotContains(t, tr.Output(), "Ranges")
	assert.Contains(t, tr.ErrorOutput(), "error: ")
}

func TestRenderResult(t *testing.T) {
	ds, err := dataset.Load(dataset.RawTable{{"a", "10"}, {"b", "20"}}, dataset.Options{})
	require.NoError(t, err)
	req, err := layout.NewRequest(layout.KindBar)
	require.NoError(t, err)

	res := layout.NewEngine(nil).Create(context.Background(), ds, req)
	require.True(t, res.Finished(), res.Reason)

	t.Run("markdown", func(t *testing.T) {
		tr := testutil.NewTestRendererMarkdown()
		renderResult(tr.Renderer, res)

		out := tr.Output()
		testutil.AssertValidMarkdown(t, out)
		assert.Contains(t, out, "# bar chart")
		assert.Contains(t, out, "## Primitives")
		assert.Contains(t, out, "| box |")
	})

	t.Run("text", func(t *testing.T) {
		tr := testutil.NewTestRendererText()
		renderResult(tr.Renderer, res)
		assert.Contains(t, tr.Output(), "bar chart")
		assert.Contains(t, tr.Output(), "box")
	})

	t.Run("cancelled", func(t *testing.T) {
		pie, err := layout.NewRequest(layout.KindPie)
		require.NoError(t, err)
		numeric, err := dataset.Load(dataset.RawTable{{"1", "2"}, {"3", "4"}}, dataset.Options{})
		require.NoError(t, err)

		cancelled := layout.NewEngine(nil).Create(context.Background(), numeric, pie)
		tr := testutil.NewTestRendererMarkdown()
		renderResult(tr.Renderer, cancelled)

		assert.Empty(t, tr.Output())
		assert.Contains(t, tr.ErrorOutput(), "cancelled: ")
	})
}
