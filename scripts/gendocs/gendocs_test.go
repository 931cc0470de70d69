package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readDoc(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestGenerateCLIDocs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, generateCLIDocs(dir))

	index := readDoc(t, filepath.Join(dir, "index.md"))
	assert.Contains(t, index, "<!-- Code generated by scripts/gendocs. DO NOT EDIT. -->")
	assert.Contains(t, index, "[`layout`](/cli/layout)")
	assert.Contains(t, index, "DATAVIS_SOURCE__PATH")

	layoutDoc := readDoc(t, filepath.Join(dir, "layout.md"))
	assert.Contains(t, layoutDoc, "# layout")
	assert.Contains(t, layoutDoc, "--set")
	assert.Contains(t, layoutDoc, "## Global Options")

	schedule := readDoc(t, filepath.Join(dir, "schedule.md"))
	assert.Contains(t, schedule, "### columns")
	assert.Contains(t, schedule, "### tween")

	for _, name := range []string{"classify", "serve", "sources", "version"} {
		assert.FileExists(t, filepath.Join(dir, name+".md"))
	}
}

func TestGenerateConfigDocs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, generateConfigDocs(dir))

	doc := readDoc(t, filepath.Join(dir, "configuration.md"))
	for _, want := range []string{
		"title: Configuration",
		"`source.path`",
		"`server.archive_keep`",
		"`chart.axis.range_x`",
		"`chart.color.type`",
		"`chart.pie.vertex_count`",
		"`chart.surface.kernel`",
		"`5s`",
		"duration",
		"At most 4096.",
	} {
		assert.Contains(t, doc, want)
	}
	assert.NotContains(t, doc, "project_root")
	assert.NotContains(t, doc, "fitter")
	assert.NotContains(t, doc, "`chart.pie.axis.create`")
}

func TestMarkdownWriter(t *testing.T) {
	w := NewMarkdownWriter()
	w.Header(9, "deep")
	w.Table([]string{"a"}, nil)
	w.BulletList([]string{"one", "two"})

	out := string(w.Bytes())
	assert.Contains(t, out, "###### deep")
	assert.NotContains(t, out, "| a |")
	assert.Contains(t, out, "- one\n- two\n")
	assert.Equal(t, "collapsed text", cleanDescription("  collapsed\n\t text "))
}
