package output

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func TestMode(t *testing.T) {
	tests := []struct {
		in   string
		want OutputMode
	}{
		{"", ModeAuto},
		{"auto", ModeAuto},
		{"TEXT", ModeText},
		{"md", ModeMarkdown},
		{"markdown", ModeMarkdown},
		{"json", ModeJSON},
		{"yml", ModeYAML},
		{"bogus", ModeAuto},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Mode(tt.in))
		})
	}
}

func TestEffectiveMode(t *testing.T) {
	assert.Equal(t, ModeText, NewRendererWithTTY(&bytes.Buffer{}, nil, true, ModeAuto).EffectiveMode())
	assert.Equal(t, ModeMarkdown, NewRendererWithTTY(&bytes.Buffer{}, nil, false, ModeAuto).EffectiveMode())
	assert.Equal(t, ModeJSON, NewRendererWithTTY(&bytes.Buffer{}, nil, true, ModeJSON).EffectiveMode())
}

func TestRenderer_Markdown(t *testing.T) {
	out := &bytes.Buffer{}
	r := NewRendererWithTTY(out, nil, false, ModeMarkdown)

	r.Header(1, "Dataset")
	r.KeyValue("Kind", "numerical")
	r.Table([]string{"label", "value"}, [][]string{{"a", "1"}})

	s := out.String()
	assert.Contains(t, s, "# Dataset\n")
	assert.Contains(t, s, "- **Kind:** numerical")
	assert.Contains(t, s, "| label | value |")
	assert.Contains(t, s, "| a | 1 |")
	assert.False(t, ansi.MatchString(s))
}

func TestRenderer_Text(t *testing.T) {
	out := &bytes.Buffer{}
	r := NewRendererWithTTY(out, nil, false, ModeText)

	r.Header(1, "Dataset")
	r.Success("done")
	r.Table([]string{"label"}, [][]string{{"a"}})

	s := out.String()
	assert.Contains(t, s, "Dataset")
	assert.Contains(t, s, "✓ done")
	assert.Contains(t, s, "┌")
}

func TestRenderer_Data(t *testing.T) {
	v := map[string]int{"rows": 3}

	out := &bytes.Buffer{}
	ok, err := NewRendererWithTTY(out, nil, false, ModeJSON).Data(v)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"rows":3}`, out.String())

	out.Reset()
	ok, err = NewRendererWithTTY(out, nil, false, ModeYAML).Data(v)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "rows: 3\n", out.String())

	out.Reset()
	ok, err = NewRendererWithTTY(out, nil, false, ModeMarkdown).Data(v)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, out.String())
}

func TestRenderer_ErrorsGoToErrorStream(t *testing.T) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	r := NewRendererWithTTY(out, errOut, false, ModeMarkdown)

	r.Warning("2 rows excluded")
	r.Error("bad input")

	assert.Empty(t, out.String())
	assert.Equal(t, "warning: 2 rows excluded\nerror: bad input\n", errOut.String())
}
