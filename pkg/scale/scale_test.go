package scale

import (
	"math"
	"testing"

	"cogentcore.org/core/math32/minmax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/datavis/pkg/core"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min, max float64
		want     float64
	}{
		{"min maps to zero", 0, 0, 1, 0},
		{"max maps to one", 1, 0, 1, 1},
		{"midpoint", 0.5, 0, 1, 0.5},
		{"offset range midpoint", 15, 10, 20, 0.5},
		{"negative range", -5, -10, 0, 0.5},
		{"outside range is not clamped", 30, 10, 20, 2},
		{"degenerate range", 4, 4, 4, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Normalize(tt.value, tt.min, tt.max), 1e-12)
		})
	}
}

func TestNormalizeRange(t *testing.T) {
	r := minmax.F64{Min: 1, Max: 9}
	assert.InDelta(t, 0.0, NormalizeRange(1, r), 1e-12)
	assert.InDelta(t, 1.0, NormalizeRange(9, r), 1e-12)
	assert.InDelta(t, 0.5, NormalizeRange(5, r), 1e-12)
	assert.True(t, Degenerate(minmax.F64{Min: 2, Max: 2}))
	assert.False(t, Degenerate(r))
}

func TestAutoStep(t *testing.T) {
	assert.InDelta(t, 0.1, AutoStep(0, 1), 1e-12)
	assert.InDelta(t, 0.8, AutoStep(1, 9), 1e-12)
}

func TestLabelStep(t *testing.T) {
	tests := []struct {
		labels int
		want   int
	}{
		{1, 1},
		{10, 1},
		{11, 1},
		{12, 2},
		{21, 2},
		{22, 3},
		{101, 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LabelStep(tt.labels), "labels=%d", tt.labels)
	}
}

func TestFloatRange(t *testing.T) {
	tests := []struct {
		name              string
		start, stop, step float64
		want              []float64
	}{
		{
			name:  "quarters inclusive of stop",
			start: 0, stop: 1, step: 0.25,
			want: []float64{0, 0.25, 0.5, 0.75, 1},
		},
		{
			name:  "tenths reach stop within tolerance",
			start: 0, stop: 1, step: 0.1,
			want: []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1},
		},
		{
			name:  "descending",
			start: 1, stop: 0, step: -0.5,
			want: []float64{1, 0.5, 0},
		},
		{
			name:  "step larger than span",
			start: 0, stop: 1, step: 5,
			want: []float64{0},
		},
		{
			name:  "start past stop",
			start: 2, stop: 1, step: 1,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Collect(tt.start, tt.stop, tt.step, DefaultPrecision)
			require.NoError(t, err)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.InDelta(t, tt.want[i], got[i], 1e-9)
			}
		})
	}
}

func TestFloatRange_InvalidStep(t *testing.T) {
	for _, step := range []float64{0, math.NaN(), math.Inf(1)} {
		_, err := FloatRange(0, 1, step, DefaultPrecision)
		require.Error(t, err)
		assert.True(t, core.IsConfiguration(err))
	}
}

func TestFloatRange_EarlyBreak(t *testing.T) {
	seq, err := FloatRange(0, 100, 1, DefaultPrecision)
	require.NoError(t, err)

	var n int
	for range seq {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}
