package axis

import (
	"testing"

	"cogentcore.org/core/math32/minmax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/datavis/pkg/core"
)

func TestDisplayDirection(t *testing.T) {
	tests := []struct {
		index, dim int
		want       core.Direction
	}{
		{0, 2, core.DirectionX},
		{1, 2, core.DirectionZ},
		{0, 3, core.DirectionX},
		{1, 3, core.DirectionY},
		{2, 3, core.DirectionZ},
		{2, 2, core.DirectionZ},
	}
	for _, tt := range tests {
		got, err := DisplayDirection(tt.index, tt.dim)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "index=%d dim=%d", tt.index, tt.dim)
	}

	_, err := DisplayDirection(0, 4)
	assert.True(t, core.IsConfiguration(err))
	_, err = DisplayDirection(3, 3)
	assert.True(t, core.IsConfiguration(err))
}

func TestLayout_NumericTicks(t *testing.T) {
	spec, err := Layout(Options{
		DataIndex:     1,
		Dim:           2,
		Range:         minmax.F64{Min: 1, Max: 9},
		Step:          2,
		Padding:       0.1,
		DecimalPlaces: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, core.DirectionZ, spec.Direction)
	assert.InDelta(t, 1.1, spec.Line.Length(), 1e-9)
	require.Len(t, spec.Ticks, 5)

	wantLabels := []string{"1.0", "3.0", "5.0", "7.0", "9.0"}
	for i, tick := range spec.Ticks {
		assert.Equal(t, wantLabels[i], tick.Label)
		assert.Nil(t, tick.Rotation)
		assert.InDelta(t, float64(i)*0.25, tick.Position[core.DirectionZ], 1e-9)
		assert.Zero(t, tick.Position[core.DirectionX])
	}
}

func TestLayout_OffsetShiftsTicks(t *testing.T) {
	spec, err := Layout(Options{Dim: 3, Range: minmax.F64{Min: 0, Max: 1}, Step: 0.5, Offset: 0.2})
	require.NoError(t, err)
	require.Len(t, spec.Ticks, 3)
	assert.InDelta(t, 0.2, spec.Ticks[0].Position[core.DirectionX], 1e-9)
	assert.InDelta(t, 1.2, spec.Ticks[2].Position[core.DirectionX], 1e-9)
	assert.InDelta(t, 1.2, spec.Line.Length(), 1e-9)
}

func TestLayout_Scientific(t *testing.T) {
	spec, err := Layout(Options{
		Dim:           2,
		Range:         minmax.F64{Min: 0, Max: 1000},
		Step:          500,
		NumberFormat:  FormatScientific,
		DecimalPlaces: 2,
	})
	require.NoError(t, err)
	require.Len(t, spec.Ticks, 3)
	assert.Equal(t, "0.00e+00", spec.Ticks[0].Label)
	assert.Equal(t, "5.00e+02", spec.Ticks[1].Label)
	assert.Equal(t, "1.00e+03", spec.Ticks[2].Label)
}

func TestLayout_CategoricalLabels(t *testing.T) {
	spec, err := Layout(Options{
		Dim:        2,
		Range:      minmax.F64{Min: 0, Max: 3},
		Step:       1,
		TickLabels: []string{"a", "b", "c"},
	})
	require.NoError(t, err)

	// Index 3 has no label and is skipped.
	require.Len(t, spec.Ticks, 3)
	for i, tick := range spec.Ticks {
		assert.Equal(t, []string{"a", "b", "c"}[i], tick.Label)
		require.NotNil(t, tick.Rotation)
		assert.Equal(t, core.DirectionY, tick.Rotation.Axis)
		assert.Equal(t, 45.0, tick.Rotation.Degrees)
	}
}

func TestLayout_Positions(t *testing.T) {
	base := Options{Dim: 3, Range: minmax.F64{Min: 0, Max: 1}, Step: 1, Padding: 0.1}

	front, err := Layout(base)
	require.NoError(t, err)
	assert.Equal(t, core.Vec3{}, front.Container.Location)
	assert.False(t, front.TickLabelCorrection)

	back := base
	back.Position = PositionBack
	spec, err := Layout(back)
	require.NoError(t, err)
	// line 1 + 0.1 + 0.1, shifted by line + padding along Y.
	assert.InDelta(t, 1.2, spec.Line.Length(), 1e-9)
	assert.InDelta(t, 1.3, spec.Container.Location[core.DirectionY], 1e-9)
	assert.Zero(t, spec.Container.Location[core.DirectionX])

	right := base
	right.Position = PositionRight
	spec, err = Layout(right)
	require.NoError(t, err)
	assert.InDelta(t, 1.3, spec.Container.Location[core.DirectionX], 1e-9)
	assert.True(t, spec.TickLabelCorrection)
}

func TestLayout_Title(t *testing.T) {
	spec, err := Layout(Options{Dim: 2, Range: minmax.F64{Min: 0, Max: 1}, Step: 1, Title: "count"})
	require.NoError(t, err)
	require.NotNil(t, spec.Title)
	assert.Equal(t, "count", spec.Title.Text)
	assert.InDelta(t, 1.0, spec.Title.Position[core.DirectionX], 1e-9)
}

func TestLayout_Errors(t *testing.T) {
	_, err := Layout(Options{Dim: 1, Range: minmax.F64{Min: 0, Max: 1}, Step: 1})
	assert.True(t, core.IsConfiguration(err))

	_, err = Layout(Options{Dim: 2, Range: minmax.F64{Min: 0, Max: 1}, Step: 0})
	assert.True(t, core.IsConfiguration(err))

	_, err = Layout(Options{Dim: 2, Range: minmax.F64{Min: 0, Max: 1}, Step: -1})
	assert.True(t, core.IsConfiguration(err))
}

func TestLayout_TickLimit(t *testing.T) {
	tests := []struct {
		name    string
		rng     minmax.F64
		step    float64
		wantErr bool
	}{
		{"at limit", minmax.F64{Min: 0, Max: 999}, 1, false},
		{"one over", minmax.F64{Min: 0, Max: 1000}, 1, true},
		{"tiny step", minmax.F64{Min: 0, Max: 1000}, 0.001, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := Layout(Options{Dim: 2, Range: tt.rng, Step: tt.step})
			if tt.wantErr {
				assert.True(t, core.IsConfiguration(err), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, spec.Ticks, MaxTicks)
		})
	}
}

func TestEnumText(t *testing.T) {
	var f NumberFormat
	require.NoError(t, f.UnmarshalText([]byte("Scientific")))
	assert.Equal(t, FormatScientific, f)
	assert.Error(t, f.UnmarshalText([]byte("hex")))

	var p Position
	require.NoError(t, p.UnmarshalText([]byte("right")))
	assert.Equal(t, PositionRight, p)
	assert.Error(t, p.UnmarshalText([]byte("left")))
}
