package layout

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/datavis/internal/testutil"
	"github.com/leapstack-labs/datavis/pkg/core"
	"github.com/leapstack-labs/datavis/pkg/rbf"
)

// planeFitter returns a fixed plane regardless of samples.
type planeFitter struct{ calls int }

func (p *planeFitter) Fit(points [][2]float64, values []float64, opts rbf.Options) (rbf.Evaluator, error) {
	p.calls++
	return plane{}, nil
}

type plane struct{}

func (plane) At(x, y float64) float64 { return x + y }

type failingFitter struct{}

func (failingFitter) Fit([][2]float64, []float64, rbf.Options) (rbf.Evaluator, error) {
	return nil, errors.New("boom")
}

func TestLayout_Surface(t *testing.T) {
	ds := load(t, testutil.NumericalTable3D())
	req := newRequest[*SurfaceRequest](t, KindSurface)
	req.Density = 4

	spec, _, err := Layout(context.Background(), ds, req)
	require.NoError(t, err)

	assert.Len(t, spec.Vertices, 16)
	require.Len(t, spec.Faces, 9)
	assert.Equal(t, core.Face{0, 1, 5, 4}, spec.Faces[0])
	assert.Equal(t, core.Face{10, 11, 15, 14}, spec.Faces[8])

	// The grid spans the unit square and passes through the corner samples.
	assert.Equal(t, 0.0, spec.Vertices[0][0])
	assert.InDelta(t, 1.0, spec.Vertices[15][0], 1e-12)
	assert.InDelta(t, 1.0, spec.Vertices[15][1], 1e-12)
	assert.InDelta(t, 0.0, spec.Vertices[0][2], 1e-6)
	assert.InDelta(t, 1.0, spec.Vertices[15][2], 1e-6)

	require.Len(t, spec.Primitives, 1)
	assert.Equal(t, core.PrimitiveMesh, spec.Primitives[0].Kind)
	assert.Len(t, spec.Axes, 3)
}

func TestLayout_SurfaceCustomFitter(t *testing.T) {
	ds := load(t, testutil.AnimatedTable3D())
	fitter := &planeFitter{}
	req := newRequest[*SurfaceRequest](t, KindSurface)
	req.Density = 3
	req.Fitter = fitter
	req.Animation.Animate = true

	spec, _, err := Layout(context.Background(), ds, req)
	require.NoError(t, err)

	// Base surface plus one fit per tail column.
	assert.Equal(t, 3, fitter.calls)
	assert.InDelta(t, 1.5, spec.Vertices[5][2], 1e-9)
	require.Len(t, spec.ShapeKeys, 2)
	assert.Len(t, spec.ShapeKeys[1].Vertices, 9)
	assert.Len(t, spec.Keyframes, 4)
}

func TestLayout_SurfaceErrors(t *testing.T) {
	ds := load(t, testutil.NumericalTable3D())

	req := newRequest[*SurfaceRequest](t, KindSurface)
	req.Density = 1
	_, _, err := Layout(context.Background(), ds, req)
	assert.True(t, core.IsConfiguration(err))

	req = newRequest[*SurfaceRequest](t, KindSurface)
	req.Density = MaxDensity + 1
	_, _, err = Layout(context.Background(), ds, req)
	assert.True(t, core.IsConfiguration(err))

	req = newRequest[*SurfaceRequest](t, KindSurface)
	req.Fitter = failingFitter{}
	_, _, err = Layout(context.Background(), ds, req)
	assert.EqualError(t, err, "boom")

	collinear := load(t, [][]string{{"0", "0", "1"}, {"1", "1", "2"}, {"2", "2", "3"}})
	req = newRequest[*SurfaceRequest](t, KindSurface)
	_, _, err = Layout(context.Background(), collinear, req)
	assert.True(t, core.IsInvalidData(err))

	flat := load(t, testutil.NumericalTable2D())
	_, _, err = Layout(context.Background(), flat, req)
	assert.True(t, core.IsInvalidData(err))
}

func TestLayout_SurfaceCancelled(t *testing.T) {
	ds := load(t, testutil.NumericalTable3D())
	req := newRequest[*SurfaceRequest](t, KindSurface)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := Layout(ctx, ds, req)
	assert.ErrorIs(t, err, context.Canceled)
}
