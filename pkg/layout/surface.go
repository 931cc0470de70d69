package layout

import (
	"context"
	"fmt"
	"runtime"

	"github.com/aclements/go-moremath/vec"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/datavis/pkg/anim"
	"github.com/leapstack-labs/datavis/pkg/core"
	"github.com/leapstack-labs/datavis/pkg/dataset"
	"github.com/leapstack-labs/datavis/pkg/rbf"
	"github.com/leapstack-labs/datavis/pkg/scale"
)

// MaxDensity bounds the grid points per side of a surface.
const MaxDensity = 256

func layoutSurface(ctx context.Context, ds *dataset.Dataset, req *SurfaceRequest, w *warnings) (*core.ChartLayoutSpec, error) {
	if req.Density < 2 {
		return nil, core.NewConfigurationError("density", "must be at least 2, got %d", req.Density)
	}
	if req.Density > MaxDensity {
		return nil, core.NewConfigurationError("density", "must be at most %d, got %d", MaxDensity, req.Density)
	}
	fitter := req.Fitter
	if fitter == nil {
		fitter = rbf.Solver{}
	}
	opts := rbf.Options{Kernel: req.Kernel, Epsilon: req.Epsilon, Smooth: req.Smooth}

	f, err := newFrame(ds, &req.Common, 3, w)
	if err != nil {
		return nil, err
	}

	points := make([][2]float64, len(f.rows))
	values := make([]float64, len(f.rows))
	for n, i := range f.rows {
		xn, yn, zn := f.norm(i)
		points[n] = [2]float64{xn, yn}
		values[n] = zn
	}

	d := req.Density
	grid := vec.Linspace(0, 1, d)

	base, err := evaluateGrid(ctx, fitter, points, values, opts, grid)
	if err != nil {
		return nil, err
	}

	spec := f.newSpec()
	spec.Vertices = base
	for row := 0; row < d-1; row++ {
		for col := 0; col < d-1; col++ {
			i := row*d + col
			spec.Faces = append(spec.Faces, core.Face{i, i + 1, i + d + 1, i + d})
		}
	}
	spec.Primitives = []core.Primitive{{
		Kind:          core.PrimitiveMesh,
		Name:          "surface",
		Transform:     core.IdentityTransform(),
		MaterialValue: f.value.Max,
	}}

	if f.animate {
		tail := ds.TailLength()
		for t := 0; t < tail; t++ {
			for n, i := range f.rows {
				values[n] = scale.NormalizeRange(ds.Tail(i)[t], f.value)
			}
			verts, err := evaluateGrid(ctx, fitter, points, values, opts, grid)
			if err != nil {
				return nil, fmt.Errorf("tail column %d: %w", t, err)
			}
			spec.ShapeKeys = append(spec.ShapeKeys, core.ShapeKey{Name: fmt.Sprintf("column_%d", t), Vertices: verts})
		}
		steps, err := anim.BuildColumnSchedule(tail, anim.ColumnOptions{
			KeySpacing: req.Animation.KeySpacing,
			StartFrame: req.Animation.StartFrame,
			EndIndex:   -1,
		})
		if err != nil {
			return nil, err
		}
		spec.Keyframes = anim.ColumnKeyframes(steps, anim.DefaultShapeKeyPrefix)
	}

	if spec.Axes, err = f.axes(&req.Common); err != nil {
		return nil, err
	}
	spec.Ticks = flattenTicks(spec.Axes)
	return spec, nil
}

// evaluateGrid fits the samples and evaluates the surface on grid x grid.
// Rows are evaluated concurrently; cancelling ctx stops the evaluation.
func evaluateGrid(ctx context.Context, fitter rbf.Fitter, points [][2]float64, values []float64, opts rbf.Options, grid []float64) ([]core.Vec3, error) {
	ev, err := fitter.Fit(points, values, opts)
	if err != nil {
		return nil, err
	}

	d := len(grid)
	out := make([]core.Vec3, d*d)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for row := 0; row < d; row++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			y := grid[row]
			for col, x := range grid {
				out[row*d+col] = core.Vec3{x, y, ev.At(x, y)}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
