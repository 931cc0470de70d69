package layout

import (
	"fmt"
	"math"

	"github.com/leapstack-labs/datavis/pkg/anim"
	"github.com/leapstack-labs/datavis/pkg/core"
	"github.com/leapstack-labs/datavis/pkg/dataset"
	"github.com/leapstack-labs/datavis/pkg/scale"
)

// minBarHeight keeps zero-height bars visible and selectable.
const minBarHeight = 0.0001

func barHeight(v float64, f *frame) float64 {
	return math.Max(scale.NormalizeRange(v, f.value), minBarHeight)
}

func layoutBar(ds *dataset.Dataset, req *BarRequest, w *warnings) (*core.ChartLayoutSpec, error) {
	dim, err := resolveDim(ds, req.Dim)
	if err != nil {
		return nil, err
	}
	if req.BarSize[0] <= 0 || req.BarSize[1] <= 0 {
		return nil, core.NewConfigurationError("bar_size", "must be positive, got %v", req.BarSize)
	}
	f, err := newFrame(ds, &req.Common, dim, w)
	if err != nil {
		return nil, err
	}

	spec := f.newSpec()
	for n, i := range f.rows {
		xn, yn, _ := f.norm(i)
		_, _, z := ds.Point(i)
		zn := barHeight(z, f)

		spec.Primitives = append(spec.Primitives, core.Primitive{
			Kind: core.PrimitiveBox,
			Name: fmt.Sprintf("bar_%d", n),
			Transform: core.Transform{
				Location: core.Vec3{xn, yn, zn * 0.5},
				Scale:    core.Vec3{req.BarSize[0], req.BarSize[1], zn * 0.5},
			},
			MaterialValue: z,
		})

		if !f.animate {
			continue
		}
		series := f.series(i)
		halves := make([]float64, len(series))
		for k, v := range series {
			halves[k] = barHeight(v, f) * 0.5
		}
		track := anim.TrackOptions{
			KeySpacing:    req.Animation.KeySpacing,
			StartFrame:    req.Animation.StartFrame,
			Interpolation: core.InterpolationLinear,
		}
		for _, target := range []string{"scale.z", "location.z"} {
			kfs, err := anim.TransformSchedule(fmt.Sprintf("primitive[%d].%s", n, target), halves, track)
			if err != nil {
				return nil, err
			}
			spec.Keyframes = append(spec.Keyframes, kfs...)
		}
	}

	if spec.Axes, err = f.axes(&req.Common); err != nil {
		return nil, err
	}
	spec.Ticks = flattenTicks(spec.Axes)
	return spec, nil
}
