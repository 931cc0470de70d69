package layout

import (
	"fmt"

	"github.com/leapstack-labs/datavis/pkg/anim"
	"github.com/leapstack-labs/datavis/pkg/core"
	"github.com/leapstack-labs/datavis/pkg/dataset"
	"github.com/leapstack-labs/datavis/pkg/scale"
)

func layoutPoint(ds *dataset.Dataset, req *PointRequest, w *warnings) (*core.ChartLayoutSpec, error) {
	dim, err := resolveDim(ds, req.Dim)
	if err != nil {
		return nil, err
	}
	if req.PointSize <= 0 {
		return nil, core.NewConfigurationError("point_size", "must be positive, got %v", req.PointSize)
	}
	f, err := newFrame(ds, &req.Common, dim, w)
	if err != nil {
		return nil, err
	}

	spec := f.newSpec()
	s := req.PointSize
	for n, i := range f.rows {
		xn, yn, zn := f.norm(i)
		_, _, z := ds.Point(i)
		spec.Primitives = append(spec.Primitives, core.Primitive{
			Kind: core.PrimitiveSphere,
			Name: fmt.Sprintf("point_%d", n),
			Transform: core.Transform{
				Location: core.Vec3{xn, yn, zn},
				Scale:    core.Vec3{s, s, s},
			},
			MaterialValue: z,
		})

		if !f.animate {
			continue
		}
		series := f.series(i)
		for k, v := range series {
			series[k] = scale.NormalizeRange(v, f.value)
		}
		kfs, err := anim.TransformSchedule(fmt.Sprintf("primitive[%d].location.z", n), series, anim.TrackOptions{
			KeySpacing:    req.Animation.KeySpacing,
			StartFrame:    req.Animation.StartFrame,
			Interpolation: core.InterpolationLinear,
		})
		if err != nil {
			return nil, err
		}
		spec.Keyframes = append(spec.Keyframes, kfs...)
	}

	if spec.Axes, err = f.axes(&req.Common); err != nil {
		return nil, err
	}
	spec.Ticks = flattenTicks(spec.Axes)
	return spec, nil
}
