package layout

import (
	"fmt"
	"sort"

	"github.com/leapstack-labs/datavis/pkg/anim"
	"github.com/leapstack-labs/datavis/pkg/core"
	"github.com/leapstack-labs/datavis/pkg/dataset"
	"github.com/leapstack-labs/datavis/pkg/scale"
)

// bevelProfiles are the cross-sections of the bevel kinds.
var bevelProfiles = map[BevelKind]core.Sweep{
	BevelRounded: {Segments: 5, Offset: 0.05, Profile: 0.6},
	BevelSharp:   {Segments: 3, Offset: 0.02, Profile: 1.0},
}

func layoutLine(ds *dataset.Dataset, req *LineRequest, w *warnings) (*core.ChartLayoutSpec, error) {
	var sweep *core.Sweep
	switch req.Bevel {
	case BevelNone, "":
	case BevelRounded, BevelSharp:
		p := bevelProfiles[req.Bevel]
		sweep = &p
	default:
		return nil, core.NewConfigurationError("bevel", "unknown bevel %q (expected none, rounded or sharp)", req.Bevel)
	}

	f, err := newFrame(ds, &req.Common, 2, w)
	if err != nil {
		return nil, err
	}

	order := append([]int(nil), f.rows...)
	if ds.Kind() == dataset.KindNumerical {
		sort.SliceStable(order, func(a, b int) bool {
			xa, _, _ := ds.Point(order[a])
			xb, _, _ := ds.Point(order[b])
			return xa < xb
		})
	}

	spec := f.newSpec()
	spec.Sweep = sweep
	for n, i := range order {
		xn, _, zn := f.norm(i)
		spec.Vertices = append(spec.Vertices, core.Vec3{xn, 0, zn})
		if n > 0 {
			spec.Edges = append(spec.Edges, core.Edge{n - 1, n})
		}
	}
	_, _, first := ds.Point(order[0])
	spec.Primitives = []core.Primitive{{
		Kind:          core.PrimitiveCurve,
		Name:          "line",
		Transform:     core.IdentityTransform(),
		MaterialValue: first,
	}}

	if f.animate {
		tail := ds.TailLength()
		for t := 0; t < tail; t++ {
			key := core.ShapeKey{Name: fmt.Sprintf("column_%d", t)}
			for n, i := range order {
				v := ds.Tail(i)[t]
				key.Vertices = append(key.Vertices, core.Vec3{spec.Vertices[n][0], 0, scale.NormalizeRange(v, f.value)})
			}
			spec.ShapeKeys = append(spec.ShapeKeys, key)
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
