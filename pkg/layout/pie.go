package layout

import (
	"errors"
	"math"

	"cogentcore.org/core/math32/minmax"

	"github.com/leapstack-labs/datavis/pkg/core"
	"github.com/leapstack-labs/datavis/pkg/dataset"
)

// pieLabelDistance places wedge labels just outside the rim.
const pieLabelDistance = 1.2

// MaxVertexCount bounds the number of rim vertices of a pie chart.
const MaxVertexCount = 4096

// Slice is one rendered pie wedge: Count triangles starting at Start.
type Slice struct {
	Entry int
	Start int
	Count int
}

// PieSlices partitions vertexCount equal triangles among values. Every
// entry is rounded independently to round(portion*vertexCount) (half to
// even), so the rendered total may differ from vertexCount. Entries that
// round to zero are skipped; once the triangles run out the merge stops and
// the remaining entries are skipped. Both cases are reported as warnings.
func PieSlices(values []float64, vertexCount int) ([]Slice, []core.DegradedOutputWarning, error) {
	if vertexCount < 3 {
		return nil, nil, core.NewConfigurationError("vertex_count", "must be at least 3, got %d", vertexCount)
	}
	if vertexCount > MaxVertexCount {
		return nil, nil, core.NewConfigurationError("vertex_count", "must be at most %d, got %d", MaxVertexCount, vertexCount)
	}
	if len(values) == 0 {
		return nil, nil, core.NewInvalidDataError("pie chart needs at least one entry")
	}

	var total float64
	for i, v := range values {
		if !(v > 0) {
			return nil, nil, &core.InvalidDataError{Row: i, Column: -1, Reason: "pie values must be positive"}
		}
		total += v
	}

	var (
		w      warnings
		slices []Slice
		next   int
	)
	for i, v := range values {
		inc := int(math.RoundToEven(v / total * float64(vertexCount)))
		if inc == 0 {
			w.add("pie entry %d is too small to render with %d vertices", i, vertexCount)
			continue
		}
		if next >= vertexCount {
			w.add("pie entry %d skipped: all %d triangles are used", i, vertexCount)
			continue
		}
		if next+inc > vertexCount {
			w.add("pie entry %d truncated from %d to %d triangles", i, inc, vertexCount-next)
			inc = vertexCount - next
		}
		slices = append(slices, Slice{Entry: i, Start: next, Count: inc})
		next += inc
	}
	return slices, w, nil
}

func layoutPie(ds *dataset.Dataset, req *PieRequest, w *warnings) (*core.ChartLayoutSpec, error) {
	if req.Radius <= 0 {
		return nil, core.NewConfigurationError("radius", "must be positive, got %v", req.Radius)
	}

	rows := ds.Rows()
	values := make([]float64, len(rows))
	for i, r := range rows {
		values[i] = r.Values[0]
	}

	slices, sw, err := PieSlices(values, req.VertexCount)
	if err != nil {
		var invalid *core.InvalidDataError
		if errors.As(err, &invalid) && invalid.Row >= 0 && ds.HasLabels() {
			invalid.Row++
		}
		return nil, err
	}
	*w = append(*w, sw...)

	n := req.VertexCount
	spec := &core.ChartLayoutSpec{Dimensions: 2}

	spec.Vertices = make([]core.Vec3, 0, n+1)
	spec.Vertices = append(spec.Vertices, core.Vec3{})
	for k := 0; k < n; k++ {
		a := 2 * math.Pi * float64(k) / float64(n)
		spec.Vertices = append(spec.Vertices, core.Vec3{req.Radius * math.Cos(a), req.Radius * math.Sin(a), 0})
	}
	for k := 0; k < n; k++ {
		spec.Faces = append(spec.Faces, core.Face{0, 1 + k, 1 + (k+1)%n})
	}

	vr := minmax.F64{}
	vr.SetInfinity()
	for _, v := range values {
		vr.FitValInRange(v)
	}
	if vr.Min == vr.Max {
		vr.Max++
	}
	spec.ValueRange = [2]float64{vr.Min, vr.Max}

	for _, s := range slices {
		faces := make([]int, s.Count)
		for k := range faces {
			faces[k] = s.Start + k
		}
		spec.Primitives = append(spec.Primitives, core.Primitive{
			Kind:          core.PrimitiveWedge,
			Name:          rows[s.Entry].Label,
			Transform:     core.IdentityTransform(),
			MaterialValue: values[s.Entry],
			Faces:         faces,
			SliceStart:    s.Start,
			SliceCount:    s.Count,
		})

		mid := 2 * math.Pi * (float64(s.Start) + float64(s.Count)/2) / float64(n)
		d := req.Radius * pieLabelDistance
		spec.Labels = append(spec.Labels, core.Label{
			Text:     rows[s.Entry].Label,
			Position: core.Vec3{d * math.Cos(mid), d * math.Sin(mid), 0},
		})
	}
	return spec, nil
}
