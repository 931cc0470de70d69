// Package layout turns a dataset snapshot and a chart request into a
// declarative ChartLayoutSpec.
package layout

import (
	"context"
	"fmt"

	"cogentcore.org/core/math32/minmax"
	"github.com/google/uuid"

	"github.com/leapstack-labs/datavis/pkg/axis"
	"github.com/leapstack-labs/datavis/pkg/color"
	"github.com/leapstack-labs/datavis/pkg/core"
	"github.com/leapstack-labs/datavis/pkg/dataset"
	"github.com/leapstack-labs/datavis/pkg/scale"
)

// Layout computes the chart described by req for ds. Warnings describe
// degraded but usable output; errors are *core.InvalidDataError or
// *core.ConfigurationError.
func Layout(ctx context.Context, ds *dataset.Dataset, req Request) (*core.ChartLayoutSpec, []core.DegradedOutputWarning, error) {
	if req == nil {
		return nil, nil, core.NewConfigurationError("request", "must not be nil")
	}
	if ds == nil {
		return nil, nil, core.NewInvalidDataError("no dataset loaded")
	}
	if err := ds.Err(); err != nil {
		return nil, nil, fmt.Errorf("dataset is invalid: %w", err)
	}
	if !Available(ds, req.Kind()) {
		return nil, nil, core.NewInvalidDataError("%s chart is not available for %s %dD data",
			req.Kind(), ds.Kind(), ds.Dimensions())
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	var (
		spec *core.ChartLayoutSpec
		w    warnings
		err  error
	)
	switch r := req.(type) {
	case *BarRequest:
		spec, err = layoutBar(ds, r, &w)
	case *PieRequest:
		spec, err = layoutPie(ds, r, &w)
	case *LineRequest:
		spec, err = layoutLine(ds, r, &w)
	case *PointRequest:
		spec, err = layoutPoint(ds, r, &w)
	case *SurfaceRequest:
		spec, err = layoutSurface(ctx, ds, r, &w)
	default:
		return nil, nil, core.NewConfigurationError("request", "unsupported request type %T", req)
	}
	if err != nil {
		return nil, w, err
	}

	if err := color.Apply(spec, req.common().Color); err != nil {
		return nil, w, err
	}
	spec.ID = uuid.NewString()
	spec.Kind = string(req.Kind())
	return spec, w, nil
}

type warnings []core.DegradedOutputWarning

func (w *warnings) add(format string, args ...any) {
	*w = append(*w, core.Warnf(format, args...))
}

// frame is the filtered, range-resolved view of a dataset that a single
// layout works on.
type frame struct {
	ds      *dataset.Dataset
	dim     int
	x, y, z minmax.F64
	// value is the range heights are normalized against: z, or z_anim
	// when animating.
	value   minmax.F64
	animate bool
	rows    []int
}

// resolveDim checks a requested dimensionality against the dataset.
func resolveDim(ds *dataset.Dataset, requested int) (int, error) {
	switch requested {
	case 0:
		return ds.Dimensions(), nil
	case 2:
		return 2, nil
	case 3:
		if ds.Dimensions() != 3 {
			return 0, core.NewInvalidDataError("3D chart requested but the dataset is %dD", ds.Dimensions())
		}
		return 3, nil
	default:
		return 0, core.NewConfigurationError("dim", "must be 2 or 3, got %d", requested)
	}
}

func overrideRange(field string, base minmax.F64, override *minmax.F64) (minmax.F64, error) {
	if override == nil {
		return base, nil
	}
	if !(override.Min < override.Max) {
		return base, core.NewConfigurationError(field, "min %v must be below max %v", override.Min, override.Max)
	}
	return *override, nil
}

// newFrame resolves axis ranges and drops rows outside them. When animating,
// a row is also dropped if any of its tail values falls outside the value
// range.
func newFrame(ds *dataset.Dataset, c *Common, dim int, w *warnings) (*frame, error) {
	r := ds.Ranges()
	f := &frame{ds: ds, dim: dim}

	var err error
	if f.x, err = overrideRange("range_x", r.X, c.Axis.RangeX); err != nil {
		return nil, err
	}
	if f.y, err = overrideRange("range_y", r.Y, c.Axis.RangeY); err != nil {
		return nil, err
	}
	if f.z, err = overrideRange("range_z", r.Z, c.Axis.RangeZ); err != nil {
		return nil, err
	}

	f.value = f.z
	if c.Animation.Animate && ds.TailLength() > 0 {
		f.animate = true
		f.value = r.ZAnim
		if c.Axis.RangeZ != nil {
			f.value = f.z
		}
	}

	for _, rg := range []minmax.F64{f.x, f.z, f.value} {
		if scale.Degenerate(rg) {
			w.add("degenerate range [%v, %v]; normalized values fall back to 1", rg.Min, rg.Max)
		}
	}

	excluded := 0
	for i := 0; i < ds.Len(); i++ {
		x, y, z := ds.Point(i)
		if !f.x.InRange(x) || !f.z.InRange(z) || (dim == 3 && !f.y.InRange(y)) || !f.tailInRange(i) {
			excluded++
			continue
		}
		f.rows = append(f.rows, i)
	}
	if excluded > 0 {
		w.add("%d rows outside the axis ranges were excluded", excluded)
	}
	if len(f.rows) == 0 {
		return nil, core.NewInvalidDataError("no rows inside the axis ranges")
	}
	return f, nil
}

func (f *frame) tailInRange(i int) bool {
	if !f.animate {
		return true
	}
	for _, v := range f.ds.Tail(i) {
		if !f.value.InRange(v) {
			return false
		}
	}
	return true
}

// norm returns the normalized x, y (zero in 2D) and value of row i.
func (f *frame) norm(i int) (xn, yn, zn float64) {
	x, y, z := f.ds.Point(i)
	xn = scale.NormalizeRange(x, f.x)
	if f.dim == 3 {
		yn = scale.NormalizeRange(y, f.y)
	}
	zn = scale.NormalizeRange(z, f.value)
	return xn, yn, zn
}

// series returns the base value of row i followed by its tail values.
func (f *frame) series(i int) []float64 {
	_, _, z := f.ds.Point(i)
	return append([]float64{z}, f.ds.Tail(i)...)
}

func (f *frame) newSpec() *core.ChartLayoutSpec {
	return &core.ChartLayoutSpec{
		Dimensions: f.dim,
		ValueRange: [2]float64{f.value.Min, f.value.Max},
	}
}

// axes lays out one axis per data axis when requested.
func (f *frame) axes(c *Common) ([]core.AxisSpec, error) {
	if !c.Axis.Create {
		return nil, nil
	}
	labels := f.ds.Labels()
	tickLabels := f.ds.TickLabels()

	type axisDef struct {
		index int
		rng   minmax.F64
		step  float64
		title string
		ticks []string
	}
	defs := []axisDef{{index: 0, rng: f.x, step: c.Axis.StepX, title: labels.X, ticks: tickLabels}}
	if f.dim == 3 {
		defs = append(defs,
			axisDef{index: 1, rng: f.y, step: c.Axis.StepY, title: labels.Y},
			axisDef{index: 2, rng: f.value, step: c.Axis.StepZ, title: labels.Z},
		)
	} else {
		defs = append(defs, axisDef{index: 1, rng: f.value, step: c.Axis.StepZ, title: labels.Z})
	}

	out := make([]core.AxisSpec, 0, len(defs))
	for _, d := range defs {
		step := d.step
		if c.Axis.AutoSteps || step <= 0 {
			if len(d.ticks) > 0 {
				step = float64(scale.LabelStep(len(d.ticks)))
			} else {
				step = scale.AutoStep(d.rng.Min, d.rng.Max)
			}
		}
		spec, err := axis.Layout(axis.Options{
			DataIndex:     d.index,
			Dim:           f.dim,
			Range:         d.rng,
			Step:          step,
			TickLabels:    d.ticks,
			Padding:       c.Axis.Padding,
			NumberFormat:  c.Axis.NumberFormat,
			DecimalPlaces: c.Axis.DecimalPlaces,
			Position:      c.Axis.Position,
			Thickness:     c.Axis.Thickness,
			TickHeight:    c.Axis.TickHeight,
			TextSize:      c.Axis.TextSize,
			Title:         d.title,
		})
		if err != nil {
			return nil, fmt.Errorf("axis %d: %w", d.index, err)
		}
		out = append(out, spec)
	}
	return out, nil
}

// flattenTicks collects the ticks of every axis.
func flattenTicks(axes []core.AxisSpec) []core.Tick {
	var out []core.Tick
	for _, a := range axes {
		out = append(out, a.Ticks...)
	}
	return out
}
