// Package axis lays out one chart axis: its line, tick marks, tick labels
// and container offset.
package axis

import (
	"math"

	"cogentcore.org/core/math32/minmax"

	"github.com/leapstack-labs/datavis/pkg/core"
	"github.com/leapstack-labs/datavis/pkg/scale"
)

// CategoricalLabelRotation is the rotation applied to categorical tick labels.
const CategoricalLabelRotation = 45.0

// MaxTicks bounds the number of ticks a single axis may carry.
const MaxTicks = 1000

// Options describes one axis to lay out.
type Options struct {
	// DataIndex is the data column the axis shows: 0 x, 1 y, 2 z.
	DataIndex int
	// Dim is the chart dimensionality, 2 or 3.
	Dim int
	// Range is the data range mapped onto the unit axis. It must not be
	// degenerate.
	Range minmax.F64
	Step  float64
	// TickLabels replaces numeric labels with categorical ones, indexed
	// by floor(value).
	TickLabels []string

	Padding       float64
	Offset        float64
	NumberFormat  NumberFormat
	DecimalPlaces int
	Position      Position

	Thickness  float64
	TickHeight float64
	TextSize   float64
	Title      string
}

// DisplayDirection maps a data column to the display direction it is drawn
// along. In two dimensions the second data column is drawn along Z.
func DisplayDirection(dataIndex, dim int) (core.Direction, error) {
	if dim != 2 && dim != 3 {
		return 0, core.NewConfigurationError("dim", "must be 2 or 3, got %d", dim)
	}
	switch dataIndex {
	case 0:
		return core.DirectionX, nil
	case 1:
		if dim == 2 {
			return core.DirectionZ, nil
		}
		return core.DirectionY, nil
	case 2:
		return core.DirectionZ, nil
	default:
		return 0, core.NewConfigurationError("data_index", "must be 0, 1 or 2, got %d", dataIndex)
	}
}

// LineLength returns the length of the axis line for the given options.
func LineLength(padding, offset float64, pos Position) float64 {
	l := 1 + padding + offset
	if pos == PositionBack || pos == PositionRight {
		l += padding
	}
	return l
}

// Layout computes the geometry of one axis.
func Layout(opts Options) (core.AxisSpec, error) {
	dir, err := DisplayDirection(opts.DataIndex, opts.Dim)
	if err != nil {
		return core.AxisSpec{}, err
	}
	if opts.Step < 0 {
		return core.AxisSpec{}, core.NewConfigurationError("step", "axis step must be positive, got %v", opts.Step)
	}
	if opts.Step > 0 {
		if n := math.Floor(opts.Range.Range()/opts.Step) + 1; n > MaxTicks {
			return core.AxisSpec{}, core.NewConfigurationError("step",
				"axis step %v gives %.0f ticks over [%v, %v], more than %d", opts.Step, n, opts.Range.Min, opts.Range.Max, MaxTicks)
		}
	}

	seq, err := scale.FloatRange(opts.Range.Min, opts.Range.Max, opts.Step, scale.DefaultPrecision)
	if err != nil {
		return core.AxisSpec{}, err
	}

	lineLen := LineLength(opts.Padding, opts.Offset, opts.Position)
	unit := dir.Unit()
	perp := dir.Perpendicular()

	spec := core.AxisSpec{
		Direction:  dir,
		DataIndex:  opts.DataIndex,
		Container:  core.IdentityTransform(),
		Line:       core.Segment{End: unit.Scale(lineLen)},
		Thickness:  opts.Thickness,
		TickHeight: opts.TickHeight,
		TextSize:   opts.TextSize,
	}

	switch opts.Position {
	case PositionBack:
		spec.Container.Location[perp] += lineLen + opts.Padding
	case PositionRight:
		spec.Container.Location[dir] += lineLen + opts.Padding
		spec.TickLabelCorrection = true
	}

	for v := range seq {
		tick := core.Tick{
			Axis:     dir,
			Value:    v,
			Position: unit.Scale(opts.Offset + scale.NormalizeRange(v, opts.Range)),
		}
		if len(opts.TickLabels) > 0 {
			idx := int(math.Floor(v))
			if idx < 0 || idx >= len(opts.TickLabels) {
				continue
			}
			tick.Label = opts.TickLabels[idx]
			tick.Rotation = &core.RotationHint{Axis: perp, Degrees: CategoricalLabelRotation}
		} else {
			tick.Label = opts.NumberFormat.Format(v, opts.DecimalPlaces)
		}
		spec.Ticks = append(spec.Ticks, tick)
	}

	if opts.Title != "" {
		spec.Title = &core.Label{
			Text:     opts.Title,
			Position: unit.Scale(lineLen + opts.Padding),
		}
	}
	return spec, nil
}
