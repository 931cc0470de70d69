// Package scale maps raw data values into the unit layout space and
// produces tick sequences along an axis.
package scale

import (
	"iter"
	"math"

	"cogentcore.org/core/math32/minmax"

	"github.com/leapstack-labs/datavis/pkg/core"
)

// DefaultPrecision is the tolerance FloatRange uses to include stop.
const DefaultPrecision = 1e-5

// autoStepDivisions is the number of steps AutoStep divides a range into.
const autoStepDivisions = 10

// Normalize maps value linearly so that min -> 0 and max -> 1.
// Values outside [min, max] are not clamped; callers filter them upstream.
// A degenerate range (max == min) returns 1.
func Normalize(value, min, max float64) float64 {
	if max == min {
		return 1.0
	}
	return (value - min) / (max - min)
}

// NormalizeRange is Normalize over a minmax range.
func NormalizeRange(value float64, r minmax.F64) float64 {
	return Normalize(value, r.Min, r.Max)
}

// Degenerate reports whether r would make Normalize fall back to 1.
func Degenerate(r minmax.F64) bool {
	return r.Max == r.Min
}

// AutoStep divides the span of [min, max] into ten equal steps.
func AutoStep(min, max float64) float64 {
	return (max - min) / autoStepDivisions
}

// LabelStep returns the index step for a categorical axis with labelCount
// labels: one tick per label up to ten labels, then ceil((n-1)/10).
func LabelStep(labelCount int) int {
	if labelCount <= autoStepDivisions {
		return 1
	}
	return int(math.Ceil(float64(labelCount-1) / autoStepDivisions))
}

// FloatRange yields start, start+step, start+2*step, ... while the value has
// not passed stop by more than precision. A negative step walks downwards.
//
// Values are computed as start + i*step rather than by accumulation, so
// FloatRange(0, 1, 0.25, DefaultPrecision) yields exactly 0, 0.25, 0.5, 0.75, 1.
func FloatRange(start, stop, step, precision float64) (iter.Seq[float64], error) {
	if step == 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		return nil, core.NewConfigurationError("step", "must be a finite non-zero number, got %v", step)
	}
	if math.IsNaN(start) || math.IsNaN(stop) || math.IsInf(start, 0) || math.IsInf(stop, 0) {
		return nil, core.NewConfigurationError("range", "bounds must be finite, got [%v, %v]", start, stop)
	}
	if precision < 0 {
		precision = -precision
	}

	return func(yield func(float64) bool) {
		for i := 0; ; i++ {
			v := start + float64(i)*step
			if step > 0 && v > stop+precision {
				return
			}
			if step < 0 && v < stop-precision {
				return
			}
			if !yield(v) {
				return
			}
		}
	}, nil
}

// Collect drains a FloatRange into a slice.
func Collect(start, stop, step, precision float64) ([]float64, error) {
	seq, err := FloatRange(start, stop, step, precision)
	if err != nil {
		return nil, err
	}
	var out []float64
	for v := range seq {
		out = append(out, v)
	}
	return out, nil
}
