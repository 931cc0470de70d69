// Package anim computes keyframe schedules for animated charts: discrete
// shape-key crossfades over data tail columns, per-primitive value tracks
// and two-key parameter tweens.
package anim

import (
	"fmt"

	"github.com/leapstack-labs/datavis/pkg/core"
)

// DefaultShapeKeyPrefix is the target prefix used for shape-key weights.
const DefaultShapeKeyPrefix = "shape_key"

// ColumnOptions controls BuildColumnSchedule.
type ColumnOptions struct {
	KeySpacing int `json:"key_spacing" yaml:"key_spacing"`
	StartFrame int `json:"start_frame" yaml:"start_frame"`
	// StartIndex and EndIndex select the tail columns to animate,
	// inclusive. A negative EndIndex means the last column.
	StartIndex int `json:"start_index" yaml:"start_index"`
	EndIndex   int `json:"end_index" yaml:"end_index"`
}

// Step is one entry of a column schedule: at Frame, shape key Active has
// weight 1 and every other key weight 0.
type Step struct {
	Frame   int       `json:"frame" yaml:"frame"`
	Active  int       `json:"active" yaml:"active"`
	Weights []float64 `json:"weights" yaml:"weights"`
}

// BuildColumnSchedule assigns frame startFrame + (i-startIndex)*keySpacing
// to every selected tail column i.
func BuildColumnSchedule(tailLength int, opts ColumnOptions) ([]Step, error) {
	if tailLength <= 0 {
		return nil, core.NewConfigurationError("tail_length", "must be positive, got %d", tailLength)
	}
	if opts.KeySpacing <= 0 {
		return nil, core.NewConfigurationError("key_spacing", "must be positive, got %d", opts.KeySpacing)
	}

	end := opts.EndIndex
	if end < 0 {
		end = tailLength - 1
	}
	if opts.StartIndex < 0 || opts.StartIndex > end || end >= tailLength {
		return nil, core.NewConfigurationError("index",
			"column range [%d, %d] is outside [0, %d]", opts.StartIndex, end, tailLength-1)
	}

	steps := make([]Step, 0, end-opts.StartIndex+1)
	for i := opts.StartIndex; i <= end; i++ {
		weights := make([]float64, tailLength)
		weights[i] = 1
		steps = append(steps, Step{
			Frame:   opts.StartFrame + (i-opts.StartIndex)*opts.KeySpacing,
			Active:  i,
			Weights: weights,
		})
	}
	return steps, nil
}

// ShapeKeyTarget returns the animation target of shape key i.
func ShapeKeyTarget(prefix string, i int) string {
	if prefix == "" {
		prefix = DefaultShapeKeyPrefix
	}
	return fmt.Sprintf("%s[%d].value", prefix, i)
}

// ColumnKeyframes expands a column schedule into host keyframes, one per
// shape key per step, all with constant interpolation.
func ColumnKeyframes(steps []Step, prefix string) []core.Keyframe {
	var out []core.Keyframe
	for _, s := range steps {
		for k, w := range s.Weights {
			out = append(out, core.Keyframe{
				Frame:         s.Frame,
				Target:        ShapeKeyTarget(prefix, k),
				Value:         w,
				Interpolation: core.InterpolationConstant,
			})
		}
	}
	return out
}

// TrackOptions controls TransformSchedule.
type TrackOptions struct {
	KeySpacing    int
	StartFrame    int
	Interpolation core.Interpolation
}

// TransformSchedule keys target to each of values in turn, keySpacing
// frames apart.
func TransformSchedule(target string, values []float64, opts TrackOptions) ([]core.Keyframe, error) {
	if opts.KeySpacing <= 0 {
		return nil, core.NewConfigurationError("key_spacing", "must be positive, got %d", opts.KeySpacing)
	}
	out := make([]core.Keyframe, len(values))
	for i, v := range values {
		out[i] = core.Keyframe{
			Frame:         opts.StartFrame + i*opts.KeySpacing,
			Target:        target,
			Value:         v,
			Interpolation: opts.Interpolation,
		}
	}
	return out, nil
}

// TweenOptions describes a two-key parameter transition.
type TweenOptions struct {
	Param         string             `json:"param" yaml:"param"`
	Start         float64            `json:"start" yaml:"start"`
	End           float64            `json:"end" yaml:"end"`
	StartFrame    int                `json:"start_frame" yaml:"start_frame"`
	Duration      int                `json:"duration" yaml:"duration"`
	Interpolation core.Interpolation `json:"interpolation" yaml:"interpolation"`
	// Reverse swaps the start and end values. Frames are unchanged.
	Reverse bool `json:"reverse" yaml:"reverse"`
}

// Tween returns the keyframes at StartFrame and StartFrame+Duration.
func Tween(opts TweenOptions) ([2]core.Keyframe, error) {
	var out [2]core.Keyframe
	if opts.Param == "" {
		return out, core.NewConfigurationError("param", "must not be empty")
	}
	if opts.Duration < 0 {
		return out, core.NewConfigurationError("duration", "must not be negative, got %d", opts.Duration)
	}
	switch opts.Interpolation {
	case core.InterpolationLinear, core.InterpolationCubic, core.InterpolationBounce:
	default:
		return out, core.NewConfigurationError("interpolation",
			"tweens support LINEAR, CUBIC or BOUNCE, got %s", opts.Interpolation)
	}

	from, to := opts.Start, opts.End
	if opts.Reverse {
		from, to = to, from
	}

	out[0] = core.Keyframe{
		Frame:         opts.StartFrame,
		Target:        opts.Param,
		Value:         from,
		Interpolation: opts.Interpolation,
	}
	out[1] = core.Keyframe{
		Frame:         opts.StartFrame + opts.Duration,
		Target:        opts.Param,
		Value:         to,
		Interpolation: opts.Interpolation,
	}
	return out, nil
}
