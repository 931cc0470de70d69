package core

import (
	"strings"
)

// =============================================================================
// Animation
// =============================================================================

// Interpolation is the keyframe interpolation tag handed to the host.
type Interpolation int

// Interpolation modes. Constant holds a value until the next keyframe and
// is used for discrete shape-key crossfades.
const (
	InterpolationLinear Interpolation = iota
	InterpolationCubic
	InterpolationBounce
	InterpolationConstant
)

// String returns the uppercase host tag for the interpolation.
func (i Interpolation) String() string {
	switch i {
	case InterpolationLinear:
		return "LINEAR"
	case InterpolationCubic:
		return "CUBIC"
	case InterpolationBounce:
		return "BOUNCE"
	case InterpolationConstant:
		return "CONSTANT"
	default:
		return "UNKNOWN"
	}
}

// ParseInterpolation converts a case-insensitive tag to an Interpolation.
// Returns InterpolationLinear and false if the tag is unknown.
func ParseInterpolation(s string) (Interpolation, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LINEAR", "":
		return InterpolationLinear, true
	case "CUBIC", "BEZIER":
		return InterpolationCubic, true
	case "BOUNCE":
		return InterpolationBounce, true
	case "CONSTANT":
		return InterpolationConstant, true
	default:
		return InterpolationLinear, false
	}
}

// MarshalText implements encoding.TextMarshaler.
func (i Interpolation) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *Interpolation) UnmarshalText(text []byte) error {
	v, ok := ParseInterpolation(string(text))
	if !ok {
		return NewConfigurationError("interpolation", "unknown interpolation %q", string(text))
	}
	*i = v
	return nil
}

// Keyframe is one entry of a schedule consumed by the host animation adapter.
// Target names the animated channel, e.g. "shape_key[2].value" or
// "primitive[4].location.z".
type Keyframe struct {
	Frame         int           `json:"frame" yaml:"frame"`
	Target        string        `json:"target" yaml:"target"`
	Value         any           `json:"value" yaml:"value"`
	Interpolation Interpolation `json:"interpolation" yaml:"interpolation"`
}
