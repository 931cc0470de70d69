// Package color maps primitive values to colors.
package color

import (
	"fmt"
	"math"
	"strings"

	"cogentcore.org/core/math32/minmax"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/leapstack-labs/datavis/pkg/core"
)

// DefaultBaseColor is used when no base color is configured.
const DefaultBaseColor = "#1a6eb5"

const (
	// tintAmount is how far the gradient's low end is blended towards white.
	tintAmount = 0.8
	// goldenAngle spreads random hues evenly around the color wheel.
	goldenAngle = 137.50776405
)

// Type selects the color mapping.
type Type int

// Color types.
const (
	Gradient Type = iota
	Constant
	Random
)

// String returns the config name of the color type.
func (t Type) String() string {
	switch t {
	case Gradient:
		return "gradient"
	case Constant:
		return "constant"
	case Random:
		return "random"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "", "gradient":
		*t = Gradient
	case "constant":
		*t = Constant
	case "random":
		*t = Random
	default:
		return fmt.Errorf("unknown color type %q (expected gradient, constant or random)", string(text))
	}
	return nil
}

// Options configure coloring of a chart.
type Options struct {
	UseShader bool   `json:"use_shader" yaml:"use_shader" koanf:"use_shader"`
	Type      Type   `json:"type" yaml:"type" koanf:"type"`
	BaseColor string `json:"base_color" yaml:"base_color" koanf:"base_color"`
}

// Mapper returns the color of primitive index carrying value within r.
type Mapper interface {
	Color(index int, value float64, r minmax.F64) colorful.Color
}

// GradientMapper blends from a light tint of Base at the range minimum to
// Base at the maximum, in Lab space.
type GradientMapper struct {
	Base colorful.Color
}

// Color implements Mapper.
func (g GradientMapper) Color(_ int, value float64, r minmax.F64) colorful.Color {
	t := 1.0
	if r.Max != r.Min {
		t = r.ClipNormValue(value)
	}
	if math.IsNaN(t) {
		t = 0
	}
	low := g.Base.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, tintAmount)
	return low.BlendLab(g.Base, t).Clamped()
}

// ConstantMapper returns Base for every primitive.
type ConstantMapper struct {
	Base colorful.Color
}

// Color implements Mapper.
func (c ConstantMapper) Color(int, float64, minmax.F64) colorful.Color {
	return c.Base
}

// RandomMapper returns a pseudo-random color per primitive index. The same
// index always yields the same color.
type RandomMapper struct{}

// Color implements Mapper.
func (RandomMapper) Color(index int, _ float64, _ minmax.F64) colorful.Color {
	hue := math.Mod(float64(index)*goldenAngle, 360)
	return colorful.Hsv(hue, 0.65, 0.85)
}

// New returns the Mapper for opts.
func New(opts Options) (Mapper, error) {
	base := opts.BaseColor
	if base == "" {
		base = DefaultBaseColor
	}
	c, err := colorful.Hex(base)
	if err != nil {
		return nil, core.NewConfigurationError("base_color", "invalid hex color %q", opts.BaseColor)
	}

	switch opts.Type {
	case Gradient:
		return GradientMapper{Base: c}, nil
	case Constant:
		return ConstantMapper{Base: c}, nil
	case Random:
		return RandomMapper{}, nil
	default:
		return nil, core.NewConfigurationError("type", "unknown color type %d", int(opts.Type))
	}
}

// Apply fills the Color of every primitive in spec from its MaterialValue
// and the spec's value range. It does nothing unless UseShader is set.
func Apply(spec *core.ChartLayoutSpec, opts Options) error {
	if !opts.UseShader {
		return nil
	}
	m, err := New(opts)
	if err != nil {
		return err
	}
	r := minmax.F64{Min: spec.ValueRange[0], Max: spec.ValueRange[1]}
	for i := range spec.Primitives {
		spec.Primitives[i].Color = m.Color(i, spec.Primitives[i].MaterialValue, r).Hex()
	}
	return nil
}
