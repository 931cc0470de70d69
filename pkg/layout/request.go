package layout

import (
	"fmt"
	"strings"

	"cogentcore.org/core/math32/minmax"

	"github.com/leapstack-labs/datavis/pkg/axis"
	"github.com/leapstack-labs/datavis/pkg/color"
	"github.com/leapstack-labs/datavis/pkg/dataset"
	"github.com/leapstack-labs/datavis/pkg/rbf"
)

// ChartKind names a chart layout algorithm.
type ChartKind string

// Chart kinds.
const (
	KindBar     ChartKind = "bar"
	KindPie     ChartKind = "pie"
	KindLine    ChartKind = "line"
	KindPoint   ChartKind = "point"
	KindSurface ChartKind = "surface"
)

// Kinds lists every chart kind in display order.
func Kinds() []ChartKind {
	return []ChartKind{KindBar, KindLine, KindPie, KindPoint, KindSurface}
}

// ParseChartKind converts a case-insensitive chart kind name.
func ParseChartKind(s string) (ChartKind, error) {
	k := ChartKind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds() {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown chart kind %q (expected bar, line, pie, point or surface)", s)
}

// AxisOptions configures chart axes. Step and range fields are per data
// axis. A nil range uses the dataset range.
type AxisOptions struct {
	Create        bool              `json:"create" yaml:"create" koanf:"create"`
	AutoSteps     bool              `json:"auto_steps" yaml:"auto_steps" koanf:"auto_steps"`
	StepX         float64           `json:"step_x" yaml:"step_x" koanf:"step_x"`
	StepY         float64           `json:"step_y" yaml:"step_y" koanf:"step_y"`
	StepZ         float64           `json:"step_z" yaml:"step_z" koanf:"step_z"`
	RangeX        *minmax.F64       `json:"range_x,omitempty" yaml:"range_x,omitempty" koanf:"range_x"`
	RangeY        *minmax.F64       `json:"range_y,omitempty" yaml:"range_y,omitempty" koanf:"range_y"`
	RangeZ        *minmax.F64       `json:"range_z,omitempty" yaml:"range_z,omitempty" koanf:"range_z"`
	Thickness     float64           `json:"thickness" yaml:"thickness" koanf:"thickness"`
	TickHeight    float64           `json:"tick_height" yaml:"tick_height" koanf:"tick_height"`
	Padding       float64           `json:"padding" yaml:"padding" koanf:"padding"`
	TextSize      float64           `json:"text_size" yaml:"text_size" koanf:"text_size"`
	NumberFormat  axis.NumberFormat `json:"number_format" yaml:"number_format" koanf:"number_format"`
	DecimalPlaces int               `json:"decimal_places" yaml:"decimal_places" koanf:"decimal_places"`
	Position      axis.Position     `json:"position" yaml:"position" koanf:"position"`
}

// AnimationOptions configures keyframe generation.
type AnimationOptions struct {
	Animate    bool `json:"animate" yaml:"animate" koanf:"animate"`
	KeySpacing int  `json:"key_spacing" yaml:"key_spacing" koanf:"key_spacing"`
	StartFrame int  `json:"start_frame" yaml:"start_frame" koanf:"start_frame"`
}

// Common holds the options every chart kind shares.
type Common struct {
	Axis      AxisOptions      `json:"axis" yaml:"axis" koanf:"axis"`
	Color     color.Options    `json:"color" yaml:"color" koanf:"color"`
	Animation AnimationOptions `json:"animation" yaml:"animation" koanf:"animation"`
}

// DefaultCommon returns the shared defaults.
func DefaultCommon() Common {
	return Common{
		Axis: AxisOptions{
			Create:        true,
			AutoSteps:     true,
			Thickness:     0.01,
			TickHeight:    0.015,
			Padding:       0.1,
			TextSize:      0.05,
			DecimalPlaces: 1,
		},
		Color: color.Options{
			UseShader: true,
			Type:      color.Gradient,
			BaseColor: color.DefaultBaseColor,
		},
		Animation: AnimationOptions{
			KeySpacing: 20,
			StartFrame: 1,
		},
	}
}

// Request is a chart layout request. Each chart kind has its own request
// type carrying only the fields it needs.
type Request interface {
	Kind() ChartKind
	common() *Common
}

// BarRequest lays out one box per row.
type BarRequest struct {
	Common `yaml:",inline" koanf:",squash"`
	// Dim is 2 or 3. Zero uses the dataset dimensionality.
	Dim     int        `json:"dim" yaml:"dim" koanf:"dim"`
	BarSize [2]float64 `json:"bar_size" yaml:"bar_size" koanf:"bar_size"`
}

// PieRequest partitions a circle among categorical rows.
type PieRequest struct {
	Common      `yaml:",inline" koanf:",squash"`
	VertexCount int     `json:"vertex_count" yaml:"vertex_count" koanf:"vertex_count"`
	Radius      float64 `json:"radius" yaml:"radius" koanf:"radius"`
}

// BevelKind selects the cross-section of a line chart.
type BevelKind string

// Bevel kinds.
const (
	BevelNone    BevelKind = "none"
	BevelRounded BevelKind = "rounded"
	BevelSharp   BevelKind = "sharp"
)

// LineRequest draws a polyline through two-dimensional data.
type LineRequest struct {
	Common `yaml:",inline" koanf:",squash"`
	Bevel  BevelKind `json:"bevel" yaml:"bevel" koanf:"bevel"`
}

// PointRequest places one sphere per row.
type PointRequest struct {
	Common    `yaml:",inline" koanf:",squash"`
	Dim       int     `json:"dim" yaml:"dim" koanf:"dim"`
	PointSize float64 `json:"point_size" yaml:"point_size" koanf:"point_size"`
}

// SurfaceRequest interpolates a grid mesh through numerical 3D data.
type SurfaceRequest struct {
	Common  `yaml:",inline" koanf:",squash"`
	Density int        `json:"density" yaml:"density" koanf:"density"`
	Kernel  rbf.Kernel `json:"kernel" yaml:"kernel" koanf:"kernel"`
	Epsilon float64    `json:"epsilon" yaml:"epsilon" koanf:"epsilon"`
	Smooth  float64    `json:"smooth" yaml:"smooth" koanf:"smooth"`
	// Fitter overrides the interpolation routine. Nil uses rbf.Solver.
	Fitter rbf.Fitter `json:"-" yaml:"-" koanf:"-"`
}

func (r *BarRequest) Kind() ChartKind     { return KindBar }
func (r *PieRequest) Kind() ChartKind     { return KindPie }
func (r *LineRequest) Kind() ChartKind    { return KindLine }
func (r *PointRequest) Kind() ChartKind   { return KindPoint }
func (r *SurfaceRequest) Kind() ChartKind { return KindSurface }

func (r *BarRequest) common() *Common     { return &r.Common }
func (r *PieRequest) common() *Common     { return &r.Common }
func (r *LineRequest) common() *Common    { return &r.Common }
func (r *PointRequest) common() *Common   { return &r.Common }
func (r *SurfaceRequest) common() *Common { return &r.Common }

// NewRequest returns a request of kind populated with defaults, ready to be
// decoded into.
func NewRequest(kind ChartKind) (Request, error) {
	c := DefaultCommon()
	switch kind {
	case KindBar:
		return &BarRequest{Common: c, BarSize: [2]float64{0.05, 0.05}}, nil
	case KindPie:
		return &PieRequest{Common: c, VertexCount: 64, Radius: 1}, nil
	case KindLine:
		return &LineRequest{Common: c, Bevel: BevelRounded}, nil
	case KindPoint:
		return &PointRequest{Common: c, PointSize: 0.02}, nil
	case KindSurface:
		return &SurfaceRequest{Common: c, Density: 20, Kernel: rbf.Multiquadric}, nil
	default:
		return nil, fmt.Errorf("unknown chart kind %q", kind)
	}
}

// Available reports whether a chart of kind can be laid out for ds.
// Invalid datasets support no chart at all.
func Available(ds *dataset.Dataset, kind ChartKind) bool {
	if !ds.Valid() {
		return false
	}
	switch kind {
	case KindBar, KindPoint:
		return true
	case KindPie:
		return ds.Kind() == dataset.KindCategorical
	case KindLine:
		return ds.Dimensions() == 2
	case KindSurface:
		return ds.Kind() == dataset.KindNumerical && ds.Dimensions() == 3
	default:
		return false
	}
}

// AvailableKinds lists the chart kinds ds supports.
func AvailableKinds(ds *dataset.Dataset) []ChartKind {
	var out []ChartKind
	for _, k := range Kinds() {
		if Available(ds, k) {
			out = append(out, k)
		}
	}
	return out
}
