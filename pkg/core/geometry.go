package core

import "math"

// =============================================================================
// Geometry descriptors
// =============================================================================

// Vec3 is a position, rotation or scale triple in display space.
type Vec3 [3]float64

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Edge connects two vertex indexes.
type Edge [2]int

// Face is an ordered list of vertex indexes.
type Face []int

// Transform places a primitive relative to its parent.
// Rotation is expressed as Euler angles in degrees.
type Transform struct {
	Location Vec3 `json:"location" yaml:"location"`
	Rotation Vec3 `json:"rotation" yaml:"rotation"`
	Scale    Vec3 `json:"scale" yaml:"scale"`
}

// IdentityTransform returns a transform with unit scale.
func IdentityTransform() Transform {
	return Transform{Scale: Vec3{1, 1, 1}}
}

// PrimitiveKind names the host shape a primitive is realized as.
type PrimitiveKind string

// Primitive kinds.
const (
	PrimitiveBox    PrimitiveKind = "box"
	PrimitiveWedge  PrimitiveKind = "wedge"
	PrimitiveSphere PrimitiveKind = "sphere"
	PrimitiveCurve  PrimitiveKind = "curve"
	PrimitiveMesh   PrimitiveKind = "mesh"
)

// Primitive is one realizable chart element. MaterialValue is the raw data
// value handed to the color service together with ChartLayoutSpec.ValueRange.
type Primitive struct {
	Kind          PrimitiveKind `json:"kind" yaml:"kind"`
	Name          string        `json:"name,omitempty" yaml:"name,omitempty"`
	Transform     Transform     `json:"transform" yaml:"transform"`
	MaterialValue float64       `json:"material_value" yaml:"material_value"`
	Color         string        `json:"color,omitempty" yaml:"color,omitempty"`

	// Faces indexes ChartLayoutSpec.Faces for primitives built from the shared mesh.
	Faces      []int `json:"faces,omitempty" yaml:"faces,omitempty"`
	SliceStart int   `json:"slice_start,omitempty" yaml:"slice_start,omitempty"`
	SliceCount int   `json:"slice_count,omitempty" yaml:"slice_count,omitempty"`
}

// RotationHint asks the host to rotate a label about an axis. It is a layout
// directive, not a render instruction.
type RotationHint struct {
	Axis    Direction `json:"axis" yaml:"axis"`
	Degrees float64   `json:"degrees" yaml:"degrees"`
}

// Tick is one axis tick mark with its label.
type Tick struct {
	Axis     Direction     `json:"axis" yaml:"axis"`
	Value    float64       `json:"value" yaml:"value"`
	Position Vec3          `json:"position" yaml:"position"`
	Label    string        `json:"label" yaml:"label"`
	Rotation *RotationHint `json:"rotation,omitempty" yaml:"rotation,omitempty"`
}

// Segment is a straight line between two points.
type Segment struct {
	Start Vec3 `json:"start" yaml:"start"`
	End   Vec3 `json:"end" yaml:"end"`
}

// Length returns the euclidean length of the segment.
func (s Segment) Length() float64 {
	var sum float64
	for i := range s.Start {
		d := s.End[i] - s.Start[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// AxisSpec is the declarative geometry of one chart axis.
type AxisSpec struct {
	Direction  Direction `json:"direction" yaml:"direction"`
	DataIndex  int       `json:"data_index" yaml:"data_index"`
	Container  Transform `json:"container" yaml:"container"`
	Line       Segment   `json:"line" yaml:"line"`
	Thickness  float64   `json:"thickness" yaml:"thickness"`
	TickHeight float64   `json:"tick_height" yaml:"tick_height"`
	TextSize   float64   `json:"text_size" yaml:"text_size"`
	Ticks      []Tick    `json:"ticks" yaml:"ticks"`
	Title      *Label    `json:"title,omitempty" yaml:"title,omitempty"`

	// TickLabelCorrection asks the host to correct tick label placement
	// vertically, which the RIGHT position requires.
	TickLabelCorrection bool `json:"tick_label_correction,omitempty" yaml:"tick_label_correction,omitempty"`
}

// Label is free-standing text placed in the chart.
type Label struct {
	Text     string        `json:"text" yaml:"text"`
	Position Vec3          `json:"position" yaml:"position"`
	Rotation *RotationHint `json:"rotation,omitempty" yaml:"rotation,omitempty"`
}

// Sweep describes a cross-section swept along a curve (a bevel profile).
type Sweep struct {
	Segments int     `json:"segments" yaml:"segments"`
	Offset   float64 `json:"offset" yaml:"offset"`
	Profile  float64 `json:"profile" yaml:"profile"`
}

// ShapeKey is an alternate vertex-position set for the shared mesh.
type ShapeKey struct {
	Name     string `json:"name" yaml:"name"`
	Vertices []Vec3 `json:"vertices" yaml:"vertices"`
}

// ChartLayoutSpec is the complete declarative output of a chart layout:
// everything a host adapter needs to realize the chart.
type ChartLayoutSpec struct {
	ID         string      `json:"id" yaml:"id"`
	Kind       string      `json:"kind" yaml:"kind"`
	Dimensions int         `json:"dimensions" yaml:"dimensions"`
	Vertices   []Vec3      `json:"vertices,omitempty" yaml:"vertices,omitempty"`
	Edges      []Edge      `json:"edges,omitempty" yaml:"edges,omitempty"`
	Faces      []Face      `json:"faces,omitempty" yaml:"faces,omitempty"`
	Primitives []Primitive `json:"primitives,omitempty" yaml:"primitives,omitempty"`
	Axes       []AxisSpec  `json:"axes,omitempty" yaml:"axes,omitempty"`
	Ticks      []Tick      `json:"ticks,omitempty" yaml:"ticks,omitempty"`
	Labels     []Label     `json:"labels,omitempty" yaml:"labels,omitempty"`
	Sweep      *Sweep      `json:"sweep,omitempty" yaml:"sweep,omitempty"`
	ShapeKeys  []ShapeKey  `json:"shape_keys,omitempty" yaml:"shape_keys,omitempty"`
	Keyframes  []Keyframe  `json:"keyframes,omitempty" yaml:"keyframes,omitempty"`

	// ValueRange is the [min, max] range MaterialValue is mapped against.
	ValueRange [2]float64 `json:"value_range" yaml:"value_range"`
}
