// Package core defines the shared language of the datavis system.
//
// This package contains:
//   - Geometry descriptors handed to host adapters (ChartLayoutSpec, Primitive, Tick, AxisSpec)
//   - Animation descriptors (Keyframe, Interpolation, ShapeKey)
//   - Shared enums (Direction)
//   - The error taxonomy (InvalidDataError, ConfigurationError, DegradedOutputWarning)
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
