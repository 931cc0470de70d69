package core

import (
	"fmt"
	"strings"
)

// =============================================================================
// Direction
// =============================================================================

// Direction is a display-space axis direction.
type Direction int

// Display directions.
const (
	DirectionX Direction = iota
	DirectionY
	DirectionZ
)

// String returns the lowercase axis name.
func (d Direction) String() string {
	switch d {
	case DirectionX:
		return "x"
	case DirectionY:
		return "y"
	case DirectionZ:
		return "z"
	default:
		return "unknown"
	}
}

// Valid reports whether d is one of the three display directions.
func (d Direction) Valid() bool {
	return d >= DirectionX && d <= DirectionZ
}

// Unit returns the unit vector pointing along d.
func (d Direction) Unit() Vec3 {
	var v Vec3
	if d.Valid() {
		v[d] = 1
	}
	return v
}

// Perpendicular returns the direction tick labels are offset along and
// rotated about: Y for the X and Z axes, X for the Y axis.
func (d Direction) Perpendicular() Direction {
	if d == DirectionY {
		return DirectionX
	}
	return DirectionY
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid direction %d", int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "x":
		*d = DirectionX
	case "y":
		*d = DirectionY
	case "z":
		*d = DirectionZ
	default:
		return NewConfigurationError("direction", "unknown direction %q", string(text))
	}
	return nil
}
