package axis

import (
	"fmt"
	"strconv"
	"strings"
)

// NumberFormat selects how numeric tick labels are printed.
type NumberFormat int

// Number formats.
const (
	FormatDecimal NumberFormat = iota
	FormatScientific
)

// String returns the config name of the format.
func (f NumberFormat) String() string {
	switch f {
	case FormatDecimal:
		return "decimal"
	case FormatScientific:
		return "scientific"
	default:
		return fmt.Sprintf("NumberFormat(%d)", int(f))
	}
}

// Format prints v with places digits after the decimal point.
func (f NumberFormat) Format(v float64, places int) string {
	if places < 0 {
		places = 0
	}
	if f == FormatScientific {
		return strconv.FormatFloat(v, 'e', places, 64)
	}
	return strconv.FormatFloat(v, 'f', places, 64)
}

// MarshalText implements encoding.TextMarshaler.
func (f NumberFormat) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *NumberFormat) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "", "decimal":
		*f = FormatDecimal
	case "scientific":
		*f = FormatScientific
	default:
		return fmt.Errorf("unknown number format %q (expected decimal or scientific)", string(text))
	}
	return nil
}

// Position places the axis container relative to the chart.
type Position int

// Axis positions.
const (
	PositionFront Position = iota
	PositionBack
	PositionRight
)

// String returns the config name of the position.
func (p Position) String() string {
	switch p {
	case PositionFront:
		return "front"
	case PositionBack:
		return "back"
	case PositionRight:
		return "right"
	default:
		return fmt.Sprintf("Position(%d)", int(p))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Position) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Position) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "", "front":
		*p = PositionFront
	case "back":
		*p = PositionBack
	case "right":
		*p = PositionRight
	default:
		return fmt.Errorf("unknown axis position %q (expected front, back or right)", string(text))
	}
	return nil
}
