package core

import (
	"errors"
	"fmt"
)

// =============================================================================
// Error taxonomy
// =============================================================================

// InvalidDataError reports data that cannot be laid out: inconsistent row
// shapes, non-positive pie values or unparseable numeric cells.
// Row and Column are zero-based indexes into the raw table, or -1 when the
// problem is not tied to a single cell.
type InvalidDataError struct {
	Row    int
	Column int
	Reason string
}

// NewInvalidDataError creates an InvalidDataError that is not tied to a cell.
func NewInvalidDataError(format string, args ...any) *InvalidDataError {
	return &InvalidDataError{Row: -1, Column: -1, Reason: fmt.Sprintf(format, args...)}
}

func (e *InvalidDataError) Error() string {
	switch {
	case e.Row >= 0 && e.Column >= 0:
		return fmt.Sprintf("invalid data at row %d, column %d: %s", e.Row, e.Column, e.Reason)
	case e.Row >= 0:
		return fmt.Sprintf("invalid data at row %d: %s", e.Row, e.Reason)
	default:
		return "invalid data: " + e.Reason
	}
}

// ConfigurationError reports a call-site bug: an invalid dimension count,
// an unknown enum value or a zero step. It names the offending field.
type ConfigurationError struct {
	Field  string
	Reason string
}

// NewConfigurationError creates a ConfigurationError for field.
func NewConfigurationError(field, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return "configuration error: " + e.Reason
	}
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

// DegradedOutputWarning describes a recoverable condition. The output is
// still produced but is less faithful than requested (skipped pie entries,
// rows filtered by axis ranges, degenerate normalization ranges).
type DegradedOutputWarning struct {
	Reason string `json:"reason" yaml:"reason"`
}

// Warnf creates a DegradedOutputWarning.
func Warnf(format string, args ...any) DegradedOutputWarning {
	return DegradedOutputWarning{Reason: fmt.Sprintf(format, args...)}
}

func (w DegradedOutputWarning) Error() string {
	return "degraded output: " + w.Reason
}

// IsInvalidData reports whether err wraps an *InvalidDataError.
func IsInvalidData(err error) bool {
	var target *InvalidDataError
	return errors.As(err, &target)
}

// IsConfiguration reports whether err wraps a *ConfigurationError.
func IsConfiguration(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}
