// Package state archives finished chart layouts in SQLite so clients can
// fetch them again by ID.
package state

import (
	"errors"
	"time"

	"github.com/leapstack-labs/datavis/pkg/core"
)

// ErrNotFound is returned when no layout has the requested ID.
var ErrNotFound = errors.New("layout not found")

// Layout is one archived chart layout. Listings leave Spec and Warnings
// empty.
type Layout struct {
	ID             string                       `json:"id"`
	Kind           string                       `json:"kind"`
	DatasetVersion uint64                       `json:"dataset_version"`
	CreatedAt      time.Time                    `json:"created_at"`
	Spec           *core.ChartLayoutSpec        `json:"spec,omitempty"`
	Warnings       []core.DegradedOutputWarning `json:"warnings,omitempty"`
}
