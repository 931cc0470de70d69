package layout

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/datavis/pkg/core"
	"github.com/leapstack-labs/datavis/pkg/dataset"
)

// Status is the outcome of a chart creation.
type Status int

// Chart creation outcomes.
const (
	StatusFinished Status = iota
	StatusCancelled
)

// String returns the uppercase status tag.
func (s Status) String() string {
	if s == StatusFinished {
		return "FINISHED"
	}
	return "CANCELLED"
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Result is what a chart creation hands back to its caller.
type Result struct {
	Status   Status                       `json:"status" yaml:"status"`
	Reason   string                       `json:"reason,omitempty" yaml:"reason,omitempty"`
	Spec     *core.ChartLayoutSpec        `json:"spec,omitempty" yaml:"spec,omitempty"`
	Warnings []core.DegradedOutputWarning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	// Err is the underlying failure of a cancelled result.
	Err error `json:"-" yaml:"-"`
}

// Finished reports whether the chart was created.
func (r Result) Finished() bool { return r.Status == StatusFinished }

// Engine is the chart creation boundary: every failure becomes a cancelled
// result with a readable reason.
type Engine struct {
	Logger *slog.Logger
}

// NewEngine creates an Engine. A nil logger discards output.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{Logger: logger}
}

// Create lays out req for ds.
func (e *Engine) Create(ctx context.Context, ds *dataset.Dataset, req Request) (res Result) {
	logger := e.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	kind := "unknown"
	if req != nil {
		kind = string(req.Kind())
	}

	defer func() {
		if p := recover(); p != nil {
			err := fmt.Errorf("layout panicked: %v", p)
			logger.Error("chart creation failed", "kind", kind, "error", err)
			res = Result{Status: StatusCancelled, Reason: err.Error(), Err: err}
		}
	}()

	spec, warns, err := Layout(ctx, ds, req)
	for _, w := range warns {
		logger.Warn("degraded chart output", "kind", kind, "reason", w.Reason)
	}
	if err != nil {
		logger.Info("chart creation cancelled", "kind", kind, "reason", err.Error())
		return Result{Status: StatusCancelled, Reason: err.Error(), Warnings: warns, Err: err}
	}

	logger.Debug("chart created",
		"kind", kind,
		"id", spec.ID,
		"primitives", len(spec.Primitives),
		"vertices", len(spec.Vertices),
		"keyframes", len(spec.Keyframes),
	)
	return Result{Status: StatusFinished, Spec: spec, Warnings: warns}
}
