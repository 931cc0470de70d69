package config

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/leapstack-labs/datavis/internal/cli/output"
	"github.com/leapstack-labs/datavis/pkg/core"
	"github.com/leapstack-labs/datavis/pkg/dataset"
	"github.com/leapstack-labs/datavis/pkg/layout"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.OutputFormat != "" && !slices.Contains(output.Modes(), strings.ToLower(c.OutputFormat)) {
		return core.NewConfigurationError("output", "unknown output format %q (expected %s)",
			c.OutputFormat, strings.Join(output.Modes(), ", "))
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return core.NewConfigurationError("log_level", "unknown log level %q", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return core.NewConfigurationError("log_format", "unknown log format %q (expected text or json)", c.LogFormat)
	}

	if c.Kind == dataset.KindInvalid {
		return core.NewConfigurationError("kind", "kind cannot be forced to invalid")
	}
	if c.Server.ShutdownTimeout < 0 {
		return core.NewConfigurationError("server.shutdown_timeout", "must not be negative")
	}
	if c.Server.ArchiveKeep < 0 {
		return core.NewConfigurationError("server.archive_keep", "must not be negative")
	}

	// Decode every chart kind once so typos surface at load time.
	for _, kind := range layout.Kinds() {
		if _, err := c.Request(kind); err != nil {
			return err
		}
	}
	for key := range c.Chart {
		if !isChartKey(key) {
			return core.NewConfigurationError("chart."+key, "unknown chart option")
		}
	}
	return nil
}

func isChartKey(key string) bool {
	switch key {
	case "axis", "color", "animation":
		return true
	}
	_, err := layout.ParseChartKind(key)
	return err == nil
}
