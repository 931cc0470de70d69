// Package config provides configuration management for the datavis CLI.
//
// Configuration is layered with koanf: built-in defaults, then datavis.yaml,
// then DATAVIS_ environment variables, then explicitly set command-line
// flags.
package config

import (
	"time"

	"github.com/leapstack-labs/datavis/pkg/dataset"
	"github.com/leapstack-labs/datavis/pkg/source"
)

// ServerConfig holds configuration for the HTTP server.
type ServerConfig struct {
	Addr            string        `koanf:"addr" json:"addr" yaml:"addr"`
	Watch           bool          `koanf:"watch" json:"watch" yaml:"watch"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" json:"shutdown_timeout" yaml:"shutdown_timeout"`
	// Archive is the SQLite file finished layouts are kept in. Empty
	// disables the archive.
	Archive     string `koanf:"archive" json:"archive,omitempty" yaml:"archive,omitempty"`
	ArchiveKeep int    `koanf:"archive_keep" json:"archive_keep" yaml:"archive_keep"`
}

// Config holds all CLI configuration options.
type Config struct {
	Source source.Config  `koanf:"source" json:"source" yaml:"source"`
	Kind   dataset.Kind   `koanf:"kind" json:"kind" yaml:"kind"`
	Labels dataset.Labels `koanf:"labels" json:"labels" yaml:"labels"`
	// Chart holds the raw chart options: shared axis, color and animation
	// sections plus one section per chart kind. Use Request to decode them.
	Chart  map[string]any `koanf:"chart" json:"chart,omitempty" yaml:"chart,omitempty"`
	Server ServerConfig   `koanf:"server" json:"server" yaml:"server"`

	OutputFormat string `koanf:"output" json:"output" yaml:"output"`
	LogLevel     string `koanf:"log_level" json:"log_level" yaml:"log_level"`
	LogFormat    string `koanf:"log_format" json:"log_format" yaml:"log_format"`
	Verbose      bool   `koanf:"verbose" json:"verbose" yaml:"verbose"`

	// ProjectRoot is the directory relative source paths resolve against.
	ProjectRoot string `koanf:"-" json:"-" yaml:"-"`
}

// Default configuration values.
const (
	DefaultOutput          = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultLogLevel        = "warn"
	DefaultLogFormat       = "text"
	DefaultServerAddr      = "127.0.0.1:8765"
	DefaultShutdownTimeout = 5 * time.Second
	DefaultArchiveKeep     = 100
)

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() *Config {
	return &Config{
		Kind:         dataset.KindAuto,
		OutputFormat: DefaultOutput,
		LogLevel:     DefaultLogLevel,
		LogFormat:    DefaultLogFormat,
		Server: ServerConfig{
			Addr:            DefaultServerAddr,
			Watch:           true,
			ShutdownTimeout: DefaultShutdownTimeout,
			ArchiveKeep:     DefaultArchiveKeep,
		},
	}
}

// ConfigFileNames are searched, in order, in the project root.
var ConfigFileNames = []string{"datavis.yaml", "datavis.yml"}

// LoadOptions converts the dataset section into dataset load options.
func (c *Config) LoadOptions() dataset.Options {
	return dataset.Options{Kind: c.Kind, Labels: c.Labels}
}
