// Package source defines pluggable table sources for datavis.
//
// A Source reads tabular rows from a file or database and returns them as a
// dataset.RawTable, ready to be classified. Concrete sources live in
// pkg/sources/ subdirectories and register themselves from init().
package source

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/datavis/pkg/dataset"
)

// Config holds the settings of a table source. Which fields apply depends
// on the source type.
type Config struct {
	Type string `koanf:"type" json:"type" yaml:"type"`
	// Path is a data file or database file.
	Path string `koanf:"path" json:"path,omitempty" yaml:"path,omitempty"`
	// Query is run against database sources. Table is read whole when
	// Query is empty.
	Query string `koanf:"query" json:"query,omitempty" yaml:"query,omitempty"`
	Table string `koanf:"table" json:"table,omitempty" yaml:"table,omitempty"`

	Host     string `koanf:"host" json:"host,omitempty" yaml:"host,omitempty"`
	Port     int    `koanf:"port" json:"port,omitempty" yaml:"port,omitempty"`
	Database string `koanf:"database" json:"database,omitempty" yaml:"database,omitempty"`
	Username string `koanf:"username" json:"username,omitempty" yaml:"username,omitempty"`
	Password string `koanf:"password" json:"-" yaml:"-"`

	// Delimiter and Comment apply to delimited text. Empty Delimiter picks
	// tab for .tsv files and comma otherwise.
	Delimiter string `koanf:"delimiter" json:"delimiter,omitempty" yaml:"delimiter,omitempty"`
	Comment   string `koanf:"comment" json:"comment,omitempty" yaml:"comment,omitempty"`

	Options map[string]string `koanf:"options" json:"options,omitempty" yaml:"options,omitempty"`
	Params  map[string]any    `koanf:"params" json:"params,omitempty" yaml:"params,omitempty"`
}

// Source reads one table.
type Source interface {
	// Open prepares the source using cfg.
	Open(ctx context.Context, cfg Config) error

	// ReadTable returns every row of the table. Database sources put the
	// column names in the first row.
	ReadTable(ctx context.Context) (dataset.RawTable, error)

	// Close releases resources held by the source.
	Close() error
}

// InferType guesses the source type from a file extension.
func InferType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".duckdb", ".ddb", ".parquet":
		return "duckdb"
	case ".db", ".sqlite", ".sqlite3":
		return "sqlite"
	default:
		return "delimited"
	}
}

// ReadTable opens the source described by cfg, reads its table and closes it.
// An empty cfg.Type is inferred from cfg.Path.
func ReadTable(ctx context.Context, cfg Config, logger *slog.Logger) (dataset.RawTable, error) {
	if cfg.Type == "" && cfg.Path != "" {
		cfg.Type = InferType(cfg.Path)
	}

	src, err := NewSource(cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := src.Open(ctx, cfg); err != nil {
		return nil, fmt.Errorf("open %s source: %w", cfg.Type, err)
	}
	defer func() { _ = src.Close() }()

	raw, err := src.ReadTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("read %s source: %w", cfg.Type, err)
	}
	return raw, nil
}
