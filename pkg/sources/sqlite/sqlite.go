// Package sqlite provides a SQLite table source backed by the pure Go
// modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite" // sqlite driver

	"github.com/leapstack-labs/datavis/pkg/source"
)

// Name is the registered source type.
const Name = "sqlite"

func init() {
	source.Register(Name, func(logger *slog.Logger) source.Source { return New(logger) })
}

// Source implements source.Source for SQLite.
type Source struct {
	source.BaseSQLSource
}

// New creates a SQLite source. If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Source{BaseSQLSource: source.BaseSQLSource{Logger: logger}}
}

// Open opens the database file at cfg.Path read-only.
func (s *Source) Open(ctx context.Context, cfg source.Config) error {
	if cfg.Path == "" {
		return fmt.Errorf("sqlite source requires a path")
	}
	if _, err := source.SelectQuery(cfg); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", "file:"+cfg.Path+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	s.DB = db
	s.Cfg = cfg
	return nil
}

var _ source.Source = (*Source)(nil)
