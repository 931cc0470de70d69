// Package duckdb provides a DuckDB table source.
//
// The source reads either a query or table from a DuckDB database, or a
// CSV/Parquet/JSON file through an in-memory database. Import this package
// with a blank identifier to register it:
//
//	import _ "github.com/leapstack-labs/datavis/pkg/sources/duckdb"
package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver

	"github.com/leapstack-labs/datavis/pkg/dataset"
	"github.com/leapstack-labs/datavis/pkg/source"
)

// Name is the registered source type.
const Name = "duckdb"

var settingName = regexp.MustCompile(`^[a-z_]+$`)

func init() {
	source.Register(Name, func(logger *slog.Logger) source.Source { return New(logger) })
}

// Source implements source.Source for DuckDB.
type Source struct {
	source.BaseSQLSource
	query string
}

// New creates a DuckDB source. If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Source{BaseSQLSource: source.BaseSQLSource{Logger: logger}}
}

// Open connects to DuckDB. Data files are opened through an in-memory
// database; anything else is treated as a database file (":memory:" when
// Path is empty).
func (s *Source) Open(ctx context.Context, cfg source.Config) error {
	params, err := parseParams(cfg.Params)
	if err != nil {
		return err
	}

	dbPath := cfg.Path
	fileQuery := ""
	if isDataFile(cfg.Path) {
		dbPath = ""
		if cfg.Query == "" {
			fileQuery, err = readFileQuery(cfg.Path, params.ReadOptions)
			if err != nil {
				return err
			}
		}
	}

	query := cfg.Query
	if query == "" {
		query = fileQuery
	}
	if query == "" {
		if query, err = source.SelectQuery(cfg); err != nil {
			return err
		}
	}

	db, err := sql.Open("duckdb", dbPath)
	if err != nil {
		return fmt.Errorf("failed to open duckdb connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping duckdb: %w", err)
	}

	s.DB = db
	s.Cfg = cfg
	s.query = query

	if err := s.applyParams(ctx, params); err != nil {
		_ = s.Close()
		s.DB = nil
		return err
	}
	return nil
}

// ReadTable implements source.Source.
func (s *Source) ReadTable(ctx context.Context) (dataset.RawTable, error) {
	return s.ReadQuery(ctx, s.query)
}

func (s *Source) applyParams(ctx context.Context, p Params) error {
	for _, ext := range p.Extensions {
		if !settingName.MatchString(ext) {
			return fmt.Errorf("invalid extension name %q", ext)
		}
		s.Logger.Debug("loading duckdb extension", slog.String("extension", ext))
		if _, err := s.DB.ExecContext(ctx, fmt.Sprintf("INSTALL %s; LOAD %s;", ext, ext)); err != nil {
			return fmt.Errorf("failed to load extension %s: %w", ext, err)
		}
	}

	keys := make([]string, 0, len(p.Settings))
	for k := range p.Settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !settingName.MatchString(k) {
			return fmt.Errorf("invalid setting name %q", k)
		}
		if _, err := s.DB.ExecContext(ctx, fmt.Sprintf("SET %s = %s", k, quote(p.Settings[k]))); err != nil {
			return fmt.Errorf("failed to apply setting %s: %w", k, err)
		}
	}
	return nil
}

// isDataFile reports whether path names a file DuckDB reads as a table.
func isDataFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv", ".txt", ".parquet", ".json", ".ndjson":
		return true
	}
	return false
}

// readFileQuery builds the SELECT that reads a data file.
func readFileQuery(path string, opts map[string]string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	fn := "read_csv_auto"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet":
		fn = "read_parquet"
	case ".json", ".ndjson":
		fn = "read_json_auto"
	}

	args := []string{quote(abs)}
	keys := make([]string, 0, len(opts))
	for k := range opts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !settingName.MatchString(k) {
			return "", fmt.Errorf("invalid read option %q", k)
		}
		args = append(args, k+"="+opts[k])
	}
	return fmt.Sprintf("SELECT * FROM %s(%s)", fn, strings.Join(args, ", ")), nil
}

// quote renders s as a SQL string literal.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

var _ source.Source = (*Source)(nil)
