// Package postgres provides a PostgreSQL table source.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx database/sql driver

	"github.com/leapstack-labs/datavis/pkg/source"
)

// Name is the registered source type.
const Name = "postgres"

func init() {
	source.Register(Name, func(logger *slog.Logger) source.Source { return New(logger) })
}

// Source implements source.Source for PostgreSQL.
type Source struct {
	source.BaseSQLSource
}

// New creates a new PostgreSQL source.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Source{BaseSQLSource: source.BaseSQLSource{Logger: logger}}
}

// Open establishes a connection to PostgreSQL.
func (s *Source) Open(ctx context.Context, cfg source.Config) error {
	if _, err := source.SelectQuery(cfg); err != nil {
		return err
	}

	s.Logger.Debug("connecting to postgres", slog.String("host", cfg.Host), slog.String("database", cfg.Database))

	db, err := sql.Open("pgx", buildDSN(cfg))
	if err != nil {
		return fmt.Errorf("failed to open postgres connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping postgres: %w", err)
	}

	s.DB = db
	s.Cfg = cfg
	return nil
}

// buildDSN constructs a key=value PostgreSQL connection string.
func buildDSN(cfg source.Config) string {
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}
	port := cfg.Port
	if port == 0 {
		port = 5432
	}
	sslmode := "disable"
	if mode, ok := cfg.Options["sslmode"]; ok {
		sslmode = mode
	}

	dsn := fmt.Sprintf("host=%s port=%d dbname=%s sslmode=%s",
		host, port, dsnValue(cfg.Database), dsnValue(sslmode))
	if cfg.Username != "" {
		dsn += " user=" + dsnValue(cfg.Username)
	}
	if cfg.Password != "" {
		dsn += " password=" + dsnValue(cfg.Password)
	}
	return dsn
}

// dsnValue quotes v when it is empty or holds spaces or quotes.
func dsnValue(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

var _ source.Source = (*Source)(nil)
