package source

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"time"

	"github.com/leapstack-labs/datavis/pkg/dataset"
)

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// BaseSQLSource provides common database/sql functionality for sources.
// Embed it in concrete sources to get Close, IsConnected and ReadQuery.
type BaseSQLSource struct {
	DB     *sql.DB
	Cfg    Config
	Logger *slog.Logger
}

// Close closes the database connection.
func (b *BaseSQLSource) Close() error {
	if b.DB != nil {
		if b.Logger != nil {
			b.Logger.Debug("closing database connection")
		}
		return b.DB.Close()
	}
	return nil
}

// IsConnected returns true if the database connection is established.
func (b *BaseSQLSource) IsConnected() bool {
	return b.DB != nil
}

// ReadTable runs the configured query, or reads the configured table.
func (b *BaseSQLSource) ReadTable(ctx context.Context) (dataset.RawTable, error) {
	query, err := SelectQuery(b.Cfg)
	if err != nil {
		return nil, err
	}
	return b.ReadQuery(ctx, query)
}

// ReadQuery runs query and converts the result set to a RawTable whose first
// row holds the column names.
func (b *BaseSQLSource) ReadQuery(ctx context.Context, query string, args ...any) (dataset.RawTable, error) {
	if !b.IsConnected() {
		return nil, fmt.Errorf("database connection not established")
	}
	if b.Logger != nil {
		b.Logger.Debug("reading table", slog.String("query", query))
	}

	rows, err := b.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	table := dataset.RawTable{append([]string(nil), cols...)}
	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row %d: %w", len(table), err)
		}
		row := make([]string, len(cols))
		for i, v := range values {
			row[i] = FormatCell(v)
		}
		table = append(table, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return table, nil
}

// SelectQuery returns cfg.Query, or a SELECT of the whole cfg.Table.
func SelectQuery(cfg Config) (string, error) {
	if cfg.Query != "" {
		return cfg.Query, nil
	}
	if cfg.Table == "" {
		return "", fmt.Errorf("either query or table must be set")
	}
	if !identPattern.MatchString(cfg.Table) {
		return "", fmt.Errorf("invalid table name %q", cfg.Table)
	}
	return "SELECT * FROM " + cfg.Table, nil
}

// FormatCell renders a scanned database value as text.
func FormatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(x)
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(time.RFC3339)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
