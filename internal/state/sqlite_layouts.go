package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// SaveLayout archives a finished layout. A zero CreatedAt is set to now.
func (s *SQLiteStore) SaveLayout(ctx context.Context, l *Layout) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	if l == nil || l.Spec == nil {
		return errors.New("layout has no spec")
	}
	if l.ID == "" {
		l.ID = l.Spec.ID
	}
	if l.ID == "" {
		return errors.New("layout has no id")
	}
	if l.Kind == "" {
		l.Kind = l.Spec.Kind
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}

	// Serialize complex fields to JSON
	spec, err := json.Marshal(l.Spec)
	if err != nil {
		return fmt.Errorf("failed to marshal spec: %w", err)
	}
	warnings := []byte("[]")
	if len(l.Warnings) > 0 {
		if warnings, err = json.Marshal(l.Warnings); err != nil {
			return fmt.Errorf("failed to marshal warnings: %w", err)
		}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO layouts (id, kind, dataset_version, created_at, spec, warnings)
		VALUES (?, ?, ?, ?, ?, ?)
	`, l.ID, l.Kind, int64(l.DatasetVersion), l.CreatedAt.Format(time.RFC3339Nano), string(spec), string(warnings))
	if err != nil {
		return fmt.Errorf("failed to save layout %s: %w", l.ID, err)
	}
	return nil
}

// GetLayout retrieves an archived layout by ID.
func (s *SQLiteStore) GetLayout(ctx context.Context, id string) (*Layout, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	var (
		l                       Layout
		version                 int64
		createdAt, spec, warned string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, kind, dataset_version, created_at, spec, warnings
		FROM layouts WHERE id = ?
	`, id).Scan(&l.ID, &l.Kind, &version, &createdAt, &spec, &warned)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get layout %s: %w", id, err)
	}

	l.DatasetVersion = uint64(version)
	if l.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("layout %s: bad created_at: %w", id, err)
	}
	if err := json.Unmarshal([]byte(spec), &l.Spec); err != nil {
		return nil, fmt.Errorf("layout %s: bad spec: %w", id, err)
	}
	if err := json.Unmarshal([]byte(warned), &l.Warnings); err != nil {
		return nil, fmt.Errorf("layout %s: bad warnings: %w", id, err)
	}
	return &l, nil
}

// ListLayouts returns up to limit archived layouts, newest first, without
// their specs. An empty kind lists every kind.
func (s *SQLiteStore) ListLayouts(ctx context.Context, kind string, limit int) ([]Layout, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	if limit <= 0 {
		return []Layout{}, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, dataset_version, created_at
		FROM layouts
		WHERE ? = '' OR kind = ?
		ORDER BY seq DESC
		LIMIT ?
	`, kind, kind, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list layouts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []Layout{}
	for rows.Next() {
		var (
			l         Layout
			version   int64
			createdAt string
		)
		if err := rows.Scan(&l.ID, &l.Kind, &version, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan layout: %w", err)
		}
		l.DatasetVersion = uint64(version)
		if l.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("layout %s: bad created_at: %w", l.ID, err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return out, nil
}

// PruneLayouts deletes all but the newest keep layouts and returns the
// number deleted.
func (s *SQLiteStore) PruneLayouts(ctx context.Context, keep int) (int64, error) {
	if s.db == nil {
		return 0, fmt.Errorf("database not opened")
	}
	if keep < 0 {
		keep = 0
	}

	res, err := s.db.ExecContext(ctx, `
		DELETE FROM layouts
		WHERE seq NOT IN (SELECT seq FROM layouts ORDER BY seq DESC LIMIT ?)
	`, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune layouts: %w", err)
	}
	return res.RowsAffected()
}
