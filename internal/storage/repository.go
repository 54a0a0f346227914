package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"receipts/internal/prefs"

	_ "modernc.org/sqlite"
)

// PreferenceRepository persists UI preferences in SQLite.
type PreferenceRepository struct {
	db *sql.DB
}

func NewPreferenceRepository(dbPath string) (*PreferenceRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &PreferenceRepository{db: db}, nil
}

func (r *PreferenceRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Get implements prefs.Store
func (r *PreferenceRepository) Get(ctx context.Context, scope, key string) (string, bool, error) {
	if strings.TrimSpace(scope) == "" {
		return "", false, prefs.ErrEmptyScope
	}
	var value string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM preferences WHERE scope = ? AND key = ?`, scope, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get preference %s/%s: %w", scope, key, err)
	}
	return value, true, nil
}

// Set implements prefs.Store
func (r *PreferenceRepository) Set(ctx context.Context, scope, key, value string) error {
	if strings.TrimSpace(scope) == "" {
		return prefs.ErrEmptyScope
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO preferences (scope, key, value, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (scope, key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		scope, key, value)
	if err != nil {
		return fmt.Errorf("set preference %s/%s: %w", scope, key, err)
	}

	slog.DebugContext(ctx, "Preference saved", "scope", scope, "key", key)
	return nil
}

var _ prefs.Store = (*PreferenceRepository)(nil)
