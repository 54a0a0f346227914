// Package backend selects and builds the preference store configured for
// the server.
package backend

import (
	"context"
	"fmt"

	"receipts/internal/config"
	applog "receipts/internal/log"
	"receipts/internal/prefs"
	"receipts/internal/storage"
)

// BackendType represents the type of preference backend
type BackendType string

const (
	MemoryBackend BackendType = "memory"
	SQLiteBackend BackendType = "sqlite"
)

func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case MemoryBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}

// GetBackendTypeStrings returns all valid backend type strings
func GetBackendTypeStrings() []string {
	return []string{MemoryBackend.String(), SQLiteBackend.String()}
}

// CleanupFunc releases the resources held by a backend.
type CleanupFunc func() error

// Result contains the store and its cleanup function.
type Result struct {
	Prefs   prefs.Store
	Cleanup CleanupFunc
}

type Config struct {
	Type         BackendType
	SQLiteDBPath string
}

// FromAppConfig converts the application config to backend config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}
	cfg := Config{
		Type:         BackendType(appConfig.PrefsBackend),
		SQLiteDBPath: appConfig.SQLiteDBPath,
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}
	if c.Type == SQLiteBackend && c.SQLiteDBPath == "" {
		return fmt.Errorf("SQLite database path is required for sqlite backend")
	}
	return nil
}

type Factory struct {
	logger *applog.Logger
}

func NewFactory(logger *applog.Logger) *Factory {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &Factory{logger: logger.WithComponent(applog.ComponentPrefs)}
}

// CreatePrefs builds the preference store for cfg.
func (f *Factory) CreatePrefs(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Type {
	case SQLiteBackend:
		repo, err := storage.NewPreferenceRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
		}
		f.logger.InfoContext(ctx, "Initialized SQLite preferences", "db_path", cfg.SQLiteDBPath)
		return &Result{Prefs: repo, Cleanup: repo.Close}, nil
	default:
		f.logger.InfoContext(ctx, "Initialized memory preferences")
		return &Result{Prefs: prefs.NewMemory(), Cleanup: func() error { return nil }}, nil
	}
}
