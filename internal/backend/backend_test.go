package backend

import (
	"context"
	"path/filepath"
	"testing"

	"receipts/internal/config"
	applog "receipts/internal/log"
	"receipts/internal/prefs"
)

func TestCreatePrefs(t *testing.T) {
	ctx := context.Background()
	f := NewFactory(applog.Discard())

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "memory", cfg: Config{Type: MemoryBackend}},
		{name: "sqlite", cfg: Config{Type: SQLiteBackend, SQLiteDBPath: filepath.Join(t.TempDir(), "prefs.db")}},
		{name: "sqlite without path", cfg: Config{Type: SQLiteBackend}, wantErr: true},
		{name: "unknown", cfg: Config{Type: "redis"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := f.CreatePrefs(ctx, tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("CreatePrefs: %v", err)
			}
			defer func() {
				if err := res.Cleanup(); err != nil {
					t.Errorf("cleanup: %v", err)
				}
			}()

			on, err := prefs.ToggleDarkMode(ctx, res.Prefs, "s1", false)
			if err != nil || !on {
				t.Fatalf("toggle: on=%v err=%v", on, err)
			}
			got, err := prefs.LoadDarkMode(ctx, res.Prefs, "s1", false)
			if err != nil || !got {
				t.Fatalf("load after toggle: on=%v err=%v", got, err)
			}
		})
	}
}

func TestFromAppConfig(t *testing.T) {
	if _, err := FromAppConfig(nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
	cfg, err := FromAppConfig(&config.Config{PrefsBackend: "sqlite", SQLiteDBPath: "x.db"})
	if err != nil {
		t.Fatalf("FromAppConfig: %v", err)
	}
	if cfg.Type != SQLiteBackend || cfg.SQLiteDBPath != "x.db" {
		t.Fatalf("unexpected backend config: %+v", cfg)
	}
	if _, err := FromAppConfig(&config.Config{PrefsBackend: "sheets"}); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}
