package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("JULMAT_DATA", "")
	t.Setenv("JULMAT_BACKEND", "")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Store.Backend != "sqlite" {
		t.Errorf("Backend = %q, want sqlite", cfg.Store.Backend)
	}
	if cfg.General.Locale != "sv" {
		t.Errorf("Locale = %q, want sv", cfg.General.Locale)
	}
}

func TestSaveToLoadFrom(t *testing.T) {
	t.Setenv("JULMAT_DATA", "")
	t.Setenv("JULMAT_BACKEND", "")
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	cfg := DefaultConfig()
	cfg.General.DataSource = "https://example.com/data.json"
	cfg.Store.Backend = "redis"
	cfg.Store.Redis.DB = 3
	cfg.Appearance.Theme = "tokyo-night"

	if err := SaveTo(path, cfg); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if got.General.DataSource != cfg.General.DataSource ||
		got.Store.Backend != "redis" ||
		got.Store.Redis.DB != 3 ||
		got.Appearance.Theme != "tokyo-night" {
		t.Fatalf("round trip = %+v", got)
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	t.Setenv("JULMAT_DATA", "/srv/julmat/data.yaml")
	t.Setenv("JULMAT_BACKEND", "memory")
	t.Setenv("JULMAT_REDIS_DB", "2")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.General.DataSource != "/srv/julmat/data.yaml" {
		t.Errorf("DataSource = %q", cfg.General.DataSource)
	}
	if cfg.Store.Backend != "memory" || cfg.Store.Redis.DB != 2 {
		t.Errorf("Store = %+v", cfg.Store)
	}
}

func TestLoadFrom_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[general\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestSQLitePathDefaultsUnderDataDir(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")
	cfg := DefaultConfig()
	if got := cfg.SQLitePath(); got != filepath.Join("/tmp/xdg-data", "julmat", "status.db") {
		t.Fatalf("SQLitePath = %q", got)
	}
}
