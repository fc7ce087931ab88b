package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, _, exists, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if exists {
		t.Error("exists should be false for a missing file")
	}
	if cfg.Media.RequestTimeout != defaultRequestTimeout {
		t.Errorf("RequestTimeout: got %d", cfg.Media.RequestTimeout)
	}
	if cfg.Accounts.GraceDays != defaultGraceDays {
		t.Errorf("GraceDays: got %d", cfg.Accounts.GraceDays)
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
library_dir = "` + dir + `/library"
data_dir = "` + dir + `/data"
api_bind = "127.0.0.1:9999"

[media]
base_url = "http://localhost:9999/"
request_timeout = 3
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists || resolved != path {
		t.Errorf("resolved=%q exists=%v", resolved, exists)
	}
	if cfg.Media.BaseURL != "http://localhost:9999" {
		t.Errorf("base URL not normalized: %q", cfg.Media.BaseURL)
	}
	if cfg.Paths.APIBind != "127.0.0.1:9999" {
		t.Errorf("APIBind: %q", cfg.Paths.APIBind)
	}
	if !filepath.IsAbs(cfg.Paths.LibraryDir) {
		t.Errorf("LibraryDir not absolute: %q", cfg.Paths.LibraryDir)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty library dir", func(c *Config) { c.Paths.LibraryDir = "" }},
		{"empty data dir", func(c *Config) { c.Paths.DataDir = "" }},
		{"relative base url", func(c *Config) { c.Media.BaseURL = "localhost/api" }},
		{"zero timeout", func(c *Config) { c.Media.RequestTimeout = 0 }},
		{"negative grace", func(c *Config) { c.Accounts.GraceDays = -1 }},
		{"zero sweep interval", func(c *Config) { c.Accounts.SweepIntervalHours = 0 }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestDatabasePaths(t *testing.T) {
	cfg := Default()
	cfg.Paths.DataDir = "/tmp/cradle-data"
	if got := cfg.CatalogDBPath(); got != "/tmp/cradle-data/catalog.db" {
		t.Errorf("CatalogDBPath: %q", got)
	}
	if got := cfg.AccountsDBPath(); got != "/tmp/cradle-data/accounts.db" {
		t.Errorf("AccountsDBPath: %q", got)
	}
	if got := cfg.LockFilePath(); got != "/tmp/cradle-data/cradled.lock" {
		t.Errorf("LockFilePath: %q", got)
	}
}

func TestSampleConfigParses(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.toml")
	if err := os.WriteFile(path, []byte(SampleConfig()), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("sample config should load cleanly: %v", err)
	}
	if !exists {
		t.Fatal("sample config file not detected")
	}
	if !strings.HasSuffix(cfg.CatalogDBPath(), "catalog.db") {
		t.Errorf("CatalogDBPath: %q", cfg.CatalogDBPath())
	}
}
