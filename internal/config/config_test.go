package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, _, exists, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing file")
	}
	if cfg.Scheduler.MaxConcurrent != defaultMaxConcurrent {
		t.Fatalf("expected default max_concurrent, got %d", cfg.Scheduler.MaxConcurrent)
	}
	if cfg.Cache.TTLDays != defaultCacheTTLDays {
		t.Fatalf("expected default ttl_days, got %d", cfg.Cache.TTLDays)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[scheduler]
max_concurrent = 3
stagger_ms = 10

[cache]
ttl_days = 7

[logging]
format = "json"
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists {
		t.Fatal("expected exists=true")
	}
	if resolved != path {
		t.Fatalf("resolved path = %q, want %q", resolved, path)
	}
	if cfg.Scheduler.MaxConcurrent != 3 || cfg.Scheduler.StaggerMS != 10 {
		t.Fatalf("scheduler overrides not applied: %+v", cfg.Scheduler)
	}
	if cfg.Cache.TTLDays != 7 {
		t.Fatalf("cache override not applied: %+v", cfg.Cache)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("logging overrides not applied: %+v", cfg.Logging)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{
			name:   "zero concurrency",
			mutate: func(c *Config) { c.Scheduler.MaxConcurrent = 0 },
			want:   "max_concurrent",
		},
		{
			name:   "threshold above one",
			mutate: func(c *Config) { c.Scan.VisibilityThreshold = 1.5 },
			want:   "visibility_threshold",
		},
		{
			name:   "relative source url",
			mutate: func(c *Config) { c.Source.BaseURL = "not-a-url" },
			want:   "base_url",
		},
		{
			name:   "unknown log format",
			mutate: func(c *Config) { c.Logging.Format = "yaml" },
			want:   "logging.format",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestExpandPathTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	expanded, err := ExpandPath("~/cache")
	if err != nil {
		t.Fatalf("ExpandPath failed: %v", err)
	}
	if expanded != filepath.Join(home, "cache") {
		t.Fatalf("ExpandPath = %q, want under %q", expanded, home)
	}
}

func TestCreateSampleRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	if err := CreateSample(path); err == nil {
		t.Fatal("expected error when file already exists")
	}
}
