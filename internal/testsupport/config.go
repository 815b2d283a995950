package testsupport

import (
	"path/filepath"
	"testing"

	"nextread/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// Scheduler stagger is zeroed so tests run without artificial delays.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.CacheDir = filepath.Join(base, "cache")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Scheduler.StaggerMS = 0

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithMaxConcurrent overrides the scheduler concurrency ceiling.
func WithMaxConcurrent(n int) ConfigOption {
	return func(c *config.Config) {
		c.Scheduler.MaxConcurrent = n
	}
}

// WithTTLDays overrides the cache freshness window.
func WithTTLDays(days int) ConfigOption {
	return func(c *config.Config) {
		c.Cache.TTLDays = days
	}
}
