package testsupport

import (
	"testing"

	"nextread/internal/config"
	"nextread/internal/logging"
	"nextread/internal/metacache"
)

// MustOpenStore opens a metacache.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *metacache.Store {
	t.Helper()

	store, err := metacache.Open(cfg)
	if err != nil {
		t.Fatalf("metacache.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// MustOpenCache opens a best-effort cache facade backed by a fresh store.
func MustOpenCache(t testing.TB, cfg *config.Config) *metacache.Cache {
	t.Helper()
	return metacache.NewCache(MustOpenStore(t, cfg), logging.NewNop())
}
