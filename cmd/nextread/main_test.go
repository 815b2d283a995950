package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"nextread/internal/books"
	"nextread/internal/metacache"
)

func TestConfigInitWritesSampleFile(t *testing.T) {
	env := setupCLITestEnv(t)

	target := filepath.Join(env.baseDir, "fresh", "config.toml")
	out, _, err := runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")

	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	_, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err == nil {
		t.Fatal("expected error when config already exists")
	}
}

func TestConfigShowFallsBackToDefaults(t *testing.T) {
	setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "show"}, "")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "defaults were used")
	requireContains(t, out, "max_concurrent")
}

func TestCacheStatsAndClear(t *testing.T) {
	env := setupCLITestEnv(t)

	store, err := metacache.Open(env.cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	q := books.Query{Title: "Dune", Author: "Frank Herbert"}
	if err := store.Set(context.Background(), q, books.Metadata{Rating: "4.27"}); err != nil {
		t.Fatalf("seed cache: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	out, _, err := runCLI(t, []string{"cache", "stats"}, env.configPath)
	if err != nil {
		t.Fatalf("cache stats: %v", err)
	}
	requireContains(t, out, "Entries")
	requireContains(t, out, "1")

	out, _, err = runCLI(t, []string{"cache", "clear"}, env.configPath)
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	requireContains(t, out, "Removed 1 cached record(s)")
}

func TestRunAugmentsCardsFromCache(t *testing.T) {
	env := setupCLITestEnv(t)

	store, err := metacache.Open(env.cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	q := books.Query{Title: "Dune", Author: "Frank Herbert"}
	if err := store.Set(context.Background(), q, books.Metadata{Rating: "4.27", Year: "1965"}); err != nil {
		t.Fatalf("seed cache: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	page := filepath.Join(env.baseDir, "page.html")
	html := `<html><body>
<div class="bookContainer">
  <a class="bookTitle">Dune</a>
  <span class="bookAuthor">Frank Herbert</span>
</div>
</body></html>`
	if err := os.WriteFile(page, []byte(html), 0o644); err != nil {
		t.Fatalf("write page: %v", err)
	}

	out, _, err := runCLI(t, []string{"run", page}, env.configPath)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	requireContains(t, out, "Dune")
	requireContains(t, out, "4.27")
	requireContains(t, out, "1 card(s) augmented")
}

func TestRunRejectsMissingPage(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"run", filepath.Join(env.baseDir, "absent.html")}, env.configPath)
	if err == nil {
		t.Fatal("expected error for missing page file")
	}
}
