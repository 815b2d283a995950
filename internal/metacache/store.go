package metacache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"nextread/internal/books"
	"nextread/internal/config"
)

// Store persists fetched book metadata in SQLite with a freshness window.
// Entries older than the TTL are treated as absent and deleted lazily at
// read time; there is no background eviction sweep.
type Store struct {
	db   *sql.DB
	path string
	ttl  time.Duration
	now  func() time.Time
}

// Open initializes or connects to the cache database and applies migrations.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.CacheDir, "metadata.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, ttl: cfg.TTL(), now: time.Now}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the location of the cache database file.
func (s *Store) Path() string {
	return s.path
}

// Get returns the cached metadata for a query, or found=false when no entry
// exists or the entry has aged out. An expired entry is deleted as a side
// effect of the lookup.
func (s *Store) Get(ctx context.Context, q books.Query) (books.Metadata, bool, error) {
	key := books.CacheKey(q)

	row := s.db.QueryRowContext(
		ctx,
		`SELECT metadata_json, stored_at FROM metadata_cache WHERE cache_key = ?`,
		key,
	)
	var metadataJSON, storedRaw string
	if err := row.Scan(&metadataJSON, &storedRaw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return books.Metadata{}, false, nil
		}
		return books.Metadata{}, false, fmt.Errorf("lookup %s: %w", key, err)
	}

	storedAt, err := time.Parse(time.RFC3339Nano, storedRaw)
	if err != nil {
		// Unparseable timestamps are treated as expired.
		storedAt = time.Time{}
	}
	if s.now().Sub(storedAt) > s.ttl {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM metadata_cache WHERE cache_key = ?`, key); err != nil {
			return books.Metadata{}, false, fmt.Errorf("evict expired %s: %w", key, err)
		}
		return books.Metadata{}, false, nil
	}

	var md books.Metadata
	if err := json.Unmarshal([]byte(metadataJSON), &md); err != nil {
		return books.Metadata{}, false, fmt.Errorf("decode cached metadata %s: %w", key, err)
	}
	return md, true, nil
}

// Set upserts metadata for a query with the current time as stored_at.
func (s *Store) Set(ctx context.Context, q books.Query, md books.Metadata) error {
	key := books.CacheKey(q)
	metadataJSON, err := json.Marshal(md)
	if err != nil {
		return fmt.Errorf("encode metadata %s: %w", key, err)
	}

	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO metadata_cache (cache_key, metadata_json, stored_at)
         VALUES (?, ?, ?)
         ON CONFLICT(cache_key) DO UPDATE SET
             metadata_json = excluded.metadata_json,
             stored_at = excluded.stored_at`,
		key,
		string(metadataJSON),
		s.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("store %s: %w", key, err)
	}
	return nil
}

// Clear removes all entries. Administrative operation, not on the hot path.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM metadata_cache`)
	if err != nil {
		return 0, fmt.Errorf("clear cache: %w", err)
	}
	return res.RowsAffected()
}

// Stats aggregates cache contents for diagnostic output.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{DBPath: s.path, TTL: s.ttl}

	row := s.db.QueryRowContext(ctx, `SELECT COUNT(1), MIN(stored_at), MAX(stored_at) FROM metadata_cache`)
	var oldest, newest sql.NullString
	if err := row.Scan(&stats.Entries, &oldest, &newest); err != nil {
		return Stats{}, fmt.Errorf("cache stats: %w", err)
	}
	if oldest.Valid {
		if t, err := time.Parse(time.RFC3339Nano, oldest.String); err == nil {
			stats.Oldest = t
		}
	}
	if newest.Valid {
		if t, err := time.Parse(time.RFC3339Nano, newest.String); err == nil {
			stats.Newest = t
		}
	}

	cutoff := s.now().Add(-s.ttl).UTC().Format(time.RFC3339Nano)
	row = s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM metadata_cache WHERE stored_at < ?`, cutoff)
	if err := row.Scan(&stats.Expired); err != nil {
		return Stats{}, fmt.Errorf("count expired: %w", err)
	}

	return stats, nil
}
