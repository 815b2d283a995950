package metacache

import (
	"context"
	"log/slog"

	"nextread/internal/books"
	"nextread/internal/logging"
)

// Cache is the best-effort facade the pipeline uses. Store errors are logged
// and degraded: a failed lookup is a miss, a failed write is a no-op. The
// cache accelerates fetches; it is never a source of failure for a card.
type Cache struct {
	store  *Store
	logger *slog.Logger
}

// NewCache wraps a Store with miss-on-error semantics.
func NewCache(store *Store, logger *slog.Logger) *Cache {
	return &Cache{
		store:  store,
		logger: logging.NewComponentLogger(logger, "metacache"),
	}
}

// Get returns cached metadata for the query, or found=false on a miss or any
// store error.
func (c *Cache) Get(ctx context.Context, q books.Query) (books.Metadata, bool) {
	md, found, err := c.store.Get(ctx, q)
	if err != nil {
		c.logger.Warn("cache lookup failed, treating as miss",
			logging.String(logging.FieldCacheKey, books.CacheKey(q)),
			logging.Error(err))
		return books.Metadata{}, false
	}
	return md, found
}

// Set stores metadata for the query. Failures are logged and dropped.
func (c *Cache) Set(ctx context.Context, q books.Query, md books.Metadata) {
	if err := c.store.Set(ctx, q, md); err != nil {
		c.logger.Warn("cache write failed, entry dropped",
			logging.String(logging.FieldCacheKey, books.CacheKey(q)),
			logging.Error(err))
	}
}
