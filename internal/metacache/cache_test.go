package metacache

import (
	"context"
	"testing"

	"nextread/internal/books"
	"nextread/internal/logging"
)

func TestCacheDegradesStoreErrorsToMiss(t *testing.T) {
	store := newTestStore(t)
	cache := NewCache(store, logging.NewNop())
	ctx := context.Background()

	q := books.Query{Title: "Annihilation", Author: "Jeff VanderMeer"}
	cache.Set(ctx, q, books.Metadata{Rating: "3.8"})

	if _, found := cache.Get(ctx, q); !found {
		t.Fatal("expected hit through facade")
	}

	// Closing the store forces errors on every operation; the facade must
	// swallow them.
	store.Close()

	if _, found := cache.Get(ctx, q); found {
		t.Fatal("expected miss once the store is unavailable")
	}
	cache.Set(ctx, q, books.Metadata{Rating: "3.8"}) // must not panic or error
}
