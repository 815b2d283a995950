// Package metacache persists fetched book metadata in SQLite with a 30-day
// freshness window.
//
// The Store owns the database connection, schema migrations, TTL-checked
// lookups with lazy eviction, and the stats query used by the CLI. The Cache
// facade layers miss-on-error semantics on top so callers on the fetch path
// never see a cache failure.
//
// Stale entries are removed only when a lookup finds them expired; there is
// no background sweep.
package metacache
