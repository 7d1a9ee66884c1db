// Package cache implements the URL-keyed page cache used by the fetch layer.
//
// A cache entry pairs a fetch timestamp with the response bytes. Entries are
// gated by a time-to-live: an entry older than the TTL is treated as absent,
// not as stale-but-usable. The store exposes plain Get/Put/Expire operations
// and knows nothing about HTTP, so it can be tested in isolation from network
// code.
//
// Two implementations are provided:
//
//   - Memory: a mutex-guarded map, for tests and ephemeral runs.
//   - SQLite: a single-file store (modernc.org/sqlite) that survives process
//     restarts, defaulting to a file in the OS temp directory.
package cache
