// Package http implements the throttled, cache-aware fetch layer shared by
// every Metal Archives entity.
//
// All page fetches in the process funnel through one Client. On each fetch
// the Client:
//
//  1. Resolves the relative endpoint against the site origin.
//  2. Consults the page cache; a hit within the TTL returns immediately with
//     no delay and no network call.
//  3. On a miss, waits out the minimum inter-request interval measured from
//     the previous network call (a single process-wide clock, owned by the
//     Client's rate limiter), then performs the GET.
//  4. Caches the successful response body and returns it.
//
// Transport failures and non-2xx statuses surface as *FetchError. They are
// never retried and never cached. Concurrent callers are serialized by a
// mutex around the check/wait/fetch sequence, which both preserves the
// minimum-interval guarantee and prevents two callers from double-fetching
// the same URL on a shared miss.
package http
