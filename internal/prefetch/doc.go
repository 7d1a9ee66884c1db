// Package prefetch warms the page cache ahead of interactive use.
//
// The site enforces a minimum delay between requests, so browsing a large
// discography page by page is slow the first time. The Manager walks whole
// discographies up front, pulling every album page through the shared fetch
// layer so the cache absorbs the wait once:
//
//	manager := prefetch.NewManager(client, settings, func(e prefetch.ProgressEvent) {
//	    fmt.Println(e.Message)
//	})
//	if err := manager.Initialize(ctx, []string{"3540361100"}); err != nil {
//	    log.Fatal(err)
//	}
//	err := manager.Run(ctx, settings.PrefetchConcurrency)
//
// Progress is reported through the callback and the Progress method, which
// a UI can poll.
package prefetch
