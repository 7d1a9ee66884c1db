package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/azagthoth/metallum/internal/cache"
)

func newTestClient(t *testing.T, baseURL string, interval time.Duration) *Client {
	t.Helper()
	return NewClient(Config{
		BaseURL:  baseURL,
		Interval: interval,
		Store:    cache.NewMemory(time.Minute),
	})
}

func TestFetchPage_ResolvesAndSetsUserAgent(t *testing.T) {
	var gotPath, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 0)
	body, err := c.FetchPage(context.Background(), "bands/_/125")
	if err != nil {
		t.Fatalf("FetchPage: %v", err)
	}
	if string(body) != "ok" {
		t.Errorf("body = %q, want %q", body, "ok")
	}
	if gotPath != "/bands/_/125" {
		t.Errorf("path = %q, want %q", gotPath, "/bands/_/125")
	}
	if gotUA != DefaultUserAgent {
		t.Errorf("User-Agent = %q, want default", gotUA)
	}
}

func TestFetchPage_CacheHitSkipsNetwork(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte("page"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 0)
	ctx := context.Background()

	if _, err := c.FetchPage(ctx, "albums/_/_/547"); err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	body, err := c.FetchPage(ctx, "albums/_/_/547")
	if err != nil {
		t.Fatalf("second fetch: %v", err)
	}
	if string(body) != "page" {
		t.Errorf("cached body = %q, want %q", body, "page")
	}
	if hits.Load() != 1 {
		t.Errorf("server hits = %d, want 1", hits.Load())
	}
}

func TestFetchPage_ThrottlesMisses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("x"))
	}))
	defer srv.Close()

	const interval = 150 * time.Millisecond
	c := newTestClient(t, srv.URL, interval)
	ctx := context.Background()

	if _, err := c.FetchPage(ctx, "a"); err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	start := time.Now()
	if _, err := c.FetchPage(ctx, "b"); err != nil {
		t.Fatalf("second fetch: %v", err)
	}
	if elapsed := time.Since(start); elapsed < interval-20*time.Millisecond {
		t.Errorf("back-to-back misses separated by %v, want at least %v", elapsed, interval)
	}

	// A cache hit must not pay the delay.
	start = time.Now()
	if _, err := c.FetchPage(ctx, "a"); err != nil {
		t.Fatalf("cached fetch: %v", err)
	}
	if elapsed := time.Since(start); elapsed > interval {
		t.Errorf("cache hit took %v, should not be throttled", elapsed)
	}
}

func TestFetchPage_HTTPErrorNotCached(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 0)
	ctx := context.Background()

	_, err := c.FetchPage(ctx, "bands/_/0")
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FetchError, got %T: %v", err, err)
	}
	if fe.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", fe.StatusCode)
	}

	// The failure must not have been cached: a second call hits the server.
	c.FetchPage(ctx, "bands/_/0")
	if hits.Load() != 2 {
		t.Errorf("server hits = %d, want 2 (failures are never cached)", hits.Load())
	}
}

func TestFetchPage_TransportError(t *testing.T) {
	// Point at a closed server.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := newTestClient(t, url, 0)
	_, err := c.FetchPage(context.Background(), "anything")
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FetchError, got %T: %v", err, err)
	}
	if fe.Err == nil {
		t.Error("transport failure should carry the underlying error")
	}
}

func TestFetchPage_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("x"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, time.Hour)
	ctx := context.Background()

	// Consume the initial token.
	if _, err := c.FetchPage(ctx, "a"); err != nil {
		t.Fatalf("first fetch: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := c.FetchPage(ctx, "b"); err == nil {
		t.Fatal("expected error when context expires during throttle wait")
	}
}

func TestAbsolute(t *testing.T) {
	c := newTestClient(t, "https://www.metal-archives.com/", 0)
	tests := []struct {
		endpoint string
		want     string
	}{
		{"bands/_/125", "https://www.metal-archives.com/bands/_/125"},
		{"/bands/_/125", "https://www.metal-archives.com/bands/_/125"},
		{"release/ajax-view-lyrics/id/5018A", "https://www.metal-archives.com/release/ajax-view-lyrics/id/5018A"},
	}
	for _, tt := range tests {
		if got := c.Absolute(tt.endpoint); got != tt.want {
			t.Errorf("Absolute(%q) = %q, want %q", tt.endpoint, got, tt.want)
		}
	}
}
