package http

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/azagthoth/metallum/internal/cache"
)

// DefaultUserAgent is sent with every request. Metal Archives rejects
// requests with an empty or obviously robotic agent string.
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_10_1) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/41.0.2227.1 Safari/537.36"

// DefaultInterval is the minimum delay between two network requests.
const DefaultInterval = time.Second

// FetchError reports a failed page fetch: either a transport-level failure
// (Err set) or a non-2xx response (StatusCode set).
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Config holds the fetch layer settings.
type Config struct {
	// BaseURL is the site origin relative endpoints are resolved against.
	BaseURL string

	// UserAgent overrides DefaultUserAgent when non-empty.
	UserAgent string

	// Interval is the minimum delay between network requests. Zero or
	// negative disables throttling.
	Interval time.Duration

	// Store is the page cache. Required.
	Store cache.Store

	// Logger receives debug-level fetch events. Nil means slog.Default().
	Logger *slog.Logger
}

// Client is the process-wide fetch layer. One instance owns the last-request
// clock and the cache; every component that fetches must share it.
type Client struct {
	httpClient *http.Client
	userAgent  string
	baseURL    string
	limiter    *rate.Limiter
	store      cache.Store
	logger     *slog.Logger

	// mu serializes the check/wait/fetch/store sequence so the minimum
	// interval holds under concurrent callers and a shared miss is fetched
	// once.
	mu sync.Mutex
}

// NewClient creates the fetch layer from cfg.
func NewClient(cfg Config) *Client {
	ua := cfg.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	limit := rate.Inf
	if cfg.Interval > 0 {
		limit = rate.Every(cfg.Interval)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		userAgent: ua,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		limiter:   rate.NewLimiter(limit, 1),
		store:     cfg.Store,
		logger:    logger,
	}
}

// BaseURL returns the configured site origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Absolute resolves a relative endpoint against the site origin.
func (c *Client) Absolute(endpoint string) string {
	return c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
}

// FetchPage returns the body of the page at the given relative endpoint,
// serving from the cache when possible.
//
// A cache hit within the TTL incurs no delay. A miss waits out the minimum
// interval since the previous network call, fetches, and caches the result.
// Failures surface as *FetchError and are neither retried nor cached.
func (c *Client) FetchPage(ctx context.Context, endpoint string) ([]byte, error) {
	return c.FetchURL(ctx, c.Absolute(endpoint))
}

// FetchURL is FetchPage for an already-absolute URL. Off-site resources such
// as artwork go through the same cache and throttle.
func (c *Client) FetchURL(ctx context.Context, abs string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	body, ok, err := c.store.Get(abs)
	if err != nil {
		return nil, fmt.Errorf("cache read %s: %w", abs, err)
	}
	if ok {
		c.logger.Debug("cache hit", slog.String("url", abs))
		return body, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	c.logger.Debug("fetching", slog.String("url", abs))
	body, err = c.get(ctx, abs)
	if err != nil {
		return nil, err
	}

	if err := c.store.Put(abs, body); err != nil {
		return nil, fmt.Errorf("cache write %s: %w", abs, err)
	}
	return body, nil
}

// get performs a single GET request with the configured User-Agent.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	return body, nil
}
