package source

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/sfeldkamp/quadrant/pkg/errors"
	"github.com/sfeldkamp/quadrant/pkg/httputil"
	"github.com/sfeldkamp/quadrant/pkg/observability"
	"github.com/sfeldkamp/quadrant/pkg/radar"
)

const (
	httpTimeout = 10 * time.Second

	// DefaultCacheTTL bounds how long a fetched item list is reused before
	// the upstream endpoint is asked again.
	DefaultCacheTTL = 15 * time.Minute
)

// Options configures the HTTP item client.
type Options struct {
	// CacheDir is where fetched item lists are memoized. Empty uses the
	// default directory (~/.cache/quadrant/).
	CacheDir string

	// CacheTTL bounds how long fetched lists are reused. Zero uses
	// [DefaultCacheTTL]; negative disables expiry entirely.
	CacheTTL time.Duration

	// Headers are applied to every request, e.g. an Authorization header
	// for a private radar endpoint.
	Headers map[string]string
}

// Client fetches item lists from HTTP endpoints with response caching and
// automatic retry for transient failures.
//
// All methods are safe for concurrent use by multiple goroutines, as long
// as the underlying cache directory is not shared with concurrent writers
// for the same key.
type Client struct {
	http    *http.Client
	cache   *httputil.Cache
	headers map[string]string
}

// NewClient creates a Client with a file cache in opts.CacheDir.
func NewClient(opts Options) (*Client, error) {
	ttl := opts.CacheTTL
	switch {
	case ttl == 0:
		ttl = DefaultCacheTTL
	case ttl < 0:
		ttl = 0
	}
	cache, err := httputil.NewCache(opts.CacheDir, ttl)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create source cache")
	}
	return &Client{
		http:    &http.Client{Timeout: httpTimeout},
		cache:   cache.Namespace("items:"),
		headers: opts.Headers,
	}, nil
}

// FetchItems retrieves an item list from url.
//
// If refresh is false and a fresh cached copy exists, the cached list is
// returned without a request. Otherwise the endpoint is fetched with
// retry and exponential backoff, and the result is cached.
//
// Returns:
//   - NOT_FOUND if the endpoint returns 404
//   - RATE_LIMITED if the endpoint returns 429
//   - NETWORK_ERROR for other HTTP failures (timeout, 5xx, etc.)
//   - INVALID_FORMAT if the response is not a valid item list
func (c *Client) FetchItems(ctx context.Context, url string, refresh bool) ([]radar.Item, error) {
	var items []radar.Item
	err := c.cached(ctx, url, refresh, &items, func() error {
		return c.fetch(ctx, url, &items)
	})
	if err != nil {
		return nil, err
	}
	if err := validateItems(items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) cached(ctx context.Context, key string, refresh bool, v any, fetch func() error) error {
	if !refresh {
		if ok, _ := c.cache.Get(key, v); ok {
			return nil
		}
	}
	if err := httputil.RetryWithBackoff(ctx, fetch); err != nil {
		return err
	}
	_ = c.cache.Set(key, v)
	return nil
}

func (c *Client) fetch(ctx context.Context, url string, items *[]radar.Item) error {
	body, err := c.doRequest(ctx, url)
	if err != nil {
		return err
	}
	defer body.Close()

	if err := json.NewDecoder(body).Decode(items); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode item list from %s", url)
	}
	return nil
}

func (c *Client) doRequest(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "build request")
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	observability.HTTP().OnRequest(ctx, http.MethodGet, req.URL.Host, req.URL.Path)
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, http.MethodGet, req.URL.Host, req.URL.Path, err)
		return nil, &httputil.RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", url)}
	}
	observability.HTTP().OnResponse(ctx, http.MethodGet, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "item list not found")
	case code == http.StatusTooManyRequests:
		return &httputil.RetryableError{Err: errors.New(errors.ErrCodeRateLimited, "rate limited by item source")}
	case code >= 500:
		return &httputil.RetryableError{Err: errors.New(errors.ErrCodeNetwork, "status %d", code)}
	default:
		return errors.New(errors.ErrCodeNetwork, "status %d", code)
	}
}
