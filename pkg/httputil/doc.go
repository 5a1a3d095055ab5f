// Package httputil provides HTTP utilities for fetching radar item lists
// from an upstream endpoint.
//
// # Overview
//
//   - [Cache]: File-based response caching with TTL
//   - [Retry]: Automatic retry with exponential backoff
//
// # Caching
//
// [Cache] memoizes upstream responses in the filesystem
// (~/.cache/quadrant/) with a configurable TTL, so redrawing the radar
// does not refetch an unchanged item list on every invocation.
//
// Usage:
//
//	cache, err := httputil.NewCache("", 15*time.Minute)
//	ok, err := cache.Get("items:"+url, &items)
//	if !ok {
//	    items = fetchFromUpstream()
//	    cache.Set("items:"+url, items)
//	}
//
// # Retry
//
// [Retry] wraps requests with automatic retry for transient failures
// (network errors, 5xx responses, rate limits), using exponential
// backoff. Permanent failures return immediately.
package httputil
