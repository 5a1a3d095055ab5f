package httputil

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks a failure as transient. Item-source fetches wrap
// timeouts, 429s, and 5xx responses with this type so [Retry] attempts
// them again; anything unwrapped (404, malformed payload) fails the fetch
// on the spot.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retry runs fn up to attempts times, sleeping delay between tries and
// doubling it after each failure. Only errors carrying [RetryableError]
// are retried; the first non-retryable error is returned as-is. A
// cancelled ctx wins over the remaining attempts and returns ctx.Err().
//
// When every attempt fails, the last error is returned so the caller
// sees the endpoint's final answer, not the first flake.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		if !isRetryable(err) {
			return err
		}

		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return lastErr
}

// RetryWithBackoff is [Retry] with the defaults the item-source client
// uses: 3 attempts starting at 1 second. Radar sources are small static
// documents, so anything still failing after three tries is down, not slow.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, 3, time.Second, fn)
}

func isRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}
