// Package http provides an HTTP-based implementation of
// cardscrape.Fetcher with bounded retry and exponential backoff for
// transient transport and server failures.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/pjanik/cardscrape"
)

// DefaultFetchTimeout is the default per-attempt timeout for HTTP requests.
const DefaultFetchTimeout = 15 * time.Second

// DefaultUserAgent identifies the client on every attempt.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) " +
	"Chrome/122.0.0.0 Safari/537.36"

// Ensure Fetcher implements cardscrape.Fetcher at compile time.
var _ cardscrape.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using HTTP requests.
// Each Fetcher owns its own connection pool, so concurrent callers
// should each use their own instance. Retries are internal: callers
// see a single success or failure per Fetch call.
type Fetcher struct {
	client    *http.Client
	transport *http.Transport
	timeout   time.Duration
	userAgent string
	policy    cardscrape.RetryPolicy
	sleep     func(time.Duration)
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-attempt timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (15s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent on every attempt.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithRetryPolicy sets the retry policy.
// Defaults to cardscrape.DefaultRetryPolicy() if not specified.
func WithRetryPolicy(p cardscrape.RetryPolicy) Option {
	return func(f *Fetcher) {
		f.policy = p
	}
}

// WithSleep overrides the function used to wait between attempts.
// This is useful for testing without waiting for real backoff delays.
func WithSleep(fn func(time.Duration)) Option {
	return func(f *Fetcher) {
		f.sleep = fn
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
		policy:    cardscrape.DefaultRetryPolicy(),
		sleep:     time.Sleep,
	}
	for _, opt := range opts {
		opt(f)
	}

	// A dedicated transport keeps the connection pool private to this
	// instance and releasable in Close.
	f.transport = &http.Transport{}
	f.client = &http.Client{
		Transport: f.transport,
		Timeout:   f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL.
//
// An attempt is retried only when the request method is in the
// policy's allowed set and either the attempt failed at the transport
// level or the response status is in the retryable set. A response
// with a status outside the retryable set ends the loop immediately:
// 2xx returns the body, anything else is reported as an unavailable
// error. The context is consulted between attempts; the per-attempt
// timeout bounds each attempt individually.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := f.policy.Validate(); err != nil {
		return "", err
	}

	method := http.MethodGet
	retryable := f.policy.AllowsMethod(method)

	var lastErr error
	for attempt := 1; attempt <= f.policy.MaxAttempts; attempt++ {
		if attempt > 1 {
			// Check context before sleeping
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			default:
			}
			f.sleep(f.policy.BackoffDelay(attempt - 1))
		}

		req, err := http.NewRequestWithContext(ctx, method, url, nil)
		if err != nil {
			return "", cardscrape.Errorf(cardscrape.EINVALID, "invalid URL %q: %v", url, err)
		}
		req.Header.Set("User-Agent", f.userAgent)

		resp, err := f.client.Do(req)
		if err != nil {
			lastErr = err
			if !retryable {
				break
			}
			continue
		}

		if retryable && f.policy.RetryableStatus(resp.StatusCode) {
			lastErr = cardscrape.Errorf(cardscrape.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
			// Drain so the connection returns to the pool.
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			if !retryable {
				break
			}
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return "", cardscrape.Errorf(cardscrape.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
		}

		return string(body), nil
	}

	return "", cardscrape.Errorf(cardscrape.EUNAVAILABLE,
		"failed to fetch %s after %d attempts: %v", url, f.policy.MaxAttempts, lastErr)
}

// Close releases the Fetcher's idle pooled connections.
func (f *Fetcher) Close() error {
	f.transport.CloseIdleConnections()
	return nil
}
