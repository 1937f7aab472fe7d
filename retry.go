package cardscrape

import (
	"math"
	"net/http"
	"time"
)

// RetryPolicy configures how a Fetcher absorbs transient failures.
// An attempt is retried only when its request method is in
// AllowedMethods and either the attempt failed at the transport level
// or the response status is in RetryableStatuses.
type RetryPolicy struct {
	// MaxAttempts is the total attempt budget, including the first
	// attempt. Must be at least 1.
	MaxAttempts int

	// BackoffFactor scales the exponential delay between attempts.
	// The delay before retry i (1-based) is BackoffFactor * 2^(i-1)
	// seconds. There is no delay before the first attempt.
	BackoffFactor float64

	// RetryableStatuses are the HTTP status codes eligible for retry.
	RetryableStatuses []int

	// AllowedMethods are the request methods eligible for retry.
	// Non-idempotent methods should not be listed.
	AllowedMethods []string
}

// DefaultRetryPolicy returns the standard policy: four attempts,
// 0.7s backoff factor, retrying 429 and common 5xx statuses for
// read-only methods.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:       4,
		BackoffFactor:     0.7,
		RetryableStatuses: []int{429, 500, 502, 503, 504},
		AllowedMethods:    []string{http.MethodGet, http.MethodHead, http.MethodOptions},
	}
}

// Validate returns an error if the policy cannot be applied.
func (p RetryPolicy) Validate() error {
	if p.MaxAttempts < 1 {
		return Errorf(EINVALID, "retry policy requires at least one attempt")
	}
	if p.BackoffFactor <= 0 {
		return Errorf(EINVALID, "retry backoff factor must be positive")
	}
	return nil
}

// RetryableStatus reports whether the status code is eligible for retry.
func (p RetryPolicy) RetryableStatus(code int) bool {
	for _, s := range p.RetryableStatuses {
		if s == code {
			return true
		}
	}
	return false
}

// AllowsMethod reports whether the request method is eligible for retry.
func (p RetryPolicy) AllowsMethod(method string) bool {
	for _, m := range p.AllowedMethods {
		if m == method {
			return true
		}
	}
	return false
}

// BackoffDelay returns the delay to wait before the given retry.
// retry is 1-based: BackoffDelay(1) is the delay between the first and
// second attempts. The delay grows monotonically with each retry.
func (p RetryPolicy) BackoffDelay(retry int) time.Duration {
	if retry < 1 {
		return 0
	}
	seconds := p.BackoffFactor * math.Pow(2, float64(retry-1))
	return time.Duration(seconds * float64(time.Second))
}
