package github

import (
	"context"
	"errors"
	"math"
	"net"
	"time"

	"github.com/custodia-labs/repoqa-curate/internal/logger"
)

// MaxRetryDelay caps the exponential backoff between attempts.
const MaxRetryDelay = 30 * time.Second

// RetryPolicy controls how transient GitHub failures are retried.
type RetryPolicy struct {
	// MaxAttempts is the total number of calls, including the first.
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// DefaultRetryPolicy returns MaxRetries retries with exponential backoff.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: MaxRetries + 1,
		BaseDelay:   RetryDelay,
		MaxDelay:    MaxRetryDelay,
	}
}

// RetryPolicyWithRetries returns the default policy with n retries.
func RetryPolicyWithRetries(n int) RetryPolicy {
	p := DefaultRetryPolicy()
	p.MaxAttempts = max(n, 0) + 1
	return p
}

// backoff returns the delay before retry number attempt (0-based).
func (p RetryPolicy) backoff(attempt int) time.Duration {
	delay := time.Duration(float64(p.BaseDelay) * math.Pow(2, float64(attempt)))
	if p.MaxDelay > 0 && delay > p.MaxDelay {
		return p.MaxDelay
	}
	return delay
}

// delay picks the wait before the next attempt. Rate limit errors wait until
// the advertised reset when it is known and in the future.
func (p RetryPolicy) delay(attempt int, err error) time.Duration {
	var rle *RateLimitError
	if errors.As(err, &rle) {
		if wait := time.Until(rle.ResetAt); wait > 0 {
			return wait
		}
	}
	return p.backoff(attempt)
}

// isRetryable reports whether err is worth another attempt.
// Client errors other than 429 are never retried.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if IsRateLimited(err) || IsServerError(err) {
		return true
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}

// withRetry calls fn until it succeeds, fails permanently or the policy is exhausted.
func withRetry[T any](ctx context.Context, p RetryPolicy, op string, fn func() (T, error)) (T, error) {
	var result T
	var lastErr error

	attempts := max(p.MaxAttempts, 1)
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			delay := p.delay(attempt-1, lastErr)
			logger.Debug("Retrying %s in %s (attempt %d/%d): %v", op, delay, attempt+1, attempts, lastErr)

			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return result, ctx.Err()
			case <-timer.C:
			}
		}

		result, lastErr = fn()
		if lastErr == nil {
			return result, nil
		}
		if !isRetryable(lastErr) {
			return result, lastErr
		}
	}

	return result, lastErr
}
