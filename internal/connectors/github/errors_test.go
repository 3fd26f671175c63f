package github

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestErrorHelpers(t *testing.T) {
	notFound := &APIError{StatusCode: http.StatusNotFound, Message: "Not Found"}
	unauthorized := &APIError{StatusCode: http.StatusUnauthorized}
	forbidden := &APIError{StatusCode: http.StatusForbidden}
	conflict := &APIError{StatusCode: http.StatusConflict}
	unavailable := &APIError{StatusCode: http.StatusServiceUnavailable}
	limited := &RateLimitError{ResetAt: time.Now()}

	assert.True(t, IsNotFound(notFound))
	assert.True(t, IsNotFound(fmt.Errorf("get tree: %w", notFound)))
	assert.True(t, IsNotFound(fmt.Errorf("%w: acme/alpha", ErrRepoNotFound)))
	assert.False(t, IsNotFound(forbidden))

	assert.True(t, IsUnauthorized(unauthorized))
	assert.False(t, IsUnauthorized(forbidden))

	assert.True(t, IsForbidden(forbidden))
	assert.False(t, IsForbidden(limited))

	assert.True(t, IsEmptyRepository(conflict))
	assert.False(t, IsEmptyRepository(notFound))

	assert.True(t, IsServerError(unavailable))
	assert.True(t, IsServerError(&APIError{StatusCode: http.StatusTooManyRequests}))
	assert.False(t, IsServerError(notFound))

	assert.True(t, IsRateLimited(fmt.Errorf("search: %w", limited)))
	assert.False(t, IsRateLimited(unavailable))
}

func TestErrorMessages(t *testing.T) {
	apiErr := &APIError{StatusCode: 404, Message: "Not Found", URL: "https://api.github.com/repos/a/b"}
	assert.Equal(t, "github: API error 404: Not Found (URL: https://api.github.com/repos/a/b)", apiErr.Error())

	reset := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	rle := &RateLimitError{ResetAt: reset}
	assert.Equal(t, "github: rate limit exceeded, resets at 2024-01-02T03:04:05Z", rle.Error())
}
