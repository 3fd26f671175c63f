package github

import (
	"context"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func quotaResponse(resource, limit, remaining string, reset time.Time) *http.Response {
	resp := &http.Response{Header: http.Header{}}
	if resource != "" {
		resp.Header.Set(HeaderRateResource, resource)
	}
	resp.Header.Set(HeaderRateLimit, limit)
	resp.Header.Set(HeaderRateRemaining, remaining)
	resp.Header.Set(HeaderRateReset, strconv.FormatInt(reset.Unix(), 10))
	return resp
}

func TestRateLimiter_Defaults(t *testing.T) {
	r := NewRateLimiter()

	assert.Equal(t, GitHubRateLimit, r.Quota(ResourceCore).Remaining)
	assert.Equal(t, SearchRateLimit, r.Quota(ResourceSearch).Remaining)
}

func TestRateLimiter_UpdateFromResponse(t *testing.T) {
	reset := time.Now().Add(time.Hour).Truncate(time.Second)

	t.Run("resource header selects the quota", func(t *testing.T) {
		r := NewRateLimiter()

		r.UpdateFromResponse(quotaResponse(ResourceSearch, "30", "12", reset), ResourceCore)

		q := r.Quota(ResourceSearch)
		assert.Equal(t, 30, q.Limit)
		assert.Equal(t, 12, q.Remaining)
		assert.True(t, reset.Equal(q.ResetAt))
		assert.Equal(t, GitHubRateLimit, r.Quota(ResourceCore).Remaining)
	})

	t.Run("falls back without resource header", func(t *testing.T) {
		r := NewRateLimiter()

		r.UpdateFromResponse(quotaResponse("", "5000", "4000", reset), ResourceCore)

		assert.Equal(t, 4000, r.Quota(ResourceCore).Remaining)
	})

	t.Run("tracks unknown resources", func(t *testing.T) {
		r := NewRateLimiter()

		r.UpdateFromResponse(quotaResponse("graphql", "5000", "7", reset), ResourceCore)

		assert.Equal(t, 7, r.Quota("graphql").Remaining)
	})
}

func TestRateLimiter_IgnoresBadHeaders(t *testing.T) {
	r := NewRateLimiter()
	resp := &http.Response{Header: http.Header{}}
	resp.Header.Set(HeaderRateRemaining, "lots")

	r.UpdateFromResponse(resp, ResourceCore)
	r.UpdateFromResponse(nil, ResourceCore)

	assert.Equal(t, GitHubRateLimit, r.Quota(ResourceCore).Remaining)
}

func TestRateLimiter_Wait(t *testing.T) {
	t.Run("passes with quota", func(t *testing.T) {
		r := NewRateLimiterWithRate(rate.Inf, 1)
		require.NoError(t, r.Wait(context.Background(), ResourceCore))
	})

	t.Run("blocks until reset when exhausted", func(t *testing.T) {
		r := NewRateLimiterWithRate(rate.Inf, 1)
		r.UpdateFromResponse(quotaResponse(ResourceCore, "5000", "0", time.Now().Add(time.Hour)), ResourceCore)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		err := r.Wait(ctx, ResourceCore)
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("exhausted search does not block core", func(t *testing.T) {
		r := NewRateLimiterWithRate(rate.Inf, 1)
		r.UpdateFromResponse(quotaResponse(ResourceSearch, "30", "0", time.Now().Add(time.Minute)), ResourceSearch)

		require.NoError(t, r.Wait(context.Background(), ResourceCore))
	})

	t.Run("search keeps a smaller buffer", func(t *testing.T) {
		r := NewRateLimiterWithRate(rate.Inf, 1)
		r.UpdateFromResponse(quotaResponse(ResourceSearch, "30", "5", time.Now().Add(time.Minute)), ResourceSearch)

		require.NoError(t, r.Wait(context.Background(), ResourceSearch))
	})

	t.Run("does not block after reset has passed", func(t *testing.T) {
		r := NewRateLimiterWithRate(rate.Inf, 1)
		r.UpdateFromResponse(quotaResponse(ResourceCore, "5000", "0", time.Now().Add(-time.Minute)), ResourceCore)

		require.NoError(t, r.Wait(context.Background(), ResourceCore))
	})
}
