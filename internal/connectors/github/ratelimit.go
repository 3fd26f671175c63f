package github

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/repoqa-curate/internal/logger"
)

// Rate limit resources, as named by the X-RateLimit-Resource header.
const (
	ResourceCore   = "core"
	ResourceSearch = "search"
)

const (
	// GitHubRateLimit is the authenticated core rate limit (5000/hour).
	GitHubRateLimit = 5000

	// SearchRateLimit is the authenticated search limit (30/minute).
	SearchRateLimit = 30

	// ProactiveRate is the core throttle rate (~1.2 req/sec = 4320/hr).
	ProactiveRate = 1.2

	// SearchProactiveRate keeps search just under 30 requests a minute.
	SearchProactiveRate = 0.45

	// MinBuffer is the core requests held back before waiting for reset.
	MinBuffer = 100

	// SearchMinBuffer is the search requests held back before waiting for reset.
	SearchMinBuffer = 2

	// HeaderRateLimit is the rate limit header.
	HeaderRateLimit = "X-RateLimit-Limit"

	// HeaderRateRemaining is the remaining requests header.
	HeaderRateRemaining = "X-RateLimit-Remaining"

	// HeaderRateReset is the reset timestamp header (Unix seconds).
	HeaderRateReset = "X-RateLimit-Reset"

	// HeaderRateResource names the quota a response was counted against.
	HeaderRateResource = "X-RateLimit-Resource"
)

// Quota is a snapshot of one resource's limit as last reported by the API.
type Quota struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
}

type resourceState struct {
	quota     Quota
	bucket    *rate.Limiter
	minBuffer int
}

// RateLimiter throttles requests per GitHub rate limit resource. Each
// resource has a token bucket for proactive pacing and a quota tracked from
// response headers; when the quota drops under its buffer, Wait blocks until
// the reported reset.
type RateLimiter struct {
	mu        sync.Mutex
	resources map[string]*resourceState
}

// NewRateLimiter creates a rate limiter paced for the core and search quotas.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{resources: map[string]*resourceState{
		ResourceCore:   newResourceState(GitHubRateLimit, rate.Limit(ProactiveRate), 1, MinBuffer),
		ResourceSearch: newResourceState(SearchRateLimit, rate.Limit(SearchProactiveRate), 1, SearchMinBuffer),
	}}
}

// NewRateLimiterWithRate creates a rate limiter whose buckets all use r and
// burst. rate.Inf disables proactive throttling.
func NewRateLimiterWithRate(r rate.Limit, burst int) *RateLimiter {
	return &RateLimiter{resources: map[string]*resourceState{
		ResourceCore:   newResourceState(GitHubRateLimit, r, burst, MinBuffer),
		ResourceSearch: newResourceState(SearchRateLimit, r, burst, SearchMinBuffer),
	}}
}

func newResourceState(limit int, r rate.Limit, burst, minBuffer int) *resourceState {
	return &resourceState{
		quota:     Quota{Limit: limit, Remaining: limit},
		bucket:    rate.NewLimiter(r, burst),
		minBuffer: minBuffer,
	}
}

// state returns the entry for resource, creating a core-shaped one for
// resources GitHub reports that are not preconfigured.
func (r *RateLimiter) state(resource string) *resourceState {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.resources[resource]
	if !ok {
		s = newResourceState(GitHubRateLimit, r.resources[ResourceCore].bucket.Limit(), 1, MinBuffer)
		r.resources[resource] = s
	}
	return s
}

// Wait blocks until a request against resource may be sent.
func (r *RateLimiter) Wait(ctx context.Context, resource string) error {
	s := r.state(resource)
	if err := s.bucket.Wait(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	q := s.quota
	r.mu.Unlock()

	if q.Remaining >= s.minBuffer || !time.Now().Before(q.ResetAt) {
		return nil
	}

	logger.Warn("GitHub %s quota low (%d/%d), waiting until %s",
		resource, q.Remaining, q.Limit, q.ResetAt.Format(time.RFC3339))
	timer := time.NewTimer(time.Until(q.ResetAt))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// UpdateFromResponse records the quota reported in resp's headers. The
// resource header decides which quota is updated; fallback is used when the
// header is missing.
func (r *RateLimiter) UpdateFromResponse(resp *http.Response, fallback string) {
	if resp == nil {
		return
	}
	resource := resp.Header.Get(HeaderRateResource)
	if resource == "" {
		resource = fallback
	}
	s := r.state(resource)

	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := headerInt(resp, HeaderRateRemaining); ok {
		s.quota.Remaining = int(v)
	}
	if v, ok := headerInt(resp, HeaderRateLimit); ok {
		s.quota.Limit = int(v)
	}
	if v, ok := headerInt(resp, HeaderRateReset); ok {
		s.quota.ResetAt = time.Unix(v, 0)
	}
}

func headerInt(resp *http.Response, name string) (int64, bool) {
	raw := resp.Header.Get(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	return v, err == nil
}

// Quota returns the last known quota for resource.
func (r *RateLimiter) Quota(resource string) Quota {
	s := r.state(resource)
	r.mu.Lock()
	defer r.mu.Unlock()
	return s.quota
}
