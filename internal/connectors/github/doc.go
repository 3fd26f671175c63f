// Package github implements the repository host on the GitHub REST API.
//
// # Architecture
//
//   - Client: wraps go-github with rate limiting and retries
//   - Host: maps API types onto the [driven.RepositoryHost] port
//   - RateLimiter: proactive and reactive request throttling
//   - RetryPolicy: bounded exponential backoff for transient failures
//
// # Authentication
//
// A personal access token is obtained lazily from a [driven.TokenProvider]
// on the first request and used for every call through an oauth2 static
// token source. Unauthenticated access is limited to 60 requests per hour
// and is not supported.
//
// # Rate Limiting
//
// The client implements a dual-strategy rate limiting approach:
//
//  1. Proactive throttling: a token bucket algorithm limits requests to
//     approximately 1.2 requests per second, staying well under the 5,000/hour
//     limit whilst maximising throughput.
//
//  2. Reactive handling: the client monitors X-RateLimit-Remaining and
//     X-RateLimit-Reset headers. When limits are exhausted, it waits until
//     the reset time before continuing.
//
// # Error Handling
//
//   - Rate limit errors: retried after the advertised reset
//   - Secondary rate limits: retried after Retry-After
//   - 5xx, 429 and network errors: retried with exponential backoff
//   - Other 4xx errors: returned immediately as [APIError]
//
// An empty repository (409 on the commits endpoint) is reported as having
// no commits.
//
// # Example Usage
//
//	client := github.NewClient(tokenProvider,
//	    github.WithRetryPolicy(github.RetryPolicyWithRetries(5)))
//	host := github.NewHost(client)
//
//	page, err := host.SearchRepositories(ctx, "language:go stars:>=10", 1, 100)
package github
