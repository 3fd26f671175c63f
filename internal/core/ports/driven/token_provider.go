package driven

import "context"

// TokenProvider provides access tokens for authenticated API calls.
type TokenProvider interface {
	// GetToken returns a valid access token.
	// Returns domain.ErrAuthRequired when none is configured.
	GetToken(ctx context.Context) (string, error)

	// IsAuthenticated returns true if a token is available.
	IsAuthenticated() bool
}
