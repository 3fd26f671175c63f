package auth

import (
	"context"
	"os"
	"strings"

	"github.com/custodia-labs/repoqa-curate/internal/core/domain"
	"github.com/custodia-labs/repoqa-curate/internal/core/ports/driven"
)

// TokenEnvVar is the environment variable holding the GitHub token.
const TokenEnvVar = "GITHUB_TOKEN"

// Ensure EnvPATProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*EnvPATProvider)(nil)

// EnvPATProvider provides a static Personal Access Token read from the
// environment. PATs don't expire and don't require refresh.
type EnvPATProvider struct {
	variable string
}

// NewEnvPATProvider creates a token provider reading variable.
// An empty variable uses GITHUB_TOKEN.
func NewEnvPATProvider(variable string) *EnvPATProvider {
	if variable == "" {
		variable = TokenEnvVar
	}
	return &EnvPATProvider{variable: variable}
}

// GetToken returns the PAT, or domain.ErrAuthRequired when it is unset or blank.
func (p *EnvPATProvider) GetToken(_ context.Context) (string, error) {
	token := strings.TrimSpace(os.Getenv(p.variable))
	if token == "" {
		return "", domain.ErrAuthRequired
	}
	return token, nil
}

// IsAuthenticated returns true if a non-blank token is set.
func (p *EnvPATProvider) IsAuthenticated() bool {
	return strings.TrimSpace(os.Getenv(p.variable)) != ""
}

// Variable returns the environment variable the token is read from.
func (p *EnvPATProvider) Variable() string {
	return p.variable
}
