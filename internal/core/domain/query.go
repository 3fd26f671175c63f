package domain

import (
	"fmt"
	"strings"
)

// Fixed search constraints.
const (
	// MinRepoSizeKB and MaxRepoSizeKB bound repository size (50KB to 10MB).
	MinRepoSizeKB = 50
	MaxRepoSizeKB = 10000
)

// AllowedLicenses are the permissive licenses a repository must carry.
var AllowedLicenses = []string{"mit", "apache-2.0"}

// QueryConstraints are the caller-controlled parts of a repository search.
type QueryConstraints struct {
	Language string
	MinStars int

	// PushedSince is a YYYY-MM-DD date.
	PushedSince string
}

// BuildSearchQuery renders constraints into a repository search query string.
// No validation is done; malformed constraints produce a malformed query.
func BuildSearchQuery(c QueryConstraints) string {
	parts := []string{
		"language:" + c.Language,
		fmt.Sprintf("stars:>=%d", c.MinStars),
	}
	for _, l := range AllowedLicenses {
		parts = append(parts, "license:"+l)
	}
	parts = append(parts,
		"pushed:>="+c.PushedSince,
		fmt.Sprintf("size:%d..%d", MinRepoSizeKB, MaxRepoSizeKB),
	)
	return strings.Join(parts, " ")
}
