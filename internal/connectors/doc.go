// Package connectors groups the implementations of the driven ports that
// talk to external systems. Each subpackage knows one system:
//
//   - github: the GitHub REST API behind [driven.RepositoryHost]
//   - git: go-git clones behind [driven.Cloner]
package connectors
