// Package github talks to a GitHub-compatible hosting API on behalf of
// repomate. It wraps the REST client with the operations the commands need
// (teams, repositories, issues, settings verification) and classifies API
// failures into a small error taxonomy consumed at the CLI boundary.
package github
