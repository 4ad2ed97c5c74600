package github

import (
	"fmt"
	"os"
	"strings"
)

// Token environment variables, checked in order. REPOMATE_OAUTH takes
// precedence; GITHUB_TOKEN is accepted for compatibility with CI setups.
const (
	TokenEnv         = "REPOMATE_OAUTH"
	FallbackTokenEnv = "GITHUB_TOKEN"
)

// ReadToken retrieves the OAUTH token from the process environment. The
// token is deliberately never a command line flag so it does not leak into
// shell history or process listings.
func ReadToken() (string, error) {
	if token := os.Getenv(TokenEnv); token != "" {
		return strings.TrimSpace(token), nil
	}
	if token := os.Getenv(FallbackTokenEnv); token != "" {
		return strings.TrimSpace(token), nil
	}
	return "", fmt.Errorf("no OAUTH token found: set the %s environment variable", TokenEnv)
}
