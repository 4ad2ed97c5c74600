package github

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/go-github/v66/github"
)

// requiredScopes are the OAUTH token scopes repomate needs: repo for
// repository access and admin:org for team management.
var requiredScopes = []string{"repo", "admin:org"}

// VerifySettings checks the user's settings in order: the user exists
// (which implicitly verifies the base url), the OAUTH token carries the
// required scopes, the organization exists, and the user is an owner of
// the organization. Verification aborts at the first failing check.
//
// This routine builds its own bare client and never goes through New, so
// it works even when the organization setting is the thing that is broken.
func VerifySettings(user, org, baseURL, token string) error {
	if token == "" {
		return fmt.Errorf("no OAUTH token provided, set the REPOMATE_OAUTH environment variable")
	}

	gh, err := newClient(baseURL, token)
	if err != nil {
		return err
	}
	ctx := context.Background()

	slog.Info("verifying settings", "user", user, "org", org, "base_url", baseURL)

	scopes, err := verifyUser(ctx, gh, user, baseURL)
	if err != nil {
		return err
	}
	slog.Info("user exists", "user", user)

	if err := verifyScopes(scopes); err != nil {
		return err
	}
	slog.Info("token scopes are valid", "scopes", scopes)

	if err := verifyOrg(ctx, gh, org); err != nil {
		return err
	}
	slog.Info("organization exists", "org", org)

	if err := verifyOwner(ctx, gh, user, org); err != nil {
		return err
	}
	slog.Info("user is an organization owner", "user", user, "org", org)

	slog.Info("all settings verified")
	return nil
}

// verifyUser checks that the user exists and returns the token scopes from
// the response headers.
func verifyUser(ctx context.Context, gh *github.Client, user, baseURL string) ([]string, error) {
	fetched, resp, err := gh.Users.Get(ctx, user)
	if err != nil {
		return nil, WrapAPIError(err,
			fmt.Sprintf("user %s (if the user exists, the base url %q may be wrong)", user, baseURL))
	}
	if fetched.GetLogin() != user {
		return nil, fmt.Errorf("fetched user %s does not match expected user %s", fetched.GetLogin(), user)
	}

	var scopes []string
	if header := resp.Header.Get("X-OAuth-Scopes"); header != "" {
		scopes = strings.Split(strings.ReplaceAll(header, " ", ""), ",")
	}
	return scopes, nil
}

// verifyScopes checks that all required token scopes are present.
func verifyScopes(scopes []string) error {
	have := make(map[string]bool, len(scopes))
	for _, scope := range scopes {
		have[scope] = true
	}

	var missing []string
	for _, required := range requiredScopes {
		if !have[required] {
			missing = append(missing, required)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("OAUTH token is missing required scopes: %s", strings.Join(missing, ", "))
	}
	return nil
}

func verifyOrg(ctx context.Context, gh *github.Client, org string) error {
	_, _, err := gh.Organizations.Get(ctx, org)
	if err != nil {
		return WrapAPIError(err, fmt.Sprintf("organization %s", org))
	}
	return nil
}

// verifyOwner checks that the user has the owner role in the organization.
func verifyOwner(ctx context.Context, gh *github.Client, user, org string) error {
	membership, _, err := gh.Organizations.GetOrgMembership(ctx, user, org)
	if err != nil {
		return WrapAPIError(err, fmt.Sprintf("membership of %s in organization %s", user, org))
	}

	if membership.GetRole() != "admin" {
		return fmt.Errorf("user %s is not an owner of organization %s (role: %s)",
			user, org, membership.GetRole())
	}
	return nil
}
