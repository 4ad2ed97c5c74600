package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"
)

// API is an authenticated handle to a GitHub-compatible hosting API, scoped
// to a single organization.
type API struct {
	gh         *github.Client
	ctx        context.Context
	org        string
	orgHTMLURL string
}

// New constructs an authenticated API handle and verifies that the target
// organization is reachable. A not-found condition surfaces as an APIError
// of the not_found kind; callers enrich the message since at this point it
// is ambiguous whether the organization or the base url is wrong.
func New(baseURL, token, org string) (*API, error) {
	gh, err := newClient(baseURL, token)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()

	var orgInfo *github.Organization
	err = WithRetry(func() error {
		var err error
		orgInfo, _, err = gh.Organizations.Get(ctx, org)
		if err != nil {
			return WrapAPIError(err, fmt.Sprintf("organization %s", org))
		}
		return nil
	}, DefaultRetryConfig())
	if err != nil {
		return nil, err
	}

	htmlURL := orgInfo.GetHTMLURL()
	if htmlURL == "" {
		htmlURL = fmt.Sprintf("%s/%s", hostURL(baseURL), org)
	}

	return &API{gh: gh, ctx: ctx, org: org, orgHTMLURL: htmlURL}, nil
}

// newClient creates a go-github client against the given API base url.
func newClient(baseURL, token string) (*github.Client, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(context.Background(), ts)

	gh := github.NewClient(tc)
	if baseURL != "" && !strings.Contains(baseURL, "api.github.com") {
		var err error
		gh, err = gh.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
		}
	}
	return gh, nil
}

// hostURL strips the API path from a base url, yielding the web host that
// repository URLs live under. For api.github.com that host is github.com.
func hostURL(baseURL string) string {
	host := strings.TrimRight(baseURL, "/")
	host = strings.TrimSuffix(host, "/api/v3")
	return strings.Replace(host, "api.github.com", "github.com", 1)
}

// Org returns the name of the target organization.
func (a *API) Org() string {
	return a.org
}

// GetRepoURLs constructs URLs for the named repositories in the target
// organization. The URLs are the expected shape only: existence of the
// remote repositories is NOT verified here, since checking each name takes
// a round trip per repository. Missing repositories fail later, at use
// time, with a clone or push error naming the URL.
func (a *API) GetRepoURLs(names []string) ([]string, error) {
	urls := make([]string, 0, len(names))
	for _, name := range names {
		urls = append(urls, fmt.Sprintf("%s/%s", a.orgHTMLURL, name))
	}
	return urls, nil
}

// EnsureTeamsAndMembers creates any missing teams and adds the listed
// members to them. Existing teams are reused, which makes the operation
// safe to repeat.
func (a *API) EnsureTeamsAndMembers(members map[string][]string) ([]Team, error) {
	existing, err := a.listTeams()
	if err != nil {
		return nil, err
	}

	bySlug := make(map[string]Team, len(existing))
	for _, team := range existing {
		bySlug[team.Slug] = team
	}

	teams := make([]Team, 0, len(members))
	for name, users := range members {
		team, ok := bySlug[slugify(name)]
		if !ok {
			team, err = a.createTeam(name)
			if err != nil {
				return nil, err
			}
			slog.Info("created team", "team", name)
		}
		teams = append(teams, team)

		for _, user := range users {
			if err := a.addTeamMember(team.Slug, user); err != nil {
				return nil, err
			}
		}
	}
	return teams, nil
}

// listTeams fetches all teams in the organization.
func (a *API) listTeams() ([]Team, error) {
	opts := &github.ListOptions{PerPage: 100}

	var all []Team
	err := WithRetry(func() error {
		all = nil
		opts.Page = 0

		for {
			teams, resp, err := a.gh.Teams.ListTeams(a.ctx, a.org, opts)
			if err != nil {
				return WrapAPIError(err, fmt.Sprintf("teams of organization %s", a.org))
			}

			for _, team := range teams {
				all = append(all, Team{ID: team.GetID(), Name: team.GetName(), Slug: team.GetSlug()})
			}

			if resp.NextPage == 0 {
				break
			}
			opts.Page = resp.NextPage
		}
		return nil
	}, DefaultRetryConfig())

	return all, err
}

// createTeam creates a closed team with the given name.
func (a *API) createTeam(name string) (Team, error) {
	var created *github.Team

	err := WithRetry(func() error {
		var err error
		created, _, err = a.gh.Teams.CreateTeam(a.ctx, a.org, github.NewTeam{
			Name:    name,
			Privacy: github.String("closed"),
		})
		if err != nil {
			return WrapAPIError(err, fmt.Sprintf("team %s", name))
		}
		return nil
	}, DefaultRetryConfig())
	if err != nil {
		return Team{}, err
	}

	return Team{ID: created.GetID(), Name: created.GetName(), Slug: created.GetSlug()}, nil
}

// addTeamMember adds a user to a team. Adding an existing member is a
// no-op on the API side.
func (a *API) addTeamMember(slug, user string) error {
	return WithRetry(func() error {
		_, _, err := a.gh.Teams.AddTeamMembershipBySlug(a.ctx, a.org, slug, user, nil)
		if err != nil {
			return WrapAPIError(err, fmt.Sprintf("membership of %s in team %s", user, slug))
		}
		return nil
	}, DefaultRetryConfig())
}

// CreateRepos creates the specified repositories in the target organization
// and returns their URLs in the same order. Repositories that already exist
// are reused rather than recreated.
func (a *API) CreateRepos(specs []RepoSpec) ([]string, error) {
	urls := make([]string, 0, len(specs))
	for _, spec := range specs {
		url, err := a.createRepo(spec)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (a *API) createRepo(spec RepoSpec) (string, error) {
	repo := &github.Repository{
		Name:        github.String(spec.Name),
		Description: github.String(spec.Description),
		Private:     github.Bool(spec.Private),
	}
	if spec.TeamID != 0 {
		repo.TeamID = github.Int64(spec.TeamID)
	}

	var created *github.Repository
	err := WithRetry(func() error {
		var err error
		created, _, err = a.gh.Repositories.Create(a.ctx, a.org, repo)
		if err != nil {
			return WrapAPIError(err, fmt.Sprintf("repository %s/%s", a.org, spec.Name))
		}
		return nil
	}, DefaultRetryConfig())

	if err != nil {
		var apiErr *APIError
		if !errors.As(err, &apiErr) || apiErr.Kind != KindValidation {
			return "", err
		}

		// Name taken: the repo exists from an earlier run, reuse it.
		slog.Info("repository already exists", "repo", spec.Name)
		existing, getErr := a.getRepo(spec.Name)
		if getErr != nil {
			return "", getErr
		}
		return existing.GetHTMLURL(), nil
	}

	slog.Info("created repository", "repo", spec.Name)
	return created.GetHTMLURL(), nil
}

func (a *API) getRepo(name string) (*github.Repository, error) {
	var repo *github.Repository
	err := WithRetry(func() error {
		var err error
		repo, _, err = a.gh.Repositories.Get(a.ctx, a.org, name)
		if err != nil {
			return WrapAPIError(err, fmt.Sprintf("repository %s/%s", a.org, name))
		}
		return nil
	}, DefaultRetryConfig())
	return repo, err
}

// OpenIssue opens the issue in every named repository.
func (a *API) OpenIssue(issue Issue, repoNames []string) error {
	req := &github.IssueRequest{
		Title: github.String(issue.Title),
		Body:  github.String(issue.Body),
	}

	for _, name := range repoNames {
		err := WithRetry(func() error {
			_, _, err := a.gh.Issues.Create(a.ctx, a.org, name, req)
			if err != nil {
				return WrapAPIError(err, fmt.Sprintf("issue in %s/%s", a.org, name))
			}
			return nil
		}, DefaultRetryConfig())
		if err != nil {
			return err
		}
		slog.Info("opened issue", "repo", name, "title", issue.Title)
	}
	return nil
}

// CloseIssue closes every open issue whose title matches titleRegex, in
// every named repository.
func (a *API) CloseIssue(titleRegex string, repoNames []string) error {
	pattern, err := regexp.Compile(titleRegex)
	if err != nil {
		return fmt.Errorf("invalid title regex %q: %w", titleRegex, err)
	}

	for _, name := range repoNames {
		issues, err := a.listOpenIssues(name)
		if err != nil {
			return err
		}

		for _, issue := range issues {
			if !pattern.MatchString(issue.GetTitle()) {
				continue
			}
			if err := a.closeIssue(name, issue.GetNumber()); err != nil {
				return err
			}
			slog.Info("closed issue", "repo", name, "number", issue.GetNumber(), "title", issue.GetTitle())
		}
	}
	return nil
}

func (a *API) listOpenIssues(repoName string) ([]*github.Issue, error) {
	opts := &github.IssueListByRepoOptions{
		State:       "open",
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var all []*github.Issue
	err := WithRetry(func() error {
		all = nil
		opts.Page = 0

		for {
			issues, resp, err := a.gh.Issues.ListByRepo(a.ctx, a.org, repoName, opts)
			if err != nil {
				return WrapAPIError(err, fmt.Sprintf("issues of %s/%s", a.org, repoName))
			}
			all = append(all, issues...)

			if resp.NextPage == 0 {
				break
			}
			opts.Page = resp.NextPage
		}
		return nil
	}, DefaultRetryConfig())

	return all, err
}

func (a *API) closeIssue(repoName string, number int) error {
	return WithRetry(func() error {
		_, _, err := a.gh.Issues.Edit(a.ctx, a.org, repoName, number, &github.IssueRequest{
			State: github.String("closed"),
		})
		if err != nil {
			return WrapAPIError(err, fmt.Sprintf("issue %d in %s/%s", number, a.org, repoName))
		}
		return nil
	}, DefaultRetryConfig())
}

// slugify approximates the hosting API's team slug derivation.
func slugify(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", "-"))
}
