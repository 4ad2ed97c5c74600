// Package command implements the administrative operations repomate
// dispatches to: team management, student repository setup and updates,
// bulk cloning, issue management and master repository migration.
package command

import "github.com/slarse/repomate/pkg/github"

// API is the slice of the hosting API the command operations consume.
type API interface {
	EnsureTeamsAndMembers(members map[string][]string) ([]github.Team, error)
	CreateRepos(specs []github.RepoSpec) ([]string, error)
	GetRepoURLs(names []string) ([]string, error)
	OpenIssue(issue github.Issue, repoNames []string) error
	CloseIssue(titleRegex string, repoNames []string) error
}

// Git is the slice of the git transport the command operations consume.
type Git interface {
	Clone(url, dst string) error
	Push(localPath, remoteURL string) error
}
