// Package gitrepo wraps the go-git transport used by repomate: detecting
// local repositories, cloning master repositories and pushing their contents
// to student repositories. All failures surface as the typed errors in this
// package so the CLI boundary can translate them uniformly.
package gitrepo

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
)

// mirrorRefSpec pushes every local branch to the same name on the remote.
const mirrorRefSpec = "+refs/heads/*:refs/heads/*"

// Client performs git operations authenticated with an OAuth token.
type Client struct {
	// User is the acting username. Some hosting APIs ignore it for token
	// auth but a non-empty username is required by the HTTP transport.
	User  string
	Token string
}

// NewClient creates a git client for the given user and token.
func NewClient(user, token string) *Client {
	if user == "" {
		user = "oauth2"
	}
	return &Client{User: user, Token: token}
}

// IsRepo reports whether path holds a git repository.
func IsRepo(path string) bool {
	_, err := git.PlainOpen(path)
	return err == nil
}

// FileURI converts an absolute filesystem path to a file scheme URI.
func FileURI(abs string) string {
	return "file://" + filepath.ToSlash(abs)
}

// RepoName extracts the repository name from a URL or URI, dropping any
// trailing .git suffix.
func RepoName(url string) string {
	trimmed := strings.TrimSuffix(strings.TrimRight(url, "/"), ".git")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}

// Clone clones the repository at url into dst.
func (c *Client) Clone(url, dst string) error {
	_, err := git.PlainClone(dst, false, &git.CloneOptions{
		URL:  url,
		Auth: c.auth(url),
	})
	if err != nil {
		return &CloneFailedError{URL: url, Cause: err}
	}
	return nil
}

// Push pushes all branches of the repository at localPath to remoteURL.
// The repository does not need any remote configured; the push goes through
// an anonymous remote. An up-to-date remote is not an error.
func (c *Client) Push(localPath, remoteURL string) error {
	repo, err := git.PlainOpen(localPath)
	if err != nil {
		return &GitError{Message: fmt.Sprintf("open repository at %s", localPath), Cause: err}
	}

	remote, err := repo.CreateRemoteAnonymous(&gitconfig.RemoteConfig{
		Name: "anonymous",
		URLs: []string{remoteURL},
	})
	if err != nil {
		return &GitError{Message: fmt.Sprintf("configure remote %s", remoteURL), Cause: err}
	}

	err = remote.Push(&git.PushOptions{
		RemoteName: "anonymous",
		RefSpecs:   []gitconfig.RefSpec{mirrorRefSpec},
		Auth:       c.auth(remoteURL),
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return &PushFailedError{URL: remoteURL, Cause: err}
	}
	return nil
}

// auth returns HTTP basic auth for remote URLs. Local file URIs and paths
// use no auth; go-git's file transport rejects auth methods.
func (c *Client) auth(url string) transport.AuthMethod {
	if c.Token == "" || !strings.HasPrefix(url, "http") {
		return nil
	}
	return &githttp.BasicAuth{Username: c.User, Password: c.Token}
}
