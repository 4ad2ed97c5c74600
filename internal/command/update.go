package command

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/slarse/repomate/pkg/github"
	"github.com/slarse/repomate/pkg/gitrepo"
)

// UpdateStudentRepos pushes the current contents of the master repositories
// to the corresponding student repositories. When an issue is provided,
// repositories whose push failed get the issue opened instead of aborting
// the whole run; without an issue the first push failure is returned.
func UpdateStudentRepos(masterURLs, students []string, user string, api API, g Git, issue *github.Issue) error {
	workDir, err := os.MkdirTemp("", "repomate-update-")
	if err != nil {
		return fmt.Errorf("failed to create work directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(workDir) }()

	var failedRepos []string
	var firstPushErr error

	for _, masterURL := range masterURLs {
		masterName := gitrepo.RepoName(masterURL)

		localMaster := filepath.Join(workDir, masterName)
		if err := g.Clone(masterURL, localMaster); err != nil {
			return err
		}

		repoNames := StudentRepoNames([]string{masterName}, students)
		repoURLs, err := api.GetRepoURLs(repoNames)
		if err != nil {
			return err
		}

		for i, repoURL := range repoURLs {
			err := g.Push(localMaster, repoURL)
			if err == nil {
				continue
			}

			var pushErr *gitrepo.PushFailedError
			if !errors.As(err, &pushErr) {
				return err
			}

			slog.Warn("failed to update student repository", "repo", repoNames[i], "url", repoURL)
			failedRepos = append(failedRepos, repoNames[i])
			if firstPushErr == nil {
				firstPushErr = err
			}
		}

		slog.Info("updated student repositories",
			"master", masterName, "user", user, "failed", len(failedRepos))
	}

	if len(failedRepos) == 0 {
		return nil
	}

	if issue == nil {
		return firstPushErr
	}

	slog.Info("opening issue in repositories that failed to update", "repos", len(failedRepos))
	return api.OpenIssue(*issue, failedRepos)
}
