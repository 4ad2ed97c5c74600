package command

import (
	"log/slog"

	"github.com/slarse/repomate/pkg/gitrepo"
)

// CloneRepos clones all student repositories derived from the master
// repository names and the student list into the current working directory.
func CloneRepos(masterNames, students []string, api API, g Git) error {
	repoNames := StudentRepoNames(masterNames, students)

	repoURLs, err := api.GetRepoURLs(repoNames)
	if err != nil {
		return err
	}

	for _, repoURL := range repoURLs {
		dst := gitrepo.RepoName(repoURL)
		if err := g.Clone(repoURL, dst); err != nil {
			return err
		}
		slog.Info("cloned student repository", "repo", dst)
	}

	return nil
}
