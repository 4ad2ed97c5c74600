package command

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/slarse/repomate/pkg/github"
	"github.com/slarse/repomate/pkg/gitrepo"
)

// SetupStudentRepos sets up student repositories from master repositories:
// it creates the student teams, creates one student repository per master
// repository and student, and pushes the master contents to each of them.
// Previously completed steps are skipped, so re-running is safe.
func SetupStudentRepos(masterURLs, students []string, user string, api API, g Git) error {
	teams, err := api.EnsureTeamsAndMembers(teamsByStudent(students))
	if err != nil {
		return err
	}

	teamByName := make(map[string]github.Team, len(teams))
	for _, team := range teams {
		teamByName[team.Name] = team
	}

	workDir, err := os.MkdirTemp("", "repomate-setup-")
	if err != nil {
		return fmt.Errorf("failed to create work directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(workDir) }()

	for _, masterURL := range masterURLs {
		masterName := gitrepo.RepoName(masterURL)

		localMaster := filepath.Join(workDir, masterName)
		if err := g.Clone(masterURL, localMaster); err != nil {
			return err
		}
		slog.Info("cloned master repository", "master", masterName)

		specs := make([]github.RepoSpec, 0, len(students))
		for _, student := range students {
			specs = append(specs, github.RepoSpec{
				Name:        StudentRepoName(student, masterName),
				Description: fmt.Sprintf("%s created for %s", masterName, student),
				Private:     true,
				TeamID:      teamByName[student].ID,
			})
		}

		repoURLs, err := api.CreateRepos(specs)
		if err != nil {
			return err
		}

		for _, repoURL := range repoURLs {
			if err := g.Push(localMaster, repoURL); err != nil {
				return err
			}
		}
		slog.Info("pushed master files to student repositories",
			"master", masterName, "user", user, "repos", len(repoURLs))
	}

	return nil
}
