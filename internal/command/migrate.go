package command

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/slarse/repomate/pkg/github"
	"github.com/slarse/repomate/pkg/gitrepo"
)

// MasterTeam is the team that migrated master repositories are added to.
const MasterTeam = "master-repos"

// MigrateRepos copies master repositories into the target organization so
// they can serve as the basis for student repositories. The user is added
// to the master team. Running the command again pushes the current contents
// of the sources, updating already migrated repositories.
func MigrateRepos(masterURLs []string, user string, api API, g Git) error {
	teams, err := api.EnsureTeamsAndMembers(map[string][]string{MasterTeam: {user}})
	if err != nil {
		return err
	}

	var masterTeam github.Team
	for _, team := range teams {
		if team.Name == MasterTeam {
			masterTeam = team
			break
		}
	}

	workDir, err := os.MkdirTemp("", "repomate-migrate-")
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

		repoURLs, err := api.CreateRepos([]github.RepoSpec{{
			Name:        masterName,
			Description: fmt.Sprintf("Master repository %s", masterName),
			Private:     true,
			TeamID:      masterTeam.ID,
		}})
		if err != nil {
			return err
		}

		if err := g.Push(localMaster, repoURLs[0]); err != nil {
			return err
		}
		slog.Info("migrated master repository", "master", masterName, "url", repoURLs[0])
	}

	return nil
}
