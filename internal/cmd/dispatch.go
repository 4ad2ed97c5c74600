package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/slarse/repomate/internal/command"
	"github.com/slarse/repomate/pkg/github"
	"github.com/slarse/repomate/pkg/gitrepo"
)

// Dispatch invokes the command operation selected by the bundle. The
// verify-settings subcommand never reaches this function; it short-circuits
// during resolution. An unrecognized command value can only come from a
// defect in the schema and is reported as such, loudly.
func Dispatch(args *Args, api command.API, g command.Git) error {
	switch args.Command {
	case AddToTeamsCmd:
		return command.AddStudentsToTeams(args.Students, api)
	case SetupCmd:
		return command.SetupStudentRepos(args.MasterRepoURLs, args.Students, args.User, api, g)
	case UpdateCmd:
		return command.UpdateStudentRepos(args.MasterRepoURLs, args.Students, args.User, api, g, args.Issue)
	case OpenIssueCmd:
		return command.OpenIssue(*args.Issue, args.MasterRepoNames, args.Students, api)
	case CloseIssueCmd:
		return command.CloseIssue(args.TitleRegex, args.MasterRepoNames, args.Students, api)
	case MigrateCmd:
		return command.MigrateRepos(args.MasterRepoURLs, args.User, api, g)
	case CloneCmd:
		return command.CloneRepos(args.MasterRepoNames, args.Students, api, g)
	default:
		panic(fmt.Sprintf("illegal command %q: this is a bug, please open an issue", args.Command))
	}
}

// expectedFailure recognizes the failure kinds that warrant a clean exit:
// file errors, clone/push failures, other git faults, and hosting API
// faults. It returns the human-readable diagnostic to log for them.
func expectedFailure(err error) (string, bool) {
	var pushErr *gitrepo.PushFailedError
	if errors.As(err, &pushErr) {
		return fmt.Sprintf("There was an error pushing to %s. "+
			"Verify that your token has adequate access.", pushErr.URL), true
	}

	var cloneErr *gitrepo.CloneFailedError
	if errors.As(err, &cloneErr) {
		return fmt.Sprintf("There was an error cloning from %s. "+
			"Does the repo really exist?", cloneErr.URL), true
	}

	var gitErr *gitrepo.GitError
	if errors.As(err, &gitErr) {
		return "Something went wrong with git. See the logs for info.", true
	}

	var fileErr *FileError
	if errors.As(err, &fileErr) {
		return fileErr.Error(), true
	}

	var apiErr *github.APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("Exiting because of %s", apiErr.Error()), true
	}

	return "", false
}

// handle translates expected failures into a logged diagnostic and exit
// status 1. Every other fault is a defect and propagates as a panic so the
// full diagnostic detail is preserved rather than silently swallowed.
func (r *runner) handle(err error) error {
	if err == nil {
		return nil
	}

	if msg, ok := expectedFailure(err); ok {
		slog.Error(msg)
		r.exit(1)
		return nil
	}

	panic(err)
}
