package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/slarse/repomate/internal/command"
	"github.com/slarse/repomate/internal/plugin"
	"github.com/slarse/repomate/pkg/config"
	"github.com/slarse/repomate/pkg/github"
	"github.com/slarse/repomate/pkg/gitrepo"
)

// runner holds the collaborators of the dispatch layer. The fields are
// swappable so tests can observe exits and stub the network.
type runner struct {
	defaults  config.Defaults
	exit      func(int)
	readToken func() (string, error)
	connect   func(baseURL, token, org string) (command.API, error)
	verify    func(user, org, baseURL, token string) error
	newGit    func(user, token string) command.Git
}

func newRunner(defaults config.Defaults) *runner {
	return &runner{
		defaults:  defaults,
		exit:      os.Exit,
		readToken: github.ReadToken,
		verify:    github.VerifySettings,
		connect: func(baseURL, token, org string) (command.API, error) {
			return github.New(baseURL, token, org)
		},
		newGit: func(user, token string) command.Git {
			return gitrepo.NewClient(user, token)
		},
	}
}

// NewRootCommand builds the full command grammar from the configured
// defaults. Flags with a configured default are optional and pre-filled;
// the rest stay required.
func NewRootCommand(defaults config.Defaults) *cobra.Command {
	return newRootCommand(newRunner(defaults))
}

func newRootCommand(r *runner) *cobra.Command {
	root := &cobra.Command{
		Use:   "repomate",
		Short: "A CLI tool for administrating student repositories.",
		Long: `Repomate is a command-line tool for instructors managing per-student copies
of master repositories on a GitHub-compatible hosting API. It creates student
teams, sets up and updates student repositories, opens and closes issues in
bulk, and migrates master repositories into the target organization.`,
	}

	root.AddCommand(
		newSetupCmd(r),
		newUpdateCmd(r),
		newMigrateCmd(r),
		newCloneCmd(r),
		newAddToTeamsCmd(r),
		newOpenIssueCmd(r),
		newCloseIssueCmd(r),
		newVerifyCmd(r),
		newInitCmd(),
	)
	return root
}

// Execute loads the configured defaults, fires the configuration hooks,
// builds the schema and runs the selected command. The returned value is
// the process exit code.
func Execute() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		return 1
	}

	defaults := cfg.Defaults()
	plugin.FireConfigLoaded(defaults)

	root := NewRootCommand(defaults)
	if err := root.Execute(); err != nil {
		// Cobra has already printed the parse/usage error.
		return 1
	}
	return 0
}

// runE wraps resolution and dispatch for one subcommand, funneling every
// failure through the uniform exit-code translation.
func (r *runner) runE(action Command) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		// verify-settings short-circuits: no API handle is constructed
		// and no student or repository resolution happens.
		if action == VerifyCmd {
			token, _ := r.readToken()
			return r.handle(r.verify(
				stringFlag(cmd, userFlag),
				stringFlag(cmd, orgNameFlag),
				stringFlag(cmd, baseURLFlag),
				token,
			))
		}

		// Only the clone subcommand exposes the post-parse hook.
		if action == CloneCmd {
			plugin.FireCloneParsed(cmd)
		}

		args, api, g, err := r.resolve(cmd, action)
		if err != nil {
			return r.handle(err)
		}
		return r.handle(Dispatch(args, api, g))
	}
}

// resolve turns the parsed flags into the immutable argument bundle plus
// the connected collaborators the dispatcher needs.
func (r *runner) resolve(cmd *cobra.Command, action Command) (*Args, command.API, command.Git, error) {
	orgName := stringFlag(cmd, orgNameFlag)
	baseURL := stringFlag(cmd, baseURLFlag)
	user := stringFlag(cmd, userFlag)

	token, err := r.readToken()
	if err != nil {
		return nil, nil, nil, &github.APIError{Kind: github.KindAuth, Message: err.Error()}
	}

	// Student extraction happens before any network activity so file
	// problems surface immediately.
	students, err := extractStudents(cmd)
	if err != nil {
		return nil, nil, nil, err
	}

	api, err := r.connectToAPI(baseURL, token, orgName)
	if err != nil {
		return nil, nil, nil, err
	}

	masterURLs, masterNames, err := resolveMasterRepos(cmd, action, api)
	if err != nil {
		return nil, nil, nil, err
	}

	var issue *github.Issue
	if path := stringFlag(cmd, issueFlag); path != "" {
		issue, err = readIssue(path)
		if err != nil {
			return nil, nil, nil, err
		}
	} else if action == OpenIssueCmd {
		// An empty --issue value satisfies the required-flag check but
		// names no file.
		return nil, nil, nil, &FileError{Path: path, Reason: "is not a file"}
	}

	args := &Args{
		Command:         action,
		OrgName:         orgName,
		BaseURL:         baseURL,
		User:            user,
		MasterRepoURLs:  masterURLs,
		MasterRepoNames: masterNames,
		Students:        students,
		Issue:           issue,
		TitleRegex:      stringFlag(cmd, titleRegexFlag),
	}
	return args, api, r.newGit(user, token), nil
}

// connectToAPI establishes the authenticated API handle. A not-found
// condition is ambiguous at this point, so it is re-raised with a message
// naming both possible causes.
func (r *runner) connectToAPI(baseURL, token, orgName string) (command.API, error) {
	api, err := r.connect(baseURL, token, orgName)
	if err != nil {
		var apiErr *github.APIError
		if errors.As(err, &apiErr) && apiErr.Kind == github.KindNotFound {
			return nil, github.NewNotFoundError(fmt.Sprintf(
				"either organization %s could not be found, or the base url '%s' is incorrect",
				orgName, baseURL), err)
		}
		return nil, err
	}
	return api, nil
}

// resolveMasterRepos resolves master repository URLs and names together.
// add-to-teams takes no repositories; migrate accepts URLs directly; every
// other subcommand starts from names.
func resolveMasterRepos(cmd *cobra.Command, action Command, api command.API) ([]string, []string, error) {
	if action == AddToTeamsCmd {
		return nil, nil, nil
	}

	if urls := sliceFlag(cmd, masterURLsFlag); len(urls) > 0 {
		names := make([]string, 0, len(urls))
		for _, url := range urls {
			names = append(names, gitrepo.RepoName(url))
		}
		return urls, names, nil
	}

	names := sliceFlag(cmd, masterNamesFlag)
	urls, err := repoNamesToURLs(names, api)
	if err != nil {
		return nil, nil, err
	}
	return urls, names, nil
}
