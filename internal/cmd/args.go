package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/slarse/repomate/pkg/github"
	"github.com/slarse/repomate/pkg/gitrepo"
)

// Command identifies one of the administrative subcommands.
type Command string

const (
	SetupCmd      Command = "setup"
	UpdateCmd     Command = "update"
	MigrateCmd    Command = "migrate"
	CloneCmd      Command = "clone"
	AddToTeamsCmd Command = "add-to-teams"
	OpenIssueCmd  Command = "open-issue"
	CloseIssueCmd Command = "close-issue"
	VerifyCmd     Command = "verify-settings"
)

// Args is the parsed and resolved argument bundle for one invocation.
// It is built once after parsing and never mutated. Master repository URLs
// and names are always resolved together: either the command does not take
// repositories, or both fields are populated.
type Args struct {
	Command         Command
	OrgName         string
	BaseURL         string
	User            string
	MasterRepoURLs  []string
	MasterRepoNames []string
	Students        []string
	Issue           *github.Issue
	TitleRegex      string
}

// FileError reports a problem with a user-supplied file: missing, not a
// regular file, or empty. It is raised before any network activity.
type FileError struct {
	Path   string
	Reason string
}

// Error implements the error interface.
func (e *FileError) Error() string {
	return fmt.Sprintf("'%s' %s", e.Path, e.Reason)
}

// stringFlag returns the flag's value, or "" when the subcommand does not
// define the flag.
func stringFlag(cmd *cobra.Command, name string) string {
	if cmd.Flags().Lookup(name) == nil {
		return ""
	}
	value, _ := cmd.Flags().GetString(name)
	return value
}

// sliceFlag returns the flag's values, or nil when the subcommand does not
// define the flag.
func sliceFlag(cmd *cobra.Command, name string) []string {
	if cmd.Flags().Lookup(name) == nil {
		return nil
	}
	values, _ := cmd.Flags().GetStringSlice(name)
	return values
}

// extractStudents resolves the student list from the parsed flags. An
// inline list wins; otherwise the students file is read and validated.
// Neither source present yields nil without error: subcommands that need
// students enforce presence through the schema.
func extractStudents(cmd *cobra.Command) ([]string, error) {
	if students := sliceFlag(cmd, studentsFlag); len(students) > 0 {
		return students, nil
	}

	path := stringFlag(cmd, studentsFileFlag)
	if path == "" {
		return nil, nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &FileError{Path: path, Reason: "could not be resolved"}
	}

	info, err := os.Stat(abs)
	if err != nil || !info.Mode().IsRegular() {
		return nil, &FileError{Path: abs, Reason: "is not a file"}
	}
	if info.Size() == 0 {
		return nil, &FileError{Path: abs, Reason: "is empty"}
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, &FileError{Path: abs, Reason: "could not be read"}
	}

	var students []string
	for _, line := range strings.Split(string(data), "\n") {
		student := strings.TrimSpace(line)
		if student != "" {
			students = append(students, student)
		}
	}
	return students, nil
}

// readIssue reads an issue from a file: the first line is the title, the
// remainder is the body.
func readIssue(path string) (*github.Issue, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &FileError{Path: path, Reason: "could not be resolved"}
	}

	info, err := os.Stat(abs)
	if err != nil || !info.Mode().IsRegular() {
		return nil, &FileError{Path: abs, Reason: "is not a file"}
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, &FileError{Path: abs, Reason: "could not be read"}
	}

	title, body, _ := strings.Cut(string(data), "\n")
	return &github.Issue{Title: strings.TrimSpace(title), Body: body}, nil
}

// urlResolver is the slice of the API needed to resolve repository names.
type urlResolver interface {
	GetRepoURLs(names []string) ([]string, error)
}

// repoNamesToURLs resolves repository names to URLs. Names matching a git
// repository at their absolute path become local file URIs; all other names
// get URLs in the target organization. The existence of the remote
// repositories is NOT verified here, only the URL shape is constructed;
// missing repositories fail at use time. Remote URLs come first in the
// result, then local URIs.
func repoNamesToURLs(names []string, api urlResolver) ([]string, error) {
	var local []string
	var nonLocal []string

	for _, name := range names {
		abs, err := filepath.Abs(name)
		if err == nil && gitrepo.IsRepo(abs) {
			local = append(local, abs)
		} else {
			nonLocal = append(nonLocal, name)
		}
	}

	urls, err := api.GetRepoURLs(nonLocal)
	if err != nil {
		return nil, err
	}

	for _, abs := range local {
		urls = append(urls, gitrepo.FileURI(abs))
	}
	return urls, nil
}
