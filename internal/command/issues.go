package command

import "github.com/slarse/repomate/pkg/github"

// OpenIssue opens the issue in every student repository derived from the
// master repository names and the student list.
func OpenIssue(issue github.Issue, masterNames, students []string, api API) error {
	return api.OpenIssue(issue, StudentRepoNames(masterNames, students))
}

// CloseIssue closes every open issue whose title matches titleRegex in
// every student repository derived from the master repository names and
// the student list.
func CloseIssue(titleRegex string, masterNames, students []string, api API) error {
	return api.CloseIssue(titleRegex, StudentRepoNames(masterNames, students))
}
