package cmd

import "github.com/spf13/cobra"

func newOpenIssueCmd(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open-issue",
		Short: "Open issues in student repos.",
		Long: `Open issues in student repositories. For each master repository specified,
the student list is traversed. For every student repo found, the issue
specified by the --issue option is opened. The first line of the issue file
is assumed to be the issue title.`,
		RunE: r.runE(OpenIssueCmd),
	}

	addStudentFlags(cmd, r.defaults)
	addRepoNameFlags(cmd, r.defaults)
	cmd.Flags().StringP(issueFlag, "i", "",
		"Path to an issue file. The first line is assumed to be the title.")
	_ = cmd.MarkFlagRequired(issueFlag)
	return cmd
}

func newCloseIssueCmd(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "close-issue",
		Short: "Close issues in student repos.",
		Long: `Close issues in student repos based on a regex. For each master repository
specified, the student list is traversed. For every student repo found, any
open issues whose titles match the --title-regex are closed.`,
		RunE: r.runE(CloseIssueCmd),
	}

	addStudentFlags(cmd, r.defaults)
	addRepoNameFlags(cmd, r.defaults)
	cmd.Flags().StringP(titleRegexFlag, "r", "",
		"Regex to match against titles. Any open issue with a matching title is closed.")
	_ = cmd.MarkFlagRequired(titleRegexFlag)
	return cmd
}
