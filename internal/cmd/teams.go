package cmd

import "github.com/spf13/cobra"

func newAddToTeamsCmd(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-to-teams",
		Short: "Create student teams and add students to them.",
		Long: `Create student teams and add students to them. This command is automatically
executed by the setup command. It exists mostly to be able to quickly add
students to their teams if their accounts had not been activated at the time
of creating the repositories. If you are unsure whether all the other steps
(repo creation, pushing files etc) have been performed for the students in
question, run the setup command instead.`,
		RunE: r.runE(AddToTeamsCmd),
	}

	addStudentFlags(cmd, r.defaults)
	addBaseFlags(cmd, r.defaults)
	return cmd
}
