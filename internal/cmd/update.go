package cmd

import "github.com/spf13/cobra"

func newUpdateCmd(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update existing student repos.",
		Long: `Push changes from master repos to student repos. The master repos must be
available within the organization. They can be added manually, or with the
migrate command.`,
		RunE: r.runE(UpdateCmd),
	}

	addUserFlag(cmd, r.defaults)
	addStudentFlags(cmd, r.defaults)
	addRepoNameFlags(cmd, r.defaults)
	cmd.Flags().StringP(issueFlag, "i", "",
		"Path to issue to open in repos to which update pushes fail. "+
			"The first line is assumed to be the title.")
	return cmd
}
