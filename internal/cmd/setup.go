package cmd

import "github.com/spf13/cobra"

func newSetupCmd(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Setup student repos.",
		Long: `Setup student repositories based on master repositories. This command
performs three primary actions: sets up the student teams, creates one student
repository for each master repository, and finally pushes the master repo
files to the corresponding student repos. It is perfectly safe to run this
command several times, as any previously performed step will simply be
skipped. The master repo is assumed to be located in the target organization,
and will be temporarily cloned to disk for the duration of the command.`,
		RunE: r.runE(SetupCmd),
	}

	addUserFlag(cmd, r.defaults)
	addStudentFlags(cmd, r.defaults)
	addRepoNameFlags(cmd, r.defaults)
	return cmd
}
