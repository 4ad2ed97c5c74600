package cmd

import (
	"github.com/spf13/cobra"

	"github.com/slarse/repomate/internal/command"
)

func newMigrateCmd(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrate master repositories into the target organization.",
		Long: `Migrate master repositories into the target organization. The repos must
either be local on disk (and specified with --master-repo-names), or somewhere
in the target GitHub instance (and specified with --master-repo-urls).
Migrated repos are added to the '` + command.MasterTeam + `' team. Running the command again
updates already migrated repos.`,
		RunE: r.runE(MigrateCmd),
	}

	addBaseFlags(cmd, r.defaults)
	addUserFlag(cmd, r.defaults)

	cmd.Flags().StringSliceP(masterURLsFlag, "m", nil,
		"One or more URLs to the master repositories.")
	cmd.Flags().StringSliceP(masterNamesFlag, "n", nil,
		"One or more names of master repositories, assumed to be local directories.")
	cmd.MarkFlagsMutuallyExclusive(masterURLsFlag, masterNamesFlag)
	cmd.MarkFlagsOneRequired(masterURLsFlag, masterNamesFlag)
	return cmd
}
