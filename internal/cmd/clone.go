package cmd

import (
	"github.com/spf13/cobra"

	"github.com/slarse/repomate/internal/plugin"
)

func newCloneCmd(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clone",
		Short: "Clone student repos.",
		Long:  "Clone student repos in bulk into the current working directory.",
		RunE:  r.runE(CloneCmd),
	}

	addStudentFlags(cmd, r.defaults)
	addRepoNameFlags(cmd, r.defaults)

	// Extensions may contribute additional flags to this subcommand only.
	plugin.ExtendCloneCommand(cmd)
	return cmd
}
