package cmd

import "github.com/spf13/cobra"

func newVerifyCmd(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify-settings",
		Short: "Verify your settings, such as the base url and the OAUTH token.",
		Long: `Verify all settings. Performs the following checks, in order: user exists
(implicitly verifies the base url), OAUTH scopes (permissions of the OAUTH
token), organization exists, user is an owner of the organization. If any one
of the checks fails, the verification is aborted and an error message is
displayed.`,
		RunE: r.runE(VerifyCmd),
	}

	addBaseFlags(cmd, r.defaults)
	addUserFlag(cmd, r.defaults)
	return cmd
}
