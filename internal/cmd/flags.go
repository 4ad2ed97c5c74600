package cmd

import (
	"github.com/spf13/cobra"

	"github.com/slarse/repomate/pkg/config"
)

// Flag names. The ones with configured-defaults support share their name
// with the config keys.
const (
	orgNameFlag      = config.OrgNameFlag
	baseURLFlag      = config.BaseURLFlag
	userFlag         = config.UserFlag
	studentsFileFlag = config.StudentsFileFlag
	studentsFlag     = "students"
	masterNamesFlag  = "master-repo-names"
	masterURLsFlag   = "master-repo-urls"
	issueFlag        = "issue"
	titleRegexFlag   = "title-regex"
)

// flagSpec declares a flag once: its name, shorthand, usage text and which
// configured-defaults key feeds it. Specs are consumed by the group helpers
// below so the grammar stays declarative and testable apart from parsing.
type flagSpec struct {
	name        string
	shorthand   string
	usage       string
	defaultsKey string // empty when the flag can never be defaulted
}

var (
	orgNameSpec = flagSpec{
		name:        orgNameFlag,
		shorthand:   "o",
		usage:       "Name of the organization to which repos should be added.",
		defaultsKey: config.OrgNameFlag,
	}
	baseURLSpec = flagSpec{
		name:        baseURLFlag,
		shorthand:   "g",
		usage:       "Base url to a GitHub v3 API. For enterprise, this is usually https://<HOST>/api/v3.",
		defaultsKey: config.BaseURLFlag,
	}
	userSpec = flagSpec{
		name:        userFlag,
		shorthand:   "u",
		usage:       "Your GitHub username. Needed for pushing without CLI interaction.",
		defaultsKey: config.UserFlag,
	}
	studentsFileSpec = flagSpec{
		name:        studentsFileFlag,
		shorthand:   "f",
		usage:       "Path to a list of student usernames, one per line.",
		defaultsKey: config.StudentsFileFlag,
	}
)

// addString registers the spec as a string flag, pre-filled from the
// configured defaults and required exactly when no default exists.
func (f flagSpec) addString(cmd *cobra.Command, defaults config.Defaults) {
	cmd.Flags().StringP(f.name, f.shorthand, defaults.Get(f.defaultsKey), f.usage)
	if f.defaultsKey == "" || defaults.Required(f.defaultsKey) {
		_ = cmd.MarkFlagRequired(f.name)
	}
}

// addBaseFlags attaches the organization and base url flags shared by every
// subcommand that talks to the hosting API.
func addBaseFlags(cmd *cobra.Command, defaults config.Defaults) {
	orgNameSpec.addString(cmd, defaults)
	baseURLSpec.addString(cmd, defaults)
}

// addUserFlag attaches the acting-username flag, needed by any subcommand
// that pushes.
func addUserFlag(cmd *cobra.Command, defaults config.Defaults) {
	userSpec.addString(cmd, defaults)
}

// addStudentFlags attaches the mutually exclusive student sources: an
// inline list or a file. When a students file is configured as default,
// neither flag has to be given.
func addStudentFlags(cmd *cobra.Command, defaults config.Defaults) {
	cmd.Flags().StringSliceP(studentsFlag, "s", nil, "One or more student usernames.")
	cmd.Flags().StringP(studentsFileFlag, studentsFileSpec.shorthand,
		defaults.Get(studentsFileSpec.defaultsKey), studentsFileSpec.usage)

	cmd.MarkFlagsMutuallyExclusive(studentsFlag, studentsFileFlag)
	if defaults.Required(studentsFileSpec.defaultsKey) {
		cmd.MarkFlagsOneRequired(studentsFlag, studentsFileFlag)
	}
}

// addRepoNameFlags attaches the base flags plus the required master
// repository names flag.
func addRepoNameFlags(cmd *cobra.Command, defaults config.Defaults) {
	addBaseFlags(cmd, defaults)
	cmd.Flags().StringSliceP(masterNamesFlag, "n", nil,
		"One or more names of master repositories. Names must either refer to local "+
			"directories, or to master repositories in the target organization.")
	_ = cmd.MarkFlagRequired(masterNamesFlag)
}
