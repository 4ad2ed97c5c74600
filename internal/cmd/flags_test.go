package cmd

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slarse/repomate/pkg/config"
)

func subcommand(t *testing.T, root *cobra.Command, name string) *cobra.Command {
	t.Helper()
	for _, cmd := range root.Commands() {
		if cmd.Name() == name {
			return cmd
		}
	}
	t.Fatalf("no subcommand %q", name)
	return nil
}

func isRequired(t *testing.T, cmd *cobra.Command, name string) bool {
	t.Helper()
	flag := cmd.Flags().Lookup(name)
	require.NotNil(t, flag, "flag %q is not defined", name)
	return len(flag.Annotations[cobra.BashCompOneRequiredFlag]) > 0
}

func TestFlags_RequiredWithoutDefaults(t *testing.T) {
	root := newRootCommand(&runner{defaults: nil})

	for _, name := range []string{"setup", "update", "migrate", "add-to-teams",
		"open-issue", "close-issue", "verify-settings"} {
		cmd := subcommand(t, root, name)
		assert.True(t, isRequired(t, cmd, orgNameFlag), "%s: %s", name, orgNameFlag)
		assert.True(t, isRequired(t, cmd, baseURLFlag), "%s: %s", name, baseURLFlag)
	}
}

func TestFlags_DefaultsMakeFlagsOptional(t *testing.T) {
	defaults := config.Defaults{
		config.OrgNameFlag: "course",
		config.BaseURLFlag: "https://git.test/api/v3",
		config.UserFlag:    "teacher",
	}
	root := newRootCommand(&runner{defaults: defaults})
	setup := subcommand(t, root, "setup")

	assert.False(t, isRequired(t, setup, orgNameFlag))
	assert.False(t, isRequired(t, setup, baseURLFlag))
	assert.False(t, isRequired(t, setup, userFlag))

	assert.Equal(t, "course", setup.Flags().Lookup(orgNameFlag).DefValue)
	assert.Equal(t, "https://git.test/api/v3", setup.Flags().Lookup(baseURLFlag).DefValue)
	assert.Equal(t, "teacher", setup.Flags().Lookup(userFlag).DefValue)
}

func TestFlags_PartialDefaults(t *testing.T) {
	defaults := config.Defaults{config.OrgNameFlag: "course"}
	root := newRootCommand(&runner{defaults: defaults})
	setup := subcommand(t, root, "setup")

	assert.False(t, isRequired(t, setup, orgNameFlag))
	assert.True(t, isRequired(t, setup, baseURLFlag))
	assert.True(t, isRequired(t, setup, userFlag))
}

func TestFlags_MasterRepoNamesAlwaysRequired(t *testing.T) {
	defaults := config.Defaults{
		config.OrgNameFlag: "course",
		config.BaseURLFlag: "https://git.test/api/v3",
	}
	root := newRootCommand(&runner{defaults: defaults})

	for _, name := range []string{"setup", "update", "clone", "open-issue", "close-issue"} {
		cmd := subcommand(t, root, name)
		assert.True(t, isRequired(t, cmd, masterNamesFlag), "%s", name)
	}
}

func TestFlags_InitDefinesNoAPIFlags(t *testing.T) {
	root := newRootCommand(&runner{})
	initCmd := subcommand(t, root, "init")
	assert.Nil(t, initCmd.Flags().Lookup(orgNameFlag))
}
