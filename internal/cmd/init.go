package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/slarse/repomate/pkg/config"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the repomate configuration file.",
		Long: `Create a configuration file with placeholder values. Values configured in
the file become defaults for the corresponding command line flags, which
makes those flags optional.`,
		RunE: runInit,
	}
}

func runInit(cmd *cobra.Command, _ []string) error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if _, err := os.Stat(configPath); err == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration file already exists at %s\n", configPath)
		return nil
	}

	defaultConfig := &config.Config{
		OrgName:       "your-course-organization",
		GitHubBaseURL: "https://api.github.com",
	}
	if err := defaultConfig.SaveConfigToPath(configPath); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created at %s\n", configPath)
	fmt.Fprintln(cmd.OutOrStdout(), "Edit the file to set your organization, base url and username.")
	return nil
}
