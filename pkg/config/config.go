// Package config loads the repomate configuration file. Values configured
// here become defaults for the corresponding command line flags, which makes
// those flags optional.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Flag names that can be given configured defaults.
const (
	OrgNameFlag      = "org-name"
	BaseURLFlag      = "github-base-url"
	UserFlag         = "user"
	StudentsFileFlag = "students-file"
)

// Config represents the repomate configuration.
type Config struct {
	OrgName       string `yaml:"org_name"`
	GitHubBaseURL string `yaml:"github_base_url"`
	User          string `yaml:"user"`
	StudentsFile  string `yaml:"students_file"`
}

// Defaults maps flag names to configured default values. A flag with an
// entry here is optional and pre-filled; a flag without one stays required.
type Defaults map[string]string

// Get returns the configured default for the flag, or "" if none exists.
func (d Defaults) Get(flag string) string {
	return d[flag]
}

// Required reports whether the flag must be supplied on the command line,
// which is the case exactly when no default is configured for it.
func (d Defaults) Required(flag string) bool {
	_, ok := d[flag]
	return !ok
}

// Defaults derives the flag defaults from the configuration. Empty values
// are omitted so the corresponding flags remain required.
func (c *Config) Defaults() Defaults {
	d := Defaults{}
	for flag, value := range map[string]string{
		OrgNameFlag:      c.OrgName,
		BaseURLFlag:      c.GitHubBaseURL,
		UserFlag:         c.User,
		StudentsFileFlag: c.StudentsFile,
	} {
		if value != "" {
			d[flag] = value
		}
	}
	return d
}

// LoadConfig loads configuration from the default location.
func LoadConfig() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	return LoadConfigFromPath(configPath)
}

// LoadConfigFromPath loads configuration from a specific path. A missing
// file is not an error; it yields an empty configuration in which every
// flag stays required.
func LoadConfigFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveConfigToPath saves configuration to a specific path.
func (c *Config) SaveConfigToPath(path string) error {
	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetConfigPath returns the default configuration file path.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, ".repomate", "config.yaml"), nil
}
