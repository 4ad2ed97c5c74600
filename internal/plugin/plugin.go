// Package plugin is the extension point of repomate. Extensions register
// themselves explicitly and are invoked at two well-defined points: before
// schema construction (config hook) and around the clone subcommand (extra
// flags, plus a hook fired once right after parsing). This keeps dispatch
// statically typed instead of relying on ambient hook discovery.
package plugin

import (
	"log/slog"
	"sync"

	"github.com/spf13/cobra"

	"github.com/slarse/repomate/pkg/config"
)

// Extension is the base capability every extension provides.
type Extension interface {
	Name() string
}

// CloneExtension contributes flags to the clone subcommand and is notified
// once after the clone subcommand's arguments have been parsed.
type CloneExtension interface {
	Extension
	ExtendCloneCommand(cmd *cobra.Command) error
	OnCloneParsed(cmd *cobra.Command) error
}

// ConfigExtension is invoked after configured defaults are loaded, before
// the argument schema is built.
type ConfigExtension interface {
	Extension
	OnConfigLoaded(defaults config.Defaults) error
}

var (
	mu         sync.Mutex
	extensions []Extension
)

// Register adds an extension to the registry. Typically called from an
// extension package's init function.
func Register(ext Extension) {
	mu.Lock()
	defer mu.Unlock()
	extensions = append(extensions, ext)
}

// Reset clears the registry. Intended for tests.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	extensions = nil
}

func all() []Extension {
	mu.Lock()
	defer mu.Unlock()
	return append([]Extension(nil), extensions...)
}

// ExtendCloneCommand lets every registered clone extension add flags to the
// clone subcommand. A failing extension is logged and skipped; one broken
// extension must not take the schema down.
func ExtendCloneCommand(cmd *cobra.Command) {
	for _, ext := range all() {
		cloneExt, ok := ext.(CloneExtension)
		if !ok {
			continue
		}
		if err := cloneExt.ExtendCloneCommand(cmd); err != nil {
			slog.Warn("extension failed to extend clone command", "extension", ext.Name(), "error", err)
		}
	}
}

// FireCloneParsed notifies clone extensions that the clone subcommand's
// arguments have been parsed. Fired only for the clone subcommand.
func FireCloneParsed(cmd *cobra.Command) {
	for _, ext := range all() {
		cloneExt, ok := ext.(CloneExtension)
		if !ok {
			continue
		}
		if err := cloneExt.OnCloneParsed(cmd); err != nil {
			slog.Warn("extension failed in post-parse hook", "extension", ext.Name(), "error", err)
		}
	}
}

// FireConfigLoaded notifies config extensions that the configured defaults
// have been loaded.
func FireConfigLoaded(defaults config.Defaults) {
	for _, ext := range all() {
		configExt, ok := ext.(ConfigExtension)
		if !ok {
			continue
		}
		if err := configExt.OnConfigLoaded(defaults); err != nil {
			slog.Warn("extension failed in config hook", "extension", ext.Name(), "error", err)
		}
	}
}
