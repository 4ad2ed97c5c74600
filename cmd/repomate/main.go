// Package main is the entry point for the repomate CLI.
package main

import (
	"os"

	"github.com/slarse/repomate/internal/cmd"
	"github.com/slarse/repomate/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	cleanup := logging.Setup()
	defer cleanup()

	return cmd.Execute()
}
