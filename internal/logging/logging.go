// Package logging configures the process-wide logger. Setup is invoked
// exactly once from the entry point rather than as an import-time side
// effect, so tests and library consumers stay in control of log output.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// LogFile is the file the detailed log is appended to, next to the
// working directory the tool runs in.
const LogFile = "repomate.log"

// LevelEnv selects the log level (debug, info, warn, error). Defaults to info.
const LevelEnv = "REPOMATE_LOG_LEVEL"

// Setup installs the default slog logger: a text handler writing to stderr
// and to the repomate log file. The returned cleanup closes the log file
// and must be called before process exit. A failure to open the log file
// degrades to stderr-only logging, it never aborts the run.
func Setup() func() {
	level := ParseLevel(os.Getenv(LevelEnv))

	var out io.Writer = os.Stderr
	cleanup := func() {}

	file, err := os.OpenFile(LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640)
	if err == nil {
		out = io.MultiWriter(os.Stderr, file)
		cleanup = func() { _ = file.Close() }
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})))
	return cleanup
}

// ParseLevel parses a log level string into slog.Level.
func ParseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
