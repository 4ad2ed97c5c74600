package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slarse/repomate/pkg/github"
	"github.com/slarse/repomate/pkg/gitrepo"
)

// captureLog redirects the default logger into a buffer for the duration of
// the test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return buf
}

func TestHandle_ExpectedFailures(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{
			name:    "push failure",
			err:     &gitrepo.PushFailedError{URL: "https://github.com/org/repo", Cause: errors.New("denied")},
			wantMsg: "There was an error pushing to https://github.com/org/repo",
		},
		{
			name:    "clone failure",
			err:     &gitrepo.CloneFailedError{URL: "https://github.com/org/repo", Cause: errors.New("missing")},
			wantMsg: "Does the repo really exist?",
		},
		{
			name:    "generic git failure",
			err:     &gitrepo.GitError{Message: "worktree is dirty"},
			wantMsg: "Something went wrong with git",
		},
		{
			name:    "file failure",
			err:     &FileError{Path: "/tmp/students.txt", Reason: "is empty"},
			wantMsg: "'/tmp/students.txt' is empty",
		},
		{
			name:    "api failure",
			err:     &github.APIError{Kind: github.KindPermission, Message: "forbidden"},
			wantMsg: "Exiting because of",
		},
		{
			name:    "wrapped api failure",
			err:     fmt.Errorf("creating repos: %w", &github.APIError{Kind: github.KindValidation, Message: "bad name"}),
			wantMsg: "Exiting because of",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLog(t)

			var exitCodes []int
			r := &runner{exit: func(code int) { exitCodes = append(exitCodes, code) }}

			require.NoError(t, r.handle(tt.err))
			assert.Equal(t, []int{1}, exitCodes)

			logged := strings.TrimRight(buf.String(), "\n")
			assert.Contains(t, logged, tt.wantMsg)
			assert.Equal(t, 1, strings.Count(logged, "\n")+1, "exactly one log line")
		})
	}
}

func TestHandle_NilError(t *testing.T) {
	r := &runner{exit: func(int) { t.Fatal("exit called for nil error") }}
	assert.NoError(t, r.handle(nil))
}

func TestHandle_UnexpectedErrorPanics(t *testing.T) {
	r := &runner{exit: func(int) { t.Fatal("exit called for unexpected error") }}
	assert.Panics(t, func() {
		_ = r.handle(errors.New("nil pointer dereference"))
	})
}

func TestDispatch_UnknownCommandPanics(t *testing.T) {
	assert.Panics(t, func() {
		_ = Dispatch(&Args{Command: Command("frobnicate")}, nil, nil)
	})
}
