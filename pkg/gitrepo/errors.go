package gitrepo

import "fmt"

// GitError represents a failure in the git layer that is not tied to a
// specific transport direction. It wraps the underlying go-git error.
type GitError struct {
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GitError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("git error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("git error: %s", e.Message)
}

// Unwrap returns the underlying error.
func (e *GitError) Unwrap() error {
	return e.Cause
}

// CloneFailedError signals that cloning from URL failed. The URL is kept so
// callers can produce a diagnostic naming the offending repository.
type CloneFailedError struct {
	URL   string
	Cause error
}

// Error implements the error interface.
func (e *CloneFailedError) Error() string {
	return fmt.Sprintf("failed to clone from %s: %v", e.URL, e.Cause)
}

// Unwrap returns the underlying error.
func (e *CloneFailedError) Unwrap() error {
	return e.Cause
}

// PushFailedError signals that pushing to URL failed.
type PushFailedError struct {
	URL   string
	Cause error
}

// Error implements the error interface.
func (e *PushFailedError) Error() string {
	return fmt.Sprintf("failed to push to %s: %v", e.URL, e.Cause)
}

// Unwrap returns the underlying error.
func (e *PushFailedError) Unwrap() error {
	return e.Cause
}
