package branch

import (
	"errors"
	"fmt"
)

// ErrInvalidPosition is returned by DeleteAt for a position outside the
// current collection. It signals a caller bug, not a git refusal.
var ErrInvalidPosition = errors.New("invalid branch position")

// ErrRelativePath is returned when a repository path is not absolute.
var ErrRelativePath = errors.New("repository path must be absolute")

// RefreshError reports that the branch list could not be obtained.
// Err is set when git could not be started; otherwise git ran and exited
// with ExitCode.
type RefreshError struct {
	Dir      string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *RefreshError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("list branches in %s: %v", e.Dir, e.Err)
	}
	if e.Stderr != "" {
		return fmt.Sprintf("list branches in %s: %s", e.Dir, e.Stderr)
	}
	return fmt.Sprintf("list branches in %s: git exited with status %d", e.Dir, e.ExitCode)
}

func (e *RefreshError) Unwrap() error {
	return e.Err
}

// DeleteError reports that a branch was not deleted. Stderr holds git's
// explanation (not fully merged, checked out, not found...).
type DeleteError struct {
	Name     string
	Position int
	ExitCode int
	Stderr   string
	Err      error
}

func (e *DeleteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("delete branch %q: %v", e.Name, e.Err)
	}
	if e.Stderr != "" {
		return fmt.Sprintf("delete branch %q: %s", e.Name, e.Stderr)
	}
	return fmt.Sprintf("delete branch %q: git exited with status %d", e.Name, e.ExitCode)
}

func (e *DeleteError) Unwrap() error {
	return e.Err
}
