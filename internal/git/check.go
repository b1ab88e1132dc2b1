package git

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/raphi011/branchwipe/internal/cmd"
)

// ErrGitNotFound indicates git is not installed or not in PATH
var ErrGitNotFound = fmt.Errorf("git not found: please install git (https://git-scm.com)")

// CheckGit verifies that the git executable is available
func CheckGit(bin string) error {
	if _, err := exec.LookPath(binary(bin)); err != nil {
		return ErrGitNotFound
	}
	return nil
}

// IsInsideRepoPath returns true if the given path is inside a git work tree
func IsInsideRepoPath(ctx context.Context, bin, path string) bool {
	return cmd.RunContext(ctx, path, binary(bin), "rev-parse", "--is-inside-work-tree") == nil
}

// RepoRoot returns the absolute top-level directory of the repository
// containing path.
func RepoRoot(ctx context.Context, bin, path string) (string, error) {
	output, err := cmd.OutputContext(ctx, path, binary(bin), "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("not a git repository: %w", err)
	}
	root := strings.TrimSpace(string(output))
	if !filepath.IsAbs(root) {
		return "", fmt.Errorf("git reported a relative repository root %q", root)
	}
	return filepath.Clean(root), nil
}
