// Package gittest creates throwaway git repositories for tests.
package gittest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/raphi011/branchwipe/internal/cmd"
)

// Git runs git in dir and fails the test on error.
func Git(t testing.TB, dir string, args ...string) string {
	t.Helper()
	out, err := cmd.OutputContext(context.Background(), dir, "git", args...)
	if err != nil {
		t.Fatalf("git %v: %v", args, err)
	}
	return string(out)
}

// NewRepo creates a repository with a main branch holding one commit,
// plus the given extra branches pointing at that commit.
// Returns the resolved repo path.
func NewRepo(t testing.TB, branches ...string) string {
	t.Helper()

	tmpDir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("failed to resolve temp dir: %v", err)
	}
	repoPath := filepath.Join(tmpDir, "repo")

	Git(t, "", "init", "-b", "main", repoPath)
	for _, args := range [][]string{
		{"config", "user.email", "test@test.com"},
		{"config", "user.name", "Test User"},
		{"config", "commit.gpgsign", "false"},
	} {
		Git(t, repoPath, args...)
	}

	readme := filepath.Join(repoPath, "README.md")
	if err := os.WriteFile(readme, []byte("# test\n"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	Git(t, repoPath, "add", "README.md")
	Git(t, repoPath, "commit", "-m", "Initial commit")

	for _, b := range branches {
		Git(t, repoPath, "branch", b)
	}
	return repoPath
}
