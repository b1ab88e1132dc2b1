// Package git knows how to talk to the git CLI about local branches.
//
// It builds the argument vectors for the branch commands, parses their
// output, and provides the environment checks run at startup. Commands are
// executed through [github.com/raphi011/branchwipe/internal/cmd].
//
// # Branch Commands
//
//   - [ListBranchesArgs]: `git branch --format=%(refname:short)`
//   - [DeleteBranchArgs]: `git branch -D <name>`
//   - [ParseBranches]: one name per non-empty trimmed line, order preserved
//
// # Environment Checks
//
//   - [CheckGit]: the executable is on PATH
//   - [IsInsideRepoPath], [RepoRoot]: locate the repository for a directory
package git
