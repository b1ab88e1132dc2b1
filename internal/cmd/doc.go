// Package cmd runs external commands on behalf of branchwipe.
//
// [Exec] is the process invoker: it runs a command synchronously in a
// working directory, captures stdout and stderr in full, and reports the
// exit status without interpreting it. Only a failure to start the process
// is returned as an error, as a [*LaunchError].
//
//	res, err := cmd.Exec(ctx, "/path/to/repo", "git", "branch", "-D", "topic")
//	if err != nil {
//	    // git missing, directory missing, permission denied...
//	}
//	if !res.Success() {
//	    fmt.Println(res.StderrText())
//	}
//
// [RunContext] and [OutputContext] are shorthands for callers that only
// care about success, folding stderr into the returned error.
//
// # Design Notes
//
// branchwipe shells out to the git CLI rather than using a Go git library,
// so deletes behave exactly like `git branch -D` does for the user,
// including hooks, config and worktree protection.
package cmd
