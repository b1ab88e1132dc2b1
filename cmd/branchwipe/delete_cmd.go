package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/raphi011/branchwipe/internal/branch"
	"github.com/raphi011/branchwipe/internal/config"
	"github.com/raphi011/branchwipe/internal/log"
	"github.com/raphi011/branchwipe/internal/output"
	"github.com/raphi011/branchwipe/internal/ui/progress"
	"github.com/raphi011/branchwipe/internal/ui/prompt"
	"github.com/raphi011/branchwipe/internal/ui/styles"
)

// confirmFunc asks the user to approve deleting names.
// Replaced in tests.
var confirmFunc = func(names []string) (prompt.ConfirmResult, error) {
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return prompt.ConfirmResult{}, errors.New("confirmation required but stdin is not a terminal (use --yes)")
	}
	msg := fmt.Sprintf("Force delete %s?", strings.Join(names, ", "))
	return prompt.Confirm(os.Stderr, msg)
}

// progressReporter is the part of progress.Bar the delete loop drives.
type progressReporter interface {
	Set(current int, message string)
	Stop()
}

// startProgress starts a bar on stderr when it is a terminal, else returns nil.
// Replaced in tests.
var startProgress = func(cfg *config.Config, total int) progressReporter {
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		return nil
	}
	theme, _ := styles.ThemeByName(cfg.Theme)
	bar := progress.NewBar(os.Stderr, theme, total)
	bar.Start()
	return bar
}

type deleteFailure struct {
	name string
	err  error
}

// uniqueNames drops repeated names, keeping first occurrences in order.
func uniqueNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}

func newDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <branch>...",
		Short:   "Force delete local branches",
		Aliases: []string{"rm", "d"},
		GroupID: GroupCore,
		Args:    cobra.MinimumNArgs(1),
		Long: `Force delete local branches (git branch -D).

Unmerged branches are deleted without warning. Git still refuses to delete
the checked-out branch; such failures are reported and the remaining
branches are processed. Set confirm_delete = true in the config file to
be asked first.`,
		Example: `  branchwipe delete feature/old      # Delete one branch
  branchwipe delete tmp wip --yes    # Delete several, skip confirmation`,
		ValidArgsFunction: completeBranches,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			store, err := loadStore(ctx)
			if err != nil {
				return err
			}

			names := uniqueNames(args)
			for _, name := range names {
				if store.IndexOf(name) < 0 {
					return fmt.Errorf("branch %q not found", name)
				}
			}

			if cfg.ConfirmDelete && !yes {
				res, err := confirmFunc(names)
				if err != nil {
					return err
				}
				if !res.Confirmed {
					l.Printf("Aborted\n")
					return nil
				}
			}

			var bar progressReporter
			if len(names) > 1 && !l.IsVerbose() {
				bar = startProgress(cfg, len(names))
			}

			var failures []deleteFailure
			for i, name := range names {
				if bar != nil {
					bar.Set(i, "Deleting "+name)
				}
				// Positions shift after each removal; resolve right before deleting.
				if err := store.DeleteAt(ctx, store.IndexOf(name)); err != nil {
					failures = append(failures, deleteFailure{name: name, err: err})
					continue
				}
				out.Printf("Deleted %s\n", name)
			}

			// Warnings share stderr with the bar; print them once it is gone.
			if bar != nil {
				bar.Set(len(names), "Done")
				bar.Stop()
			}
			for _, f := range failures {
				var delErr *branch.DeleteError
				if errors.As(f.err, &delErr) && delErr.Stderr != "" {
					l.Warn("delete failed", "branch", f.name, "reason", delErr.Stderr)
				} else {
					l.Warn("delete failed", "branch", f.name, "error", f.err)
				}
			}

			if len(failures) > 0 {
				failed := make([]string, len(failures))
				for i, f := range failures {
					failed[i] = f.name
				}
				return fmt.Errorf("failed to delete %d branch(es): %s", len(failed), strings.Join(failed, ", "))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}
