package ui

import (
	"context"
	"io"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/colorprofile"

	"github.com/raphi011/branchwipe/internal/branch"
	"github.com/raphi011/branchwipe/internal/cmd"
	"github.com/raphi011/branchwipe/internal/log"
	"github.com/raphi011/branchwipe/internal/ui/styles"
)

// Options configures the interactive view.
type Options struct {
	Styles        styles.Styles
	ConfirmDelete bool
	Output        io.Writer          // defaults to os.Stderr
	Invoker       cmd.Invoker        // defaults to real processes
	Clipboard     func(string) error // defaults to the system clipboard
}

// Run shows the branch view for repo until the user quits.
// The TUI renders to stderr so stdout stays free for piping.
func Run(ctx context.Context, repo branch.Repository, opts Options) error {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	// The view owns the terminal; command echo would tear it.
	ctx = log.WithLogger(ctx, log.New(io.Discard, false, true))

	n := &notifier{}
	store := branch.New(repo, opts.Invoker, branch.WithObserver(n))
	model := newBranchModel(ctx, store, opts)

	profile := colorprofile.Detect(out, os.Environ())
	p := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithOutput(out),
		tea.WithColorProfile(profile),
	)
	n.send = p.Send

	_, err := p.Run()
	return err
}
