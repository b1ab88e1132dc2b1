package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/branchwipe/internal/config"
	"github.com/raphi011/branchwipe/internal/log"
	"github.com/raphi011/branchwipe/internal/output"
	"github.com/raphi011/branchwipe/internal/ui/static"
)

func newListCmd() *cobra.Command {
	var (
		jsonOutput bool
		format     string
		plain      bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List local branches",
		Aliases: []string{"ls"},
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `List the local branches of the current repository.

Branches are shown in the order git reports them, with the position
used by the interactive view. The default format comes from list.format
in the config file.`,
		Example: `  branchwipe list              # Table of branches
  branchwipe list --json       # Output as JSON
  branchwipe list --plain      # One name per line
  branchwipe -C ~/src/app ls   # List another repository`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			out := output.FromContext(ctx)

			if jsonOutput {
				format = "json"
			}
			if format == "" {
				format = cfg.List.Format
			}
			if !plain {
				if err := config.ValidateListFormat(format); err != nil {
					return err
				}
			}

			store, err := loadStore(ctx)
			if err != nil {
				return err
			}
			log.FromContext(ctx).Debug("listed branches", "count", store.Len())

			entries := store.Entries()
			switch {
			case plain:
				for _, e := range entries {
					out.Println(e.Name)
				}
			case format == "json":
				return out.JSON(entries)
			case len(entries) == 0:
				fmt.Fprintln(cmd.ErrOrStderr(), "No branches found")
			default:
				out.Print(static.RenderTable(static.BranchHeaders, static.BranchRows(entries)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: table, json")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print one branch name per line")
	cmd.MarkFlagsMutuallyExclusive("json", "format", "plain")
	cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(config.ValidListFormats, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}
