package main

import (
	"slices"

	"github.com/spf13/cobra"
)

// completeBranches completes local branch names not already on the command line.
func completeBranches(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	ctx := cmd.Context()
	if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
		ctx = withWorkDir(ctx, dir)
	}

	store, err := loadStore(ctx)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var names []string
	for _, name := range store.Names() {
		if !slices.Contains(args, name) {
			names = append(names, name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
