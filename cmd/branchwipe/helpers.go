package main

import (
	"context"
	"os"

	"github.com/raphi011/branchwipe/internal/branch"
	"github.com/raphi011/branchwipe/internal/config"
	"github.com/raphi011/branchwipe/internal/git"
	"github.com/raphi011/branchwipe/internal/output"
)

type workDirKey struct{}

func withWorkDir(ctx context.Context, dir string) context.Context {
	return context.WithValue(ctx, workDirKey{}, dir)
}

// workDirFromContext returns the directory set by -C, falling back to the
// process working directory.
func workDirFromContext(ctx context.Context) string {
	if dir, ok := ctx.Value(workDirKey{}).(string); ok && dir != "" {
		return dir
	}
	wd, _ := os.Getwd()
	return wd
}

// currentRepo resolves the repository containing the working directory.
func currentRepo(ctx context.Context) (branch.Repository, error) {
	cfg := config.FromContext(ctx)
	root, err := git.RepoRoot(ctx, cfg.Git, workDirFromContext(ctx))
	if err != nil {
		return branch.Repository{}, err
	}
	return branch.NewRepository(root, cfg.Git)
}

// loadStore resolves the current repository and populates a store for it.
func loadStore(ctx context.Context, opts ...branch.Option) (*branch.Store, error) {
	repo, err := currentRepo(ctx)
	if err != nil {
		return nil, err
	}
	store := branch.New(repo, nil, opts...)
	if _, err := store.Refresh(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

func printNames(ctx context.Context, repo branch.Repository) error {
	store := branch.New(repo, nil)
	if _, err := store.Refresh(ctx); err != nil {
		return err
	}
	out := output.FromContext(ctx)
	for _, name := range store.Names() {
		out.Println(name)
	}
	return nil
}
