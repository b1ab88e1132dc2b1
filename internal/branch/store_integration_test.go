package branch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/raphi011/branchwipe/internal/cmd"
	"github.com/raphi011/branchwipe/internal/git"
	"github.com/raphi011/branchwipe/internal/git/gittest"
)

func newRepoStore(t *testing.T, dir string) *Store {
	t.Helper()
	repo, err := NewRepository(dir, "")
	if err != nil {
		t.Fatal(err)
	}
	return New(repo, nil)
}

func TestStore_RealRepository(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := gittest.NewRepo(t, "dev", "temp")
	s := newRepoStore(t, dir)

	got, err := s.Refresh(ctx)
	if err != nil {
		t.Fatalf("Refresh = %v", err)
	}
	if want := []string{"dev", "main", "temp"}; !reflect.DeepEqual(names(got), want) {
		t.Fatalf("Refresh = %q, want %q", names(got), want)
	}

	if err := s.DeleteAt(ctx, 2); err != nil {
		t.Fatalf("DeleteAt(temp) = %v", err)
	}
	if want := []string{"dev", "main"}; !reflect.DeepEqual(s.Names(), want) {
		t.Fatalf("collection = %q, want %q", s.Names(), want)
	}

	// main is checked out, git refuses
	err = s.DeleteAt(ctx, 1)
	var delErr *DeleteError
	if !errors.As(err, &delErr) {
		t.Fatalf("DeleteAt(main) = %v, want *DeleteError", err)
	}
	if !strings.Contains(delErr.Stderr, "main") {
		t.Errorf("Stderr = %q, want git's reason", delErr.Stderr)
	}
	if want := []string{"dev", "main"}; !reflect.DeepEqual(s.Names(), want) {
		t.Errorf("collection = %q after refused delete, want %q", s.Names(), want)
	}

	// collection matches the repository after every operation
	out := gittest.Git(t, dir, "branch", "--format=%(refname:short)")
	if repoNames := git.ParseBranches([]byte(out)); !reflect.DeepEqual(repoNames, s.Names()) {
		t.Errorf("repository has %q, store has %q", repoNames, s.Names())
	}
}

func TestStore_ExternalDeleteBeforeConfirm(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := gittest.NewRepo(t, "gone")
	s := newRepoStore(t, dir)

	if _, err := s.Refresh(ctx); err != nil {
		t.Fatal(err)
	}
	gittest.Git(t, dir, "branch", "-D", "gone")

	// the branch vanished behind the store's back; git refuses and the
	// stale entry stays until the next refresh
	var delErr *DeleteError
	if err := s.DeleteAt(ctx, s.IndexOf("gone")); !errors.As(err, &delErr) {
		t.Fatalf("DeleteAt = %v, want *DeleteError", err)
	}
	if s.IndexOf("gone") < 0 {
		t.Error("stale entry removed without a successful delete")
	}

	if _, err := s.Refresh(ctx); err != nil {
		t.Fatal(err)
	}
	if s.IndexOf("gone") >= 0 {
		t.Errorf("collection = %q, want gone removed after refresh", s.Names())
	}
}

func TestStore_MissingDirectory(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "nope")
	s := newRepoStore(t, dir)

	_, err := s.Refresh(context.Background())
	var refreshErr *RefreshError
	if !errors.As(err, &refreshErr) {
		t.Fatalf("Refresh = %v, want *RefreshError", err)
	}
	var le *cmd.LaunchError
	if !errors.As(err, &le) {
		t.Errorf("Refresh = %v, want to wrap *cmd.LaunchError", err)
	}
	if s.Len() != 0 || s.State() != StateEmpty {
		t.Errorf("Len = %d State = %v, want empty store", s.Len(), s.State())
	}
}

func TestStore_NotARepository(t *testing.T) {
	t.Parallel()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	s := newRepoStore(t, dir)

	_, err = s.Refresh(context.Background())
	var refreshErr *RefreshError
	if !errors.As(err, &refreshErr) {
		t.Fatalf("Refresh = %v, want *RefreshError", err)
	}
	if refreshErr.ExitCode == 0 || refreshErr.Stderr == "" {
		t.Errorf("RefreshError = %+v, want git's exit status and stderr", refreshErr)
	}
}

// slowGit writes a git wrapper that lingers after git exits.
func slowGit(t *testing.T, delay string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "slow-git")
	script := "#!/bin/sh\ngit \"$@\"\nstatus=$?\nsleep " + delay + "\nexit $status\n"
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestStore_DeleteOutlivesContext(t *testing.T) {
	t.Parallel()
	dir := gittest.NewRepo(t, "temp")
	repo, err := NewRepository(dir, slowGit(t, "0.5"))
	if err != nil {
		t.Fatal(err)
	}
	s := New(repo, nil)
	if _, err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := s.DeleteAt(ctx, s.IndexOf("temp")); err != nil {
		t.Fatalf("DeleteAt = %v, want success once git finished", err)
	}
	if ctx.Err() == nil {
		t.Fatal("context should have expired while git ran")
	}

	out := gittest.Git(t, dir, "branch", "--format=%(refname:short)")
	if repoNames := git.ParseBranches([]byte(out)); !reflect.DeepEqual(s.Names(), repoNames) {
		t.Errorf("collection = %q, repository = %q", s.Names(), repoNames)
	}
}

func TestStore_CancelledBeforeDelete(t *testing.T) {
	t.Parallel()
	dir := gittest.NewRepo(t, "temp")
	s := newRepoStore(t, dir)
	if _, err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := s.DeleteAt(ctx, s.IndexOf("temp"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("DeleteAt = %v, want context.Canceled", err)
	}
	if want := []string{"main", "temp"}; !reflect.DeepEqual(s.Names(), want) {
		t.Errorf("collection = %q, want %q", s.Names(), want)
	}
	if out := gittest.Git(t, dir, "branch", "--list", "temp"); strings.TrimSpace(out) == "" {
		t.Error("temp was deleted although the context ended before launch")
	}
}
