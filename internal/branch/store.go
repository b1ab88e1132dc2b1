package branch

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/raphi011/branchwipe/internal/cmd"
	"github.com/raphi011/branchwipe/internal/git"
	"github.com/raphi011/branchwipe/internal/log"
)

// Entry is one branch in the collection. Its position is its index.
type Entry struct {
	Name string `json:"name"`
}

// Repository identifies the repository a Store works against.
type Repository struct {
	Dir string // absolute working directory git runs in
	Bin string // git executable, "git" when empty
}

// NewRepository validates dir and returns a Repository for it.
func NewRepository(dir, bin string) (Repository, error) {
	if dir == "" || !filepath.IsAbs(dir) {
		return Repository{}, fmt.Errorf("%w: %q", ErrRelativePath, dir)
	}
	if bin == "" {
		bin = git.DefaultBinary
	}
	return Repository{Dir: filepath.Clean(dir), Bin: bin}, nil
}

// State is the lifecycle state of a Store.
type State int

const (
	StateEmpty State = iota
	StatePopulated
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StatePopulated:
		return "populated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Option configures a Store.
type Option func(*Store)

// WithObserver registers the observer notified after successful changes.
func WithObserver(o Observer) Option {
	return func(s *Store) {
		if o != nil {
			s.observer = o
		}
	}
}

// Store is the authoritative, ordered collection of a repository's local
// branches.
type Store struct {
	repo     Repository
	invoker  cmd.Invoker
	observer Observer
	entries  []Entry
	state    State
}

// New creates an empty Store for repo. A nil invoker runs real processes.
func New(repo Repository, invoker cmd.Invoker, opts ...Option) *Store {
	if invoker == nil {
		invoker = cmd.ExecInvoker{}
	}
	s := &Store{
		repo:     repo,
		invoker:  invoker,
		observer: nopObserver{},
		entries:  []Entry{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Repository returns the repository the Store is bound to.
func (s *Store) Repository() Repository {
	return s.repo
}

// Refresh replaces the collection with the branches git currently lists
// and returns a copy of it. On error the collection is unchanged.
func (s *Store) Refresh(ctx context.Context) ([]Entry, error) {
	l := log.FromContext(ctx)

	res, err := s.invoker.Exec(ctx, s.repo.Dir, git.ListBranchesArgs(s.repo.Bin)...)
	if err != nil {
		return nil, &RefreshError{Dir: s.repo.Dir, Err: err}
	}
	if !res.Success() {
		return nil, &RefreshError{Dir: s.repo.Dir, ExitCode: res.ExitCode, Stderr: res.StderrText()}
	}

	names := git.ParseBranches(res.Stdout)
	entries := make([]Entry, len(names))
	for i, name := range names {
		entries[i] = Entry{Name: name}
	}

	s.entries = entries
	s.state = StatePopulated
	l.Debug("branches refreshed", "dir", s.repo.Dir, "count", len(entries))

	s.observer.CollectionReplaced(s.Entries())
	return s.Entries(), nil
}

// DeleteAt force-deletes the branch currently at position and, once git
// accepts, removes it from the collection. Later entries move up by one.
// If git refuses, a *DeleteError is returned and the entry stays.
func (s *Store) DeleteAt(ctx context.Context, position int) error {
	entry, err := s.At(position)
	if err != nil {
		return err
	}
	l := log.FromContext(ctx)
	l.Debug("deleting branch", "dir", s.repo.Dir, "branch", entry.Name, "position", position)

	res, err := s.invoker.Exec(ctx, s.repo.Dir, git.DeleteBranchArgs(s.repo.Bin, entry.Name)...)
	if err != nil {
		return &DeleteError{Name: entry.Name, Position: position, Err: err}
	}
	if !res.Success() {
		return &DeleteError{
			Name:     entry.Name,
			Position: position,
			ExitCode: res.ExitCode,
			Stderr:   res.StderrText(),
		}
	}

	s.entries = slices.Delete(s.entries, position, position+1)
	l.Debug("branch deleted", "branch", entry.Name, "remaining", len(s.entries))

	s.observer.EntryRemoved(position)
	return nil
}

// Entries returns a copy of the collection in order.
func (s *Store) Entries() []Entry {
	return slices.Clone(s.entries)
}

// Names returns the branch names in order.
func (s *Store) Names() []string {
	names := make([]string, len(s.entries))
	for i, e := range s.entries {
		names[i] = e.Name
	}
	return names
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// At returns the entry at position.
func (s *Store) At(position int) (Entry, error) {
	if position < 0 || position >= len(s.entries) {
		return Entry{}, fmt.Errorf("%w: %d (have %d branches)", ErrInvalidPosition, position, len(s.entries))
	}
	return s.entries[position], nil
}

// IndexOf returns the position of the named branch, or -1.
func (s *Store) IndexOf(name string) int {
	return slices.IndexFunc(s.entries, func(e Entry) bool { return e.Name == name })
}

// State reports whether the Store has been populated yet.
func (s *Store) State() State {
	return s.state
}
