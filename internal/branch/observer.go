package branch

// Observer is told about every successful change to a Store's collection.
// Callbacks run synchronously on the goroutine that called the Store.
type Observer interface {
	// CollectionReplaced receives a copy of the collection after a refresh.
	CollectionReplaced(entries []Entry)
	// EntryRemoved receives the position of the entry a delete removed.
	EntryRemoved(position int)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	OnReplaced func(entries []Entry)
	OnRemoved  func(position int)
}

func (f ObserverFuncs) CollectionReplaced(entries []Entry) {
	if f.OnReplaced != nil {
		f.OnReplaced(entries)
	}
}

func (f ObserverFuncs) EntryRemoved(position int) {
	if f.OnRemoved != nil {
		f.OnRemoved(position)
	}
}

type nopObserver struct{}

func (nopObserver) CollectionReplaced([]Entry) {}
func (nopObserver) EntryRemoved(int)           {}
