package bandbook

import "sync"

var (
	instOnce sync.Once
	inst     *Directory
	instErr  error
)

// Directory gives access to the bands of a single Store. It is safe for
// concurrent use.
type Directory struct {
	store *Store
}

// NewDirectory loads a Store from rp and returns a Directory over it. Use
// this to hand a Directory to the parts of an application that need it; use
// Instance when a single process-wide Directory is wanted instead.
func NewDirectory(rp ResourceProvider) (*Directory, error) {
	st, err := LoadStore(rp)
	if err != nil {
		return nil, err
	}
	return &Directory{store: st}, nil
}

// Instance returns the process-wide Directory. The first call loads it from rp;
// every later call returns the same Directory and error as the first one did
// and does not look at rp at all. Concurrent first calls load the Directory
// exactly once.
//
// If the first load fails, Instance keeps returning that error for the life of
// the process.
func Instance(rp ResourceProvider) (*Directory, error) {
	instOnce.Do(func() {
		inst, instErr = NewDirectory(rp)
	})
	return inst, instErr
}

// Band returns the band with the given ID. If there is no such band, the
// returned bool will be false. A nil Directory has no bands.
func (d *Directory) Band(id int) (Band, bool) {
	if d == nil {
		return Band{}, false
	}
	return d.store.Get(id)
}

// Bands returns every band in ID order.
func (d *Directory) Bands() []Band {
	if d == nil {
		return []Band{}
	}
	return d.store.All()
}

// Store returns the Store that d reads from. It is nil for a nil Directory;
// the methods of a nil *Store are still safe to call.
func (d *Directory) Store() *Store {
	if d == nil {
		return nil
	}
	return d.store
}
