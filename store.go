package bandbook

import (
	"fmt"

	"github.com/google/uuid"
)

// Band is a single entry in a Store.
type Band struct {
	// ID is the 1-based position of the band in the resources it was loaded
	// from.
	ID int `json:"id"`

	Name        string `json:"name"`
	Description string `json:"description"`
}

func (b Band) String() string {
	return fmt.Sprintf("Band<%d %q>", b.ID, b.Name)
}

// Store is an ordered, read-only collection of Bands. The IDs of the bands in
// a Store of length n are exactly 1 through n, in order.
//
// Its zero-value is an empty store; call NewStore or LoadStore to get one with
// bands in it.
type Store struct {
	bands    []Band
	snapshot uuid.UUID
}

// NewStore zips names and descriptions into a Store. The band at index i gets
// ID i+1. The two slices must be the same length; if they are not, the
// returned error will match ErrLengthMismatch. Every name must be non-empty.
//
// names and descriptions are not retained.
func NewStore(names, descriptions []string) (*Store, error) {
	if len(names) != len(descriptions) {
		msg := fmt.Sprintf("%d names, %d descriptions", len(names), len(descriptions))
		return nil, NewError(msg, ErrLengthMismatch)
	}

	bands := make([]Band, len(names))
	for i := range names {
		if names[i] == "" {
			return nil, NewError(fmt.Sprintf("index %d", i), ErrEmptyName)
		}
		bands[i] = Band{
			ID:          i + 1,
			Name:        names[i],
			Description: descriptions[i],
		}
	}

	return &Store{bands: bands, snapshot: uuid.New()}, nil
}

// LoadStore reads the KeyNames and KeyDescriptions arrays from rp and builds
// a Store from them with NewStore.
func LoadStore(rp ResourceProvider) (*Store, error) {
	if rp == nil {
		return nil, NewError("resource provider is nil", ErrBadArgument)
	}

	names, err := rp.StringArray(KeyNames)
	if err != nil {
		return nil, fmt.Errorf("read band names: %w", err)
	}
	descs, err := rp.StringArray(KeyDescriptions)
	if err != nil {
		return nil, fmt.Errorf("read band descriptions: %w", err)
	}

	return NewStore(names, descs)
}

// Get returns the band with the given ID. If there is no such band, the
// returned bool will be false.
func (s *Store) Get(id int) (Band, bool) {
	if s == nil {
		return Band{}, false
	}
	for _, b := range s.bands {
		if b.ID == id {
			return b, true
		}
	}
	return Band{}, false
}

// All returns a copy of every band in the store, in ID order.
func (s *Store) All() []Band {
	if s == nil {
		return []Band{}
	}
	return append([]Band{}, s.bands...)
}

// Len returns the number of bands in the store.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.bands)
}

// Snapshot returns the identifier assigned to the store when it was built.
// Two Stores built from identical resources still have different snapshots.
func (s *Store) Snapshot() uuid.UUID {
	if s == nil {
		return uuid.Nil
	}
	return s.snapshot
}
