package bandbook

import (
	"fmt"
	"sort"
)

const (
	// KeyNames is the resource key holding the ordered list of band names.
	KeyNames = "band_names"

	// KeyDescriptions is the resource key holding the ordered list of band
	// descriptions. It runs parallel to KeyNames.
	KeyDescriptions = "band_descriptions"
)

// ResourceProvider supplies named string arrays from wherever the host
// application bundles them.
type ResourceProvider interface {
	// StringArray returns the array stored under key. If there is no such
	// array, the returned error matches ErrResourceNotFound.
	StringArray(key string) ([]string, error)
}

// Resources is an in-memory ResourceProvider. The providers in the resources
// sub-packages decode into it.
type Resources map[string][]string

// StringArray returns a copy of the array stored under key.
func (r Resources) StringArray(key string) ([]string, error) {
	arr, ok := r[key]
	if !ok {
		return nil, NewError(fmt.Sprintf("%q", key), ErrResourceNotFound)
	}

	cp := make([]string, len(arr))
	copy(cp, arr)
	return cp, nil
}

// Keys returns the alphabetized keys of all arrays in r.
func (r Resources) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
