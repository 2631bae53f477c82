package keyload

import (
	"errors"
	"fmt"
)

// ErrNotFound signals "confirmed absent": the backing source reported no
// value for a key. Fetch functions return it (wrapped or bare) per key to
// request a negative cache entry; loads surface it when no placeholder
// factory is configured.
var ErrNotFound = errors.New("keyload: not found")

// ErrNoKeys is returned by key-addressed operations invoked without keys.
// Namespace-wide operations are deliberately unsupported, so an empty key
// list is caller misconfiguration, not an empty result.
var ErrNoKeys = errors.New("keyload: at least one key required")

// DuplicateNameError reports a second loader constructed under a name the
// registry already holds. Two loaders sharing a store namespace would
// silently read each other's entries.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("keyload: loader name %q already registered", e.Name)
}

// FetchCountError reports a fetch function that returned a result list not
// aligned with the key list it was given. The whole miss set fails; nothing
// is cached.
type FetchCountError struct {
	Keys    int
	Results int
}

func (e *FetchCountError) Error() string {
	return fmt.Sprintf("keyload: fetch returned %d results for %d keys", e.Results, e.Keys)
}
