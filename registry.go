package keyload

import "sync"

// Registry guards the cross-loader invariant that no two loaders share a
// store namespace. Names are append-only for the process lifetime.
//
// The zero Options use a shared process-wide instance; tests construct their
// own with NewRegistry to stay isolated.
type Registry struct {
	mu    sync.Mutex
	names map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{names: make(map[string]struct{})}
}

// Register claims a name. A name already held returns *DuplicateNameError.
func (r *Registry) Register(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.names[name]; ok {
		return &DuplicateNameError{Name: name}
	}
	r.names[name] = struct{}{}
	return nil
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the shared process-wide registry used when
// Options.Registry is nil.
func DefaultRegistry() *Registry { return defaultRegistry }
