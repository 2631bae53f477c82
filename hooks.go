package keyload

// Hooks are lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking; the loader calls them on
// hot paths. Wrap a sink with hooks/async when it may be slow.
type Hooks interface {
	// One resolution pass finished; counts are over distinct store keys.
	ResolveDone(name string, hits, negatives, misses int)

	// The fallback fetch was invoked with this many distinct missing keys.
	FetchCalled(name string, keys int)

	// The fetch reported a per-key failure (never cached).
	FetchKeyError(storageKey string, err error)

	// A store entry was deleted by the loader on read.
	// reason ∈ {"corrupt", "value_decode"}
	SelfHeal(storageKey, reason string)

	// The atomic existence probe found no entry; Exists fell back to a
	// full load.
	ProbeFallback(storageKey string)
}

// NopHooks is the default no-op.
type NopHooks struct{}

func (NopHooks) ResolveDone(string, int, int, int) {}
func (NopHooks) FetchCalled(string, int)           {}
func (NopHooks) FetchKeyError(string, error)       {}
func (NopHooks) SelfHeal(string, string)           {}
func (NopHooks) ProbeFallback(string)              {}
