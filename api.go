package keyload

import (
	"context"
	"errors"
	"time"

	c "github.com/keyload/keyload/codec"
	st "github.com/keyload/keyload/store"
)

// Result is the per-key outcome of a load or fetch. Exactly one of three
// shapes: a value (Err nil), "confirmed absent" (Err wrapping ErrNotFound),
// or a failure (any other Err).
type Result[V any] struct {
	Value V
	Err   error
}

// Ok wraps a value result.
func Ok[V any](v V) Result[V] { return Result[V]{Value: v} }

// Missing is the "no such entity" result; it triggers negative caching when
// returned by a fetch.
func Missing[V any]() Result[V] { return Result[V]{Err: ErrNotFound} }

// Fail wraps a per-key failure. Failures are never cached.
func Fail[V any](err error) Result[V] { return Result[V]{Err: err} }

// NotFound reports whether r denotes "confirmed absent" rather than a
// value or an ordinary failure.
func (r Result[V]) NotFound() bool { return errors.Is(r.Err, ErrNotFound) }

// FetchFunc loads values for keys absent from the cache. It is invoked at
// most once per resolution pass, only with distinct missing keys, and must
// return one Result per key in the same order. A non-nil error fails every
// missing key in the pass (cached hits are unaffected).
type FetchFunc[K comparable, V any] func(ctx context.Context, keys []K) ([]Result[V], error)

// Loader is a batching read-through cache over a remote key/value store.
// Concurrent use is safe; resolution state never crosses calls.
type Loader[K comparable, V any] interface {
	// Load resolves one key through the cache, falling back to the fetch
	// function on a miss. A negatively cached key yields the configured
	// placeholder, or ErrNotFound when none is set.
	Load(ctx context.Context, key K) (V, error)

	// LoadMany resolves a key list in one pass: duplicates are collapsed for
	// store and fetch traffic but the output is aligned with the input,
	// position by position.
	LoadMany(ctx context.Context, keys []K) []Result[V]

	// Exists reports whether key currently resolves to a value. Cached
	// entries (positive or negative) answer in a single store round-trip;
	// an uncached key falls back to a full load.
	Exists(ctx context.Context, key K) (bool, error)

	// LoadCached forces a cache population pass over keys, then answers for
	// the FIRST key strictly from what the store now holds: (value, true)
	// for a positive entry, (placeholder-or-zero, false) for a negative
	// entry, (zero, false) when absent. The multi-key signature with a
	// single first-key answer is a documented quirk kept for compatibility.
	LoadCached(ctx context.Context, keys ...K) (V, bool, error)

	// Clear deletes the store entries for keys and returns how many existed.
	// Zero keys is a configuration error (ErrNoKeys); there is deliberately
	// no way to flush a whole namespace.
	Clear(ctx context.Context, keys ...K) (int64, error)

	// Prime writes a result exactly as a fetch would: a value under the
	// positive TTL, a Missing result as a negative entry under the negative
	// TTL. Any other errored result writes nothing.
	Prime(ctx context.Context, key K, res Result[V]) error

	// Name returns the loader's registered namespace.
	Name() string

	// Close releases the underlying store.
	Close(ctx context.Context) error
}

// Options tune a loader. Name, Store, Fetch and Codec are required; the
// rest have defaults.
type Options[K comparable, V any] struct {
	// Required
	Name  string           // store namespace; enforced unique per registry
	Store st.Store         // remote key/value store
	Fetch FetchFunc[K, V]  // fallback batch fetch
	Codec c.Codec[V]       // value (de)serialization

	Suffix      string        // optional namespace suffix, e.g. a schema version
	TTL         time.Duration // positive entries; 0 => 1h
	NegativeTTL time.Duration // negative entries; 0 => 30s

	// KeyFunc normalizes a logical key to its store-key string. Defaults to
	// a direct rendering for string/number-shaped keys; set it explicitly
	// for any other key type. Distinct keys must map to distinct strings.
	KeyFunc func(K) string

	NotFoundValue func(key K) V // optional placeholder for absent keys
	Logger        Logger        // if nil, NopLogger
	Hooks         Hooks         // if nil, NopHooks
	Registry      *Registry     // if nil, the shared DefaultRegistry
	SkipNameCheck bool          // disable duplicate-name enforcement
}

// New validates opts, claims the loader name and returns a ready loader.
func New[K comparable, V any](opts Options[K, V]) (Loader[K, V], error) {
	return newLoader[K, V](opts)
}
