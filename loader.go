package keyload

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	c "github.com/keyload/keyload/codec"
	"github.com/keyload/keyload/internal/keyutil"
	"github.com/keyload/keyload/internal/wire"
	st "github.com/keyload/keyload/store"
)

const (
	defaultTTL         = time.Hour
	defaultNegativeTTL = 30 * time.Second
)

type loader[K comparable, V any] struct {
	name   string
	prefix string // name plus optional suffix; store key = prefix + ":" + keyFn(k)

	store st.Store
	fetch FetchFunc[K, V]
	codec c.Codec[V]
	log   Logger
	hooks Hooks

	ttl      time.Duration
	negTTL   time.Duration
	keyFn    func(K) string
	notFound func(K) V // nil when no placeholder is configured
}

func newLoader[K comparable, V any](opts Options[K, V]) (*loader[K, V], error) {
	if opts.Name == "" {
		return nil, fmt.Errorf("keyload: name is required")
	}
	if opts.Store == nil {
		return nil, fmt.Errorf("keyload: store is required")
	}
	if opts.Fetch == nil {
		return nil, fmt.Errorf("keyload: fetch is required")
	}
	if opts.Codec == nil {
		return nil, fmt.Errorf("keyload: codec is required")
	}

	prefix := opts.Name
	if opts.Suffix != "" {
		prefix = opts.Name + ":" + opts.Suffix
	}

	if !opts.SkipNameCheck {
		reg := opts.Registry
		if reg == nil {
			reg = defaultRegistry
		}
		if err := reg.Register(prefix); err != nil {
			return nil, err
		}
	}

	l := &loader[K, V]{
		name:     opts.Name,
		prefix:   prefix,
		store:    opts.Store,
		fetch:    opts.Fetch,
		codec:    opts.Codec,
		notFound: opts.NotFoundValue,
	}

	// defaults
	l.log = coalesce[Logger](opts.Logger, NopLogger{})
	l.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	l.ttl = coalesce[time.Duration](opts.TTL, defaultTTL)
	l.negTTL = coalesce[time.Duration](opts.NegativeTTL, defaultNegativeTTL)

	if opts.KeyFunc != nil {
		l.keyFn = opts.KeyFunc
	} else {
		l.keyFn = func(k K) string { return keyutil.String(k) }
	}

	return l, nil
}

func (l *loader[K, V]) Name() string { return l.name }

func (l *loader[K, V]) Close(ctx context.Context) error {
	return l.store.Close(ctx)
}

func (l *loader[K, V]) storeKey(key K) string {
	return l.prefix + ":" + l.keyFn(key)
}

func (l *loader[K, V]) Load(ctx context.Context, key K) (V, error) {
	r := l.LoadMany(ctx, []K{key})[0]
	return r.Value, r.Err
}

func (l *loader[K, V]) LoadMany(ctx context.Context, keys []K) []Result[V] {
	out := make([]Result[V], len(keys))
	if len(keys) == 0 {
		return out
	}

	p, err := l.resolve(ctx, keys)
	if err != nil {
		// A store round-trip failure rejects the whole pass.
		for i := range out {
			out[i] = Fail[V](err)
		}
		return out
	}

	// Output is assembled by keyed lookup, never by response arrival order:
	// duplicated inputs share one entry and identical outputs.
	for i, sk := range p.storeKeys {
		out[i] = l.resultOf(p.byKey[sk])
	}
	return out
}

// pass is the transient state of one resolution: one entry per distinct
// store key, plus the input-position mapping used to expand output.
type pass[K comparable, V any] struct {
	order     []*entry[K, V]      // distinct entries, first-occurrence order
	byKey     map[string]*entry[K, V]
	storeKeys []string // store key per input position
}

// resolve runs the read-through pass: dedupe, concurrent store probe, one
// fetch for the misses, write-back. The returned error is pass-wide (store
// I/O); per-key fetch failures live on the entries.
func (l *loader[K, V]) resolve(ctx context.Context, keys []K) (*pass[K, V], error) {
	p := &pass[K, V]{
		byKey:     make(map[string]*entry[K, V], len(keys)),
		storeKeys: make([]string, len(keys)),
	}
	for i, k := range keys {
		sk := l.storeKey(k)
		p.storeKeys[i] = sk
		if _, ok := p.byKey[sk]; !ok {
			e := newEntry[K, V](sk, k)
			p.byKey[sk] = e
			p.order = append(p.order, e)
		}
	}

	// Probe the store once per distinct key, fanned out so pass latency is
	// bounded by the slowest round-trip. No multi-key GET: the store may be
	// a sharded cluster.
	g, gctx := errgroup.WithContext(ctx)
	for _, e := range p.order {
		e := e
		g.Go(func() error { return l.probeEntry(gctx, e) })
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	misses := make([]*entry[K, V], 0, len(p.order))
	for _, e := range p.order {
		if !e.resolved() {
			misses = append(misses, e)
		}
	}

	hits := 0
	negatives := 0
	for _, e := range p.order {
		switch e.state {
		case stateHit:
			hits++
		case stateNegativeHit:
			negatives++
		}
	}
	l.hooks.ResolveDone(l.name, hits, negatives, len(misses))
	l.log.Debug("resolve pass", Fields{
		"name": l.name, "keys": len(keys), "distinct": len(p.order),
		"hits": hits, "negatives": negatives, "misses": len(misses),
	})

	if len(misses) == 0 {
		return p, nil
	}
	if err := l.fetchMisses(ctx, misses); err != nil {
		return nil, err
	}
	return p, nil
}

// probeEntry settles one entry from the store, or leaves it unresolved on a
// clean miss. Corrupt entries are deleted and treated as misses.
func (l *loader[K, V]) probeEntry(ctx context.Context, e *entry[K, V]) error {
	b, ok, err := l.store.Get(ctx, e.storeKey)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	kind, payload, err := wire.Decode(b)
	if err != nil {
		_, _ = l.store.Del(ctx, e.storeKey)
		l.hooks.SelfHeal(e.storeKey, "corrupt")
		l.log.Warn("self-heal corrupt entry", Fields{"key": e.storeKey})
		return nil
	}
	if kind == wire.KindNegative {
		e.negativeHit()
		return nil
	}
	v, err := l.codec.Decode(payload)
	if err != nil {
		_, _ = l.store.Del(ctx, e.storeKey)
		l.hooks.SelfHeal(e.storeKey, "value_decode")
		l.log.Warn("self-heal undecodable value", Fields{"key": e.storeKey, "err": err})
		return nil
	}
	e.hit(v)
	return nil
}

// fetchMisses invokes the fallback fetch exactly once with the distinct
// missing keys and persists its results. Values and "no value" results are
// written back (positive/negative TTL); failures are never cached. The
// returned error is a store write failure, which rejects the whole pass.
func (l *loader[K, V]) fetchMisses(ctx context.Context, misses []*entry[K, V]) error {
	missKeys := make([]K, len(misses))
	for i, e := range misses {
		missKeys[i] = e.key
	}

	l.hooks.FetchCalled(l.name, len(missKeys))
	results, err := l.fetch(ctx, missKeys)
	if err != nil {
		for _, e := range misses {
			e.fetchFailed(err)
		}
		return nil
	}
	if len(results) != len(missKeys) {
		cntErr := &FetchCountError{Keys: len(missKeys), Results: len(results)}
		l.log.Error("fetch result misaligned", Fields{"name": l.name, "err": cntErr})
		for _, e := range misses {
			e.fetchFailed(cntErr)
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, e := range misses {
		e := e
		r := results[i]
		switch {
		case r.Err == nil:
			payload, encErr := l.codec.Encode(r.Value)
			if encErr != nil {
				e.fetchFailed(encErr)
				continue
			}
			e.fetched(r.Value)
			g.Go(func() error {
				return l.store.Set(gctx, e.storeKey, wire.EncodeValue(payload), l.ttl)
			})
		case errors.Is(r.Err, ErrNotFound):
			e.negativeHit()
			g.Go(func() error {
				return l.store.Set(gctx, e.storeKey, wire.Negative(), l.negTTL)
			})
		default:
			e.fetchFailed(r.Err)
			l.hooks.FetchKeyError(e.storeKey, r.Err)
		}
	}
	return g.Wait()
}

// resultOf maps a settled entry to its caller-visible result. An entry left
// unresolved (possible only when the fetch dropped it) reads as absent.
func (l *loader[K, V]) resultOf(e *entry[K, V]) Result[V] {
	switch e.state {
	case stateHit, stateFetched:
		return Ok(e.value)
	case stateFetchErr:
		return Fail[V](e.err)
	default: // negative hit or unresolved
		if l.notFound != nil {
			return Ok(l.notFound(e.key))
		}
		return Missing[V]()
	}
}

func (l *loader[K, V]) Exists(ctx context.Context, key K) (bool, error) {
	sk := l.storeKey(key)
	presence, err := l.store.Probe(ctx, sk, wire.Negative())
	if err != nil {
		return false, err
	}
	switch presence {
	case st.Value:
		return true, nil
	case st.Negative:
		return false, nil
	}

	// Never cached: run a full load and decide from the resolution state,
	// so a configured placeholder never makes a missing key "exist".
	l.hooks.ProbeFallback(sk)
	p, err := l.resolve(ctx, []K{key})
	if err != nil {
		return false, err
	}
	e := p.byKey[sk]
	switch e.state {
	case stateHit, stateFetched:
		return true, nil
	case stateFetchErr:
		if errors.Is(e.err, ErrNotFound) {
			return false, nil
		}
		return false, e.err
	default:
		return false, nil
	}
}

func (l *loader[K, V]) LoadCached(ctx context.Context, keys ...K) (V, bool, error) {
	var zero V
	if len(keys) == 0 {
		return zero, false, ErrNoKeys
	}

	// Population pass first; per-key fetch failures are deliberately not
	// surfaced here, the answer reflects store state only.
	if _, err := l.resolve(ctx, keys); err != nil {
		return zero, false, err
	}

	sk := l.storeKey(keys[0])
	b, ok, err := l.store.Get(ctx, sk)
	if err != nil {
		return zero, false, err
	}
	if !ok {
		return zero, false, nil
	}
	kind, payload, err := wire.Decode(b)
	if err != nil {
		_, _ = l.store.Del(ctx, sk)
		l.hooks.SelfHeal(sk, "corrupt")
		return zero, false, nil
	}
	if kind == wire.KindNegative {
		if l.notFound != nil {
			return l.notFound(keys[0]), false, nil
		}
		return zero, false, nil
	}
	v, err := l.codec.Decode(payload)
	if err != nil {
		_, _ = l.store.Del(ctx, sk)
		l.hooks.SelfHeal(sk, "value_decode")
		return zero, false, nil
	}
	return v, true, nil
}

func (l *loader[K, V]) Clear(ctx context.Context, keys ...K) (int64, error) {
	if len(keys) == 0 {
		return 0, ErrNoKeys
	}
	storeKeys := make([]string, len(keys))
	for i, k := range keys {
		storeKeys[i] = l.storeKey(k)
	}
	n, err := l.store.Del(ctx, storeKeys...)
	if err != nil {
		return 0, err
	}
	l.log.Debug("cleared keys", Fields{"name": l.name, "requested": len(keys), "removed": n})
	return n, nil
}

func (l *loader[K, V]) Prime(ctx context.Context, key K, res Result[V]) error {
	sk := l.storeKey(key)
	switch {
	case res.Err == nil:
		payload, err := l.codec.Encode(res.Value)
		if err != nil {
			return err
		}
		return l.store.Set(ctx, sk, wire.EncodeValue(payload), l.ttl)
	case errors.Is(res.Err, ErrNotFound):
		return l.store.Set(ctx, sk, wire.Negative(), l.negTTL)
	default:
		// Failures are never cached; priming one is a no-op.
		return nil
	}
}
