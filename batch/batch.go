// Package batch coalesces concurrent single-key loads into one resolution
// pass per scheduling window.
//
// A Group gathers every Load issued within the window (or until MaxBatch
// keys accumulate), hands the combined key list to the loader once, and fans
// the per-key results back to each caller. The key list is passed through
// as-is, repeats included: deduplication belongs to the loader, so repeated
// cache reads are never silently short-circuited by the coalescer.
package batch

import (
	"context"
	"sync"
	"time"

	"github.com/keyload/keyload"
)

const defaultWindow = time.Millisecond

// Resolver is the batch entry point a Group drives; keyload.Loader
// satisfies it.
type Resolver[K comparable, V any] interface {
	LoadMany(ctx context.Context, keys []K) []keyload.Result[V]
}

// Group batches concurrent loads. The zero value is not usable; construct
// with NewGroup. Safe for concurrent use.
type Group[K comparable, V any] struct {
	resolver Resolver[K, V]
	window   time.Duration
	maxBatch int

	mu  sync.Mutex
	cur *batchState[K, V]
}

// Config tunes a Group. Window defaults to 1ms; MaxBatch 0 means unbounded.
type Config struct {
	Window   time.Duration
	MaxBatch int
}

func NewGroup[K comparable, V any](r Resolver[K, V], cfg Config) *Group[K, V] {
	g := &Group[K, V]{
		resolver: r,
		window:   cfg.Window,
		maxBatch: cfg.MaxBatch,
	}
	if g.window <= 0 {
		g.window = defaultWindow
	}
	return g
}

// Load resolves key through the current batch, blocking until the batch's
// resolution pass completes.
func (g *Group[K, V]) Load(ctx context.Context, key K) (V, error) {
	r := g.LoadThunk(ctx, key)()
	return r.Value, r.Err
}

// LoadThunk registers key with the current batch and returns a function
// that blocks for its result. Use it to enqueue several keys before
// collecting any result. The pass runs under the context of the batch's
// first caller.
func (g *Group[K, V]) LoadThunk(ctx context.Context, key K) func() keyload.Result[V] {
	g.mu.Lock()
	if g.cur == nil {
		b := newBatchState[K, V](ctx)
		g.cur = b
		go g.closeAfterWindow(b)
	}
	b := g.cur
	idx := len(b.keys)
	b.keys = append(b.keys, key)
	if g.maxBatch > 0 && len(b.keys) >= g.maxBatch {
		// Batch is full: detach and fire now; the next load opens a new one.
		g.cur = nil
		go b.fire(g.resolver)
	}
	g.mu.Unlock()

	return func() keyload.Result[V] {
		<-b.done
		return b.results[idx]
	}
}

// closeAfterWindow fires b when its window elapses. Whoever detaches the
// batch from g.cur owns the fire, so a MaxBatch trigger and the window
// timer never both run the pass.
func (g *Group[K, V]) closeAfterWindow(b *batchState[K, V]) {
	time.Sleep(g.window)
	g.mu.Lock()
	owned := g.cur == b
	if owned {
		g.cur = nil
	}
	g.mu.Unlock()
	if owned {
		b.fire(g.resolver)
	}
}

type batchState[K comparable, V any] struct {
	ctx     context.Context
	keys    []K
	results []keyload.Result[V]
	done    chan struct{}
}

func newBatchState[K comparable, V any](ctx context.Context) *batchState[K, V] {
	return &batchState[K, V]{ctx: ctx, done: make(chan struct{})}
}

func (b *batchState[K, V]) fire(r Resolver[K, V]) {
	b.results = r.LoadMany(b.ctx, b.keys)
	close(b.done)
}
