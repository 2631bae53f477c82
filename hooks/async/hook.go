// Package async decouples hook sinks from the loader's hot path.
//
// Events are enqueued to a bounded channel and delivered by worker
// goroutines; when the queue is full the event is dropped rather than
// blocking a resolution pass.
//
//	raw := sloghook.New(slog.Default(), sloghook.Options{SelfHealEvery: 10})
//	hooks := async.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	l, _ := keyload.New(keyload.Options[string, User]{
//	    ...
//	    Hooks: hooks, // or `raw` if a synchronous sink is fine
//	})
package async

import (
	"sync"

	"github.com/keyload/keyload"
)

type Hooks struct {
	inner keyload.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ keyload.Hooks = (*Hooks)(nil)

func New(inner keyload.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}
	h := &Hooks{
		inner: inner,
		q:     make(chan func(), qlen),
	}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for fn := range h.q {
				fn()
			}
		}()
	}
	return h
}

// Close stops accepting events and waits for queued ones to drain.
func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

// enqueue drops the event when the queue is full or closed.
func (h *Hooks) enqueue(fn func()) {
	defer func() { _ = recover() }() // send on closed queue after Close
	select {
	case h.q <- fn:
	default:
	}
}

func (h *Hooks) ResolveDone(name string, hits, negatives, misses int) {
	h.enqueue(func() { h.inner.ResolveDone(name, hits, negatives, misses) })
}

func (h *Hooks) FetchCalled(name string, keys int) {
	h.enqueue(func() { h.inner.FetchCalled(name, keys) })
}

func (h *Hooks) FetchKeyError(storageKey string, err error) {
	h.enqueue(func() { h.inner.FetchKeyError(storageKey, err) })
}

func (h *Hooks) SelfHeal(storageKey, reason string) {
	h.enqueue(func() { h.inner.SelfHeal(storageKey, reason) })
}

func (h *Hooks) ProbeFallback(storageKey string) {
	h.enqueue(func() { h.inner.ProbeFallback(storageKey) })
}
