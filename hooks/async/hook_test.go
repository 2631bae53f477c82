package async

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/keyload/keyload"
)

// countingHooks tallies deliveries per event type.
type countingHooks struct {
	mu       sync.Mutex
	resolves int
	fetches  int
	keyErrs  int
	heals    int
	probes   int
}

var _ keyload.Hooks = (*countingHooks)(nil)

func (h *countingHooks) ResolveDone(string, int, int, int) { h.bump(&h.resolves) }
func (h *countingHooks) FetchCalled(string, int)           { h.bump(&h.fetches) }
func (h *countingHooks) FetchKeyError(string, error)       { h.bump(&h.keyErrs) }
func (h *countingHooks) SelfHeal(string, string)           { h.bump(&h.heals) }
func (h *countingHooks) ProbeFallback(string)              { h.bump(&h.probes) }

func (h *countingHooks) bump(n *int) {
	h.mu.Lock()
	*n++
	h.mu.Unlock()
}

func TestDeliversAllEventTypes(t *testing.T) {
	inner := &countingHooks{}
	h := New(inner, 2, 64)

	h.ResolveDone("users", 3, 1, 2)
	h.FetchCalled("users", 2)
	h.FetchKeyError("users:7", errors.New("boom"))
	h.SelfHeal("users:9", "corrupt")
	h.ProbeFallback("users:11")
	h.Close() // drains the queue

	inner.mu.Lock()
	defer inner.mu.Unlock()
	if inner.resolves != 1 || inner.fetches != 1 || inner.keyErrs != 1 || inner.heals != 1 || inner.probes != 1 {
		t.Fatalf("delivery counts = %+v", inner)
	}
}

func TestCloseIdempotentAndSafeAfter(t *testing.T) {
	inner := &countingHooks{}
	h := New(inner, 1, 8)
	h.Close()
	h.Close()

	// Events after Close are dropped, never a panic.
	h.ResolveDone("users", 0, 0, 0)

	inner.mu.Lock()
	defer inner.mu.Unlock()
	if inner.resolves != 0 {
		t.Fatalf("event delivered after Close")
	}
}

func TestFullQueueDropsInsteadOfBlocking(t *testing.T) {
	block := make(chan struct{})
	inner := &blockingHooks{release: block}
	h := New(inner, 1, 1)

	// First event occupies the worker, second fills the queue; the rest
	// must return immediately.
	for i := 0; i < 10; i++ {
		h.ProbeFallback("k")
	}
	close(block)
	h.Close()

	if got := inner.count.Load(); got < 1 || got > 2 {
		t.Fatalf("delivered %d events, want 1 or 2 (rest dropped)", got)
	}
}

type blockingHooks struct {
	keyload.NopHooks
	release chan struct{}
	count   atomic.Int64
}

func (h *blockingHooks) ProbeFallback(string) {
	<-h.release
	h.count.Add(1)
}
