package keyload

// entryState tracks one distinct store key through a resolution pass.
//
//	unresolved -> hit          store held a positive entry
//	unresolved -> negativeHit  store held a negative entry, or the fetch
//	                           reported "no value"
//	unresolved -> fetched      the fetch produced a value
//	unresolved -> fetchErr     the fetch failed for this key
//
// Transitions are one-way; a resolved entry never changes again within the
// pass, and entries never outlive it.
type entryState uint8

const (
	stateUnresolved entryState = iota
	stateHit
	stateNegativeHit
	stateFetched
	stateFetchErr
)

func (s entryState) String() string {
	switch s {
	case stateHit:
		return "hit"
	case stateNegativeHit:
		return "negative-hit"
	case stateFetched:
		return "fetched"
	case stateFetchErr:
		return "fetch-error"
	default:
		return "unresolved"
	}
}

// entry is the pass-local resolution record for one distinct store key.
// key holds the first logical key that mapped to storeKey; duplicates in
// the input share the entry.
type entry[K comparable, V any] struct {
	storeKey string
	key      K

	state entryState
	value V
	err   error
}

func newEntry[K comparable, V any](storeKey string, key K) *entry[K, V] {
	return &entry[K, V]{storeKey: storeKey, key: key}
}

func (e *entry[K, V]) hit(v V) {
	if e.state != stateUnresolved {
		return
	}
	e.state, e.value = stateHit, v
}

func (e *entry[K, V]) negativeHit() {
	if e.state != stateUnresolved {
		return
	}
	e.state = stateNegativeHit
}

func (e *entry[K, V]) fetched(v V) {
	if e.state != stateUnresolved {
		return
	}
	e.state, e.value = stateFetched, v
}

func (e *entry[K, V]) fetchFailed(err error) {
	if e.state != stateUnresolved {
		return
	}
	e.state, e.err = stateFetchErr, err
}

// resolved reports whether the store pass settled this entry; unresolved
// entries are the miss set handed to the fetch.
func (e *entry[K, V]) resolved() bool { return e.state != stateUnresolved }
