package keyload

import (
	"errors"
	"testing"
)

func TestEntryTransitionsAreOneWay(t *testing.T) {
	e := newEntry[string, string]("user:1", "1")
	if e.resolved() {
		t.Fatalf("fresh entry must be unresolved")
	}

	e.hit("cached")
	if e.state != stateHit || e.value != "cached" {
		t.Fatalf("after hit: state=%v value=%q", e.state, e.value)
	}

	// A settled entry ignores every later transition.
	e.fetched("late")
	e.negativeHit()
	e.fetchFailed(errors.New("late error"))
	if e.state != stateHit || e.value != "cached" || e.err != nil {
		t.Fatalf("settled entry changed: state=%v value=%q err=%v", e.state, e.value, e.err)
	}
}

func TestEntryFetchFailure(t *testing.T) {
	boom := errors.New("boom")
	e := newEntry[string, string]("user:1", "1")
	e.fetchFailed(boom)
	if e.state != stateFetchErr || e.err != boom {
		t.Fatalf("state=%v err=%v", e.state, e.err)
	}
	e.hit("too late")
	if e.state != stateFetchErr {
		t.Fatalf("failure must not be overwritten, state=%v", e.state)
	}
}

func TestEntryStateString(t *testing.T) {
	cases := map[entryState]string{
		stateUnresolved:  "unresolved",
		stateHit:         "hit",
		stateNegativeHit: "negative-hit",
		stateFetched:     "fetched",
		stateFetchErr:    "fetch-error",
	}
	for s, want := range cases {
		if got := s.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", s, got, want)
		}
	}
}
