// Package store defines the key/value storage abstraction used by keyload.
//
// Implementations MUST be byte-for-byte transparent: Get must return exactly
// the same []byte that was previously passed to Set for a key (no prepended
// metadata, no re-encoding, no mutation). The loader owns the envelope format
// stored under its keys; foreign writes under a loader's namespace may be
// treated as corruption and deleted.
//
// There is deliberately no multi-key batch read: the backing store may be a
// sharded cluster where a batch get is not guaranteed to be routed to one
// shard. The loader fans out single-key operations instead.
package store

import (
	"context"
	"time"
)

// Presence is the tri-state answer of an existence probe.
type Presence int

const (
	// Absent means the key holds no entry at all.
	Absent Presence = iota
	// Value means the key holds a positive entry.
	Value
	// Negative means the key holds a negative entry (confirmed absent
	// upstream).
	Negative
)

func (p Presence) String() string {
	switch p {
	case Value:
		return "value"
	case Negative:
		return "negative"
	default:
		return "absent"
	}
}

// Store is a minimal remote byte store with per-key TTLs.
// Must be safe for concurrent use.
type Store interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	// If an IO/remote error happens, return (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value with the given TTL. A non-positive TTL means
	// "no expiry".
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Del removes keys and returns how many existed.
	Del(ctx context.Context, keys ...string) (int64, error)

	// Probe answers whether key holds a value, the given negative entry, or
	// nothing, in a single round-trip wherever the backend allows it.
	// The negative argument is the exact byte form of a negative entry.
	Probe(ctx context.Context, key string, negative []byte) (Presence, error)

	// Close releases resources.
	Close(ctx context.Context) error
}
