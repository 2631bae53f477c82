// Package ristretto implements the keyload store in-process.
//
// Intended for single-process deployments and tests. The atomic probe is
// trivial here: a local read observes a consistent snapshot of the entry.
// Note that ristretto admits writes asynchronously and may reject entries
// under memory pressure; a rejected write surfaces as a later cache miss,
// which the loader handles like any other miss.
package ristretto

import (
	"bytes"
	"context"
	"errors"
	"time"

	rc "github.com/dgraph-io/ristretto"

	st "github.com/keyload/keyload/store"
)

type Store struct {
	c *rc.Cache
}

var _ st.Store = (*Store)(nil)

type Config struct {
	NumCounters int64
	MaxCost     int64
	BufferItems int64
	Metrics     bool
}

func New(cfg Config) (*Store, error) {
	if cfg.NumCounters <= 0 || cfg.MaxCost <= 0 || cfg.BufferItems <= 0 {
		return nil, errors.New("ristretto store: invalid config")
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
		Metrics:     cfg.Metrics,
	})
	if err != nil {
		return nil, err
	}
	return &Store{c: c}, nil
}

func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := s.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, _ := v.([]byte)
	if b == nil {
		// drop unexpected entry shape
		s.c.Del(key)
		return nil, false, nil
	}
	return b, true, nil
}

func (s *Store) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	cost := int64(len(value))
	if cost == 0 {
		cost = 1
	}
	s.c.SetWithTTL(key, value, cost, ttl)
	return nil
}

func (s *Store) Del(_ context.Context, keys ...string) (int64, error) {
	var n int64
	for _, k := range keys {
		if _, ok := s.c.Get(k); ok {
			n++
		}
		s.c.Del(k)
	}
	return n, nil
}

func (s *Store) Probe(ctx context.Context, key string, negative []byte) (st.Presence, error) {
	b, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return st.Absent, err
	}
	if bytes.Equal(b, negative) {
		return st.Negative, nil
	}
	return st.Value, nil
}

func (s *Store) Close(_ context.Context) error {
	s.c.Wait()
	s.c.Close()
	return nil
}

// Wait blocks until buffered writes have been applied. Useful in tests;
// production readers should tolerate the admission delay instead.
func (s *Store) Wait() { s.c.Wait() }

// Metrics exposes ristretto metrics when enabled (not part of store.Store).
func (s *Store) Metrics() *rc.Metrics { return s.c.Metrics }
