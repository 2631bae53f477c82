package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	st "github.com/keyload/keyload/store"
)

func newTestStore(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	s, err := New(Config{Client: client, CloseClient: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s, mr
}

func TestNewNilClient(t *testing.T) {
	_, err := New(Config{})
	require.ErrorIs(t, err, ErrNilClient)
}

func TestGetSetRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	_, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok, "missing key must read as a clean miss")

	require.NoError(t, s.Set(ctx, "k", []byte("payload"), time.Minute))

	b, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("payload"), b)
}

func TestSetTTL(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t)

	require.NoError(t, s.Set(ctx, "k", []byte("v"), 30*time.Second))
	require.Equal(t, 30*time.Second, mr.TTL("k"))

	mr.FastForward(31 * time.Second)
	_, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok, "entry must expire with its TTL")
}

func TestSetNoExpiry(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t)

	require.NoError(t, s.Set(ctx, "k", []byte("v"), 0))
	require.Zero(t, mr.TTL("k"))
}

func TestDelCountsExisting(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	require.NoError(t, s.Set(ctx, "a", []byte("1"), 0))
	require.NoError(t, s.Set(ctx, "b", []byte("2"), 0))

	n, err := s.Del(ctx, "a", "b", "never-existed")
	require.NoError(t, err)
	require.EqualValues(t, 2, n)

	n, err = s.Del(ctx)
	require.NoError(t, err)
	require.Zero(t, n, "empty key list is a no-op, not a namespace flush")
}

func TestProbeTriState(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	negative := []byte{'k', 'l', 1, 2}

	p, err := s.Probe(ctx, "absent", negative)
	require.NoError(t, err)
	require.Equal(t, st.Absent, p)

	require.NoError(t, s.Set(ctx, "neg", negative, time.Minute))
	p, err = s.Probe(ctx, "neg", negative)
	require.NoError(t, err)
	require.Equal(t, st.Negative, p)

	require.NoError(t, s.Set(ctx, "val", []byte("anything else"), time.Minute))
	p, err = s.Probe(ctx, "val", negative)
	require.NoError(t, err)
	require.Equal(t, st.Value, p)

	// A value whose payload merely contains the negative bytes still reads
	// as a value; only an exact match is negative.
	require.NoError(t, s.Set(ctx, "near", append(negative, 'x'), time.Minute))
	p, err = s.Probe(ctx, "near", negative)
	require.NoError(t, err)
	require.Equal(t, st.Value, p)
}

func TestCloseIdempotent(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	s, err := New(Config{Client: client, CloseClient: true})
	require.NoError(t, err)

	require.NoError(t, s.Close(context.Background()))
	require.NoError(t, s.Close(context.Background()))
}

func TestCloseBorrowedClient(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()

	s, err := New(Config{Client: client})
	require.NoError(t, err)
	require.NoError(t, s.Close(context.Background()))

	// The borrowed client stays usable.
	require.NoError(t, client.Ping(context.Background()).Err())
}
