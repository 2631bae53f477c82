// Package redis implements the keyload store on top of go-redis.
package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	st "github.com/keyload/keyload/store"
)

var ErrNilClient = errors.New("redis store: nil client")

// probeScript answers the existence probe in one atomic round-trip:
// nil when the key is absent, 0 when it holds the negative entry (ARGV[1]),
// 1 when it holds anything else. NewScript handles EVALSHA registration and
// the EVAL fallback on NOSCRIPT.
var probeScript = goredis.NewScript(`
local v = redis.call('GET', KEYS[1])
if v == false then
  return false
end
if v == ARGV[1] then
  return 0
end
return 1
`)

type Redis struct {
	rdb         goredis.UniversalClient
	closeClient bool
}

var _ st.Store = (*Redis)(nil)

type Config struct {
	Client      goredis.UniversalClient
	CloseClient bool // set true only if this store exclusively owns the client
}

func New(cfg Config) (*Redis, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	return &Redis{rdb: cfg.Client, closeClient: cfg.CloseClient}, nil
}

func (s *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := s.rdb.Get(ctx, key).Bytes()
	if err == goredis.Nil {
		return nil, false, nil // miss
	}
	if err != nil {
		return nil, false, err // transport/server error
	}
	return b, true, nil
}

func (s *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = 0 // no expiry
	}
	return s.rdb.Set(ctx, key, value, ttl).Err()
}

func (s *Redis) Del(ctx context.Context, keys ...string) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	return s.rdb.Del(ctx, keys...).Result()
}

func (s *Redis) Probe(ctx context.Context, key string, negative []byte) (st.Presence, error) {
	res, err := probeScript.Run(ctx, s.rdb, []string{key}, negative).Int()
	if err == goredis.Nil {
		return st.Absent, nil
	}
	if err != nil {
		return st.Absent, err
	}
	if res == 0 {
		return st.Negative, nil
	}
	return st.Value, nil
}

// Close releases the underlying redis client only when this store owns it.
// Safe to call multiple times; repeated calls become no-ops.
func (s *Redis) Close(context.Context) error {
	if s.closeClient {
		if err := s.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}
