package redis

import (
	"context"
	"errors"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/samber/oops"

	"softpet/internal/ports/cache"
)

// Store implementa cache.Store sobre Redis con keys "namespace:key".
type Store struct {
	client    goredis.UniversalClient
	namespace string
}

func New(addr, password, namespace string) *Store {
	return NewWithClient(goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	}), namespace)
}

// NewWithClient permite inyectar cliente (cluster, tests).
func NewWithClient(client goredis.UniversalClient, namespace string) *Store {
	return &Store{client: client, namespace: strings.TrimSpace(namespace)}
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return oops.Code("CACHE_PING_FAILED").Wrap(err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, cache.ErrMiss
	}
	if err != nil {
		return nil, oops.Code("CACHE_GET_FAILED").With("key", key).Wrap(err)
	}
	return b, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := s.client.Set(ctx, s.key(key), value, ttl).Err(); err != nil {
		return oops.Code("CACHE_SET_FAILED").With("key", key).Wrap(err)
	}
	return nil
}

func (s *Store) Incr(ctx context.Context, key string) (int64, error) {
	n, err := s.client.Incr(ctx, s.key(key)).Result()
	if err != nil {
		return 0, oops.Code("CACHE_INCR_FAILED").With("key", key).Wrap(err)
	}
	return n, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) key(k string) string {
	if s.namespace == "" {
		return k
	}
	return s.namespace + ":" + k
}
