package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss indica que la key no existe o expiró.
var ErrMiss = errors.New("cache miss")

// Store es un key/value con TTL y contadores atómicos.
// ttl <= 0 => sin expiración.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Incr(ctx context.Context, key string) (int64, error)
}
