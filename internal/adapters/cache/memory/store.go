package memory

import (
	"context"
	"strconv"
	"sync"
	"time"

	"softpet/internal/ports/cache"
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

// sweepEvery acota cada cuánto Set recorre el mapa borrando vencidos.
const sweepEvery = time.Minute

// Store es el cache.Store in-process para dev/tests. Los contadores se guardan
// como enteros decimales, igual que INCR en Redis. Las entradas vencidas se
// borran al leerlas y en un barrido periódico desde Set.
type Store struct {
	mu        sync.Mutex
	items     map[string]entry
	now       func() time.Time
	lastSweep time.Time
}

func NewStore() *Store {
	return &Store{
		items: map[string]entry{},
		now:   time.Now,
	}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.items[key]
	if !ok {
		return nil, cache.ErrMiss
	}
	if s.expired(e) {
		delete(s.items, key)
		return nil, cache.ErrMiss
	}
	return append([]byte(nil), e.value...), nil
}

func (s *Store) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	now := s.now()
	e := entry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expiresAt = now.Add(ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[key] = e
	if now.Sub(s.lastSweep) >= sweepEvery {
		s.sweep()
		s.lastSweep = now
	}
	return nil
}

// Len cuenta entradas guardadas, vencidas incluidas.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// sweep borra vencidos. Llamar con mu tomado.
func (s *Store) sweep() {
	for k, e := range s.items {
		if s.expired(e) {
			delete(s.items, k)
		}
	}
}

func (s *Store) Incr(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	if e, ok := s.items[key]; ok && !s.expired(e) {
		v, err := strconv.ParseInt(string(e.value), 10, 64)
		if err != nil {
			return 0, err
		}
		n = v
	}
	n++
	s.items[key] = entry{value: []byte(strconv.FormatInt(n, 10))}
	return n, nil
}

func (s *Store) expired(e entry) bool {
	return !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt)
}
