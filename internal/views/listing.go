package views

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"softpet/internal/platform/logger"
	"softpet/internal/ports/cache"
)

const generationKey = "pets:list:gen"

// Listing cachea páginas del listado. Cada Invalidate sube la generación,
// así que las páginas viejas dejan de ser alcanzables sin borrarlas.
type Listing struct {
	store cache.Store
	ttl   time.Duration
	log   logger.Logger
}

func NewListing(store cache.Store, ttl time.Duration, log logger.Logger) *Listing {
	if log == nil {
		log = logger.Nop()
	}
	return &Listing{store: store, ttl: ttl, log: log.With(map[string]any{"component": "listing_cache"})}
}

// Load busca key en la generación actual. Devuelve esa generación para que
// Save escriba bajo ella aunque entre medio haya habido un Invalidate; -1 si
// no se pudo leer (Save entonces no escribe).
func (l *Listing) Load(ctx context.Context, key string, dst any) (int64, bool) {
	gen, err := l.generation(ctx)
	if err != nil {
		l.log.Warn("read generation failed", map[string]any{"error": err})
		return -1, false
	}

	raw, err := l.store.Get(ctx, pageKey(gen, key))
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			l.log.Warn("cache get failed", map[string]any{"error": err, "key": key})
		}
		return gen, false
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		l.log.Warn("cache decode failed", map[string]any{"error": err, "key": key})
		return gen, false
	}
	return gen, true
}

// Save guarda v bajo gen, la generación que devolvió Load antes de leer el repo.
func (l *Listing) Save(ctx context.Context, gen int64, key string, v any) {
	if gen < 0 {
		return
	}

	raw, err := json.Marshal(v)
	if err != nil {
		l.log.Warn("cache encode failed", map[string]any{"error": err, "key": key})
		return
	}
	if err := l.store.Set(ctx, pageKey(gen, key), raw, l.ttl); err != nil {
		l.log.Warn("cache set failed", map[string]any{"error": err, "key": key})
	}
}

func (l *Listing) Invalidate(ctx context.Context, ev Event) error {
	gen, err := l.store.Incr(ctx, generationKey)
	if err != nil {
		return err
	}
	l.log.Debug("listing invalidated", map[string]any{"generation": gen, "action": string(ev.Action), "pet_id": ev.PetID})
	return nil
}

func (l *Listing) generation(ctx context.Context) (int64, error) {
	raw, err := l.store.Get(ctx, generationKey)
	if errors.Is(err, cache.ErrMiss) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(string(raw), 10, 64)
}

func pageKey(gen int64, key string) string {
	return "pets:list:" + strconv.FormatInt(gen, 10) + ":" + key
}
