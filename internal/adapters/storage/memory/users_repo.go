package memory

import (
	"context"
	"sync"

	"softpet/internal/domain/users"
)

// userRepo chequea e inserta bajo el mismo lock, así el email es único
// aun con registros concurrentes.
type userRepo struct {
	mu      sync.RWMutex
	byID    map[int64]users.User
	byEmail map[string]int64
	nextID  int64
}

func NewUserRepo() users.Repository {
	return &userRepo{
		byID:    make(map[int64]users.User),
		byEmail: make(map[string]int64),
	}
}

func (r *userRepo) Create(ctx context.Context, u users.User) (users.User, error) {
	u.Email = users.NormalizeEmail(u.Email)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[u.Email]; taken {
		return users.User{}, users.ErrEmailTaken
	}
	r.nextID++
	u.ID = r.nextID
	r.byID[u.ID] = u
	r.byEmail[u.Email] = u.ID
	return u, nil
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return u, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[users.NormalizeEmail(email)]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return r.byID[id], nil
}
