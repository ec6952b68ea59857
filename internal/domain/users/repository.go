package users

import "context"

// Repository garantiza unicidad de email: Create devuelve ErrEmailTaken
// aunque dos registros concurrentes pasen el chequeo previo.
type Repository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
}
