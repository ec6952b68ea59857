package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"

	"softpet/internal/domain/users"
)

const userColumns = `id, email, name, contact, password_hash, created_at, updated_at`

type UsersRepo struct {
	db DB
}

func NewUsersRepo(db DB) *UsersRepo {
	return &UsersRepo{db: db}
}

// Create confía en el índice único de email: una violación => ErrEmailTaken.
func (r *UsersRepo) Create(ctx context.Context, u users.User) (users.User, error) {
	u.Email = users.NormalizeEmail(u.Email)

	err := r.db.QueryRow(ctx, `
		INSERT INTO users (email, name, contact, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, u.Email, u.Name, u.Contact, u.PasswordHash, u.CreatedAt, u.UpdatedAt).Scan(&u.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return users.User{}, users.ErrEmailTaken
		}
		return users.User{}, oops.Code("USER_INSERT_FAILED").Wrap(err)
	}
	return u, nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id int64) (users.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row, "id", id)
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	email = users.NormalizeEmail(email)
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row, "email", email)
}

func scanUser(row pgx.Row, key string, value any) (users.User, error) {
	var u users.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Contact, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return users.User{}, users.ErrNotFound
	}
	if err != nil {
		return users.User{}, oops.Code("USER_QUERY_FAILED").With(key, value).Wrap(err)
	}
	return u, nil
}
