package users

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")
)

// User es una cuenta registrada. PasswordHash nunca se serializa.
type User struct {
	ID           int64
	Email        string
	Name         string
	Contact      string
	PasswordHash string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalizeEmail es la forma canónica con la que se guarda y busca un email.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
