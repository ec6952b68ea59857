package auth

import "context"

// AuthVerifier verifica un token y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// TokenIssuer firma un token nuevo para un usuario autenticado.
type TokenIssuer interface {
	Issue(userID int64, email string) (Token, error)
}

// PasswordHasher nunca expone ni loguea el texto plano.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}
