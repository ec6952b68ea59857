package auth

import "time"

// Claims representa la información extraída del token de sesión.
type Claims struct {
	UserID    int64
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Token es un token de sesión firmado junto con su ventana de validez.
type Token struct {
	Value     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
