package middleware

import (
	"net/http"
	"strings"
	"time"

	"softpet/internal/ports/auth"
)

// SessionCookieName es la cookie que transporta el token de sesión.
const SessionCookieName = "session"

// SetSessionCookie guarda tok con la misma expiración que el token.
func SetSessionCookie(w http.ResponseWriter, tok auth.Token, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    tok.Value,
		Path:     "/",
		Expires:  tok.ExpiresAt,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// SessionToken toma el token de la cookie y, si no hay, del header Bearer.
func SessionToken(r *http.Request) string {
	if c, err := r.Cookie(SessionCookieName); err == nil {
		if v := strings.TrimSpace(c.Value); v != "" {
			return v
		}
	}
	return bearerToken(r.Header.Get("Authorization"))
}
