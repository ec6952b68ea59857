package middleware

import (
	"net/http"
	"strings"

	"softpet/internal/platform/logger"
	"softpet/internal/ports/auth"
)

const (
	loginPath = "/login"
	homePath  = "/"
)

// RouteGuard protege páginas:
//   - /login*, /register*: con sesión válida redirige a "/"; si no, pasa.
//   - resto: sin cookie redirige a /login; cookie inválida se borra y redirige a /login.
//
// Solo mira la cookie; el header Bearer es para la API.
func RouteGuard(verifier auth.AuthVerifier, log logger.Logger, secureCookie bool) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sessionCookie(r)

			if isAuthPage(r.URL.Path) {
				if token != "" {
					_, err := verifier.Verify(r.Context(), token)
					if err == nil {
						http.Redirect(w, r, homePath, http.StatusTemporaryRedirect)
						return
					}
					log.Debug("invalid session on auth page", map[string]any{"error": err, "path": r.URL.Path})
				}
				next.ServeHTTP(w, r)
				return
			}

			if token == "" {
				http.Redirect(w, r, loginPath, http.StatusTemporaryRedirect)
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				log.Info("invalid session", map[string]any{"error": err, "path": r.URL.Path})
				ClearSessionCookie(w, secureCookie)
				http.Redirect(w, r, loginPath, http.StatusTemporaryRedirect)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func isAuthPage(path string) bool {
	return strings.HasPrefix(path, "/login") || strings.HasPrefix(path, "/register")
}

func sessionCookie(r *http.Request) string {
	c, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(c.Value)
}
