package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"softpet/internal/domain/users"
	"softpet/internal/middleware"
	"softpet/internal/platform/outcome"
	"softpet/internal/validation"
)

// RegisterRoutes monta /auth. secureCookie debe ser true en producción.
func RegisterRoutes(r chi.Router, svc *Service, secureCookie bool) {
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/register", registerHandler(svc))
		ar.Post("/login", loginHandler(svc, secureCookie))
		ar.Post("/logout", logoutHandler(svc, secureCookie))
		ar.Get("/me", meHandler(svc))
	})
}

type userResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact"`
	CreatedAt time.Time `json:"created_at"`
}

// registerHandler godoc
// @Summary Crear cuenta
// @Tags auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Success 201 {object} Result
// @Failure 400,409,500 {object} Result
// @Router /auth/register [post]
func registerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := validation.DecodeRequest(r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, Result{Message: MsgValidation})
			return
		}

		res := svc.Register(r.Context(), p)
		writeJSON(w, res.Kind.HTTPStatus(), res)
	}
}

// loginHandler godoc
// @Summary Iniciar sesión (setea cookie "session")
// @Tags auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Success 200 {object} Result
// @Failure 400,401,500 {object} Result
// @Router /auth/login [post]
func loginHandler(svc *Service, secureCookie bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := validation.DecodeRequest(r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, Result{Message: MsgValidation})
			return
		}

		res, tok := svc.Login(r.Context(), p)
		if res.Success {
			middleware.SetSessionCookie(w, tok, secureCookie)
		}
		writeJSON(w, res.Kind.HTTPStatus(), res)
	}
}

// logoutHandler godoc
// @Summary Cerrar sesión (borra cookie)
// @Tags auth
// @Produce json
// @Success 200 {object} Result
// @Router /auth/logout [post]
func logoutHandler(svc *Service, secureCookie bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		res := svc.Logout(r.Context(), claims, ok)
		middleware.ClearSessionCookie(w, secureCookie)
		writeJSON(w, outcome.OK.HTTPStatus(), res)
	}
}

// meHandler godoc
// @Summary Usuario de la sesión actual
// @Tags auth
// @Produce json
// @Success 200 {object} userResponse
// @Failure 401
// @Router /auth/me [get]
func meHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		u, err := svc.Me(r.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, users.ErrNotFound) {
				// token válido de un usuario que ya no existe
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, userResponse{
			ID:        u.ID,
			Email:     u.Email,
			Name:      u.Name,
			Contact:   u.Contact,
			CreatedAt: u.CreatedAt,
		})
	}
}

// writeJSON está duplicado en cada módulo de handlers (auth/pets) a propósito.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
