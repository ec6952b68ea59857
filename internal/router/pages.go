package router

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"softpet/internal/domain/pets"
	"softpet/internal/middleware"
)

// Las páginas devuelven el modelo de vista en JSON; el render queda del lado cliente.

type pageUser struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type homeModel struct {
	Page    string            `json:"page"`
	User    pageUser          `json:"user"`
	Listing pets.ListResponse `json:"listing"`
}

func homePage(svc *pets.Service, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		q := strings.TrimSpace(r.URL.Query().Get("q"))
		res, err := svc.List(r.Context(), q, pets.ParsePage(r.URL.Query().Get("page")))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writePage(w, homeModel{
			Page:    "home",
			User:    pageUser{ID: claims.UserID, Email: claims.Email},
			Listing: pets.ToListResponse(res, q, claims.UserID, now()),
		})
	}
}

func authPage(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writePage(w, map[string]string{"page": name})
	}
}

func dashboardPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())
		writePage(w, map[string]any{
			"page":    "dashboard",
			"section": chi.URLParam(r, "*"),
			"user":    pageUser{ID: claims.UserID, Email: claims.Email},
		})
	}
}

func writePage(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(v)
}
