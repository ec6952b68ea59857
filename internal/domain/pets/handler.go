package pets

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"softpet/internal/middleware"
	"softpet/internal/platform/outcome"
	"softpet/internal/validation"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Get("/", listPetsHandler(svc))
		pr.Post("/", createPetHandler(svc))

		pr.Get("/{petID}", getPetHandler(svc))

		// El formulario HTML solo puede hacer POST; PUT para clientes JSON.
		pr.Put("/{petID}", updatePetHandler(svc))
		pr.Post("/{petID}", updatePetHandler(svc))

		pr.Delete("/{petID}", deletePetHandler(svc))
	})
}

// PetResponse es la vista pública de una mascota para quien la consulta.
type PetResponse struct {
	ID          int64     `json:"id"`
	OwnerUserID int64     `json:"owner_user_id"`
	Name        string    `json:"name"`
	Type        Type      `json:"type"`
	Breed       string    `json:"breed"`
	OwnerName   string    `json:"owner_name"`
	OwnerPhone  string    `json:"owner_phone"`
	BirthDate   string    `json:"birth_date"`
	Age         string    `json:"age,omitempty"`
	IsOwner     bool      `json:"is_owner"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ListResponse struct {
	Items      []PetResponse `json:"items"`
	Query      string        `json:"q,omitempty"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	Total      int           `json:"total"`
	TotalPages int           `json:"total_pages"`
}

func ToPetResponse(p Pet, viewerID int64, now time.Time) PetResponse {
	return PetResponse{
		ID:          p.ID,
		OwnerUserID: p.OwnerUserID,
		Name:        p.Name,
		Type:        p.Type,
		Breed:       p.Breed,
		OwnerName:   p.OwnerName,
		OwnerPhone:  p.OwnerPhone,
		BirthDate:   p.BirthDate,
		Age:         p.Age(now),
		IsOwner:     p.OwnedBy(viewerID),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func ToListResponse(res ListResult, query string, viewerID int64, now time.Time) ListResponse {
	out := ListResponse{
		Items:      make([]PetResponse, 0, len(res.Items)),
		Query:      query,
		Page:       res.Page,
		PageSize:   res.PageSize,
		Total:      res.Total,
		TotalPages: res.TotalPages,
	}
	for _, p := range res.Items {
		out.Items = append(out.Items, ToPetResponse(p, viewerID, now))
	}
	return out
}

// ParsePage: vacío, no numérico o < 1 => 1.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// listPetsHandler godoc
// @Summary Listado paginado de mascotas
// @Tags pets
// @Produce json
// @Param q query string false "busca en nombre de mascota o dueño"
// @Param page query int false "página (1-based)"
// @Success 200 {object} ListResponse
// @Failure 401
// @Router /pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		q := strings.TrimSpace(r.URL.Query().Get("q"))
		res, err := svc.List(r.Context(), q, ParsePage(r.URL.Query().Get("page")))
		if err != nil {
			svc.log.Error("list pets failed", map[string]any{"error": err})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, ToListResponse(res, q, claims.UserID, svc.now()))
	}
}

// getPetHandler godoc
// @Summary Perfil de mascota
// @Tags pets
// @Produce json
// @Param petID path int true "id"
// @Success 200 {object} PetResponse
// @Failure 401,404
// @Router /pets/{petID} [get]
func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		id, ok := parseID(chi.URLParam(r, "petID"))
		if !ok {
			http.Error(w, MsgNotFound, http.StatusNotFound)
			return
		}

		p, err := svc.GetByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, MsgNotFound, http.StatusNotFound)
				return
			}
			svc.log.Error("get pet failed", map[string]any{"error": err, "pet_id": id})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, ToPetResponse(p, claims.UserID, svc.now()))
	}
}

// createPetHandler godoc
// @Summary Alta de mascota (dueño = usuario de la sesión)
// @Tags pets
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Success 201 {object} Result
// @Failure 400,401,500 {object} Result
// @Router /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := validation.DecodeRequest(r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, fail(outcome.Invalid, MsgInvalidInput))
			return
		}

		res := svc.Create(r.Context(), middleware.SessionToken(r), p)
		writeJSON(w, res.Kind.HTTPStatus(), res)
	}
}

// updatePetHandler godoc
// @Summary Edición de mascota (solo dueño)
// @Tags pets
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param petID path int true "id"
// @Success 200 {object} Result
// @Failure 400,401,403,404,500 {object} Result
// @Router /pets/{petID} [put]
func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := validation.DecodeRequest(r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, fail(outcome.Invalid, MsgInvalidInput))
			return
		}

		res := svc.Update(r.Context(), middleware.SessionToken(r), chi.URLParam(r, "petID"), p)
		writeJSON(w, res.Kind.HTTPStatus(), res)
	}
}

// deletePetHandler godoc
// @Summary Baja de mascota (solo dueño)
// @Tags pets
// @Produce json
// @Param petID path int true "id"
// @Success 200 {object} Result
// @Failure 401,403,404,500 {object} Result
// @Router /pets/{petID} [delete]
func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := svc.Delete(r.Context(), middleware.SessionToken(r), chi.URLParam(r, "petID"))
		writeJSON(w, res.Kind.HTTPStatus(), res)
	}
}

// writeJSON está duplicado en cada módulo de handlers (auth/pets) a propósito.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
