package pets

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"softpet/internal/platform/logger"
	"softpet/internal/platform/outcome"
	"softpet/internal/ports/auth"
	"softpet/internal/validation"
	"softpet/internal/views"
)

const DefaultPageSize = 16

const (
	MsgNotAuthenticated = "not authenticated"
	MsgInvalidSession   = "invalid session"
	MsgNotFound         = "pet not found"
	MsgForbidden        = "forbidden"
	MsgInvalidInput     = "invalid pet data"
	MsgSaveFailed       = "could not save pet, try again"
	MsgDeleteFailed     = "could not delete pet, try again"
)

// Result es la respuesta uniforme de create/update/delete.
type Result struct {
	Success bool         `json:"success,omitempty"`
	Error   string       `json:"error,omitempty"`
	ID      int64        `json:"id,omitempty"`
	Kind    outcome.Kind `json:"-"`
}

func fail(kind outcome.Kind, msg string) Result {
	return Result{Error: msg, Kind: kind}
}

// ListCache guarda páginas ya resueltas; nil => sin cache.
// ListCache: Load devuelve la generación leída; Save escribe bajo esa misma
// generación para que una mutación concurrente no quede tapada por una página vieja.
type ListCache interface {
	Load(ctx context.Context, key string, dst any) (gen int64, hit bool)
	Save(ctx context.Context, gen int64, key string, v any)
}

type Config struct {
	PageSize int
	Views    views.Invalidator
	Cache    ListCache
	Logger   logger.Logger
}

type Service struct {
	repo     Repository
	verifier auth.AuthVerifier
	validate *validation.Validator
	views    views.Invalidator
	cache    ListCache
	log      logger.Logger
	pageSize int
	now      func() time.Time
}

func NewService(repo Repository, verifier auth.AuthVerifier, v *validation.Validator, cfg Config) *Service {
	if v == nil {
		v = validation.New()
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.Views == nil {
		cfg.Views = views.Nop{}
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}
	return &Service{
		repo:     repo,
		verifier: verifier,
		validate: v,
		views:    cfg.Views,
		cache:    cfg.Cache,
		log:      cfg.Logger.With(map[string]any{"component": "pets"}),
		pageSize: cfg.PageSize,
		now:      time.Now,
	}
}

func (s *Service) PageSize() int { return s.pageSize }

// authenticate verifica el token de sesión del request.
func (s *Service) authenticate(ctx context.Context, token string) (auth.Claims, *Result) {
	if strings.TrimSpace(token) == "" {
		r := fail(outcome.Unauthenticated, MsgNotAuthenticated)
		return auth.Claims{}, &r
	}
	claims, err := s.verifier.Verify(ctx, token)
	if err != nil || claims.UserID <= 0 {
		r := fail(outcome.Unauthenticated, MsgInvalidSession)
		return auth.Claims{}, &r
	}
	return claims, nil
}

func (s *Service) Create(ctx context.Context, token string, p validation.Payload) Result {
	claims, res := s.authenticate(ctx, token)
	if res != nil {
		return *res
	}

	in, verrs := parseCreate(s.validate, p)
	if verrs != nil {
		return fail(outcome.Invalid, firstOr(verrs, MsgInvalidInput))
	}

	now := s.now()
	created, err := s.repo.Create(ctx, Pet{
		OwnerUserID: claims.UserID,
		Name:        in.Name,
		Type:        Type(in.Type),
		Breed:       in.Breed,
		OwnerName:   in.OwnerName,
		OwnerPhone:  in.OwnerPhone,
		BirthDate:   in.BirthDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		s.log.Error("create pet failed", map[string]any{"error": err, "user_id": claims.UserID})
		return fail(outcome.Internal, MsgSaveFailed)
	}

	s.invalidate(ctx, views.ActionCreated, created.ID, claims.UserID)
	return Result{Success: true, ID: created.ID, Kind: outcome.Created}
}

// Update: id puede venir en el path (id) o en el payload; el path gana.
func (s *Service) Update(ctx context.Context, token, id string, p validation.Payload) Result {
	claims, res := s.authenticate(ctx, token)
	if res != nil {
		return *res
	}

	// el id del path manda; no numérico o <= 0 => not found, igual que Delete
	if raw := strings.TrimSpace(id); raw != "" {
		if _, ok := parseID(raw); !ok {
			return fail(outcome.NotFound, MsgNotFound)
		}
		p = p.With("id", raw)
	}
	petID, in, verrs := parseUpdate(s.validate, p)
	if verrs != nil {
		return fail(outcome.Invalid, firstOr(verrs, MsgInvalidInput))
	}
	if petID <= 0 {
		return fail(outcome.NotFound, MsgNotFound)
	}

	current, res := s.authorize(ctx, petID, claims.UserID)
	if res != nil {
		return *res
	}

	// OwnerUserID no se toca
	current.Name = in.Name
	current.Type = Type(in.Type)
	current.Breed = in.Breed
	current.OwnerName = in.OwnerName
	current.OwnerPhone = in.OwnerPhone
	current.BirthDate = in.BirthDate
	current.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, current); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fail(outcome.NotFound, MsgNotFound)
		}
		s.log.Error("update pet failed", map[string]any{"error": err, "pet_id": petID, "user_id": claims.UserID})
		return fail(outcome.Internal, MsgSaveFailed)
	}

	s.invalidate(ctx, views.ActionUpdated, petID, claims.UserID)
	return Result{Success: true, ID: petID, Kind: outcome.OK}
}

func (s *Service) Delete(ctx context.Context, token, id string) Result {
	claims, res := s.authenticate(ctx, token)
	if res != nil {
		return *res
	}

	petID, ok := parseID(strings.TrimSpace(id))
	if !ok {
		return fail(outcome.NotFound, MsgNotFound)
	}

	if _, res := s.authorize(ctx, petID, claims.UserID); res != nil {
		if res.Error == MsgSaveFailed {
			res.Error = MsgDeleteFailed
		}
		return *res
	}

	if err := s.repo.Delete(ctx, petID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fail(outcome.NotFound, MsgNotFound)
		}
		s.log.Error("delete pet failed", map[string]any{"error": err, "pet_id": petID, "user_id": claims.UserID})
		return fail(outcome.Internal, MsgDeleteFailed)
	}

	s.invalidate(ctx, views.ActionDeleted, petID, claims.UserID)
	return Result{Success: true, ID: petID, Kind: outcome.OK}
}

func (s *Service) GetByID(ctx context.Context, id int64) (Pet, error) {
	if id <= 0 {
		return Pet{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// ListResult es una página del listado.
type ListResult struct {
	Items      []Pet `json:"items"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int   `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// List: page < 1 => 1. Lectura para cualquier usuario autenticado.
func (s *Service) List(ctx context.Context, query string, page int) (ListResult, error) {
	query = strings.TrimSpace(query)
	page = clampPage(page, s.pageSize)

	key := fmt.Sprintf("q=%s&page=%d&size=%d", strings.ToLower(query), page, s.pageSize)
	var gen int64
	if s.cache != nil {
		var cached ListResult
		var hit bool
		if gen, hit = s.cache.Load(ctx, key, &cached); hit {
			return cached, nil
		}
	}

	res, err := s.repo.List(ctx, ListFilter{Query: query, Page: page, PageSize: s.pageSize})
	if err != nil {
		return ListResult{}, err
	}

	out := ListResult{
		Items:      res.Items,
		Page:       page,
		PageSize:   s.pageSize,
		Total:      res.Total,
		TotalPages: totalPages(res.Total, s.pageSize),
	}
	if out.Items == nil {
		out.Items = []Pet{}
	}

	if s.cache != nil {
		s.cache.Save(ctx, gen, key, out)
	}
	return out, nil
}

// clampPage: page < 1 => 1; tope para que (page-1)*size no desborde.
func clampPage(page, size int) int {
	if page < 1 {
		return 1
	}
	if size > 0 && page > math.MaxInt/size {
		return math.MaxInt / size
	}
	return page
}

func totalPages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

// invalidate no falla la mutación: la escritura ya quedó hecha.
func (s *Service) invalidate(ctx context.Context, action views.Action, petID, actorID int64) {
	ev := views.NewEvent(action, petID, actorID, s.now())
	if err := s.views.Invalidate(ctx, ev); err != nil {
		s.log.Warn("invalidate views failed", map[string]any{"error": err, "pet_id": petID, "action": string(action)})
	}
}

func firstOr(errs *validation.FieldErrors, fallback string) string {
	if m := errs.First(); m != "" {
		return m
	}
	return fallback
}
