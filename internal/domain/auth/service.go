package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"softpet/internal/domain/users"
	"softpet/internal/platform/logger"
	"softpet/internal/platform/outcome"
	authport "softpet/internal/ports/auth"
	"softpet/internal/validation"
)

const (
	MsgValidation         = "validation error"
	MsgInvalidForm        = "invalid form data"
	MsgEmailTaken         = "email already registered"
	MsgRegistered         = "account created"
	MsgRegisterFailed     = "could not create account, try again later"
	MsgInvalidCredentials = "incorrect email or password"
	MsgLoggedIn           = "logged in"
	MsgLoginFailed        = "could not log in"
	MsgLoggedOut          = "logged out"
)

// Result es la respuesta uniforme de register/login/logout.
type Result struct {
	Success bool                    `json:"success"`
	Message string                  `json:"message,omitempty"`
	Errors  *validation.FieldErrors `json:"errors,omitempty"`
	Kind    outcome.Kind            `json:"-"`
}

type Service struct {
	users    users.Repository
	hasher   authport.PasswordHasher
	tokens   authport.TokenIssuer
	validate *validation.Validator
	log      logger.Logger
	now      func() time.Time

	// hash de relleno para que un email desconocido cueste lo mismo que uno conocido
	dummyOnce sync.Once
	dummyHash string
}

func NewService(repo users.Repository, hasher authport.PasswordHasher, tokens authport.TokenIssuer, v *validation.Validator, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	if v == nil {
		v = validation.New()
	}
	return &Service{
		users:    repo,
		hasher:   hasher,
		tokens:   tokens,
		validate: v,
		log:      log.With(map[string]any{"component": "auth"}),
		now:      time.Now,
	}
}

func (s *Service) Register(ctx context.Context, p validation.Payload) Result {
	in, verrs := parseRegister(s.validate, p)
	if verrs != nil {
		return Result{Message: MsgValidation, Errors: verrs, Kind: outcome.Invalid}
	}

	_, err := s.users.GetByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return Result{Message: MsgEmailTaken, Kind: outcome.Conflict}
	case !errors.Is(err, users.ErrNotFound):
		s.log.Error("register: lookup email failed", map[string]any{"error": err})
		return Result{Message: MsgRegisterFailed, Kind: outcome.Internal}
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		s.log.Error("register: hash password failed", map[string]any{"error": err})
		return Result{Message: MsgRegisterFailed, Kind: outcome.Internal}
	}

	now := s.now()
	u, err := s.users.Create(ctx, users.User{
		Email:        in.Email,
		Name:         in.Name,
		Contact:      in.Contact,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, users.ErrEmailTaken) {
			return Result{Message: MsgEmailTaken, Kind: outcome.Conflict}
		}
		s.log.Error("register: create user failed", map[string]any{"error": err})
		return Result{Message: MsgRegisterFailed, Kind: outcome.Internal}
	}

	s.log.Info("user registered", map[string]any{"user_id": u.ID})
	return Result{Success: true, Message: MsgRegistered, Kind: outcome.Created}
}

// Login devuelve el token a guardar en la cookie solo si Success.
func (s *Service) Login(ctx context.Context, p validation.Payload) (Result, authport.Token) {
	in, verrs := parseLogin(s.validate, p)
	if verrs != nil {
		return Result{Message: MsgValidation, Errors: verrs, Kind: outcome.Invalid}, authport.Token{}
	}

	u, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			s.hasher.Verify(in.Password, s.dummy())
			return Result{Message: MsgInvalidCredentials, Kind: outcome.Unauthenticated}, authport.Token{}
		}
		s.log.Error("login: lookup email failed", map[string]any{"error": err})
		return Result{Message: MsgLoginFailed, Kind: outcome.Internal}, authport.Token{}
	}

	if !s.hasher.Verify(in.Password, u.PasswordHash) {
		return Result{Message: MsgInvalidCredentials, Kind: outcome.Unauthenticated}, authport.Token{}
	}

	tok, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		s.log.Error("login: issue token failed", map[string]any{"error": err, "user_id": u.ID})
		return Result{Message: MsgLoginFailed, Kind: outcome.Internal}, authport.Token{}
	}

	s.log.Info("user logged in", map[string]any{"user_id": u.ID})
	return Result{Success: true, Message: MsgLoggedIn, Kind: outcome.OK}, tok
}

// Logout no tiene estado en servidor; el handler borra la cookie.
func (s *Service) Logout(_ context.Context, claims authport.Claims, ok bool) Result {
	if ok {
		s.log.Info("user logged out", map[string]any{"user_id": claims.UserID})
	}
	return Result{Success: true, Message: MsgLoggedOut, Kind: outcome.OK}
}

// Me devuelve el usuario de la sesión actual.
func (s *Service) Me(ctx context.Context, userID int64) (users.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *Service) dummy() string {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.Hash("softpet-placeholder-password")
		if err != nil {
			s.log.Warn("login: dummy hash failed", map[string]any{"error": err})
			return
		}
		s.dummyHash = h
	})
	return s.dummyHash
}
