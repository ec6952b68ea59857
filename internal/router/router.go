package router

import (
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "softpet/docs"
	"softpet/internal/adapters/auth/password"
	"softpet/internal/adapters/auth/session"
	memcache "softpet/internal/adapters/cache/memory"
	mem "softpet/internal/adapters/storage/memory"
	"softpet/internal/config"
	"softpet/internal/domain/auth"
	"softpet/internal/domain/pets"
	"softpet/internal/domain/users"
	"softpet/internal/middleware"
	"softpet/internal/platform/logger"
	authport "softpet/internal/ports/auth"
	"softpet/internal/ports/cache"
	"softpet/internal/validation"
	"softpet/internal/views"
)

type Options struct {
	Config config.Config
	Logger logger.Logger // nil => Nop

	// Opcionales: si no vienen, in-memory (modo dev/tests).
	Users users.Repository
	Pets  pets.Repository
	Cache cache.Store

	// Listing ya construido (cmd lo comparte con el listener AMQP). nil => se arma sobre Cache.
	Listing *views.Listing

	// Hasher opcional (tests usan cost bajo). nil => bcrypt cost 10.
	Hasher authport.PasswordHasher

	// Invalidadores extra además del cache del listado (p.ej. publisher AMQP).
	Views []views.Invalidator
}

func NewRouter(opts Options) http.Handler {
	cfg := opts.Config
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	// Repos in-memory si no hay Postgres
	userRepo := opts.Users
	if userRepo == nil {
		userRepo = mem.NewUserRepo()
	}
	petRepo := opts.Pets
	if petRepo == nil {
		petRepo = mem.NewPetRepo()
	}
	store := opts.Cache
	if store == nil {
		store = memcache.NewStore()
	}
	hasher := opts.Hasher
	if hasher == nil {
		hasher = password.NewBcryptHasher()
	}

	codec := session.NewCodec(cfg.JWTSecret, cfg.SessionTTL)
	validate := validation.New()
	listing := opts.Listing
	if listing == nil {
		listing = views.NewListing(store, cfg.ListCacheTTL, log)
	}

	invalidators := views.Multi{listing}
	invalidators = append(invalidators, opts.Views...)

	// Services por módulo
	authSvc := auth.NewService(userRepo, hasher, codec, validate, log)
	petsSvc := pets.NewService(petRepo, codec, validate, pets.Config{
		PageSize: cfg.PageSize,
		Views:    invalidators,
		Cache:    listing,
		Logger:   log,
	})

	secure := cfg.IsProduction()

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)
	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.Handler(corsOptions(cfg.CORSOrigins)))
	}

	r.Use(middleware.AuthContext(codec))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Rutas por módulo
	auth.RegisterRoutes(r, authSvc, secure)
	pets.RegisterRoutes(r, petsSvc)

	// Páginas protegidas por el guard
	r.Group(func(pr chi.Router) {
		pr.Use(middleware.RouteGuard(codec, log, secure))

		pr.Get("/", homePage(petsSvc, time.Now))
		pr.Get("/login", authPage("login"))
		pr.Get("/register", authPage("register"))
		pr.Get("/dashboard", dashboardPage())
		pr.Get("/dashboard/*", dashboardPage())
	})

	return r
}

// corsOptions: con "*" no se mandan credenciales; la cookie de sesión solo
// viaja a orígenes listados explícitamente.
func corsOptions(origins []string) cors.Options {
	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: !slices.Contains(origins, "*"),
		MaxAge:           300,
	}
}
