package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	memcache "softpet/internal/adapters/cache/memory"
	rediscache "softpet/internal/adapters/cache/redis"
	"softpet/internal/adapters/mq"
	pg "softpet/internal/adapters/storage/postgres"
	"softpet/internal/config"
	"softpet/internal/platform/logger"
	"softpet/internal/router"
	"softpet/internal/views"
)

func newServeCmd() *cobra.Command {
	var migrateFirst bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), migrateFirst)
		},
	}
	cmd.Flags().BoolVar(&migrateFirst, "migrate", false, "apply pending migrations before serving")
	return cmd
}

func runServe(parent context.Context, migrateFirst bool) error {
	if parent == nil {
		parent = context.Background()
	}
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
	defer logger.Sync(log)

	if cfg.JWTSecret == config.DevJWTSecret {
		log.Warn("using development JWT secret", nil)
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := router.Options{Config: cfg, Logger: log}

	// Postgres si hay DATABASE_URL; si no, in-memory.
	if cfg.DatabaseURL != "" {
		if migrateFirst {
			if err := withMigrator(func(m *pg.Migrator) error { return m.Up() }); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
		}

		pool, err := pg.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer pool.Close()

		opts.Users = pg.NewUsersRepo(pool)
		opts.Pets = pg.NewPetsRepo(pool)
		log.Info("storage: postgres", nil)
	} else {
		log.Warn("storage: in-memory (DATABASE_URL not set)", nil)
	}

	if cfg.RedisAddr != "" {
		store := rediscache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.AppName)
		defer store.Close()

		if err := store.Ping(ctx); err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		opts.Cache = store
		log.Info("listing cache: redis", map[string]any{"addr": cfg.RedisAddr})
	} else {
		opts.Cache = memcache.NewStore()
	}
	opts.Listing = views.NewListing(opts.Cache, cfg.ListCacheTTL, log)

	if cfg.AMQPURL != "" {
		backend, err := mq.DialRabbitMQ(cfg.AMQPURL)
		if err != nil {
			return fmt.Errorf("connect amqp: %w", err)
		}
		bus := mq.New(backend)
		defer bus.Close()

		opts.Views = append(opts.Views, views.NewPublisher(bus))
		log.Info("view events: amqp", map[string]any{"channel": views.Channel})

		// Otras réplicas invalidan nuestro listado local.
		go func() {
			if err := views.Listen(ctx, bus, opts.Listing, log); err != nil && ctx.Err() == nil {
				log.Error("view listener stopped", map[string]any{"error": err})
			}
		}()
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.NewRouter(opts),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "env": cfg.Env})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
