package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/Varun5711/taskmate/internal/auth"
	"github.com/Varun5711/taskmate/internal/config"
	"github.com/Varun5711/taskmate/internal/database"
	"github.com/Varun5711/taskmate/internal/handlers"
	"github.com/Varun5711/taskmate/internal/logger"
	"github.com/Varun5711/taskmate/internal/metrics"
	"github.com/Varun5711/taskmate/internal/models"
	"github.com/Varun5711/taskmate/internal/redis"
	"github.com/Varun5711/taskmate/internal/service"
	"github.com/Varun5711/taskmate/internal/storage"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.New("taskmate")
			log.SetStdLog()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if port != "" {
				cfg.Server.Port = port
			}

			return serve(cmd.Context(), cfg, log)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port (overrides PORT)")
	return cmd
}

// app is the wired server plus whatever must be released on exit.
type app struct {
	handler http.Handler
	closers []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

type healthChecks []handlers.HealthChecker

func (h healthChecks) Ping(ctx context.Context) error {
	var errs []error
	for _, c := range h {
		if err := c.Ping(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (h healthChecks) Stats() []models.PoolStats {
	var out []models.PoolStats
	for _, c := range h {
		if r, ok := c.(handlers.PoolReporter); ok {
			out = append(out, r.Stats()...)
		}
	}
	return out
}

func buildApp(ctx context.Context, cfg *config.Config, log *logger.Logger) (*app, error) {
	a := &app{}
	m := metrics.New()

	var (
		users  storage.UserStore
		todos  storage.TodoStore
		health healthChecks
	)

	switch cfg.Storage.Driver {
	case config.StorageMemory:
		log.Warn("Using in-memory storage; data is lost on restart")
		store := storage.NewMemoryStorage()
		users, todos = store, store

	default:
		db, err := database.NewDBManager(ctx, database.Config{
			PrimaryDSN:      cfg.Database.PrimaryDSN,
			MaxConns:        cfg.Database.MaxConns,
			MinConns:        cfg.Database.MinConns,
			MaxConnLifetime: cfg.Database.MaxConnLifetime,
			MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
		})
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		log.Info("Connected to Postgres")

		if cfg.Database.AutoMigrate {
			database.SetLogger(log.Named("migrate"))
			if err := database.MigrateUp(ctx, db.Write()); err != nil {
				a.Close()
				return nil, err
			}
		}

		users = storage.NewUserStorage(db)
		todos = storage.NewPostgresStorage(db)
		health = append(health, db)
	}

	var revoker auth.Revoker = auth.NoopRevoker{}
	if cfg.RevocationEnabled() {
		rdb, err := redis.NewRedisClient(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, func() { rdb.Close() })
		revoker = rdb
		health = append(health, rdb)
		log.Info("Token revocation enabled (redis %s)", cfg.Redis.Addr)
	} else {
		log.Warn("REDIS_ADDR not set; logged-out tokens stay valid until they expire")
	}

	if cfg.Auth.JWTSecret == config.DefaultJWTSecret {
		log.Warn("JWT_SECRET not set; using the development default")
	}

	authService := service.NewAuthService(
		users,
		auth.NewPasswordHasher(cfg.Auth.BcryptCost),
		auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		revoker,
		log.Named("auth"),
		m,
	)
	todoService := service.NewTodoService(todos, log.Named("todos"), m)

	var hc handlers.HealthChecker
	if len(health) > 0 {
		hc = health
	}

	a.handler = handlers.NewRouter(handlers.RouterConfig{
		Auth:           authService,
		Todos:          todoService,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		SecureCookies:  cfg.IsProduction(),
		RequestTimeout: cfg.Server.RequestTimeout,
		Health:         hc,
		Metrics:        m,
		Logger:         log,
	})
	return a, nil
}

func serve(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := buildApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      a.handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     log.StdLogger(logger.WARN),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Listening on :%s (%s)", cfg.Server.Port, cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownGrace)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	log.Info("Server stopped")
	return nil
}
