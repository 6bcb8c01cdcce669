package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/Varun5711/taskmate/internal/logger"
	"github.com/Varun5711/taskmate/internal/metrics"
	"github.com/Varun5711/taskmate/internal/middleware"
	"github.com/Varun5711/taskmate/internal/models"
	"github.com/Varun5711/taskmate/internal/service"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

const rootMessage = "TaskMate API Running..."

// HealthChecker reports whether a backing store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// PoolReporter is optionally implemented by a HealthChecker to include
// connection pool usage in the /health body.
type PoolReporter interface {
	Stats() []models.PoolStats
}

type RouterConfig struct {
	Auth           *service.AuthService
	Todos          *service.TodoService
	AllowedOrigins []string
	SecureCookies  bool
	RequestTimeout time.Duration
	// Health may be nil, in which case /health always reports ok.
	Health  HealthChecker
	Metrics *metrics.Metrics
	Logger  *logger.Logger
}

func NewRouter(cfg RouterConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = logger.Discard()
	}

	authHandler := NewAuthHandler(cfg.Auth, cfg.SecureCookies, cfg.RequestTimeout, log.Named("auth"))
	todoHandler := NewTodoHandler(cfg.Todos, cfg.RequestTimeout, log.Named("todos"))
	guard := middleware.NewAuthMiddleware(cfg.Auth, cfg.RequestTimeout, log.Named("guard"))

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log.Named("http"), cfg.Metrics))
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondMessage(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(rootMessage))
	})
	r.Get("/health", healthHandler(cfg.Health, log))
	r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())
	NewSwaggerHandler().RegisterRoutes(r)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
		r.With(guard.RequireAuth).Get("/me", authHandler.Me)
	})

	r.Route("/api/todos", func(r chi.Router) {
		r.Use(guard.RequireAuth)
		r.Post("/", todoHandler.Create)
		r.Get("/", todoHandler.List)
		r.Put("/{id}", todoHandler.Update)
		r.Delete("/{id}", todoHandler.Delete)
	})

	return r
}

func healthHandler(hc HealthChecker, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := models.HealthResponse{Status: "ok"}
		if pr, ok := hc.(PoolReporter); ok {
			resp.Pools = pr.Stats()
		}

		if hc != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()

			if err := hc.Ping(ctx); err != nil {
				log.Warn("health check failed: %v", err)
				resp.Status = "unavailable"
				resp.Error = err.Error()
				respondJSON(w, http.StatusServiceUnavailable, resp)
				return
			}
		}
		respondJSON(w, http.StatusOK, resp)
	}
}
