package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/Varun5711/taskmate/internal/apperror"
	"github.com/Varun5711/taskmate/internal/logger"
	usermodel "github.com/Varun5711/taskmate/internal/models/user"
)

// CookieName is the session cookie set on login and register.
const CookieName = "token"

type contextKey string

const userKey contextKey = "user"

// UserResolver maps a session token to its account.
type UserResolver interface {
	ResolveCurrentUser(ctx context.Context, token string) (*usermodel.User, error)
}

type AuthMiddleware struct {
	resolver UserResolver
	timeout  time.Duration
	log      *logger.Logger
}

func NewAuthMiddleware(resolver UserResolver, timeout time.Duration, log *logger.Logger) *AuthMiddleware {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if log == nil {
		log = logger.Discard()
	}
	return &AuthMiddleware{
		resolver: resolver,
		timeout:  timeout,
		log:      log,
	}
}

// TokenFromRequest prefers the session cookie and falls back to a bearer
// Authorization header.
func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}

	authHeader := r.Header.Get("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}

func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), m.timeout)
		defer cancel()

		user, err := m.resolver.ResolveCurrentUser(ctx, TokenFromRequest(r))
		if err != nil {
			status := apperror.StatusCode(err)
			if status >= http.StatusInternalServerError {
				m.log.Error("resolve user: %v", err)
			}
			writeMessage(w, status, apperror.Message(err))
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

func WithUser(ctx context.Context, u *usermodel.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// UserFromContext returns the authenticated user, or nil outside RequireAuth.
func UserFromContext(ctx context.Context) *usermodel.User {
	if u, ok := ctx.Value(userKey).(*usermodel.User); ok {
		return u
	}
	return nil
}
