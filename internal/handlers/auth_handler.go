package handlers

import (
	"net/http"
	"time"

	"github.com/Varun5711/taskmate/internal/logger"
	"github.com/Varun5711/taskmate/internal/middleware"
	usermodel "github.com/Varun5711/taskmate/internal/models/user"
	"github.com/Varun5711/taskmate/internal/service"
)

const MsgLoggedOut = "Logged out successfully"

type AuthHandler struct {
	auth          *service.AuthService
	secureCookies bool
	timeout       time.Duration
	log           *logger.Logger
}

// NewAuthHandler builds the auth endpoints. secureCookies marks the session
// cookie Secure with SameSite=None, which production needs for the
// cross-site frontend; otherwise SameSite=Lax over plain HTTP.
func NewAuthHandler(auth *service.AuthService, secureCookies bool, timeout time.Duration, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		auth:          auth,
		secureCookies: secureCookies,
		timeout:       timeout,
		log:           log,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req usermodel.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.log, err)
		return
	}

	ctx, cancel := withTimeout(r, h.timeout)
	defer cancel()

	res, err := h.auth.Register(ctx, service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	h.setSessionCookie(w, res.Token, res.ExpiresAt)
	respondJSON(w, http.StatusCreated, res.User.Public())
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req usermodel.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.log, err)
		return
	}

	ctx, cancel := withTimeout(r, h.timeout)
	defer cancel()

	res, err := h.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	h.setSessionCookie(w, res.Token, res.ExpiresAt)
	respondJSON(w, http.StatusOK, res.User.Public())
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r, h.timeout)
	defer cancel()

	h.auth.Logout(ctx, middleware.TokenFromRequest(r))

	h.clearSessionCookie(w)
	respondMessage(w, http.StatusOK, MsgLoggedOut)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	u := middleware.UserFromContext(r.Context())
	if u == nil {
		respondMessage(w, http.StatusUnauthorized, service.MsgNoToken)
		return
	}
	respondJSON(w, http.StatusOK, u.Profile())
}

func (h *AuthHandler) sessionCookie(value string, expires time.Time) *http.Cookie {
	c := &http.Cookie{
		Name:     middleware.CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
	if h.secureCookies {
		c.SameSite = http.SameSiteNoneMode
	}
	return c
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, h.sessionCookie(token, expires))
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	c := h.sessionCookie("", time.Unix(0, 0))
	c.MaxAge = -1
	http.SetCookie(w, c)
}
