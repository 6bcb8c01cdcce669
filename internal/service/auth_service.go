package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Varun5711/taskmate/internal/apperror"
	"github.com/Varun5711/taskmate/internal/auth"
	"github.com/Varun5711/taskmate/internal/logger"
	"github.com/Varun5711/taskmate/internal/metrics"
	usermodel "github.com/Varun5711/taskmate/internal/models/user"
	"github.com/Varun5711/taskmate/internal/storage"
	"github.com/go-playground/validator/v10"
)

const (
	MsgAllFieldsRequired = "All fields required"
	MsgInvalidEmail      = "Invalid email address"
	MsgPasswordTooShort  = "Password must be at least 6 characters"
	MsgUserExists        = "User already exists"
	MsgNoToken           = "Not authorized, no token"
	MsgTokenFailed       = "Not authorized, token failed"
)

type RegisterInput struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

// AuthResult is returned by Register and Login: the account plus a freshly
// issued session token.
type AuthResult struct {
	User      *usermodel.User
	Token     string
	ExpiresAt time.Time
}

type AuthService struct {
	users    storage.UserStore
	hasher   *auth.PasswordHasher
	tokens   *auth.JWTManager
	revoker  auth.Revoker
	validate *validator.Validate
	log      *logger.Logger
	metrics  *metrics.Metrics
}

func NewAuthService(users storage.UserStore, hasher *auth.PasswordHasher, tokens *auth.JWTManager, revoker auth.Revoker, log *logger.Logger, m *metrics.Metrics) *AuthService {
	if revoker == nil {
		revoker = auth.NoopRevoker{}
	}
	if log == nil {
		log = logger.Discard()
	}
	return &AuthService{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		revoker:  revoker,
		validate: validator.New(),
		log:      log,
		metrics:  m,
	}
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = usermodel.NormalizeEmail(in.Email)

	if err := s.validateRegister(in); err != nil {
		s.metrics.AuthEvent("register", "invalid")
		return nil, err
	}

	existing, err := s.users.GetUserByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, apperror.Internal(err)
	}
	if existing != nil {
		s.metrics.AuthEvent("register", "conflict")
		return nil, apperror.Conflict(MsgUserExists)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	created, err := s.users.CreateUser(ctx, &usermodel.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
	})
	if errors.Is(err, storage.ErrDuplicateEmail) {
		s.metrics.AuthEvent("register", "conflict")
		return nil, apperror.Conflict(MsgUserExists)
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}

	s.log.Info("registered user %s", created.ID)
	s.metrics.AuthEvent("register", "success")
	return s.issue(created)
}

// validateRegister reports the first failure in the order the client expects:
// any missing field wins over format problems.
func (s *AuthService) validateRegister(in RegisterInput) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.Internal(err)
	}

	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return apperror.Validation(MsgAllFieldsRequired)
		}
	}
	for _, fe := range verrs {
		switch fe.Field() {
		case "Email":
			return apperror.Validation(MsgInvalidEmail)
		case "Password":
			return apperror.Validation(MsgPasswordTooShort)
		}
	}
	return apperror.Validation(verrs[0].Error())
}

// Login returns the same error for an unknown email and a wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = usermodel.NormalizeEmail(email)

	var u *usermodel.User
	if email != "" {
		found, err := s.users.GetUserByEmail(ctx, email)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return nil, apperror.Internal(err)
		}
		u = found
	}

	if u == nil {
		s.hasher.CheckDummy(password)
		s.metrics.AuthEvent("login", "invalid_credentials")
		return nil, apperror.InvalidCredentials()
	}

	if err := s.hasher.Check(u.PasswordHash, password); err != nil {
		s.metrics.AuthEvent("login", "invalid_credentials")
		return nil, apperror.InvalidCredentials()
	}

	s.metrics.AuthEvent("login", "success")
	return s.issue(u)
}

func (s *AuthService) issue(u *usermodel.User) (*AuthResult, error) {
	token, expiresAt, err := s.tokens.GenerateToken(u.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &AuthResult{User: u, Token: token, ExpiresAt: expiresAt}, nil
}

// Logout never fails from the caller's point of view. With a revocation store
// configured the token is denylisted until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	s.metrics.AuthEvent("logout", "success")
	if token == "" {
		return nil
	}

	claims, err := s.tokens.ValidateToken(token)
	if err != nil || claims.ID == "" {
		return nil
	}

	if err := s.revoker.Revoke(ctx, claims.ID, claims.ExpiresAtTime()); err != nil {
		s.log.Warn("failed to revoke token for user %s: %v", claims.UserID, err)
	}
	return nil
}

// ResolveCurrentUser turns a session token into the account it belongs to.
// A revoked token or one whose user has since disappeared is rejected.
func (s *AuthService) ResolveCurrentUser(ctx context.Context, token string) (*usermodel.User, error) {
	if token == "" {
		s.metrics.AuthEvent("resolve", "no_token")
		return nil, apperror.Unauthenticated(MsgNoToken)
	}

	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		s.log.Debug("token rejected: %v", err)
		s.metrics.AuthEvent("resolve", "invalid")
		return nil, apperror.Unauthenticated(MsgTokenFailed)
	}

	if claims.ID != "" {
		revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
		if err != nil {
			s.log.Error("revocation check failed: %v", err)
			s.metrics.AuthEvent("resolve", "revocation_error")
			return nil, apperror.Unauthenticated(MsgTokenFailed)
		}
		if revoked {
			s.metrics.AuthEvent("resolve", "revoked")
			return nil, apperror.Unauthenticated(MsgTokenFailed)
		}
	}

	u, err := s.users.GetUserByID(ctx, claims.UserID)
	if errors.Is(err, storage.ErrNotFound) {
		s.metrics.AuthEvent("resolve", "unknown_user")
		return nil, apperror.Unauthenticated(MsgTokenFailed)
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}

	s.metrics.AuthEvent("resolve", "success")
	return u, nil
}
