package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Varun5711/taskmate/internal/auth"
	"github.com/Varun5711/taskmate/internal/models"
	"github.com/Varun5711/taskmate/internal/storage"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	store   *storage.MemoryStorage
	tokens  *auth.JWTManager
	revoker *auth.MemoryRevoker
	auth    *AuthService
	todos   *TodoService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := storage.NewMemoryStorage()
	tokens := auth.NewJWTManager("service-test-secret", 7*24*time.Hour)
	revoker := auth.NewMemoryRevoker()

	return &fixture{
		store:   store,
		tokens:  tokens,
		revoker: revoker,
		auth:    NewAuthService(store, auth.NewPasswordHasher(bcrypt.MinCost), tokens, revoker, nil, nil),
		todos:   NewTodoService(store, nil, nil),
	}
}

func (f *fixture) register(t *testing.T, name, email string) *AuthResult {
	t.Helper()
	res, err := f.auth.Register(context.Background(), RegisterInput{Name: name, Email: email, Password: "secret1"})
	require.NoError(t, err)
	return res
}

func ptr[T any](v T) *T { return &v }

var errBoom = errors.New("boom")

// brokenTodoStore fails every call with errBoom.
type brokenTodoStore struct{}

func (brokenTodoStore) CreateTodo(context.Context, *models.Todo) (*models.Todo, error) {
	return nil, errBoom
}

func (brokenTodoStore) ListTodos(context.Context, string) ([]models.Todo, error) {
	return nil, errBoom
}

func (brokenTodoStore) GetTodo(context.Context, string, string) (*models.Todo, error) {
	return nil, errBoom
}

func (brokenTodoStore) UpdateTodo(context.Context, string, string, models.TodoPatch) (*models.Todo, error) {
	return nil, errBoom
}

func (brokenTodoStore) DeleteTodo(context.Context, string, string) error {
	return errBoom
}
