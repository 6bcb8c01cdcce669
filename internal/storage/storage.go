package storage

import (
	"context"
	"errors"

	"github.com/Varun5711/taskmate/internal/models"
	usermodel "github.com/Varun5711/taskmate/internal/models/user"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserStore persists accounts. Emails are expected already normalized.
type UserStore interface {
	CreateUser(ctx context.Context, u *usermodel.User) (*usermodel.User, error)
	GetUserByEmail(ctx context.Context, email string) (*usermodel.User, error)
	GetUserByID(ctx context.Context, id string) (*usermodel.User, error)
}

// TodoStore persists todos. Every call is scoped to an owner; a todo owned by
// someone else is reported as ErrNotFound.
type TodoStore interface {
	CreateTodo(ctx context.Context, t *models.Todo) (*models.Todo, error)
	ListTodos(ctx context.Context, userID string) ([]models.Todo, error)
	GetTodo(ctx context.Context, userID, id string) (*models.Todo, error)
	UpdateTodo(ctx context.Context, userID, id string, patch models.TodoPatch) (*models.Todo, error)
	DeleteTodo(ctx context.Context, userID, id string) error
}
