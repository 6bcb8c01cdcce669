package ui

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Varun5711/taskmate/cmd/tui/client"
	"github.com/Varun5711/taskmate/internal/models"
	usermodel "github.com/Varun5711/taskmate/internal/models/user"
)

const requestTimeout = 10 * time.Second

// API is the subset of *client.Client the screens use.
type API interface {
	Register(ctx context.Context, name, email, password string) (*usermodel.PublicUser, error)
	Login(ctx context.Context, email, password string) (*usermodel.PublicUser, error)
	Logout(ctx context.Context) error
	ListTodos(ctx context.Context) ([]models.Todo, error)
	CreateTodo(ctx context.Context, title, description string) (*models.Todo, error)
	UpdateTodo(ctx context.Context, id string, req models.UpdateTodoRequest) (*models.Todo, error)
	DeleteTodo(ctx context.Context, id string) error
}

var _ API = (*client.Client)(nil)

func isUnauthorized(err error) bool {
	var apiErr *client.APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

type authSuccessMsg struct {
	user usermodel.PublicUser
}

type authErrorMsg struct {
	err error
}

type loggedOutMsg struct{}
