package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Varun5711/taskmate/internal/apperror"
	"github.com/Varun5711/taskmate/internal/filter"
	"github.com/Varun5711/taskmate/internal/logger"
	"github.com/Varun5711/taskmate/internal/metrics"
	"github.com/Varun5711/taskmate/internal/models"
	"github.com/Varun5711/taskmate/internal/storage"
)

const (
	MsgTitleRequired = "Title is required"
	MsgTodoNotFound  = "Todo not found"
)

type CreateTodoInput struct {
	Title       string
	Description *string
}

// UpdateTodoInput is a partial update; nil fields are left unchanged.
type UpdateTodoInput struct {
	Title       *string
	Description *string
	Completed   *bool
}

type TodoService struct {
	todos   storage.TodoStore
	log     *logger.Logger
	metrics *metrics.Metrics
}

func NewTodoService(todos storage.TodoStore, log *logger.Logger, m *metrics.Metrics) *TodoService {
	if log == nil {
		log = logger.Discard()
	}
	return &TodoService{
		todos:   todos,
		log:     log,
		metrics: m,
	}
}

func (s *TodoService) Create(ctx context.Context, ownerID string, in CreateTodoInput) (*models.Todo, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apperror.Validation(MsgTitleRequired)
	}

	t := &models.Todo{UserID: ownerID, Title: title}
	if in.Description != nil {
		t.Description = *in.Description
	}

	created, err := s.todos.CreateTodo(ctx, t)
	if err != nil {
		return nil, s.storeError(err)
	}

	s.metrics.TodoOp("create")
	return created, nil
}

// List returns the owner's todos newest first, narrowed by c. It never
// returns a nil slice.
func (s *TodoService) List(ctx context.Context, ownerID string, c filter.Criteria) ([]models.Todo, error) {
	todos, err := s.todos.ListTodos(ctx, ownerID)
	if err != nil {
		return nil, s.storeError(err)
	}
	if todos == nil {
		todos = []models.Todo{}
	}
	if c.IsZero() {
		return todos, nil
	}
	return filter.Apply(todos, c), nil
}

func (s *TodoService) Update(ctx context.Context, ownerID, id string, in UpdateTodoInput) (*models.Todo, error) {
	patch := models.TodoPatch{
		Description: in.Description,
		Completed:   in.Completed,
	}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, apperror.Validation(MsgTitleRequired)
		}
		patch.Title = &title
	}

	var (
		updated *models.Todo
		err     error
	)
	if patch.IsEmpty() {
		updated, err = s.todos.GetTodo(ctx, ownerID, id)
	} else {
		updated, err = s.todos.UpdateTodo(ctx, ownerID, id, patch)
	}
	if err != nil {
		return nil, s.storeError(err)
	}

	if !patch.IsEmpty() {
		s.metrics.TodoOp("update")
	}
	return updated, nil
}

func (s *TodoService) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.todos.DeleteTodo(ctx, ownerID, id); err != nil {
		return s.storeError(err)
	}
	s.metrics.TodoOp("delete")
	return nil
}

func (s *TodoService) storeError(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return apperror.NotFound(MsgTodoNotFound)
	}
	s.log.Error("todo store: %v", err)
	return apperror.Internal(err)
}
