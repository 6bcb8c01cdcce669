package handlers

import (
	"net/http"
	"time"

	"github.com/Varun5711/taskmate/internal/filter"
	"github.com/Varun5711/taskmate/internal/logger"
	"github.com/Varun5711/taskmate/internal/middleware"
	"github.com/Varun5711/taskmate/internal/models"
	"github.com/Varun5711/taskmate/internal/service"
	"github.com/go-chi/chi/v5"
)

const MsgTodoDeleted = "Todo deleted"

type TodoHandler struct {
	todos   *service.TodoService
	timeout time.Duration
	log     *logger.Logger
}

func NewTodoHandler(todos *service.TodoService, timeout time.Duration, log *logger.Logger) *TodoHandler {
	return &TodoHandler{
		todos:   todos,
		timeout: timeout,
		log:     log,
	}
}

// ownerID is only called behind RequireAuth.
func ownerID(r *http.Request) string {
	if u := middleware.UserFromContext(r.Context()); u != nil {
		return u.ID
	}
	return ""
}

func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTodoRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.log, err)
		return
	}

	ctx, cancel := withTimeout(r, h.timeout)
	defer cancel()

	todo, err := h.todos.Create(ctx, ownerID(r), service.CreateTodoInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	respondJSON(w, http.StatusCreated, todo)
}

// List supports ?status=all|completed|pending and ?q=<text>.
func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r, h.timeout)
	defer cancel()

	q := r.URL.Query()
	todos, err := h.todos.List(ctx, ownerID(r), filter.Criteria{
		Status: filter.ParseStatus(q.Get("status")),
		Query:  q.Get("q"),
	})
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, todos)
}

func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateTodoRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.log, err)
		return
	}

	ctx, cancel := withTimeout(r, h.timeout)
	defer cancel()

	todo, err := h.todos.Update(ctx, ownerID(r), chi.URLParam(r, "id"), service.UpdateTodoInput{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, todo)
}

func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r, h.timeout)
	defer cancel()

	if err := h.todos.Delete(ctx, ownerID(r), chi.URLParam(r, "id")); err != nil {
		respondError(w, h.log, err)
		return
	}

	respondMessage(w, http.StatusOK, MsgTodoDeleted)
}
