package models

import "time"

type Todo struct {
	ID          string    `json:"_id"`
	UserID      string    `json:"user"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CreateTodoRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
}

// UpdateTodoRequest carries a partial update; nil fields are left alone.
type UpdateTodoRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// TodoPatch is the store-level form of UpdateTodoRequest.
type TodoPatch struct {
	Title       *string
	Description *string
	Completed   *bool
}

func (p TodoPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Completed == nil
}

// Apply writes the present fields onto t and reports whether anything was set.
func (p TodoPatch) Apply(t *Todo) bool {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	return !p.IsEmpty()
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status string      `json:"status"`
	Error  string      `json:"error,omitempty"`
	Pools  []PoolStats `json:"pools,omitempty"`
}

// PoolStats is one database connection pool's usage; the primary comes first.
type PoolStats struct {
	TotalConns    int32 `json:"total_conns"`
	IdleConns     int32 `json:"idle_conns"`
	AcquiredConns int32 `json:"acquired_conns"`
}
