package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/Varun5711/taskmate/internal/database"
	"github.com/Varun5711/taskmate/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const todoColumns = `id, user_id, title, description, completed, created_at, updated_at`

type PostgresStorage struct {
	db *database.DBManager
}

func NewPostgresStorage(db *database.DBManager) *PostgresStorage {
	return &PostgresStorage{
		db: db,
	}
}

func scanTodo(row pgx.Row) (*models.Todo, error) {
	var t models.Todo
	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.Title,
		&t.Description,
		&t.Completed,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func validIDs(ids ...string) bool {
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			return false
		}
	}
	return true
}

func (s *PostgresStorage) CreateTodo(ctx context.Context, t *models.Todo) (*models.Todo, error) {
	if !validIDs(t.UserID) {
		return nil, ErrNotFound
	}

	now := time.Now().UTC()
	query := `
		INSERT INTO todos (id, user_id, title, description, completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + todoColumns

	created, err := scanTodo(s.db.Write().QueryRow(ctx, query,
		uuid.New().String(),
		t.UserID,
		t.Title,
		t.Description,
		t.Completed,
		now,
		now,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", mapPgError(err))
	}

	return created, nil
}

func (s *PostgresStorage) ListTodos(ctx context.Context, userID string) ([]models.Todo, error) {
	if !validIDs(userID) {
		return []models.Todo{}, nil
	}

	query := `
		SELECT ` + todoColumns + `
		FROM todos
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := s.db.Write().Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	todos := make([]models.Todo, 0)
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		todos = append(todos, *t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating todos: %w", err)
	}

	return todos, nil
}

func (s *PostgresStorage) GetTodo(ctx context.Context, userID, id string) (*models.Todo, error) {
	if !validIDs(userID, id) {
		return nil, ErrNotFound
	}

	query := `
		SELECT ` + todoColumns + `
		FROM todos
		WHERE id = $1 AND user_id = $2
	`

	t, err := scanTodo(s.db.Write().QueryRow(ctx, query, id, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to get todo: %w", mapPgError(err))
	}
	return t, nil
}

// UpdateTodo changes only the fields present in patch, as one statement.
// An empty patch reads the row back without writing.
func (s *PostgresStorage) UpdateTodo(ctx context.Context, userID, id string, patch models.TodoPatch) (*models.Todo, error) {
	if patch.IsEmpty() {
		return s.GetTodo(ctx, userID, id)
	}
	if !validIDs(userID, id) {
		return nil, ErrNotFound
	}

	query := `
		UPDATE todos
		SET title = COALESCE($3, title),
			description = COALESCE($4, description),
			completed = COALESCE($5, completed),
			updated_at = $6
		WHERE id = $1 AND user_id = $2
		RETURNING ` + todoColumns

	t, err := scanTodo(s.db.Write().QueryRow(ctx, query,
		id,
		userID,
		patch.Title,
		patch.Description,
		patch.Completed,
		time.Now().UTC(),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to update todo: %w", mapPgError(err))
	}
	return t, nil
}

func (s *PostgresStorage) DeleteTodo(ctx context.Context, userID, id string) error {
	if !validIDs(userID, id) {
		return ErrNotFound
	}

	cmdTag, err := s.db.Write().Exec(ctx, `DELETE FROM todos WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", mapPgError(err))
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
