package storage

import (
	"context"
	"testing"

	"github.com/Varun5711/taskmate/internal/models"
	usermodel "github.com/Varun5711/taskmate/internal/models/user"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStoreContract checks the behaviour both store implementations share.
func runStoreContract(t *testing.T, users UserStore, todos TodoStore) {
	ctx := context.Background()

	newUser := func(t *testing.T, email string) *usermodel.User {
		t.Helper()
		u, err := users.CreateUser(ctx, &usermodel.User{Name: "Test", Email: email, PasswordHash: "hash"})
		require.NoError(t, err)
		return u
	}

	t.Run("users", func(t *testing.T) {
		email := uuid.NewString() + "@example.com"
		u := newUser(t, email)
		assert.NotEmpty(t, u.ID)
		assert.False(t, u.CreatedAt.IsZero())

		byEmail, err := users.GetUserByEmail(ctx, email)
		require.NoError(t, err)
		assert.Equal(t, u.ID, byEmail.ID)
		assert.Equal(t, "hash", byEmail.PasswordHash)

		byID, err := users.GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, email, byID.Email)

		_, err = users.CreateUser(ctx, &usermodel.User{Name: "Again", Email: email, PasswordHash: "x"})
		assert.ErrorIs(t, err, ErrDuplicateEmail)

		_, err = users.GetUserByEmail(ctx, "missing-"+email)
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = users.GetUserByID(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("todos newest first", func(t *testing.T) {
		owner := newUser(t, uuid.NewString()+"@example.com")

		var ids []string
		for _, title := range []string{"t1", "t2", "t3"} {
			created, err := todos.CreateTodo(ctx, &models.Todo{UserID: owner.ID, Title: title})
			require.NoError(t, err)
			assert.False(t, created.Completed)
			assert.Equal(t, "", created.Description)
			ids = append(ids, created.ID)
		}

		list, err := todos.ListTodos(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, []string{ids[2], ids[1], ids[0]}, []string{list[0].ID, list[1].ID, list[2].ID})
	})

	t.Run("owner scoping", func(t *testing.T) {
		a := newUser(t, uuid.NewString()+"@example.com")
		b := newUser(t, uuid.NewString()+"@example.com")

		td, err := todos.CreateTodo(ctx, &models.Todo{UserID: a.ID, Title: "mine"})
		require.NoError(t, err)

		done := true
		_, err = todos.UpdateTodo(ctx, b.ID, td.ID, models.TodoPatch{Completed: &done})
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, todos.DeleteTodo(ctx, b.ID, td.ID), ErrNotFound)
		_, err = todos.GetTodo(ctx, b.ID, td.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		listB, err := todos.ListTodos(ctx, b.ID)
		require.NoError(t, err)
		assert.Empty(t, listB)
		assert.NotNil(t, listB)

		updated, err := todos.UpdateTodo(ctx, a.ID, td.ID, models.TodoPatch{Completed: &done})
		require.NoError(t, err)
		assert.True(t, updated.Completed)
		assert.Equal(t, "mine", updated.Title)

		require.NoError(t, todos.DeleteTodo(ctx, a.ID, td.ID))
		assert.ErrorIs(t, todos.DeleteTodo(ctx, a.ID, td.ID), ErrNotFound)
	})

	t.Run("partial update", func(t *testing.T) {
		owner := newUser(t, uuid.NewString()+"@example.com")
		td, err := todos.CreateTodo(ctx, &models.Todo{UserID: owner.ID, Title: "Buy milk", Description: "2L"})
		require.NoError(t, err)

		same, err := todos.UpdateTodo(ctx, owner.ID, td.ID, models.TodoPatch{})
		require.NoError(t, err)
		assert.Equal(t, td.Title, same.Title)
		assert.Equal(t, td.Description, same.Description)
		assert.True(t, td.UpdatedAt.Equal(same.UpdatedAt))

		title := "Buy oat milk"
		updated, err := todos.UpdateTodo(ctx, owner.ID, td.ID, models.TodoPatch{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "Buy oat milk", updated.Title)
		assert.Equal(t, "2L", updated.Description)
		assert.False(t, updated.Completed)
		assert.Equal(t, td.UserID, updated.UserID)
		assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt), "updatedAt %v precedes createdAt %v", updated.UpdatedAt, updated.CreatedAt)
		assert.False(t, updated.UpdatedAt.Before(td.UpdatedAt))
	})

	t.Run("malformed ids", func(t *testing.T) {
		owner := newUser(t, uuid.NewString()+"@example.com")

		_, err := todos.UpdateTodo(ctx, owner.ID, "123", models.TodoPatch{})
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, todos.DeleteTodo(ctx, owner.ID, "zzz"), ErrNotFound)
	})
}

func TestMemoryStorage_Contract(t *testing.T) {
	s := NewMemoryStorage()
	runStoreContract(t, s, s)
}
