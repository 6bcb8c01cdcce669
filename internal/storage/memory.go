package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Varun5711/taskmate/internal/models"
	usermodel "github.com/Varun5711/taskmate/internal/models/user"
	"github.com/google/uuid"
)

type memoryTodo struct {
	todo models.Todo
	seq  uint64
}

// MemoryStorage implements UserStore and TodoStore in process. Data is lost
// on restart; it backs STORAGE_DRIVER=memory and the tests.
type MemoryStorage struct {
	mu      sync.RWMutex
	users   map[string]usermodel.User
	byEmail map[string]string
	todos   map[string]*memoryTodo
	seq     uint64
	now     func() time.Time
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		users:   make(map[string]usermodel.User),
		byEmail: make(map[string]string),
		todos:   make(map[string]*memoryTodo),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// SetClock replaces the time source used for timestamps.
func (s *MemoryStorage) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *MemoryStorage) CreateUser(_ context.Context, u *usermodel.User) (*usermodel.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[u.Email]; exists {
		return nil, ErrDuplicateEmail
	}

	now := s.now()
	created := usermodel.User{
		ID:           uuid.New().String(),
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.users[created.ID] = created
	s.byEmail[created.Email] = created.ID

	return &created, nil
}

func (s *MemoryStorage) GetUserByEmail(_ context.Context, email string) (*usermodel.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	u := s.users[id]
	return &u, nil
}

func (s *MemoryStorage) GetUserByID(_ context.Context, id string) (*usermodel.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

// DeleteUser removes an account and its todos. It is not exposed over HTTP.
func (s *MemoryStorage) DeleteUser(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	delete(s.users, id)
	delete(s.byEmail, u.Email)
	for todoID, mt := range s.todos {
		if mt.todo.UserID == id {
			delete(s.todos, todoID)
		}
	}
	return nil
}

func (s *MemoryStorage) CreateTodo(_ context.Context, t *models.Todo) (*models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[t.UserID]; !ok {
		return nil, ErrNotFound
	}

	now := s.now()
	s.seq++
	mt := &memoryTodo{
		todo: models.Todo{
			ID:          uuid.New().String(),
			UserID:      t.UserID,
			Title:       t.Title,
			Description: t.Description,
			Completed:   t.Completed,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		seq: s.seq,
	}
	s.todos[mt.todo.ID] = mt

	created := mt.todo
	return &created, nil
}

func (s *MemoryStorage) ListTodos(_ context.Context, userID string) ([]models.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	owned := make([]*memoryTodo, 0)
	for _, mt := range s.todos {
		if mt.todo.UserID == userID {
			owned = append(owned, mt)
		}
	}

	sort.Slice(owned, func(i, j int) bool {
		a, b := owned[i], owned[j]
		if !a.todo.CreatedAt.Equal(b.todo.CreatedAt) {
			return a.todo.CreatedAt.After(b.todo.CreatedAt)
		}
		return a.seq > b.seq
	})

	todos := make([]models.Todo, len(owned))
	for i, mt := range owned {
		todos[i] = mt.todo
	}
	return todos, nil
}

func (s *MemoryStorage) GetTodo(_ context.Context, userID, id string) (*models.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	mt, ok := s.todos[id]
	if !ok || mt.todo.UserID != userID {
		return nil, ErrNotFound
	}
	t := mt.todo
	return &t, nil
}

func (s *MemoryStorage) UpdateTodo(_ context.Context, userID, id string, patch models.TodoPatch) (*models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mt, ok := s.todos[id]
	if !ok || mt.todo.UserID != userID {
		return nil, ErrNotFound
	}

	if patch.Apply(&mt.todo) {
		mt.todo.UpdatedAt = s.now()
	}
	t := mt.todo
	return &t, nil
}

func (s *MemoryStorage) DeleteTodo(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	mt, ok := s.todos[id]
	if !ok || mt.todo.UserID != userID {
		return ErrNotFound
	}
	delete(s.todos, id)
	return nil
}
