package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/Varun5711/taskmate/internal/database"
	usermodel "github.com/Varun5711/taskmate/internal/models/user"
	"github.com/google/uuid"
)

type UserStorage struct {
	db *database.DBManager
}

func NewUserStorage(db *database.DBManager) *UserStorage {
	return &UserStorage{db: db}
}

func (s *UserStorage) CreateUser(ctx context.Context, u *usermodel.User) (*usermodel.User, error) {
	userID := uuid.New().String()
	now := time.Now().UTC()

	query := `
		INSERT INTO users (id, name, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, email, password_hash, created_at, updated_at
	`

	var created usermodel.User
	err := s.db.Write().QueryRow(ctx, query,
		userID,
		u.Name,
		u.Email,
		u.PasswordHash,
		now,
		now,
	).Scan(
		&created.ID,
		&created.Name,
		&created.Email,
		&created.PasswordHash,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", mapPgError(err))
	}

	return &created, nil
}

func (s *UserStorage) GetUserByEmail(ctx context.Context, email string) (*usermodel.User, error) {
	query := `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	return s.getUser(ctx, query, email)
}

func (s *UserStorage) GetUserByID(ctx context.Context, id string) (*usermodel.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	query := `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return s.getUser(ctx, query, id)
}

func (s *UserStorage) getUser(ctx context.Context, query string, arg string) (*usermodel.User, error) {
	var u usermodel.User
	err := s.db.Write().QueryRow(ctx, query, arg).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", mapPgError(err))
	}

	return &u, nil
}
