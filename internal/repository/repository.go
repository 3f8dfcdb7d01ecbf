package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"todo_service/internal/models"
)

// Store errors shared by every backend.
var (
	ErrAlreadyExists = errors.New("user already exists")
	ErrNotFound      = errors.New("user not found")
)

// UserStore is the process-wide username -> user mapping. Every method is
// atomic with respect to every other method for the same username.
type UserStore interface {
	Register(ctx context.Context, username, passwordHash string) error
	Get(ctx context.Context, username string) (models.User, error)
	UpsertTodo(ctx context.Context, username string, item models.TodoItem) error
}

// ActivityRepo is an append-only history of user actions.
type ActivityRepo interface {
	Append(ctx context.Context, e models.ActivityEvent) error
	List(ctx context.Context, username string, from, to time.Time, typ string) ([]models.ActivityEvent, error)
}

type Repository struct {
	Users    UserStore
	Activity ActivityRepo
}

// NewRepository builds the sqlite-backed repositories on top of an opened db.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users:    NewUserSQLite(db),
		Activity: NewActivitySQLite(db),
	}
}

// NewMemoryRepository builds map-backed repositories; shards <= 0 selects the default.
func NewMemoryRepository(shards int) *Repository {
	return &Repository{
		Users:    NewShardedUserStore(shards),
		Activity: NewActivityMemory(),
	}
}
