package service

import (
	"context"
	"time"

	"todo_service/internal/models"
	"todo_service/internal/repository"
)

// Authorization covers registration and turning credentials into a verified username.
type Authorization interface {
	SignUp(ctx context.Context, username, password string) error
	Authenticate(ctx context.Context, username, password string) (string, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (string, error)
}

// Todos exposes per-user reads and writes. Callers pass a username that has
// already been verified by Authorization, never one taken from the request.
type Todos interface {
	FetchUser(ctx context.Context, verifiedUsername string) (models.User, error)
	AddOrUpdateTodo(ctx context.Context, verifiedUsername string, item models.TodoItem) error
}

// Activity exposes a user's own history with filtering access.
type Activity interface {
	List(ctx context.Context, username string, f LogFilter) ([]models.ActivityEvent, error)
}

// Config holds the tunables of the auth flows.
type Config struct {
	BcryptCost int
	SigningKey string
	TokenTTL   time.Duration
}

// Service aggregates all sub-services.
type Service struct {
	Authorization
	Todos
	Activity
}

func NewService(repos *repository.Repository, cfg Config) (*Service, error) {
	auth, err := NewAuthService(repos.Users, repos.Activity, NewBcryptHasher(cfg.BcryptCost), cfg.SigningKey, cfg.TokenTTL)
	if err != nil {
		return nil, err
	}
	return &Service{
		Authorization: auth,
		Todos:         NewTodoService(repos.Users, repos.Activity),
		Activity:      NewActivityService(repos.Activity),
	}, nil
}
