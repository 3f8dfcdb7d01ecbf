package service

import (
	"context"
	"fmt"

	"todo_service/internal/models"
	"todo_service/internal/repository"
)

type TodoService struct {
	users    repository.UserStore
	activity repository.ActivityRepo
}

func NewTodoService(users repository.UserStore, activity repository.ActivityRepo) *TodoService {
	return &TodoService{users: users, activity: activity}
}

// FetchUser returns a snapshot of the user and its todos.
func (s *TodoService) FetchUser(ctx context.Context, verifiedUsername string) (models.User, error) {
	return s.users.Get(ctx, verifiedUsername)
}

// AddOrUpdateTodo stores item under the user, replacing any item with the same id.
func (s *TodoService) AddOrUpdateTodo(ctx context.Context, verifiedUsername string, item models.TodoItem) error {
	if err := s.users.UpsertTodo(ctx, verifiedUsername, item); err != nil {
		return err
	}
	if err := s.activity.Append(ctx, models.ActivityEvent{
		Type:        models.ActivityTodoUpsert,
		Username:    verifiedUsername,
		Description: fmt.Sprintf("Todo %d saved", item.ID),
		Metadata: map[string]any{
			"id":        item.ID,
			"title":     item.Title,
			"completed": item.Completed,
		},
	}); err != nil {
		return fmt.Errorf("%w: record todo upsert: %w", ErrInternal, err)
	}
	return nil
}
