package service

import (
	"context"
	"errors"
	"testing"

	"todo_service/internal/models"
	"todo_service/internal/repository"
)

func TestTodoService_FetchUser(t *testing.T) {
	mock := &mockUserStore{
		GetFn: func(username string) (models.User, error) {
			if username != "alice" {
				return models.User{}, repository.ErrNotFound
			}
			return models.User{Username: "alice", Todos: map[int64]models.TodoItem{
				1: {ID: 1, Title: "buy milk"},
			}}, nil
		},
	}
	svc := NewTodoService(mock, &fakeActivityRepo{})

	u, err := svc.FetchUser(context.Background(), "alice")
	if err != nil {
		t.Fatalf("FetchUser: %v", err)
	}
	if u.Username != "alice" || len(u.Todos) != 1 {
		t.Fatalf("unexpected user: %+v", u)
	}

	if _, err := svc.FetchUser(context.Background(), "bob"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTodoService_AddOrUpdateTodo_RecordsActivity(t *testing.T) {
	var stored []models.TodoItem
	mock := &mockUserStore{
		UpsertTodoFn: func(username string, item models.TodoItem) error {
			stored = append(stored, item)
			return nil
		},
	}
	activity := &fakeActivityRepo{}
	svc := NewTodoService(mock, activity)

	item := models.TodoItem{ID: 7, Title: "write tests", Completed: true}
	if err := svc.AddOrUpdateTodo(context.Background(), "alice", item); err != nil {
		t.Fatalf("AddOrUpdateTodo: %v", err)
	}
	if len(stored) != 1 || stored[0] != item {
		t.Fatalf("unexpected stored items: %+v", stored)
	}
	if len(activity.appended) != 1 {
		t.Fatalf("expected 1 activity event, got %d", len(activity.appended))
	}
	ev := activity.appended[0]
	if ev.Type != models.ActivityTodoUpsert || ev.Username != "alice" {
		t.Fatalf("unexpected event: %+v", ev)
	}
	meta, ok := ev.Metadata.(map[string]any)
	if !ok || meta["id"] != int64(7) || meta["completed"] != true {
		t.Fatalf("unexpected metadata: %#v", ev.Metadata)
	}
}

func TestTodoService_AddOrUpdateTodo_UnknownUser(t *testing.T) {
	mock := &mockUserStore{
		UpsertTodoFn: func(username string, item models.TodoItem) error {
			return repository.ErrNotFound
		},
	}
	activity := &fakeActivityRepo{}
	svc := NewTodoService(mock, activity)

	err := svc.AddOrUpdateTodo(context.Background(), "ghost", models.TodoItem{ID: 1})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(activity.appended) != 0 {
		t.Fatalf("no activity expected for unknown user")
	}
}

func TestTodoService_AddOrUpdateTodo_ActivityError(t *testing.T) {
	mock := &mockUserStore{
		UpsertTodoFn: func(username string, item models.TodoItem) error { return nil },
	}
	activity := &fakeActivityRepo{appendErr: errors.New("log full")}
	svc := NewTodoService(mock, activity)

	err := svc.AddOrUpdateTodo(context.Background(), "alice", models.TodoItem{ID: 1})
	if !errors.Is(err, activity.appendErr) {
		t.Fatalf("expected activity error to propagate, got %v", err)
	}
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}
