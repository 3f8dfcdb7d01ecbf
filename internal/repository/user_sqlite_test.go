package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"testing"

	"todo_service/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockUserRepo(t *testing.T) (*UserSQLite, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	repo := NewUserSQLite(db)
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	}
	return repo, mock, cleanup
}

func TestUserSQLite_Register(t *testing.T) {
	tests := []struct {
		name           string
		mockExpect     func(sqlmock.Sqlmock)
		wantErr        error
		errContainsStr string
	}{
		{
			name: "success",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs("alice", "h123").
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
		},
		{
			name: "username taken",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs("alice", "h123").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: ErrAlreadyExists,
		},
		{
			name: "exec error",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs("alice", "h123").
					WillReturnError(errors.New("db exec failed"))
			},
			errContainsStr: "insert user",
		},
		{
			name: "rows affected error",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs("alice", "h123").
					WillReturnResult(sqlmock.NewErrorResult(errors.New("no count")))
			},
			errContainsStr: "rows affected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := newMockUserRepo(t)
			defer cleanup()

			tt.mockExpect(mock)

			err := repo.Register(context.Background(), "alice", "h123")
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
			case tt.errContainsStr != "":
				if err == nil || !strings.Contains(err.Error(), tt.errContainsStr) {
					t.Fatalf("expected error containing %q, got %v", tt.errContainsStr, err)
				}
			default:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			}
		})
	}
}

func TestUserSQLite_Get(t *testing.T) {
	t.Run("found with todos", func(t *testing.T) {
		repo, mock, cleanup := newMockUserRepo(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(selectUserSQL)).
			WithArgs("alice").
			WillReturnRows(sqlmock.NewRows([]string{"username", "password_hash"}).AddRow("alice", "h123"))
		mock.ExpectQuery(regexp.QuoteMeta(selectTodosByUserSQL)).
			WithArgs("alice").
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "completed"}).
				AddRow(1, "buy milk", false).
				AddRow(2, "walk", true))
		mock.ExpectCommit()

		u, err := repo.Get(context.Background(), "alice")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if u.Username != "alice" || u.PasswordHash != "h123" {
			t.Fatalf("unexpected user: %+v", u)
		}
		want := map[int64]models.TodoItem{
			1: {ID: 1, Title: "buy milk"},
			2: {ID: 2, Title: "walk", Completed: true},
		}
		if len(u.Todos) != len(want) {
			t.Fatalf("todos: want %d, got %d", len(want), len(u.Todos))
		}
		for id, item := range want {
			if u.Todos[id] != item {
				t.Fatalf("todo %d: want %+v, got %+v", id, item, u.Todos[id])
			}
		}
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock, cleanup := newMockUserRepo(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(selectUserSQL)).
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		_, err := repo.Get(context.Background(), "ghost")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("todos query error", func(t *testing.T) {
		repo, mock, cleanup := newMockUserRepo(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(selectUserSQL)).
			WithArgs("alice").
			WillReturnRows(sqlmock.NewRows([]string{"username", "password_hash"}).AddRow("alice", "h"))
		mock.ExpectQuery(regexp.QuoteMeta(selectTodosByUserSQL)).
			WithArgs("alice").
			WillReturnError(errors.New("boom"))
		mock.ExpectRollback()

		_, err := repo.Get(context.Background(), "alice")
		if err == nil || !strings.Contains(err.Error(), "select todos") {
			t.Fatalf("expected select todos error, got %v", err)
		}
	})
}

func TestUserSQLite_UpsertTodo(t *testing.T) {
	item := models.TodoItem{ID: 5, Title: "read", Completed: true}

	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := newMockUserRepo(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(selectUserExistsSQL)).
			WithArgs("alice").
			WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
		mock.ExpectExec(regexp.QuoteMeta(upsertTodoSQL)).
			WithArgs("alice", int64(5), "read", true).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		if err := repo.UpsertTodo(context.Background(), "alice", item); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("missing user", func(t *testing.T) {
		repo, mock, cleanup := newMockUserRepo(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(selectUserExistsSQL)).
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		if err := repo.UpsertTodo(context.Background(), "ghost", item); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("exec error rolls back", func(t *testing.T) {
		repo, mock, cleanup := newMockUserRepo(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(selectUserExistsSQL)).
			WithArgs("alice").
			WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
		mock.ExpectExec(regexp.QuoteMeta(upsertTodoSQL)).
			WillReturnError(errors.New("disk full"))
		mock.ExpectRollback()

		err := repo.UpsertTodo(context.Background(), "alice", item)
		if err == nil || !strings.Contains(err.Error(), "upsert todo 5") {
			t.Fatalf("expected upsert error, got %v", err)
		}
	})
}
