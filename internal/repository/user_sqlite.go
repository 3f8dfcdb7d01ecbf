package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"todo_service/internal/models"
)

// UserSQLite stores users and their todos in two tables. The database is
// expected to run with a single open connection, so each transaction below
// is a critical section for the whole store.
type UserSQLite struct {
	db *sql.DB
}

func NewUserSQLite(db *sql.DB) *UserSQLite {
	return &UserSQLite{db: db}
}

// Ensure implementation of UserStore interface at compile time.
var _ UserStore = (*UserSQLite)(nil)

const (
	insertUserSQL        = `INSERT INTO users (username, password_hash) VALUES (?, ?) ON CONFLICT(username) DO NOTHING`
	selectUserSQL        = `SELECT username, password_hash FROM users WHERE username = ?`
	selectUserExistsSQL  = `SELECT 1 FROM users WHERE username = ?`
	selectTodosByUserSQL = `SELECT id, title, completed FROM todos WHERE username = ?`

	upsertTodoSQL = `
		INSERT INTO todos (username, id, title, completed)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(username, id) DO UPDATE SET
			title=excluded.title,
			completed=excluded.completed
	`
)

// Register inserts a new user. A conflicting username leaves the table untouched.
func (r *UserSQLite) Register(ctx context.Context, username, passwordHash string) error {
	res, err := r.db.ExecContext(ctx, insertUserSQL, username, passwordHash)
	if err != nil {
		return fmt.Errorf("insert user %q: %w", username, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for user %q: %w", username, err)
	}
	if n == 0 {
		return ErrAlreadyExists
	}
	return nil
}

// Get loads the user row and all of its todos in one transaction.
func (r *UserSQLite) Get(ctx context.Context, username string) (models.User, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.User{}, fmt.Errorf("begin get user %q: %w", username, err)
	}
	defer func() { _ = tx.Rollback() }()

	var u models.User
	err = tx.QueryRowContext(ctx, selectUserSQL, username).Scan(&u.Username, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("select user %q: %w", username, err)
	}

	todos, err := scanTodos(ctx, tx, username)
	if err != nil {
		return models.User{}, err
	}
	u.Todos = todos

	if err := tx.Commit(); err != nil {
		return models.User{}, fmt.Errorf("commit get user %q: %w", username, err)
	}
	return u, nil
}

func scanTodos(ctx context.Context, tx *sql.Tx, username string) (map[int64]models.TodoItem, error) {
	rows, err := tx.QueryContext(ctx, selectTodosByUserSQL, username)
	if err != nil {
		return nil, fmt.Errorf("select todos for %q: %w", username, err)
	}
	defer rows.Close()

	todos := make(map[int64]models.TodoItem)
	for rows.Next() {
		var item models.TodoItem
		if err := rows.Scan(&item.ID, &item.Title, &item.Completed); err != nil {
			return nil, fmt.Errorf("scan todo for %q: %w", username, err)
		}
		todos[item.ID] = item
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate todos for %q: %w", username, err)
	}
	return todos, nil
}

// UpsertTodo checks the user exists and writes the item within one transaction.
func (r *UserSQLite) UpsertTodo(ctx context.Context, username string, item models.TodoItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert todo for %q: %w", username, err)
	}
	defer func() { _ = tx.Rollback() }()

	var one int
	if err := tx.QueryRowContext(ctx, selectUserExistsSQL, username).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("select user %q: %w", username, err)
	}

	if _, err := tx.ExecContext(ctx, upsertTodoSQL, username, item.ID, item.Title, item.Completed); err != nil {
		return fmt.Errorf("upsert todo %d for %q: %w", item.ID, username, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert todo for %q: %w", username, err)
	}
	return nil
}
