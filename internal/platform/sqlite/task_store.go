// Package sqlite provides the relational implementation of the
// store.TaskStore interface on top of a SQLite database file. Tasks are
// stored as opaque serialized payloads in a single two-column table, so
// the schema never churns when the task shape evolves.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rlbaker/todoservice/internal/domain"
	"github.com/rlbaker/todoservice/internal/ident"
	"github.com/rlbaker/todoservice/internal/store"
)

const createTableStmt = `
CREATE TABLE IF NOT EXISTS tasks (
	id      TEXT PRIMARY KEY,
	payload TEXT NOT NULL
)`

// TaskStore implements store.TaskStore backed by a tasks table.
type TaskStore struct {
	db *sql.DB
}

// NewTaskStore opens the SQLite database at path, creating the file and
// the tasks table if they do not exist.
func NewTaskStore(path string) (*TaskStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, store.NewStoreError("sqlite", "open", "opening database", err)
	}

	if _, err := db.Exec(createTableStmt); err != nil {
		_ = db.Close()
		return nil, store.NewStoreError("sqlite", "open", "creating schema", err)
	}

	return &TaskStore{db: db}, nil
}

// NewTaskStoreWithDB wraps an existing database handle. The caller is
// responsible for the schema. Used by tests.
func NewTaskStoreWithDB(db *sql.DB) *TaskStore {
	return &TaskStore{db: db}
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// Close releases the underlying database handle.
func (s *TaskStore) Close() error {
	return s.db.Close()
}

// Create implements store.TaskStore.Create.
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) (string, error) {
	payload, err := encodeTask(task)
	if err != nil {
		return "", store.NewStoreError("sqlite", "create", "encoding task", err)
	}

	id := ident.NewTaskID()
	query := `INSERT INTO tasks (id, payload) VALUES (?, ?)`
	if _, err := s.db.ExecContext(ctx, query, id, payload); err != nil {
		return "", store.NewStoreError("sqlite", "create", "inserting task", err)
	}

	return id, nil
}

// Get implements store.TaskStore.Get.
// Returns store.ErrTaskNotFound if no row matches the id.
func (s *TaskStore) Get(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT payload FROM tasks WHERE id = ?`

	var payload string
	err := s.db.QueryRowContext(ctx, query, id).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", store.ErrTaskNotFound, id)
		}
		return nil, store.NewStoreError("sqlite", "read", "querying task", err)
	}

	return decodeTask(id, payload)
}

// Update implements store.TaskStore.Update.
// Zero affected rows maps to store.ErrTaskNotFound.
func (s *TaskStore) Update(ctx context.Context, id string, task *domain.Task) error {
	payload, err := encodeTask(task)
	if err != nil {
		return store.NewStoreError("sqlite", "update", "encoding task", err)
	}

	query := `UPDATE tasks SET payload = ? WHERE id = ?`
	result, err := s.db.ExecContext(ctx, query, payload, id)
	if err != nil {
		return store.NewStoreError("sqlite", "update", "updating task", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return store.NewStoreError("sqlite", "update", "reading affected rows", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", store.ErrTaskNotFound, id)
	}

	return nil
}

// Delete implements store.TaskStore.Delete.
// Zero affected rows maps to store.ErrTaskNotFound.
func (s *TaskStore) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM tasks WHERE id = ?`
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return store.NewStoreError("sqlite", "delete", "deleting task", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return store.NewStoreError("sqlite", "delete", "reading affected rows", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", store.ErrTaskNotFound, id)
	}

	return nil
}

// List implements store.TaskStore.List.
func (s *TaskStore) List(ctx context.Context) (map[string]*domain.Task, error) {
	query := `SELECT id, payload FROM tasks`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, store.NewStoreError("sqlite", "list", "querying tasks", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	tasks := make(map[string]*domain.Task)
	for rows.Next() {
		var id, payload string
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, store.NewStoreError("sqlite", "list", "scanning task row", err)
		}

		task, err := decodeTask(id, payload)
		if err != nil {
			return nil, err
		}
		tasks[id] = task
	}

	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("sqlite", "list", "iterating task rows", err)
	}

	return tasks, nil
}

// encodeTask serializes a task to its opaque payload form.
func encodeTask(task *domain.Task) (string, error) {
	data, err := json.Marshal(task.Fields())
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// decodeTask rebuilds a task from a stored payload.
func decodeTask(id, payload string) (*domain.Task, error) {
	var fields map[string]any
	if err := json.Unmarshal([]byte(payload), &fields); err != nil {
		return nil, store.NewStoreError("sqlite", "read", "decoding task payload", err)
	}

	task, err := domain.NewTaskFromFields(fields)
	if err != nil {
		return nil, store.NewStoreError("sqlite", "read", "stored task is invalid", err)
	}
	task.ID = id

	return task, nil
}
