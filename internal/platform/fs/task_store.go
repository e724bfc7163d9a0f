// Package fs provides the file-backed implementation of the
// store.TaskStore interface. Each task is persisted as one JSON file
// named by its id under a configured directory; the directory itself is
// the table.
package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rlbaker/todoservice/internal/domain"
	"github.com/rlbaker/todoservice/internal/ident"
	"github.com/rlbaker/todoservice/internal/store"
)

const taskFileExt = ".json"

// TaskStore implements store.TaskStore on top of a directory of
// one-file-per-task JSON records.
type TaskStore struct {
	dir string
}

// NewTaskStore creates a file-backed task store rooted at dir, creating
// the directory if it does not exist.
func NewTaskStore(dir string) (*TaskStore, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, store.NewStoreError("fs", "init", "resolving store directory", err)
	}

	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, store.NewStoreError("fs", "init", "creating store directory", err)
	}

	return &TaskStore{dir: abs}, nil
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// Dir returns the directory the store persists into.
func (s *TaskStore) Dir() string {
	return s.dir
}

// Create implements store.TaskStore.Create.
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) (string, error) {
	id := ident.NewTaskID()
	if err := s.writeTask(id, task); err != nil {
		return "", err
	}
	return id, nil
}

// Get implements store.TaskStore.Get.
// A missing file maps to store.ErrTaskNotFound.
func (s *TaskStore) Get(ctx context.Context, id string) (*domain.Task, error) {
	return s.readTask(id)
}

// Update implements store.TaskStore.Update.
// Performs a full rewrite of the task's file.
func (s *TaskStore) Update(ctx context.Context, id string, task *domain.Task) error {
	if _, err := os.Stat(s.taskPath(id)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", store.ErrTaskNotFound, id)
		}
		return store.NewStoreError("fs", "update", "checking task file", err)
	}

	return s.writeTask(id, task)
}

// Delete implements store.TaskStore.Delete.
// Removing a non-existent file maps to store.ErrTaskNotFound.
func (s *TaskStore) Delete(ctx context.Context, id string) error {
	if err := os.Remove(s.taskPath(id)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", store.ErrTaskNotFound, id)
		}
		return store.NewStoreError("fs", "delete", "removing task file", err)
	}
	return nil
}

// List implements store.TaskStore.List.
// Enumerates all task files in the store directory. A file deleted by a
// concurrent request between the directory read and the file read is
// skipped rather than failing the whole listing.
func (s *TaskStore) List(ctx context.Context) (map[string]*domain.Task, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, store.NewStoreError("fs", "list", "reading store directory", err)
	}

	tasks := make(map[string]*domain.Task, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, taskFileExt) {
			continue
		}

		id := strings.TrimSuffix(name, taskFileExt)
		task, err := s.readTask(id)
		if err != nil {
			if errors.Is(err, store.ErrTaskNotFound) {
				continue
			}
			return nil, err
		}
		tasks[id] = task
	}

	return tasks, nil
}

// taskPath returns the file path for the given task id.
func (s *TaskStore) taskPath(id string) string {
	return filepath.Join(s.dir, id+taskFileExt)
}

// writeTask persists the task atomically: the record is written to a
// temporary file in the same directory and renamed over the final path.
// Rename is atomic on POSIX filesystems, so a concurrent reader observes
// either the previous contents or the new contents, never a partial write.
func (s *TaskStore) writeTask(id string, task *domain.Task) error {
	data, err := json.Marshal(task.Fields())
	if err != nil {
		return store.NewStoreError("fs", "write", "encoding task", err)
	}

	tmp, err := os.CreateTemp(s.dir, id+".*.tmp")
	if err != nil {
		return store.NewStoreError("fs", "write", "creating temp file", err)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return store.NewStoreError("fs", "write", "writing temp file", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return store.NewStoreError("fs", "write", "closing temp file", err)
	}

	if err := os.Rename(tmp.Name(), s.taskPath(id)); err != nil {
		_ = os.Remove(tmp.Name())
		return store.NewStoreError("fs", "write", "renaming temp file", err)
	}

	return nil
}

// readTask loads and decodes a single task file.
func (s *TaskStore) readTask(id string) (*domain.Task, error) {
	data, err := os.ReadFile(s.taskPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", store.ErrTaskNotFound, id)
		}
		return nil, store.NewStoreError("fs", "read", "reading task file", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, store.NewStoreError("fs", "read", "decoding task file", err)
	}

	task, err := domain.NewTaskFromFields(fields)
	if err != nil {
		return nil, store.NewStoreError("fs", "read", "stored task is invalid", err)
	}
	task.ID = id

	return task, nil
}
