// Package memory provides the in-memory implementation of the
// store.TaskStore interface. State lives in a single mutex-guarded map
// and is lost on process exit.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/rlbaker/todoservice/internal/domain"
	"github.com/rlbaker/todoservice/internal/ident"
	"github.com/rlbaker/todoservice/internal/store"
)

// TaskStore implements store.TaskStore with a map guarded by one
// coarse-grained lock. Every operation holds the lock for its entire
// duration; operations are O(1) map accesses and never suspend, which
// keeps read-your-write behavior trivially correct.
type TaskStore struct {
	mu    sync.Mutex
	tasks map[string]*domain.Task
}

// NewTaskStore creates an empty in-memory task store.
func NewTaskStore() *TaskStore {
	return &TaskStore{
		tasks: make(map[string]*domain.Task),
	}
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// Create implements store.TaskStore.Create.
// The in-memory variant cannot fail: ids are generated, never
// caller-chosen, so duplicates do not occur.
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := ident.NewTaskID()
	stored := task.Clone()
	stored.ID = id
	s.tasks[id] = stored

	return id, nil
}

// Get implements store.TaskStore.Get.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *TaskStore) Get(ctx context.Context, id string) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", store.ErrTaskNotFound, id)
	}

	return task.Clone(), nil
}

// Update implements store.TaskStore.Update.
// Replaces the whole record; returns store.ErrTaskNotFound if absent.
func (s *TaskStore) Update(ctx context.Context, id string, task *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return fmt.Errorf("%w: %s", store.ErrTaskNotFound, id)
	}

	stored := task.Clone()
	stored.ID = id
	s.tasks[id] = stored

	return nil
}

// Delete implements store.TaskStore.Delete.
// Returns store.ErrTaskNotFound if absent, including on repeated deletes.
func (s *TaskStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return fmt.Errorf("%w: %s", store.ErrTaskNotFound, id)
	}

	delete(s.tasks, id)
	return nil
}

// List implements store.TaskStore.List.
// Returns a deep snapshot of all tasks keyed by id.
func (s *TaskStore) List(ctx context.Context) (map[string]*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := make(map[string]*domain.Task, len(s.tasks))
	for id, task := range s.tasks {
		tasks[id] = task.Clone()
	}

	return tasks, nil
}
