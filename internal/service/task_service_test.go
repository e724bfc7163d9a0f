package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlbaker/todoservice/internal/domain"
	"github.com/rlbaker/todoservice/internal/platform/logger"
	"github.com/rlbaker/todoservice/internal/platform/memory"
	"github.com/rlbaker/todoservice/internal/store"
)

// failingTaskStore returns a canned error from every operation, standing
// in for an unavailable backend medium.
type failingTaskStore struct {
	err error
}

var _ store.TaskStore = (*failingTaskStore)(nil)

func (s *failingTaskStore) Create(ctx context.Context, task *domain.Task) (string, error) {
	return "", s.err
}

func (s *failingTaskStore) Get(ctx context.Context, id string) (*domain.Task, error) {
	return nil, s.err
}

func (s *failingTaskStore) Update(ctx context.Context, id string, task *domain.Task) error {
	return s.err
}

func (s *failingTaskStore) Delete(ctx context.Context, id string) error {
	return s.err
}

func (s *failingTaskStore) List(ctx context.Context) (map[string]*domain.Task, error) {
	return nil, s.err
}

// countingTaskStore wraps the in-memory store and counts write attempts.
type countingTaskStore struct {
	store.TaskStore
	creates int
	updates int
}

func (s *countingTaskStore) Create(ctx context.Context, task *domain.Task) (string, error) {
	s.creates++
	return s.TaskStore.Create(ctx, task)
}

func (s *countingTaskStore) Update(ctx context.Context, id string, task *domain.Task) error {
	s.updates++
	return s.TaskStore.Update(ctx, id, task)
}

func newService(t *testing.T) TaskService {
	t.Helper()
	svc, err := NewTaskService(memory.NewTaskStore(), nil)
	require.NoError(t, err)
	return svc
}

func TestNewTaskServiceRequiresStore(t *testing.T) {
	t.Parallel()

	_, err := NewTaskService(nil, nil)
	assert.Error(t, err)
}

func TestCreateAndGetTask(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newService(t)

	id, err := svc.CreateTask(ctx, map[string]any{"title": "Task1"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	fields, err := svc.GetTask(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Task1", fields["title"])
	assert.Equal(t, "none", fields["priority"])
	assert.Equal(t, false, fields["completed"])
}

func TestCreateTaskValidationNeverReachesStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	counting := &countingTaskStore{TaskStore: memory.NewTaskStore()}
	svc, err := NewTaskService(counting, nil)
	require.NoError(t, err)

	_, err = svc.CreateTask(ctx, map[string]any{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, 0, counting.creates, "invalid payload must not reach the store")

	tasks, err := svc.ListTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks, "no record persisted after a validation failure")
}

func TestUpdateTaskValidationNeverReachesStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	counting := &countingTaskStore{TaskStore: memory.NewTaskStore()}
	svc, err := NewTaskService(counting, nil)
	require.NoError(t, err)

	id, err := svc.CreateTask(ctx, map[string]any{"title": "Task1"})
	require.NoError(t, err)

	err = svc.UpdateTask(ctx, id, map[string]any{"title": ""})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, 0, counting.updates)
}

func TestUpdateTaskFullReplace(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newService(t)

	id, err := svc.CreateTask(ctx, map[string]any{
		"title":       "Task1",
		"description": "original notes",
	})
	require.NoError(t, err)

	// Full replace, not merge: the description must be gone afterwards.
	require.NoError(t, svc.UpdateTask(ctx, id, map[string]any{"title": "Task2"}))

	fields, err := svc.GetTask(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Task2", fields["title"])
	assert.NotContains(t, fields, "description")
}

func TestNotFoundMapping(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newService(t)

	_, err := svc.GetTask(ctx, "no-such-id")
	assert.ErrorIs(t, err, ErrTaskNotFound)

	err = svc.UpdateTask(ctx, "no-such-id", map[string]any{"title": "x"})
	assert.ErrorIs(t, err, ErrTaskNotFound)

	err = svc.DeleteTask(ctx, "no-such-id")
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestDeleteThenOperationsFailNotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newService(t)

	id, err := svc.CreateTask(ctx, map[string]any{"title": "Task1"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTask(ctx, id))

	_, err = svc.GetTask(ctx, id)
	assert.ErrorIs(t, err, ErrTaskNotFound)
	assert.ErrorIs(t, svc.DeleteTask(ctx, id), ErrTaskNotFound)
}

func TestPersistenceErrorsAreWrapped(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	backendErr := store.NewStoreError("sqlite", "create", "inserting task", errors.New("disk full"))
	svc, err := NewTaskService(&failingTaskStore{err: backendErr}, nil)
	require.NoError(t, err)

	_, err = svc.CreateTask(ctx, map[string]any{"title": "Task1"})
	require.Error(t, err)
	assert.True(t, store.IsPersistenceError(err))
	assert.NotErrorIs(t, err, ErrTaskNotFound)
	assert.NotErrorIs(t, err, domain.ErrValidation)

	var svcErr *TaskServiceError
	assert.ErrorAs(t, err, &svcErr)
}

func TestOperationsRecordScopeFields(t *testing.T) {
	t.Parallel()
	svc := newService(t)

	ctx := logger.WithRequestScope(context.Background(), "req-1")
	id, err := svc.CreateTask(ctx, map[string]any{"title": "Task1"})
	require.NoError(t, err)

	fields := logger.Fields(ctx)
	assert.Equal(t, "create_task", fields["op"])
	assert.Equal(t, id, fields["task_id"])
	assert.Contains(t, fields, "create_task_elapsed_ms")
	assert.NotContains(t, fields, "error")
}

func TestFailedOperationRecordsErrorField(t *testing.T) {
	t.Parallel()
	svc := newService(t)

	ctx := logger.WithRequestScope(context.Background(), "req-1")
	_, err := svc.GetTask(ctx, "no-such-id")
	require.Error(t, err)

	fields := logger.Fields(ctx)
	assert.Equal(t, "get_task", fields["op"])
	assert.Contains(t, fields, "get_task_elapsed_ms")
	assert.Contains(t, fields, "error")
}

func TestListTasksSnapshot(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newService(t)

	for _, title := range []string{"Task1", "Task2", "Task3"} {
		_, err := svc.CreateTask(ctx, map[string]any{"title": title})
		require.NoError(t, err)
	}

	tasks, err := svc.ListTasks(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 3)

	titles := make(map[string]bool)
	for _, fields := range tasks {
		titles[fields["title"].(string)] = true
	}
	assert.True(t, titles["Task1"] && titles["Task2"] && titles["Task3"])
}
