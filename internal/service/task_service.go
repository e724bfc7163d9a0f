package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/rlbaker/todoservice/internal/domain"
	"github.com/rlbaker/todoservice/internal/platform/logger"
	"github.com/rlbaker/todoservice/internal/store"
)

// TaskService provides task-related operations over the configured
// storage backend. It owns input validation, so an invalid payload never
// reaches the store, and records the timing and outcome of every call
// as request-scope log fields. Logging is a side effect of each call,
// never part of the return contract.
type TaskService interface {
	// ListTasks returns the wire representation of every stored task,
	// keyed by id.
	ListTasks(ctx context.Context) (map[string]map[string]any, error)

	// CreateTask validates the payload, stores a new task, and returns
	// the assigned id.
	CreateTask(ctx context.Context, fields map[string]any) (string, error)

	// GetTask returns the wire representation of one task.
	// Returns ErrTaskNotFound if the id has no record.
	GetTask(ctx context.Context, id string) (map[string]any, error)

	// UpdateTask validates the payload and replaces the record at id.
	// Returns ErrTaskNotFound if the id has no record.
	UpdateTask(ctx context.Context, id string, fields map[string]any) error

	// DeleteTask removes the record at id.
	// Returns ErrTaskNotFound if the id has no record.
	DeleteTask(ctx context.Context, id string) error
}

// taskServiceImpl implements the TaskService interface.
type taskServiceImpl struct {
	taskStore store.TaskStore
	validate  *validator.Validate
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService over the given store.
// If log is nil, the default logger is used.
func NewTaskService(taskStore store.TaskStore, log *slog.Logger) (TaskService, error) {
	if taskStore == nil {
		return nil, errors.New("taskStore cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &taskServiceImpl{
		taskStore: taskStore,
		validate:  validator.New(),
		logger:    log.With(slog.String("component", "task_service")),
	}, nil
}

// ListTasks implements TaskService.ListTasks.
func (s *taskServiceImpl) ListTasks(ctx context.Context) (result map[string]map[string]any, err error) {
	defer s.observe(ctx, "list_tasks", time.Now(), &err)

	tasks, storeErr := s.taskStore.List(ctx)
	if storeErr != nil {
		err = NewTaskServiceError("list_tasks", "listing tasks", storeErr)
		return nil, err
	}

	result = make(map[string]map[string]any, len(tasks))
	for id, task := range tasks {
		result[id] = task.Fields()
	}

	logger.AddField(ctx, "task_count", len(result))
	return result, nil
}

// CreateTask implements TaskService.CreateTask.
func (s *taskServiceImpl) CreateTask(ctx context.Context, fields map[string]any) (id string, err error) {
	defer s.observe(ctx, "create_task", time.Now(), &err)

	task, buildErr := s.buildTask(fields)
	if buildErr != nil {
		err = buildErr
		return "", err
	}

	id, storeErr := s.taskStore.Create(ctx, task)
	if storeErr != nil {
		err = NewTaskServiceError("create_task", "storing task", storeErr)
		return "", err
	}

	logger.AddField(ctx, "task_id", id)
	return id, nil
}

// GetTask implements TaskService.GetTask.
func (s *taskServiceImpl) GetTask(ctx context.Context, id string) (fields map[string]any, err error) {
	defer s.observe(ctx, "get_task", time.Now(), &err)
	logger.AddField(ctx, "task_id", id)

	task, storeErr := s.taskStore.Get(ctx, id)
	if storeErr != nil {
		err = NewTaskServiceError("get_task", "reading task", storeErr)
		return nil, err
	}

	return task.Fields(), nil
}

// UpdateTask implements TaskService.UpdateTask.
func (s *taskServiceImpl) UpdateTask(ctx context.Context, id string, fields map[string]any) (err error) {
	defer s.observe(ctx, "update_task", time.Now(), &err)
	logger.AddField(ctx, "task_id", id)

	task, buildErr := s.buildTask(fields)
	if buildErr != nil {
		err = buildErr
		return err
	}

	if storeErr := s.taskStore.Update(ctx, id, task); storeErr != nil {
		err = NewTaskServiceError("update_task", "replacing task", storeErr)
		return err
	}

	return nil
}

// DeleteTask implements TaskService.DeleteTask.
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id string) (err error) {
	defer s.observe(ctx, "delete_task", time.Now(), &err)
	logger.AddField(ctx, "task_id", id)

	if storeErr := s.taskStore.Delete(ctx, id); storeErr != nil {
		err = NewTaskServiceError("delete_task", "removing task", storeErr)
		return err
	}

	return nil
}

// buildTask converts a wire payload into a validated domain task. Domain
// rules run first; the struct validator backs them up so tag-declared
// constraints and field rules stay in one place.
func (s *taskServiceImpl) buildTask(fields map[string]any) (*domain.Task, error) {
	task, err := domain.NewTaskFromFields(fields)
	if err != nil {
		return nil, err
	}

	if err := s.validate.Struct(task); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	return task, nil
}

// observe records the operation name, its elapsed time, and any error on
// the active request scope. These fields surface once, on the canonical
// log line emitted at request completion.
func (s *taskServiceImpl) observe(ctx context.Context, op string, start time.Time, err *error) {
	elapsed := float64(time.Since(start).Nanoseconds()) / 1e6

	logger.AddField(ctx, "op", op)
	logger.AddField(ctx, op+"_elapsed_ms", elapsed)
	if err != nil && *err != nil {
		logger.AddField(ctx, "error", (*err).Error())
	}
}
