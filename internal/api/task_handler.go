package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rlbaker/todoservice/internal/api/shared"
	"github.com/rlbaker/todoservice/internal/platform/logger"
	"github.com/rlbaker/todoservice/internal/service"
)

// TaskHandler handles task-related HTTP requests.
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
// If log is nil, the default logger is used.
func NewTaskHandler(taskService service.TaskService, log *slog.Logger) *TaskHandler {
	if log == nil {
		log = slog.Default()
	}
	return &TaskHandler{
		taskService: taskService,
		logger:      log.With(slog.String("component", "task_handler")),
	}
}

// ListTasks handles GET /tasks requests.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.ListTasks(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// CreateTask handles POST /tasks requests. On success the response is 201
// with the assigned id in the body and a Location header referencing the
// new task.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	fields, err := shared.DecodeJSONBody(r)
	if err != nil {
		logger.AddField(r.Context(), "reason", "Invalid JSON body")
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	id, err := h.taskService.CreateTask(r.Context(), fields)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	w.Header().Set("Location", "/tasks/"+id)
	shared.RespondWithJSON(w, r, http.StatusCreated, CreateTaskResponse{ID: id})
}

// GetTask handles GET /tasks/{id} requests.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	task, err := h.taskService.GetTask(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// UpdateTask handles PUT /tasks/{id} requests. The payload replaces the
// whole record; a successful replace returns 204.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	fields, err := shared.DecodeJSONBody(r)
	if err != nil {
		logger.AddField(r.Context(), "reason", "Invalid JSON body")
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if err := h.taskService.UpdateTask(r.Context(), id, fields); err != nil {
		h.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteTask handles DELETE /tasks/{id} requests.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.taskService.DeleteTask(r.Context(), id); err != nil {
		h.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// respondError translates a service error into an HTTP response. The
// error's details were already attached to the request scope by the
// service layer; here only the mapped status and a safe message leave
// the process.
func (h *TaskHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)

	logger.AddField(r.Context(), "reason", message)
	shared.RespondWithError(w, r, status, message)
}
