package store

import (
	"context"

	"github.com/rlbaker/todoservice/internal/domain"
)

// TaskStore defines the interface for task data persistence.
// Three interchangeable backends implement it: an in-memory map, a
// file-per-task directory, and a relational table. The backend is chosen
// once at startup; everything above this interface is backend-agnostic.
//
// Implementations never log. They return typed errors (ErrTaskNotFound,
// *StoreError) and leave the attachment of log fields to the service
// layer, so the same correlation discipline applies regardless of which
// backend is active.
type TaskStore interface {
	// Create assigns a new identifier to the task, stores it, and returns
	// the assigned id. Any caller-supplied id on the task is ignored.
	// Returns a *StoreError if the backend medium is unavailable.
	Create(ctx context.Context, task *domain.Task) (string, error)

	// Get retrieves a task by its id. The returned task is a deep
	// snapshot; mutating it does not affect stored state.
	// Returns ErrTaskNotFound if no task with that id exists.
	Get(ctx context.Context, id string) (*domain.Task, error)

	// Update replaces the entire record at the given id. The id itself
	// never changes. Returns ErrTaskNotFound if the task does not exist
	// and a *StoreError on medium failure.
	Update(ctx context.Context, id string, task *domain.Task) error

	// Delete removes the task with the given id.
	// Returns ErrTaskNotFound if the task does not exist, including on a
	// repeated delete of the same id.
	Delete(ctx context.Context, id string) error

	// List returns a snapshot of all current tasks keyed by id. The map
	// is empty when the store is empty. Iteration order is
	// backend-defined.
	List(ctx context.Context) (map[string]*domain.Task, error)
}
