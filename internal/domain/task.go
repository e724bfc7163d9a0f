package domain

import (
	"fmt"
)

// TaskPriority represents the urgency of a task.
type TaskPriority string

// Possible task priority values.
const (
	TaskPriorityUrgent TaskPriority = "urgent"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityNormal TaskPriority = "normal"
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityNone   TaskPriority = "none"
)

// Common validation errors for Task.
var (
	ErrTaskTitleEmpty      = fmt.Errorf("%w: title cannot be empty", ErrValidation)
	ErrTaskTitleNotString  = fmt.Errorf("%w: title must be a string", ErrValidation)
	ErrTaskPriorityInvalid = fmt.Errorf("%w: invalid task priority", ErrValidation)
	ErrTaskFieldInvalid    = fmt.Errorf("%w: invalid task field type", ErrValidation)
)

// Task is the validated in-memory representation of a single task.
// The ID is assigned by the store at creation time and is immutable
// afterwards. Extra holds wire keys the model does not interpret; they
// survive storage round-trips verbatim.
type Task struct {
	ID          string         `validate:"-"`
	Title       string         `validate:"required"`
	Priority    TaskPriority   `validate:"required,oneof=urgent high normal low none"`
	Description string         `validate:"-"`
	Completed   bool           `validate:"-"`
	DueDate     *int64         `validate:"-"`
	Extra       map[string]any `validate:"-"`
}

// NewTaskFromFields builds a Task from a decoded wire object.
// Unknown keys are preserved in Extra; a caller-supplied "id" key is
// ignored because identifiers are always assigned by the store.
// Returns an error wrapping ErrValidation if the payload is invalid.
func NewTaskFromFields(fields map[string]any) (*Task, error) {
	t := &Task{Priority: TaskPriorityNone}

	for key, value := range fields {
		switch key {
		case "id":
			// Server-assigned; never taken from the caller.
		case "title":
			s, ok := value.(string)
			if !ok {
				return nil, ErrTaskTitleNotString
			}
			t.Title = s
		case "priority":
			s, ok := value.(string)
			if !ok {
				return nil, ErrTaskPriorityInvalid
			}
			p := TaskPriority(s)
			if !isValidTaskPriority(p) {
				return nil, ErrTaskPriorityInvalid
			}
			t.Priority = p
		case "description":
			s, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("%w: description must be a string", ErrValidation)
			}
			t.Description = s
		case "completed":
			b, ok := value.(bool)
			if !ok {
				return nil, fmt.Errorf("%w: completed must be a boolean", ErrValidation)
			}
			t.Completed = b
		case "due_date":
			due, err := toEpoch(value)
			if err != nil {
				return nil, err
			}
			t.DueDate = due
		default:
			if t.Extra == nil {
				t.Extra = make(map[string]any)
			}
			t.Extra[key] = deepCopyValue(value)
		}
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}

	return t, nil
}

// Validate checks if the Task has valid data.
// Returns an error wrapping ErrValidation if any field fails.
func (t *Task) Validate() error {
	if t.Title == "" {
		return ErrTaskTitleEmpty
	}

	if !isValidTaskPriority(t.Priority) {
		return ErrTaskPriorityInvalid
	}

	return nil
}

// Fields converts the Task to its wire representation. Optional fields
// that carry no value are omitted, matching the storage serialization
// format. The ID is not part of the wire object; it travels as the map
// key or URL path parameter.
func (t *Task) Fields() map[string]any {
	fields := make(map[string]any, len(t.Extra)+5)

	for k, v := range t.Extra {
		fields[k] = deepCopyValue(v)
	}

	fields["title"] = t.Title
	fields["priority"] = string(t.Priority)
	fields["completed"] = t.Completed
	if t.Description != "" {
		fields["description"] = t.Description
	}
	if t.DueDate != nil {
		fields["due_date"] = *t.DueDate
	}

	return fields
}

// Clone returns a deep copy of the Task. Stores hand out clones so that
// callers can never mutate persisted state through a returned value.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}

	clone := *t
	if t.DueDate != nil {
		due := *t.DueDate
		clone.DueDate = &due
	}
	if t.Extra != nil {
		clone.Extra = make(map[string]any, len(t.Extra))
		for k, v := range t.Extra {
			clone.Extra[k] = deepCopyValue(v)
		}
	}

	return &clone
}

// isValidTaskPriority checks if the given priority is a valid TaskPriority.
func isValidTaskPriority(p TaskPriority) bool {
	switch p {
	case TaskPriorityUrgent, TaskPriorityHigh, TaskPriorityNormal,
		TaskPriorityLow, TaskPriorityNone:
		return true
	default:
		return false
	}
}

// toEpoch normalizes a wire due_date value to epoch seconds. JSON decoding
// produces float64; tests and internal callers may pass integer types.
func toEpoch(value any) (*int64, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case float64:
		due := int64(v)
		return &due, nil
	case int64:
		due := v
		return &due, nil
	case int:
		due := int64(v)
		return &due, nil
	default:
		return nil, fmt.Errorf("%w: due_date must be a number", ErrValidation)
	}
}

// deepCopyValue copies a JSON-shaped value (objects, arrays, scalars) so
// that snapshots share no mutable state with the original.
func deepCopyValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		copied := make(map[string]any, len(v))
		for k, elem := range v {
			copied[k] = deepCopyValue(elem)
		}
		return copied
	case []any:
		copied := make([]any, len(v))
		for i, elem := range v {
			copied[i] = deepCopyValue(elem)
		}
		return copied
	default:
		return v
	}
}
