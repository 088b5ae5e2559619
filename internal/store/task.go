package store

import (
	"context"
	"database/sql"

	"taskweb/internal/domain"
)

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store and assigns its identifier.
	// The task must be valid according to domain validation rules; validation
	// errors are returned unchanged. On success the task's ID is populated
	// with the store-assigned positive integer.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// List retrieves all tasks, newest first.
	// Returns an empty slice (never nil) when the store is empty.
	List(ctx context.Context) ([]*domain.Task, error)

	// Update saves changes to an existing task, keyed by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	// Returns validation errors if the task data is invalid.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task from the store by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error

	// Edit atomically loads the task with the given ID, applies mutate to it,
	// and persists the result. Database-backed implementations run the load
	// and save in a single transaction so concurrent edits serialize instead
	// of overwriting each other.
	// Returns ErrTaskNotFound if the task does not exist. An error from
	// mutate aborts the edit and is returned unchanged.
	Edit(ctx context.Context, id int64, mutate func(task *domain.Task) error) error

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	// This allows multiple operations to be executed within a single transaction.
	// The transaction is created and managed by the caller, typically via
	// RunInTransaction.
	WithTx(tx *sql.Tx) TaskStore
}
