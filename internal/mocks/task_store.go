package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"taskweb/internal/domain"
	"taskweb/internal/store"
)

// MockTaskStore implements store.TaskStore for testing.
// The default implementation is a working in-memory store that mirrors the
// PostgreSQL store's observable behavior: serial ID assignment, newest-first
// listing, validation before writes, and ErrTaskNotFound for missing rows.
type MockTaskStore struct {
	// Function fields for customizable behavior
	CreateFn  func(ctx context.Context, task *domain.Task) error
	GetByIDFn func(ctx context.Context, id int64) (*domain.Task, error)
	ListFn    func(ctx context.Context) ([]*domain.Task, error)
	UpdateFn  func(ctx context.Context, task *domain.Task) error
	DeleteFn  func(ctx context.Context, id int64) error
	EditFn    func(ctx context.Context, id int64, mutate func(task *domain.Task) error) error

	mu     sync.Mutex
	tasks  map[int64]*domain.Task
	nextID int64
}

// NewMockTaskStore creates a new mock store with initialized defaults.
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		tasks:  make(map[int64]*domain.Task),
		nextID: 1,
	}
}

// Ensure MockTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*MockTaskStore)(nil)

// Create implements the TaskStore interface.
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}

	if err := task.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	task.ID = m.nextID
	m.nextID++

	stored := *task
	m.tasks[task.ID] = &stored
	return nil
}

// GetByID implements the TaskStore interface.
func (m *MockTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}

	found := *task
	return &found, nil
}

// List implements the TaskStore interface.
func (m *MockTaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	tasks := make([]*domain.Task, 0, len(m.tasks))
	for _, task := range m.tasks {
		copied := *task
		tasks = append(tasks, &copied)
	}

	// Newest first, matching the PostgreSQL store's ordering
	sort.Slice(tasks, func(i, j int) bool {
		if !tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		}
		return tasks[i].ID > tasks[j].ID
	})

	return tasks, nil
}

// Update implements the TaskStore interface.
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}

	if err := task.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tasks[task.ID]; !ok {
		return store.ErrTaskNotFound
	}

	stored := *task
	m.tasks[task.ID] = &stored
	return nil
}

// Delete implements the TaskStore interface.
func (m *MockTaskStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tasks[id]; !ok {
		return store.ErrTaskNotFound
	}

	delete(m.tasks, id)
	return nil
}

// Edit implements the TaskStore interface.
// The mutex is held across the load-mutate-save cycle, giving the same
// atomicity the SQL store gets from its transaction.
func (m *MockTaskStore) Edit(ctx context.Context, id int64, mutate func(task *domain.Task) error) error {
	if m.EditFn != nil {
		return m.EditFn(ctx, id, mutate)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.tasks[id]
	if !ok {
		return store.ErrTaskNotFound
	}

	updated := *stored
	if err := mutate(&updated); err != nil {
		return err
	}

	if err := updated.Validate(); err != nil {
		return err
	}

	m.tasks[id] = &updated
	return nil
}

// WithTx implements the TaskStore interface.
// The in-memory mock has no transactions; it returns itself.
func (m *MockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return m
}

// Len reports the number of stored tasks. Test helper.
func (m *MockTaskStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}
