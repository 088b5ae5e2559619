package postgres

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskweb/internal/domain"
	"taskweb/internal/store"
)

// These tests cover the parts of PostgresTaskStore that do not require a
// live database: constructor contracts, interface compliance, and validation
// short-circuits that run before any query is issued.

func TestNewPostgresTaskStore(t *testing.T) {
	t.Parallel()

	t.Run("nil db panics", func(t *testing.T) {
		assert.Panics(t, func() {
			NewPostgresTaskStore(nil, slog.Default())
		})
	})

	t.Run("nil logger falls back to default", func(t *testing.T) {
		s := NewPostgresTaskStore(unusedDB{}, nil)
		require.NotNil(t, s)
	})

	t.Run("implements store.TaskStore", func(t *testing.T) {
		var _ store.TaskStore = NewPostgresTaskStore(unusedDB{}, slog.Default())
	})
}

func TestCreateRejectsInvalidTaskBeforeQuery(t *testing.T) {
	t.Parallel()

	// unusedDB panics on any query, so a returned validation error proves
	// the store never touched the database.
	s := NewPostgresTaskStore(unusedDB{}, slog.Default())

	err := s.Create(context.Background(), &domain.Task{Title: ""})
	assert.ErrorIs(t, err, domain.ErrTaskTitleEmpty)
}

func TestUpdateRejectsInvalidTaskBeforeQuery(t *testing.T) {
	t.Parallel()

	s := NewPostgresTaskStore(unusedDB{}, slog.Default())

	err := s.Update(context.Background(), &domain.Task{ID: 1, Title: ""})
	assert.ErrorIs(t, err, domain.ErrTaskTitleEmpty)
}
