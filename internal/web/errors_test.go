package web

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"taskweb/internal/domain"
	"taskweb/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"task not found", store.ErrTaskNotFound, http.StatusNotFound},
		{"generic not found", store.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("load: %w", store.ErrTaskNotFound), http.StatusNotFound},
		{"invalid identifier", domain.ErrInvalidID, http.StatusNotFound},
		{"empty title", domain.ErrTaskTitleEmpty, http.StatusUnprocessableEntity},
		{"title too long", domain.ErrTaskTitleTooLong, http.StatusUnprocessableEntity},
		{"invalid entity", store.ErrInvalidEntity, http.StatusUnprocessableEntity},
		{"validation", domain.ErrValidation, http.StatusUnprocessableEntity},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Task not found", GetSafeErrorMessage(store.ErrTaskNotFound))
	assert.Equal(t, "Task not found", GetSafeErrorMessage(domain.ErrInvalidID))
	assert.Equal(t, "Invalid task data", GetSafeErrorMessage(domain.ErrTaskTitleEmpty))
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))

	// Internal details never surface
	internal := errors.New("pq: connection to server at \"10.0.0.3\" failed")
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(internal))
}
