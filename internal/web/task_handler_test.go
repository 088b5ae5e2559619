package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskweb/internal/domain"
	"taskweb/internal/mocks"
	"taskweb/internal/store"
)

// newTestServer wires a TaskHandler into the application's route table over
// an in-memory store.
func newTestServer(t *testing.T) (*mocks.MockTaskStore, http.Handler) {
	t.Helper()

	taskStore := mocks.NewMockTaskStore()
	handler := NewTaskHandler(taskStore, NewRenderer(), slog.Default())

	r := chi.NewRouter()
	r.Use(TraceMiddleware)
	r.Get("/", handler.List)
	r.Get("/create/", handler.CreateForm)
	r.Post("/create/", handler.Create)
	r.Get("/{pk}/", handler.Detail)
	r.Get("/{pk}/update/", handler.UpdateForm)
	r.Post("/{pk}/update/", handler.Update)
	r.Post("/{pk}/delete/", handler.Delete)

	return taskStore, r
}

// postForm performs a form POST against the handler and returns the recorder.
func postForm(handler http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func get(handler http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func mustCreateTask(t *testing.T, taskStore *mocks.MockTaskStore, title string) *domain.Task {
	t.Helper()

	task, err := domain.NewTask(title, "", false)
	require.NoError(t, err)
	require.NoError(t, taskStore.Create(context.Background(), task))
	return task
}

func TestCreateThenListIncludesTaskExactlyOnce(t *testing.T) {
	t.Parallel()

	taskStore, handler := newTestServer(t)

	rec := postForm(handler, "/create/", url.Values{
		"title":       {"Buy groceries"},
		"description": {"Milk, eggs, bread"},
	})

	require.Equal(t, http.StatusSeeOther, rec.Code, "successful create should redirect")
	assert.Equal(t, "/", rec.Header().Get("Location"), "create should redirect to the list view")
	assert.Equal(t, 1, taskStore.Len())

	listRec := get(handler, "/")
	require.Equal(t, http.StatusOK, listRec.Code)
	body := listRec.Body.String()
	assert.Equal(t, 1, strings.Count(body, "Buy groceries"),
		"created task should appear in the list exactly once")
}

func TestListShowsEmptyState(t *testing.T) {
	t.Parallel()

	_, handler := newTestServer(t)

	rec := get(handler, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No tasks yet")
}

func TestDetailRendersTask(t *testing.T) {
	t.Parallel()

	taskStore, handler := newTestServer(t)
	task, err := domain.NewTask("Read the manual", "See **chapter 3** for details", false)
	require.NoError(t, err)
	require.NoError(t, taskStore.Create(context.Background(), task))

	rec := get(handler, "/1/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Read the manual")
	assert.Contains(t, body, "<strong>chapter 3</strong>",
		"description should be rendered as markdown")
}

func TestDetailNonexistentYieldsNotFound(t *testing.T) {
	t.Parallel()

	_, handler := newTestServer(t)

	rec := get(handler, "/42/")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Task not found")
}

func TestDetailMalformedIdentifierYieldsNotFound(t *testing.T) {
	t.Parallel()

	taskStore, handler := newTestServer(t)
	mustCreateTask(t, taskStore, "existing")

	for _, pk := range []string{"abc", "0", "-1", "1.5"} {
		rec := get(handler, "/"+pk+"/")
		assert.Equal(t, http.StatusNotFound, rec.Code, "pk=%q should be not found", pk)
	}
}

func TestUpdateChangesOnlySubmittedFields(t *testing.T) {
	t.Parallel()

	taskStore, handler := newTestServer(t)
	task := mustCreateTask(t, taskStore, "Original title")
	createdAt := task.CreatedAt

	rec := postForm(handler, "/1/update/", url.Values{
		"title":       {"Updated title"},
		"description": {"now with details"},
		"done":        {"1"},
	})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	updated, err := taskStore.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Updated title", updated.Title)
	assert.Equal(t, "now with details", updated.Description)
	assert.True(t, updated.Done)
	assert.Equal(t, int64(1), updated.ID, "identifier should be retained")
	assert.Equal(t, createdAt, updated.CreatedAt, "creation time should be retained")
	assert.True(t, updated.UpdatedAt.After(createdAt) || updated.UpdatedAt.Equal(createdAt))
}

func TestUpdateFormPrefillsValues(t *testing.T) {
	t.Parallel()

	taskStore, handler := newTestServer(t)
	task, err := domain.NewTask("Prefilled title", "prefilled description", true)
	require.NoError(t, err)
	require.NoError(t, taskStore.Create(context.Background(), task))

	rec := get(handler, "/1/update/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `value="Prefilled title"`)
	assert.Contains(t, body, "prefilled description")
	assert.Contains(t, body, "checked")
}

func TestUpdateNonexistentYieldsNotFound(t *testing.T) {
	t.Parallel()

	_, handler := newTestServer(t)

	rec := postForm(handler, "/7/update/", url.Values{"title": {"whatever"}})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	formRec := get(handler, "/7/update/")
	assert.Equal(t, http.StatusNotFound, formRec.Code)
}

func TestUpdateNonexistentWithInvalidFormYieldsNotFound(t *testing.T) {
	t.Parallel()

	_, handler := newTestServer(t)

	// The unknown identifier wins over the invalid form
	rec := postForm(handler, "/12/update/", url.Values{"title": {""}})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateTaskDeletedMidRequestYieldsNotFound(t *testing.T) {
	t.Parallel()

	taskStore, handler := newTestServer(t)
	mustCreateTask(t, taskStore, "short-lived")

	// The task vanishes between the existence check and the atomic edit
	taskStore.EditFn = func(ctx context.Context, id int64, mutate func(*domain.Task) error) error {
		return store.ErrTaskNotFound
	}

	rec := postForm(handler, "/1/update/", url.Values{"title": {"too late"}})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteRemovesTask(t *testing.T) {
	t.Parallel()

	taskStore, handler := newTestServer(t)
	mustCreateTask(t, taskStore, "doomed")

	rec := postForm(handler, "/1/delete/", url.Values{})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	// Subsequent retrieve yields not found
	detailRec := get(handler, "/1/")
	assert.Equal(t, http.StatusNotFound, detailRec.Code)
	assert.Equal(t, 0, taskStore.Len())
}

func TestDeleteNonexistentYieldsNotFound(t *testing.T) {
	t.Parallel()

	_, handler := newTestServer(t)

	rec := postForm(handler, "/9/delete/", url.Values{})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInvalidCreatePersistsNothing(t *testing.T) {
	t.Parallel()

	taskStore, handler := newTestServer(t)

	rec := postForm(handler, "/create/", url.Values{
		"title":       {""},
		"description": {"a description without a title"},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Title is required")
	assert.Contains(t, rec.Body.String(), "a description without a title",
		"submitted values should be redisplayed in the form")
	assert.Equal(t, 0, taskStore.Len(), "nothing should be persisted on validation failure")
}

func TestWhitespaceOnlyTitleCreateRejected(t *testing.T) {
	t.Parallel()

	taskStore, handler := newTestServer(t)

	rec := postForm(handler, "/create/", url.Values{
		"title": {"   "},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Title is required")
	assert.Equal(t, 0, taskStore.Len(), "a whitespace-only title should persist nothing")
}

func TestInvalidUpdatePersistsNothing(t *testing.T) {
	t.Parallel()

	taskStore, handler := newTestServer(t)
	mustCreateTask(t, taskStore, "keep me")

	rec := postForm(handler, "/1/update/", url.Values{
		"title": {strings.Repeat("x", domain.MaxTitleLength+1)},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Title must be at most 200 characters")

	unchanged, err := taskStore.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "keep me", unchanged.Title, "failed update should not modify the task")
	assert.False(t, unchanged.Done)
}

func TestListReflectsPersistedSetAfterOperationSequence(t *testing.T) {
	t.Parallel()

	taskStore, handler := newTestServer(t)

	// Create three, update one, delete one
	for _, title := range []string{"first", "second", "third"} {
		rec := postForm(handler, "/create/", url.Values{"title": {title}})
		require.Equal(t, http.StatusSeeOther, rec.Code)
	}
	require.Equal(t, http.StatusSeeOther,
		postForm(handler, "/2/update/", url.Values{"title": {"second-renamed"}}).Code)
	require.Equal(t, http.StatusSeeOther,
		postForm(handler, "/1/delete/", url.Values{}).Code)

	rec := get(handler, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.NotContains(t, body, ">first<", "deleted task should be gone")
	assert.Equal(t, 1, strings.Count(body, "second-renamed"))
	assert.NotContains(t, body, ">second<", "renamed task should not appear under its old title")
	assert.Equal(t, 1, strings.Count(body, "third"))
	assert.Equal(t, 2, taskStore.Len())
}

func TestCreateFormRenders(t *testing.T) {
	t.Parallel()

	_, handler := newTestServer(t)

	rec := get(handler, "/create/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "New task")
	assert.Contains(t, body, `action="/create/"`)
}

func TestStoreFailureRendersServerError(t *testing.T) {
	t.Parallel()

	taskStore, handler := newTestServer(t)
	taskStore.ListFn = func(ctx context.Context) ([]*domain.Task, error) {
		return nil, errors.New("connection refused")
	}

	rec := get(handler, "/")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused",
		"internal error details must not leak to the client")
}

func TestNewTaskHandlerPanicsOnNilDependencies(t *testing.T) {
	t.Parallel()

	taskStore := mocks.NewMockTaskStore()
	renderer := NewRenderer()

	assert.Panics(t, func() { NewTaskHandler(nil, renderer, slog.Default()) })
	assert.Panics(t, func() { NewTaskHandler(taskStore, nil, slog.Default()) })
	assert.Panics(t, func() { NewTaskHandler(taskStore, renderer, nil) })
}
