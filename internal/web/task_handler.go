package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"taskweb/internal/domain"
	"taskweb/internal/platform/logger"
	"taskweb/internal/store"
)

// TaskHandler handles the server-rendered task pages.
type TaskHandler struct {
	taskStore store.TaskStore
	renderer  *Renderer
	logger    *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskStore store.TaskStore, renderer *Renderer, logger *slog.Logger) *TaskHandler {
	if taskStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("taskStore cannot be nil for TaskHandler")
	}
	if renderer == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("renderer cannot be nil for TaskHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}

	return &TaskHandler{
		taskStore: taskStore,
		renderer:  renderer,
		logger:    logger.With(slog.String("component", "task_handler")),
	}
}

// getPathID extracts the task identifier from the {pk} URL parameter.
// The identifier must be a positive base-10 integer; anything else maps to
// domain.ErrInvalidID, which renders as a not-found page.
func getPathID(r *http.Request) (int64, error) {
	pathID := chi.URLParam(r, "pk")
	if pathID == "" {
		return 0, fmt.Errorf("%w: missing identifier", domain.ErrInvalidID)
	}

	id, err := strconv.ParseInt(pathID, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidID, pathID)
	}

	return id, nil
}

// List handles GET / requests.
// It renders all tasks, newest first.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	tasks, err := h.taskStore.List(r.Context())
	if err != nil {
		log.Error("failed to list tasks", slog.String("error", err.Error()))
		h.renderError(w, r, err)
		return
	}

	log.Debug("rendering task list", slog.Int("count", len(tasks)))
	h.renderer.TaskList(w, tasks)
}

// Detail handles GET /{pk}/ requests.
// It renders a single task page, or a not-found page if the identifier
// does not match a task.
func (h *TaskHandler) Detail(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathID(r)
	if err != nil {
		log.Warn("invalid task identifier", slog.String("pk", chi.URLParam(r, "pk")))
		h.renderError(w, r, err)
		return
	}

	task, err := h.taskStore.GetByID(r.Context(), id)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("task not found", slog.Int64("task_id", id))
		} else {
			log.Error("failed to get task",
				slog.String("error", err.Error()),
				slog.Int64("task_id", id))
		}
		h.renderError(w, r, err)
		return
	}

	h.renderer.TaskDetail(w, task)
}

// CreateForm handles GET /create/ requests.
// It renders an empty task form.
func (h *TaskHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.TaskForm(w, http.StatusOK, "New task", "/create/", TaskForm{}, nil)
}

// Create handles POST /create/ requests.
// On success it persists a new task and redirects to the list view; on
// validation failure it redisplays the form with field errors and persists
// nothing.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	form, err := ParseTaskForm(r)
	if err != nil {
		log.Warn("failed to parse create form", slog.String("error", err.Error()))
		h.renderer.ErrorPage(w, http.StatusBadRequest, "The submitted form could not be read.")
		return
	}

	if fieldErrors := ValidateTaskForm(form); fieldErrors != nil {
		log.Debug("create form validation failed",
			slog.Int("error_count", len(fieldErrors)))
		h.renderer.TaskForm(w, http.StatusUnprocessableEntity, "New task", "/create/", form, fieldErrors)
		return
	}

	task, err := domain.NewTask(form.Title, form.Description, form.Done)
	if err != nil {
		// Form validation mirrors domain validation, so this is unexpected
		log.Warn("task construction failed after form validation",
			slog.String("error", err.Error()))
		h.renderer.TaskForm(w, http.StatusUnprocessableEntity, "New task", "/create/", form,
			FieldErrors{"form": GetSafeErrorMessage(err)})
		return
	}

	if err := h.taskStore.Create(r.Context(), task); err != nil {
		log.Error("failed to create task", slog.String("error", err.Error()))
		h.renderError(w, r, err)
		return
	}

	log.Info("task created", slog.Int64("task_id", task.ID))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// UpdateForm handles GET /{pk}/update/ requests.
// It renders the task form prefilled with the existing task's values.
func (h *TaskHandler) UpdateForm(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathID(r)
	if err != nil {
		log.Warn("invalid task identifier", slog.String("pk", chi.URLParam(r, "pk")))
		h.renderError(w, r, err)
		return
	}

	task, err := h.taskStore.GetByID(r.Context(), id)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	form := TaskForm{
		Title:       task.Title,
		Description: task.Description,
		Done:        task.Done,
	}
	h.renderer.TaskForm(w, http.StatusOK, "Edit task", fmt.Sprintf("/%d/update/", id), form, nil)
}

// Update handles POST /{pk}/update/ requests.
// It loads the existing task, merges the submitted fields, validates, and
// persists — the load-merge-persist cycle runs atomically through the store's
// Edit operation. Unsubmitted fields (identifier, creation time) retain their
// prior values. Redirects to the list view on success.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathID(r)
	if err != nil {
		log.Warn("invalid task identifier", slog.String("pk", chi.URLParam(r, "pk")))
		h.renderError(w, r, err)
		return
	}

	// An unknown identifier answers not-found regardless of the submitted
	// form contents, so check existence before looking at the form.
	if _, err := h.taskStore.GetByID(r.Context(), id); err != nil {
		h.renderError(w, r, err)
		return
	}

	form, err := ParseTaskForm(r)
	if err != nil {
		log.Warn("failed to parse update form",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		h.renderer.ErrorPage(w, http.StatusBadRequest, "The submitted form could not be read.")
		return
	}

	action := fmt.Sprintf("/%d/update/", id)

	if fieldErrors := ValidateTaskForm(form); fieldErrors != nil {
		log.Debug("update form validation failed",
			slog.Int64("task_id", id),
			slog.Int("error_count", len(fieldErrors)))
		h.renderer.TaskForm(w, http.StatusUnprocessableEntity, "Edit task", action, form, fieldErrors)
		return
	}

	err = h.taskStore.Edit(r.Context(), id, func(task *domain.Task) error {
		return task.Apply(form.Title, form.Description, form.Done)
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) ||
			errors.Is(err, domain.ErrTaskTitleEmpty) ||
			errors.Is(err, domain.ErrTaskTitleTooLong) {
			// Form validation mirrors domain validation, so this is unexpected
			log.Warn("task update failed after form validation",
				slog.String("error", err.Error()),
				slog.Int64("task_id", id))
			h.renderer.TaskForm(w, http.StatusUnprocessableEntity, "Edit task", action, form,
				FieldErrors{"form": GetSafeErrorMessage(err)})
			return
		}
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		h.renderError(w, r, err)
		return
	}

	log.Info("task updated", slog.Int64("task_id", id))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Delete handles POST /{pk}/delete/ requests.
// It removes the task unconditionally and redirects to the list view, or
// renders a not-found page if the identifier does not match a task.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathID(r)
	if err != nil {
		log.Warn("invalid task identifier", slog.String("pk", chi.URLParam(r, "pk")))
		h.renderError(w, r, err)
		return
	}

	if err := h.taskStore.Delete(r.Context(), id); err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("task not found for delete", slog.Int64("task_id", id))
		} else {
			log.Error("failed to delete task",
				slog.String("error", err.Error()),
				slog.Int64("task_id", id))
		}
		h.renderError(w, r, err)
		return
	}

	log.Info("task deleted", slog.Int64("task_id", id))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// renderError maps an internal error to a status code and renders the
// corresponding error page. The full error is logged by the caller; only the
// sanitized message reaches the client.
func (h *TaskHandler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)

	// 5xx details stay in the logs; correlate via trace ID
	if status >= http.StatusInternalServerError {
		log := logger.FromContextOrDefault(r.Context(), h.logger)
		log.Error("server error response",
			slog.String("error", err.Error()),
			slog.String("error_type", fmt.Sprintf("%T", err)),
			slog.String("path", r.URL.Path),
			slog.String("trace_id", GetTraceID(r.Context())))
	}

	h.renderer.ErrorPage(w, status, message)
}
