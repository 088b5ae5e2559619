package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"taskweb/internal/web"
)

// setupRouter creates and configures the application router with all routes
// and middleware. It accepts the application dependencies to create handlers
// and register routes. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(web.TraceMiddleware) // Trace IDs for log correlation

	taskHandler := web.NewTaskHandler(app.taskStore, app.renderer, app.logger)

	// Register routes
	r.Get("/", taskHandler.List)
	r.Get("/create/", taskHandler.CreateForm)
	r.Post("/create/", taskHandler.Create)
	r.Get("/{pk}/", taskHandler.Detail)
	r.Get("/{pk}/update/", taskHandler.UpdateForm)
	r.Post("/{pk}/update/", taskHandler.Update)
	r.Post("/{pk}/delete/", taskHandler.Delete)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
