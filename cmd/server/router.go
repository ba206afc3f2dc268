package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/lessonkit/internal/api"
	apiMiddleware "github.com/phrazzld/lessonkit/internal/api/middleware"
)

// setupRouter creates the router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace(app.logger))

	handlers := api.Handlers{
		Todos:    api.NewTodoHandler(app.todoService, app.logger),
		Blog:     api.NewBlogHandler(app.blogService, app.logger),
		Ledger:   api.NewLedgerHandler(app.ledgerService, app.logger),
		Roster:   api.NewRosterHandler(app.rosterService, app.logger),
		Library:  api.NewLibraryHandler(app.libraryService, app.logger),
		Students: api.NewStudentHandler(app.studentService, app.logger),
		Compute:  api.NewComputeHandler(app.wordCount, app.logger),
	}
	r.Route("/api", func(r chi.Router) {
		api.RegisterRoutes(r, handlers)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
