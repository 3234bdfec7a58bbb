package calculator

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// SetupRouter mounts the calculator endpoints.
func (h *Handler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.requestLogger)

	r.Route("/api/calculator", func(r chi.Router) {
		r.Post("/validate", h.Validate)
		r.Post("/status", h.Status)
		r.Post("/project", h.Project)
		r.Get("/quote/{id}", h.Quote)
		r.Get("/healthz", h.Healthz)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	return r
}
