// Package api exposes the simulation engine over HTTP for interactive
// frontends. The engine itself stays synchronous; each request runs one
// full projection and returns the complete snapshot sequence.
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/simulate", h.Simulate)
		r.Get("/example", h.ExamplePlan)
		r.Get("/healthz", h.Health)
	})

	return r
}
