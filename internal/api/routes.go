package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter creates a new router with all routes configured
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware (all routes)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggingMiddleware)
	r.Use(RecoveryMiddleware)

	// Admin writes share one token bucket
	adminWrites := NewRateLimiter(h.limits.AdminRate, h.limits.AdminBurst)

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Get("/health", h.Health)
		r.Get("/commands", h.Commands)
		r.Post("/parse", h.Parse)
		r.Post("/normalize", h.Normalize)
		r.Get("/accent-map", h.AccentMap)

		// Admin routes (auth required)
		r.Route("/admin", func(r chi.Router) {
			r.Use(AuthMiddleware(h.apiKey))

			r.Get("/unknown-words", h.ListUnknownWords)
			r.Get("/suggestions", h.Suggestions)
			r.Get("/mappings", h.ListMappings)
			r.Get("/stats", h.Stats)

			r.Group(func(r chi.Router) {
				r.Use(adminWrites.Middleware)
				r.Put("/unknown-words/{id}/suggestion", h.SetSuggestion)
				r.Post("/unknown-words/{id}/promote", h.Promote)
				r.Post("/mappings", h.AddMapping)
				r.Post("/mappings/bulk", h.BulkMappings)
			})
		})
	})

	return r
}
