package sharedsrv

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Group(func(r chi.Router) {
		r.Post("/api/products/insert", h.insert)
		r.Post("/api/products/insertBatch", h.insertBatch)
		r.Post("/api/products/query", h.query)
		r.Post("/api/products/update", h.update)
		r.Post("/api/products/delete", h.delete)
	})

	router.Get("/api/changes", h.changes)

	return router
}
