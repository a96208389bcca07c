package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	// Health check endpoint (no versioning)
	s.router.Get("/health", s.healthCheck)

	// API v1 routes
	s.router.Route("/api/v1", func(r chi.Router) {
		// Card catalog routes
		r.Route("/cards", func(r chi.Router) {
			r.Get("/", s.searchHandler.SearchCards)
			r.Get("/cache/stats", s.searchHandler.GetCacheStats)
			r.Delete("/cache", s.searchHandler.ClearCache)
			r.Get("/{cardID}", s.searchHandler.GetCard)
		})

		// Binder routes
		r.Route("/binders", func(r chi.Router) {
			r.Get("/", s.binderHandler.ListBinders)
			r.Post("/", s.binderHandler.CreateBinder)
			r.Post("/import", s.binderHandler.ImportBinder)
			r.Get("/{binderID}", s.binderHandler.GetBinder)
			r.Put("/{binderID}", s.binderHandler.UpdateBinder)
			r.Delete("/{binderID}", s.binderHandler.DeleteBinder)
			r.Post("/{binderID}/place", s.binderHandler.PlaceCard)
			r.Post("/{binderID}/swap", s.binderHandler.SwapSlots)
			r.Post("/{binderID}/clear-page", s.binderHandler.ClearPage)
			r.Post("/{binderID}/clear", s.binderHandler.ClearAll)
			r.Post("/{binderID}/pages", s.binderHandler.AppendPage)
			r.Get("/{binderID}/export", s.binderHandler.ExportBinder)
			r.Get("/{binderID}/export/chart", s.binderHandler.ExportBinderChart)
		})

		// Template routes
		r.Route("/templates", func(r chi.Router) {
			r.Get("/", s.templateHandler.ListTemplates)
			r.Get("/{templateID}", s.templateHandler.GetTemplate)
		})

		// System routes
		r.Route("/system", func(r chi.Router) {
			r.Get("/status", s.systemHandler.GetStatus)
			r.Post("/backup", s.systemHandler.CreateBackup)
		})
	})
}
