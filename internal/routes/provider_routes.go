package routes

import (
	"database/sql"

	"github.com/go-chi/chi/v5"

	"soulboard/internal/handlers"
	"soulboard/internal/repository"
)

func RegisterProviderRoutes(router chi.Router, db *sql.DB) {
	providerRepo := repository.NewProviderRepository(db)
	providerHandler := handlers.NewProviderHandler(providerRepo)

	router.Route("/providers", func(r chi.Router) {
		r.Get("/", providerHandler.ListProviders)
		r.Post("/", providerHandler.CreateProvider)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", providerHandler.GetProvider)
			r.Put("/", providerHandler.UpdateProvider)
		})
	})
}
