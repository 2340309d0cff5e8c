package routes

import (
	"database/sql"

	"github.com/go-chi/chi/v5"

	"soulboard/internal/chain"
	"soulboard/internal/handlers"
	"soulboard/internal/repository"
)

func RegisterLocationRoutes(router chi.Router, db *sql.DB, chainClient chain.Client) {
	locationRepo := repository.NewLocationRepository(db)
	providerRepo := repository.NewProviderRepository(db)
	locationHandler := handlers.NewLocationHandler(locationRepo, providerRepo, chainClient)

	router.Route("/locations", func(r chi.Router) {
		r.Get("/", locationHandler.ListLocations)
		r.Post("/", locationHandler.RegisterLocation)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", locationHandler.GetLocation)
			r.Put("/", locationHandler.UpdateLocation)
			r.Patch("/activate", locationHandler.ActivateLocation)
			r.Patch("/deactivate", locationHandler.DeactivateLocation)
			r.Delete("/", locationHandler.DeleteLocation)
		})
	})
}
