package routes

import (
	"database/sql"

	"github.com/go-chi/chi/v5"

	"soulboard/internal/handlers"
	"soulboard/internal/repository"
)

func RegisterAdvertiserRoutes(router chi.Router, db *sql.DB) {
	advertiserRepo := repository.NewAdvertiserRepository(db)
	advertiserHandler := handlers.NewAdvertiserHandler(advertiserRepo)

	router.Route("/advertisers", func(r chi.Router) {
		r.Get("/", advertiserHandler.ListAdvertisers)
		r.Post("/", advertiserHandler.CreateAdvertiser)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", advertiserHandler.GetAdvertiser)
			r.Put("/", advertiserHandler.UpdateAdvertiser)
			r.Delete("/", advertiserHandler.DeleteAdvertiser)
		})
	})
}
