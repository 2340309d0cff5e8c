package routes

import (
	"database/sql"

	"github.com/go-chi/chi/v5"

	"soulboard/internal/chain"
	"soulboard/internal/draft"
	"soulboard/internal/handlers"
	"soulboard/internal/repository"
)

func RegisterDraftRoutes(router chi.Router, db *sql.DB, store *draft.Store, chainClient chain.Client) {
	locationRepo := repository.NewLocationRepository(db)
	campaignRepo := repository.NewCampaignRepository(db)
	draftHandler := handlers.NewDraftHandler(store, locationRepo, campaignRepo, chainClient)

	router.Route("/drafts", func(r chi.Router) {
		r.Post("/", draftHandler.CreateDraft)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", draftHandler.GetDraft)
			r.Put("/details", draftHandler.SetDetails)
			r.Put("/budget", draftHandler.SetBudget)
			r.Put("/locations", draftHandler.SetLocations)
			r.Put("/creative", draftHandler.SetCreative)
			r.Post("/back", draftHandler.Back)
			r.Post("/submit", draftHandler.Submit)
			r.Delete("/", draftHandler.Cancel)
		})
	})
}
