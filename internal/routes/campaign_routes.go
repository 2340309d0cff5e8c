// internal/routes/campaign_routes.go
package routes

import (
	"database/sql"

	"github.com/go-chi/chi/v5"

	"soulboard/internal/handlers"
	"soulboard/internal/repository"
)

func RegisterCampaignRoutes(router chi.Router, db *sql.DB) {
	campaignRepo := repository.NewCampaignRepository(db)
	campaignHandler := handlers.NewCampaignHandler(campaignRepo)

	router.Route("/campaigns", func(r chi.Router) {
		r.Get("/", campaignHandler.ListCampaigns)
		r.Get("/summary", campaignHandler.GetSummary)
		r.Get("/advertiser/{advertiserID}", campaignHandler.ListByAdvertiser)
		r.Get("/{id}", campaignHandler.GetCampaign)
	})
}
