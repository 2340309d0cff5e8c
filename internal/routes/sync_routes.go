package routes

import (
	"database/sql"

	"github.com/go-chi/chi/v5"

	"soulboard/internal/chain"
	"soulboard/internal/handlers"
	"soulboard/internal/repository"
)

func RegisterSyncRoutes(r chi.Router, db *sql.DB, chainClient chain.Client) {
	campaignRepo := repository.NewCampaignRepository(db)
	syncHandler := handlers.NewSyncHandler(campaignRepo, chainClient)

	r.Post("/sync/chain", syncHandler.SyncChain)
}
