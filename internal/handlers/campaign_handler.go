// internal/handlers/campaign_handler.go
package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"soulboard/internal/interfaces"
	"soulboard/internal/models"
)

// CampaignHandler serves the read side of campaigns. Campaigns are created
// through draft submission, never directly.
type CampaignHandler struct {
	repo interfaces.CampaignRepository
}

func NewCampaignHandler(repo interfaces.CampaignRepository) *CampaignHandler {
	return &CampaignHandler{repo: repo}
}

func campaignFilterFromQuery(r *http.Request) interfaces.CampaignFilter {
	filter := interfaces.CampaignFilter{
		Status: r.URL.Query().Get("status"),
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			filter.Limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			filter.Offset = n
		}
	}
	return filter
}

// ListCampaigns handles GET /api/v1/campaigns
func (h *CampaignHandler) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.repo.List(r.Context(), campaignFilterFromQuery(r))
	if err != nil {
		writeJSONErrorResponse(w, http.StatusInternalServerError, "list_campaigns_failed", "Failed to list campaigns")
		return
	}

	if campaigns == nil {
		campaigns = []*models.Campaign{} // Return empty array instead of null
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(campaigns)
}

// GetCampaign handles GET /api/v1/campaigns/{id}
func (h *CampaignHandler) GetCampaign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "Campaign ID is required", http.StatusBadRequest)
		return
	}

	campaign, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if err == sql.ErrNoRows {
			writeJSONErrorResponse(w, http.StatusNotFound, "not_found", "campaign not found")
			return
		}
		writeJSONErrorResponse(w, http.StatusInternalServerError, "get_campaign_failed", "Failed to get campaign")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(campaign)
}

// ListByAdvertiser handles GET /api/v1/campaigns/advertiser/{advertiserID}
func (h *CampaignHandler) ListByAdvertiser(w http.ResponseWriter, r *http.Request) {
	advertiserID := chi.URLParam(r, "advertiserID")
	if advertiserID == "" {
		http.Error(w, "Advertiser ID is required", http.StatusBadRequest)
		return
	}

	filter := campaignFilterFromQuery(r)
	filter.AdvertiserID = advertiserID

	campaigns, err := h.repo.List(r.Context(), filter)
	if err != nil {
		writeJSONErrorResponse(w, http.StatusInternalServerError, "list_campaigns_failed", "Failed to list campaigns")
		return
	}

	if campaigns == nil {
		campaigns = []*models.Campaign{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(campaigns)
}

// GetSummary handles GET /api/v1/campaigns/summary
func (h *CampaignHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	filter := interfaces.CampaignFilter{
		AdvertiserID: r.URL.Query().Get("advertiser_id"),
	}

	summary, err := h.repo.Summary(r.Context(), filter)
	if err != nil {
		writeJSONErrorResponse(w, http.StatusInternalServerError, "summary_failed", "Failed to compute campaign summary")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}
