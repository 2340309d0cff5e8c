package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"soulboard/internal/chain"
	"soulboard/internal/interfaces"
)

// SyncHandler reconciles the database with on-chain state. The chain is the
// source of truth for which locations a campaign holds.
type SyncHandler struct {
	campaigns interfaces.CampaignRepository
	chain     chain.Client
}

func NewSyncHandler(campaigns interfaces.CampaignRepository, chainClient chain.Client) *SyncHandler {
	return &SyncHandler{
		campaigns: campaigns,
		chain:     chainClient,
	}
}

type SyncChainResponse struct {
	Synced  int      `json:"synced"`
	Unknown int      `json:"unknown"`
	Errors  []string `json:"errors"`
}

// @Tags Sync
// @Summary Sync campaign booked locations from the chain gateway
// @Security BearerAuth
// @Produce json
// @Success 200 {object} SyncChainResponse
// @Failure 502 {object} map[string]interface{}
// @Router /api/v1/sync/chain [post]
func (h *SyncHandler) SyncChain(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resp := SyncChainResponse{Errors: []string{}}

	campaigns, err := h.chain.GetCampaigns(ctx)
	if err != nil {
		writeChainError(w, err)
		return
	}

	for _, c := range campaigns {
		err := h.campaigns.UpdateBookedLocations(ctx, c.ID, c.BookedLocations)
		if err != nil {
			if err == sql.ErrNoRows {
				// On-chain campaign this service has no record of. Counted,
				// not treated as a failure.
				resp.Unknown++
				continue
			}
			resp.Errors = append(resp.Errors, "update campaign "+c.Name+": "+err.Error())
			continue
		}
		resp.Synced++
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}
