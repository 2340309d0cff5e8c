package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"soulboard/internal/chain"
	"soulboard/internal/draft"
	"soulboard/internal/interfaces"
	"soulboard/internal/models"
)

// DraftHandler drives the four-step campaign draft flow. Drafts live in
// memory until submission; a submitted draft becomes a persisted campaign and
// a failed submission leaves the draft exactly as it was.
type DraftHandler struct {
	store     *draft.Store
	locations interfaces.LocationRepository
	campaigns interfaces.CampaignRepository
	chain     chain.Client
	validator *validator.Validate
}

func NewDraftHandler(store *draft.Store, locations interfaces.LocationRepository, campaigns interfaces.CampaignRepository, chainClient chain.Client) *DraftHandler {
	return &DraftHandler{
		store:     store,
		locations: locations,
		campaigns: campaigns,
		chain:     chainClient,
		validator: validator.New(),
	}
}

type draftDetailsRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
}

type draftBudgetRequest struct {
	BudgetLamports int64 `json:"budget_lamports"`
}

type draftLocationsRequest struct {
	LocationIDs []string `json:"location_ids" validate:"required,min=1,dive,uuid4"`
}

type draftCreativeRequest struct {
	CreativeURL string `json:"creative_url"`
}

func writeStepError(w http.ResponseWriter, err error) {
	var verr *draft.ValidationError
	switch {
	case errors.As(err, &verr):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error":   "validation_error",
			"step":    verr.Step.String(),
			"message": verr.Message,
		})
	case errors.Is(err, draft.ErrAlreadySubmitted):
		writeJSONErrorResponse(w, http.StatusConflict, "already_submitted", "Draft has already been submitted")
	default:
		writeJSONErrorResponse(w, http.StatusInternalServerError, "draft_failed", err.Error())
	}
}

// draftForRequest resolves the draft and enforces that it belongs to the
// authenticated user. Foreign drafts 404 rather than 403 so their IDs are not
// confirmed to other users.
func (h *DraftHandler) draftForRequest(w http.ResponseWriter, r *http.Request) (*draft.Builder, bool) {
	userID := userIDFromContext(r)
	if userID == "" {
		writeJSONErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Missing user identity")
		return nil, false
	}

	id := chi.URLParam(r, "id")
	b, err := h.store.Get(id)
	if err != nil || b.OwnerID != userID {
		writeJSONErrorResponse(w, http.StatusNotFound, "not_found", "draft not found")
		return nil, false
	}
	return b, true
}

// CreateDraft handles POST /api/v1/drafts
func (h *DraftHandler) CreateDraft(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r)
	if userID == "" {
		writeJSONErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Missing user identity")
		return
	}

	b := h.store.Create(userID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(b.Snapshot())
}

// GetDraft handles GET /api/v1/drafts/{id}
func (h *DraftHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	b, ok := h.draftForRequest(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(b.Snapshot())
}

// SetDetails handles PUT /api/v1/drafts/{id}/details
//
// Setting a step's fields and advancing are one operation: the step gate only
// lets the draft move forward once the fields validate.
func (h *DraftHandler) SetDetails(w http.ResponseWriter, r *http.Request) {
	b, ok := h.draftForRequest(w, r)
	if !ok {
		return
	}

	var req draftDetailsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	if err := b.SetDetails(req.Name, req.Description, req.StartDate, req.EndDate); err != nil {
		writeStepError(w, err)
		return
	}
	if err := b.Advance(); err != nil {
		writeStepError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(b.Snapshot())
}

// SetBudget handles PUT /api/v1/drafts/{id}/budget
func (h *DraftHandler) SetBudget(w http.ResponseWriter, r *http.Request) {
	b, ok := h.draftForRequest(w, r)
	if !ok {
		return
	}

	var req draftBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	if err := b.SetBudget(req.BudgetLamports); err != nil {
		writeStepError(w, err)
		return
	}
	if err := b.Advance(); err != nil {
		writeStepError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(b.Snapshot())
}

// SetLocations handles PUT /api/v1/drafts/{id}/locations
func (h *DraftHandler) SetLocations(w http.ResponseWriter, r *http.Request) {
	b, ok := h.draftForRequest(w, r)
	if !ok {
		return
	}

	var req draftLocationsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	locations := make([]*models.Location, 0, len(req.LocationIDs))
	for _, id := range req.LocationIDs {
		loc, err := h.locations.GetByID(r.Context(), id)
		if err != nil {
			if err == sql.ErrNoRows {
				writeJSONErrorResponse(w, http.StatusBadRequest, "validation_error", "location "+id+" not found")
				return
			}
			writeJSONErrorResponse(w, http.StatusInternalServerError, "server_error", "Failed to load locations")
			return
		}
		locations = append(locations, loc)
	}

	if err := b.SetTargetLocations(locations); err != nil {
		writeStepError(w, err)
		return
	}
	if err := b.Advance(); err != nil {
		writeStepError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(b.Snapshot())
}

// SetCreative handles PUT /api/v1/drafts/{id}/creative
func (h *DraftHandler) SetCreative(w http.ResponseWriter, r *http.Request) {
	b, ok := h.draftForRequest(w, r)
	if !ok {
		return
	}

	var req draftCreativeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	if err := b.SetCreativeURL(req.CreativeURL); err != nil {
		writeStepError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(b.Snapshot())
}

// Back handles POST /api/v1/drafts/{id}/back. Going backward never validates
// and never discards what was entered.
func (h *DraftHandler) Back(w http.ResponseWriter, r *http.Request) {
	b, ok := h.draftForRequest(w, r)
	if !ok {
		return
	}

	b.Back()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(b.Snapshot())
}

// Submit handles POST /api/v1/drafts/{id}/submit
//
// Order matters here: the chain call goes first, and the draft is only
// completed after both the chain and the database confirm. Any failure leaves
// the draft intact for a retry.
func (h *DraftHandler) Submit(w http.ResponseWriter, r *http.Request) {
	b, ok := h.draftForRequest(w, r)
	if !ok {
		return
	}

	meta, locationIDs, err := b.BuildPayload()
	if err != nil {
		writeStepError(w, err)
		return
	}

	chainID, signature, err := h.chain.CreateCampaign(r.Context(), meta, locationIDs)
	if err != nil {
		log.Printf("Error creating campaign on chain for draft %s: %v", b.ID, err)
		writeChainError(w, err)
		return
	}

	snap := b.Snapshot()
	campaign := &models.Campaign{
		ChainID:         chainID,
		Name:            meta.Name,
		Description:     meta.Description,
		ContentURI:      meta.ContentURI,
		Status:          models.CampaignStatusActive,
		StartDate:       *snap.StartDate,
		EndDate:         *snap.EndDate,
		DurationDays:    meta.DurationDays,
		BudgetLamports:  meta.Budget,
		BookedLocations: locationIDs,
		AdvertiserID:    b.OwnerID,
		TxSignature:     signature,
	}

	if err := h.campaigns.Create(r.Context(), campaign); err != nil {
		log.Printf("Error persisting campaign for draft %s: %v", b.ID, err)
		writeJSONErrorResponse(w, http.StatusInternalServerError, "create_campaign_failed", "Campaign submitted on-chain but could not be recorded; retry will reconcile")
		return
	}

	h.store.Complete(b.ID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(campaign)
}

// Cancel handles DELETE /api/v1/drafts/{id}
func (h *DraftHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	b, ok := h.draftForRequest(w, r)
	if !ok {
		return
	}

	h.store.Cancel(b.ID)
	writeJSONMessage(w, http.StatusOK, "draft cancelled")
}
