package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"soulboard/internal/chain"
	"soulboard/internal/interfaces"
	"soulboard/internal/models"
	"soulboard/internal/slots"
)

type LocationHandler struct {
	repo      interfaces.LocationRepository
	providers interfaces.ProviderRepository
	chain     chain.Client
	validator *validator.Validate
}

func NewLocationHandler(repo interfaces.LocationRepository, providers interfaces.ProviderRepository, chainClient chain.Client) *LocationHandler {
	return &LocationHandler{
		repo:      repo,
		providers: providers,
		chain:     chainClient,
		validator: validator.New(),
	}
}

// writeChainError maps gateway failures onto HTTP statuses. Wrong-network
// gets a 409 with a hint so the client can switch; everything else from the
// gateway is a 502.
func writeChainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, chain.ErrWrongNetwork):
		writeJSONErrorResponse(w, http.StatusConflict, "network_mismatch", "Connected to the wrong Solana network; switch networks and retry")
	case errors.Is(err, chain.ErrTransactionFailed):
		writeJSONErrorResponse(w, http.StatusBadGateway, "transaction_failed", err.Error())
	default:
		writeJSONErrorResponse(w, http.StatusBadGateway, "chain_unavailable", "Chain gateway request failed")
	}
}

// RegisterLocation handles POST /api/v1/locations
// @Tags Locations
// @Summary Register a display location
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.RegisterLocationRequest true "Location registration"
// @Success 201 {object} models.Location
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/locations [post]
func (h *LocationHandler) RegisterLocation(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	for _, spec := range req.TimeSlots {
		if err := spec.Validate(); err != nil {
			writeJSONErrorResponse(w, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
	}

	provider, err := h.providers.GetByID(r.Context(), req.OwnerID)
	if err != nil {
		if err == sql.ErrNoRows {
			writeJSONErrorResponse(w, http.StatusBadRequest, "validation_error", "owner_id not found")
			return
		}
		writeJSONErrorResponse(w, http.StatusInternalServerError, "server_error", "Failed to resolve provider")
		return
	}

	expanded, err := slots.ExpandAll(req.TimeSlots, time.Now().UTC())
	if err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	deviceID, signature, err := h.chain.RegisterBooth(r.Context(), chain.BoothMetadata{
		Name:        req.Name,
		Address:     req.Address,
		DisplayType: req.DisplayType,
		DisplaySize: req.DisplaySize,
	}, provider.WalletAddress)
	if err != nil {
		log.Printf("Error registering booth on chain: %v", err)
		writeChainError(w, err)
		return
	}

	location := &models.Location{
		DeviceID:       deviceID,
		Name:           req.Name,
		Address:        req.Address,
		City:           req.City,
		State:          req.State,
		ZipCode:        req.ZipCode,
		DisplayType:    req.DisplayType,
		DisplaySize:    req.DisplaySize,
		Description:    req.Description,
		AvailableSlots: expanded,
		Images:         req.Images,
		Active:         true,
		PricePerDay:    req.PricePerDay,
		FootTraffic:    req.FootTraffic,
		Impressions:    req.Impressions,
		OwnerID:        req.OwnerID,
		TxSignature:    signature,
	}

	if err := h.repo.Create(r.Context(), location); err != nil {
		writeJSONErrorResponse(w, http.StatusInternalServerError, "create_location_failed", "Failed to create location: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(location)
}

func (h *LocationHandler) GetLocation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "Location ID is required", http.StatusBadRequest)
		return
	}

	location, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if err == sql.ErrNoRows {
			writeJSONErrorResponse(w, http.StatusNotFound, "not_found", "location not found")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(location)
}

func (h *LocationHandler) ListLocations(w http.ResponseWriter, r *http.Request) {
	filter := interfaces.LocationFilter{
		OwnerID:    r.URL.Query().Get("owner_id"),
		City:       r.URL.Query().Get("city"),
		ActiveOnly: r.URL.Query().Get("active") == "true",
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

	locations, err := h.repo.List(r.Context(), filter)
	if err != nil {
		http.Error(w, "Failed to list locations: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if locations == nil {
		locations = []*models.Location{} // Return empty array instead of null
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(locations)
}

func (h *LocationHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "Location ID is required", http.StatusBadRequest)
		return
	}

	var req models.UpdateLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	if err := h.repo.Update(r.Context(), id, &req); err != nil {
		if err == sql.ErrNoRows {
			writeJSONErrorResponse(w, http.StatusNotFound, "not_found", "location not found")
			return
		}
		writeJSONErrorResponse(w, http.StatusInternalServerError, "update_location_failed", "Failed to update location: "+err.Error())
		return
	}

	location, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(location)
}

func (h *LocationHandler) ActivateLocation(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, true)
}

func (h *LocationHandler) DeactivateLocation(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, false)
}

func (h *LocationHandler) setActive(w http.ResponseWriter, r *http.Request, active bool) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "Location ID is required", http.StatusBadRequest)
		return
	}

	if err := h.repo.SetActive(r.Context(), id, active); err != nil {
		if err == sql.ErrNoRows {
			writeJSONErrorResponse(w, http.StatusNotFound, "not_found", "location not found")
			return
		}
		writeJSONErrorResponse(w, http.StatusInternalServerError, "update_location_failed", "Failed to update location")
		return
	}

	state := "deactivated"
	if active {
		state = "activated"
	}
	writeJSONMessage(w, http.StatusOK, "location "+state)
}

// DeleteLocation always refuses. Registered booths stay on-chain, so the
// database record stays too; deactivation is the supported way to pull a
// location off the marketplace.
func (h *LocationHandler) DeleteLocation(w http.ResponseWriter, r *http.Request) {
	writeJSONErrorResponse(w, http.StatusMethodNotAllowed, "deletion_unsupported", "Locations cannot be deleted; deactivate instead")
}
