package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"soulboard/internal/booking"
	"soulboard/internal/chain"
	"soulboard/internal/interfaces"
	"soulboard/internal/middleware"
	"soulboard/internal/models"
)

// BookingHandler exposes the personal booking ledger. Bookings are scoped to
// the authenticated user; committing one to a campaign goes through the chain
// gateway.
type BookingHandler struct {
	ledger    *booking.Ledger
	locations interfaces.LocationRepository
	chain     chain.Client
	validator *validator.Validate
}

func NewBookingHandler(ledger *booking.Ledger, locations interfaces.LocationRepository, chainClient chain.Client) *BookingHandler {
	return &BookingHandler{
		ledger:    ledger,
		locations: locations,
		chain:     chainClient,
		validator: validator.New(),
	}
}

func userIDFromContext(r *http.Request) string {
	id, _ := r.Context().Value(middleware.CtxUserID).(string)
	return id
}

type createBookingRequest struct {
	LocationID string `json:"location_id" validate:"required,uuid4"`
}

type attachBookingRequest struct {
	CampaignID int64 `json:"campaign_id" validate:"required,gt=0"`
}

// ListBookings handles GET /api/v1/bookings
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r)
	if userID == "" {
		writeJSONErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Missing user identity")
		return
	}

	locations := h.ledger.List(userID)
	if locations == nil {
		locations = []*models.Location{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(locations)
}

// CreateBooking handles POST /api/v1/bookings
//
// The location must not already belong to an on-chain campaign; booking the
// same location twice is a no-op rather than an error.
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r)
	if userID == "" {
		writeJSONErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Missing user identity")
		return
	}

	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	location, err := h.locations.GetByID(r.Context(), req.LocationID)
	if err != nil {
		if err == sql.ErrNoRows {
			writeJSONErrorResponse(w, http.StatusNotFound, "not_found", "location not found")
			return
		}
		writeJSONErrorResponse(w, http.StatusInternalServerError, "server_error", "Failed to load location")
		return
	}
	if !location.Active {
		writeJSONErrorResponse(w, http.StatusConflict, "location_inactive", "Location is not available for booking")
		return
	}

	campaigns, err := h.chain.GetCampaigns(r.Context())
	if err != nil {
		log.Printf("Error fetching campaign snapshot: %v", err)
		writeChainError(w, err)
		return
	}

	result, err := h.ledger.Book(userID, location, campaigns)
	if err != nil {
		var conflict *booking.ConflictError
		if errors.As(err, &conflict) {
			writeJSONErrorResponse(w, http.StatusConflict, "already_committed", conflict.Error())
			return
		}
		writeJSONErrorResponse(w, http.StatusInternalServerError, "booking_failed", "Failed to book location")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if result == booking.AlreadyBooked {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusCreated)
	}
	_ = json.NewEncoder(w).Encode(location)
}

// RemoveBooking handles DELETE /api/v1/bookings/{locationID}
func (h *BookingHandler) RemoveBooking(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r)
	if userID == "" {
		writeJSONErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Missing user identity")
		return
	}

	locationID, err := strconv.ParseInt(chi.URLParam(r, "locationID"), 10, 64)
	if err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_request", "locationID must be a device ID")
		return
	}

	// Removing an absent booking succeeds; the end state is identical.
	h.ledger.Remove(userID, locationID)
	writeJSONMessage(w, http.StatusOK, "booking removed")
}

// AttachBooking handles POST /api/v1/bookings/{locationID}/attach
//
// On gateway failure the personal booking is preserved so the user can retry.
func (h *BookingHandler) AttachBooking(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r)
	if userID == "" {
		writeJSONErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Missing user identity")
		return
	}

	locationID, err := strconv.ParseInt(chi.URLParam(r, "locationID"), 10, 64)
	if err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_request", "locationID must be a device ID")
		return
	}

	var req attachBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	if !h.ledger.IsBooked(userID, locationID) {
		writeJSONErrorResponse(w, http.StatusNotFound, "not_found", "location is not in your bookings")
		return
	}

	signature, err := h.ledger.AttachToCampaign(r.Context(), userID, locationID, req.CampaignID)
	if err != nil {
		log.Printf("Error attaching location %d to campaign %d: %v", locationID, req.CampaignID, err)
		writeChainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"tx_signature": signature,
		"location_id":  locationID,
		"campaign_id":  req.CampaignID,
	})
}
