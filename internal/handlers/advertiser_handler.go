package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"soulboard/internal/interfaces"
	"soulboard/internal/models"
)

type AdvertiserHandler struct {
	repo      interfaces.AdvertiserRepository
	validator *validator.Validate
}

func NewAdvertiserHandler(repo interfaces.AdvertiserRepository) *AdvertiserHandler {
	return &AdvertiserHandler{
		repo:      repo,
		validator: validator.New(),
	}
}

func (h *AdvertiserHandler) CreateAdvertiser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAdvertiserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	advertiser := &models.Advertiser{
		Name:          req.Name,
		Email:         req.Email,
		WalletAddress: req.WalletAddress,
		CreatedBy:     req.CreatedBy,
	}

	if err := h.repo.Create(r.Context(), advertiser); err != nil {
		http.Error(w, "Failed to create advertiser: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(advertiser)
}

func (h *AdvertiserHandler) GetAdvertiser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "Advertiser ID is required", http.StatusBadRequest)
		return
	}

	advertiser, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if err == sql.ErrNoRows {
			writeJSONErrorResponse(w, http.StatusNotFound, "not_found", "advertiser not found")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(advertiser)
}

func (h *AdvertiserHandler) ListAdvertisers(w http.ResponseWriter, r *http.Request) {
	advertisers, err := h.repo.List(r.Context())
	if err != nil {
		http.Error(w, "Failed to list advertisers: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if advertisers == nil {
		advertisers = []models.Advertiser{} // Return empty array instead of null
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(advertisers)
}

func (h *AdvertiserHandler) UpdateAdvertiser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "Advertiser ID is required", http.StatusBadRequest)
		return
	}

	var req models.UpdateAdvertiserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Name == nil && req.Email == nil && req.WalletAddress == nil {
		http.Error(w, "No fields to update", http.StatusBadRequest)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.repo.Update(r.Context(), id, &req); err != nil {
		http.Error(w, "Failed to update advertiser: "+err.Error(), http.StatusInternalServerError)
		return
	}

	advertiser, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if err == sql.ErrNoRows {
			writeJSONErrorResponse(w, http.StatusNotFound, "not_found", "advertiser not found")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(advertiser)
}

func (h *AdvertiserHandler) DeleteAdvertiser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "Advertiser ID is required", http.StatusBadRequest)
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if err == sql.ErrNoRows {
			writeJSONErrorResponse(w, http.StatusNotFound, "not_found", "advertiser not found")
			return
		}
		var blocked *interfaces.DeletionBlockedError
		if errors.As(err, &blocked) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusConflict)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error":      "deletion_blocked",
				"message":    blocked.Error(),
				"references": blocked.References,
			})
			return
		}
		http.Error(w, "Failed to delete advertiser: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"message": "advertiser deleted successfully",
		"id":      id,
	})
}
