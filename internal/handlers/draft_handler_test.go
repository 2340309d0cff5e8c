package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"soulboard/internal/chain"
	"soulboard/internal/draft"
	"soulboard/internal/middleware"
	"soulboard/internal/models"
)

func draftRouter(h *DraftHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Post("/drafts", h.CreateDraft)
	r.Route("/drafts/{id}", func(r chi.Router) {
		r.Get("/", h.GetDraft)
		r.Put("/details", h.SetDetails)
		r.Put("/budget", h.SetBudget)
		r.Put("/locations", h.SetLocations)
		r.Put("/creative", h.SetCreative)
		r.Post("/back", h.Back)
		r.Post("/submit", h.Submit)
		r.Delete("/", h.Cancel)
	})
	return r
}

func requestAs(userID, method, target string, body []byte) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	ctx := context.WithValue(req.Context(), middleware.CtxUserID, userID)
	return req.WithContext(ctx)
}

func draftSnapshot(t *testing.T, body []byte) draft.Snapshot {
	t.Helper()
	var snap draft.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		t.Fatalf("invalid snapshot json: %v (%s)", err, body)
	}
	return snap
}

func mustStep(t *testing.T, router *chi.Mux, method, target string, body []byte) draft.Snapshot {
	t.Helper()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(method, target, body))
	if w.Code != http.StatusOK && w.Code != http.StatusCreated {
		t.Fatalf("%s %s: expected success, got %d (%s)", method, target, w.Code, w.Body.String())
	}
	return draftSnapshot(t, w.Body.Bytes())
}

func draftStepBodies() (details, budget, locations, creative []byte) {
	details, _ = json.Marshal(map[string]any{
		"name":        "Spring Push",
		"description": "Morning commute coverage",
		"start_date":  "2026-09-01T00:00:00Z",
		"end_date":    "2026-09-11T00:00:00Z",
	})
	budget, _ = json.Marshal(map[string]any{"budget_lamports": 5_000_000_000})
	locations, _ = json.Marshal(map[string]any{"location_ids": []string{testLocationID}})
	creative, _ = json.Marshal(map[string]any{"creative_url": "https://cdn.example.com/spring.mp4"})
	return
}

func TestDraftFlowSubmitCreatesCampaign(t *testing.T) {
	locRepo := newMockLocationRepo()
	locRepo.byID[testLocationID] = &models.Location{ID: testLocationID, DeviceID: 7, Active: true}
	campRepo := newMockCampaignRepo()

	chainClient := &mockChainClient{
		createCampaignFn: func(ctx context.Context, meta chain.CampaignMetadata, locationIDs []int64) (int64, string, error) {
			if meta.DurationDays != 10 {
				t.Fatalf("expected 10 day duration, got %d", meta.DurationDays)
			}
			if meta.AdditionalInfo() != "budget:5000000000" {
				t.Fatalf("unexpected additional info %q", meta.AdditionalInfo())
			}
			if len(locationIDs) != 1 || locationIDs[0] != 7 {
				t.Fatalf("expected device IDs [7], got %v", locationIDs)
			}
			return 99, "sig-campaign-99", nil
		},
	}
	h := NewDraftHandler(draft.NewStore(), locRepo, campRepo, chainClient)
	router := draftRouter(h)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(http.MethodPost, "/drafts", nil))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d (%s)", w.Code, w.Body.String())
	}
	snap := draftSnapshot(t, w.Body.Bytes())
	if snap.Step != "details" {
		t.Fatalf("expected new draft on details step, got %q", snap.Step)
	}
	base := "/drafts/" + snap.ID

	details, budget, locations, creative := draftStepBodies()
	if s := mustStep(t, router, http.MethodPut, base+"/details", details); s.Step != "budget" {
		t.Fatalf("expected budget step after details, got %q", s.Step)
	}
	if s := mustStep(t, router, http.MethodPut, base+"/budget", budget); s.Step != "locations" {
		t.Fatalf("expected locations step after budget, got %q", s.Step)
	}
	if s := mustStep(t, router, http.MethodPut, base+"/locations", locations); s.Step != "creative" {
		t.Fatalf("expected creative step after locations, got %q", s.Step)
	}
	mustStep(t, router, http.MethodPut, base+"/creative", creative)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(http.MethodPost, base+"/submit", nil))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 on submit, got %d (%s)", w.Code, w.Body.String())
	}

	var campaign models.Campaign
	if err := json.Unmarshal(w.Body.Bytes(), &campaign); err != nil {
		t.Fatalf("invalid campaign json: %v", err)
	}
	if campaign.ChainID != 99 {
		t.Fatalf("expected chain ID 99, got %d", campaign.ChainID)
	}
	if campaign.Status != models.CampaignStatusActive {
		t.Fatalf("expected active status, got %q", campaign.Status)
	}
	if len(campRepo.created) != 1 {
		t.Fatalf("expected campaign persisted, got %d", len(campRepo.created))
	}

	// Successful submission discards the draft.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(http.MethodGet, base, nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after submission, got %d", w.Code)
	}
}

func TestDraftStepGateBlocksSkippingAhead(t *testing.T) {
	chainClient := &mockChainClient{}
	h := NewDraftHandler(draft.NewStore(), newMockLocationRepo(), newMockCampaignRepo(), chainClient)
	router := draftRouter(h)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(http.MethodPost, "/drafts", nil))
	snap := draftSnapshot(t, w.Body.Bytes())

	// Still on the details step; setting the budget is fine but advancing is not.
	budget, _ := json.Marshal(map[string]any{"budget_lamports": 100})
	w = httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(http.MethodPut, "/drafts/"+snap.ID+"/budget", budget))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d (%s)", w.Code, w.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["step"] != "details" {
		t.Fatalf("expected failure on details step, got %v", resp)
	}
}

func TestDraftSubmitChainFailureKeepsDraft(t *testing.T) {
	locRepo := newMockLocationRepo()
	locRepo.byID[testLocationID] = &models.Location{ID: testLocationID, DeviceID: 7, Active: true}

	chainClient := &mockChainClient{
		createCampaignFn: func(ctx context.Context, meta chain.CampaignMetadata, locationIDs []int64) (int64, string, error) {
			return 0, "", fmt.Errorf("%w: gateway timeout", chain.ErrUnavailable)
		},
	}
	h := NewDraftHandler(draft.NewStore(), locRepo, newMockCampaignRepo(), chainClient)
	router := draftRouter(h)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(http.MethodPost, "/drafts", nil))
	snap := draftSnapshot(t, w.Body.Bytes())
	base := "/drafts/" + snap.ID

	details, budget, locations, creative := draftStepBodies()
	mustStep(t, router, http.MethodPut, base+"/details", details)
	mustStep(t, router, http.MethodPut, base+"/budget", budget)
	mustStep(t, router, http.MethodPut, base+"/locations", locations)
	mustStep(t, router, http.MethodPut, base+"/creative", creative)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(http.MethodPost, base+"/submit", nil))
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 got %d (%s)", w.Code, w.Body.String())
	}

	// Everything entered survives the failed submission.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(http.MethodGet, base, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected draft to survive, got %d", w.Code)
	}
	kept := draftSnapshot(t, w.Body.Bytes())
	if kept.Step != "creative" || kept.Name != "Spring Push" || kept.BudgetLamports != 5_000_000_000 {
		t.Fatalf("expected draft intact, got %+v", kept)
	}
}

func TestDraftSubmitPersistFailureKeepsDraft(t *testing.T) {
	locRepo := newMockLocationRepo()
	locRepo.byID[testLocationID] = &models.Location{ID: testLocationID, DeviceID: 7, Active: true}
	campRepo := newMockCampaignRepo()
	campRepo.createErr = fmt.Errorf("connection reset")

	h := NewDraftHandler(draft.NewStore(), locRepo, campRepo, &mockChainClient{})
	router := draftRouter(h)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(http.MethodPost, "/drafts", nil))
	snap := draftSnapshot(t, w.Body.Bytes())
	base := "/drafts/" + snap.ID

	details, budget, locations, creative := draftStepBodies()
	mustStep(t, router, http.MethodPut, base+"/details", details)
	mustStep(t, router, http.MethodPut, base+"/budget", budget)
	mustStep(t, router, http.MethodPut, base+"/locations", locations)
	mustStep(t, router, http.MethodPut, base+"/creative", creative)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(http.MethodPost, base+"/submit", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d (%s)", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(http.MethodGet, base, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected draft to survive a persistence failure, got %d", w.Code)
	}
}

func TestBackNeverValidates(t *testing.T) {
	h := NewDraftHandler(draft.NewStore(), newMockLocationRepo(), newMockCampaignRepo(), &mockChainClient{})
	router := draftRouter(h)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(http.MethodPost, "/drafts", nil))
	snap := draftSnapshot(t, w.Body.Bytes())
	base := "/drafts/" + snap.ID

	details, _, _, _ := draftStepBodies()
	mustStep(t, router, http.MethodPut, base+"/details", details)

	// On the budget step with nothing entered; back must still work.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(http.MethodPost, base+"/back", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	back := draftSnapshot(t, w.Body.Bytes())
	if back.Step != "details" {
		t.Fatalf("expected details step, got %q", back.Step)
	}
	if back.Name != "Spring Push" {
		t.Fatalf("expected entered fields kept, got %+v", back)
	}
}

func TestForeignDraftIsNotFound(t *testing.T) {
	h := NewDraftHandler(draft.NewStore(), newMockLocationRepo(), newMockCampaignRepo(), &mockChainClient{})
	router := draftRouter(h)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(http.MethodPost, "/drafts", nil))
	snap := draftSnapshot(t, w.Body.Bytes())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, requestAs("someone-else", http.MethodGet, "/drafts/"+snap.ID, nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for another user's draft, got %d", w.Code)
	}
}
