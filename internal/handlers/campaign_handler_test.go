package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"soulboard/internal/interfaces"
	"soulboard/internal/models"
)

type mockCampaignRepo struct {
	created        []*models.Campaign
	byID           map[string]*models.Campaign
	createErr      error
	updateBookedFn func(chainID int64, locations []int64) error
}

var _ interfaces.CampaignRepository = (*mockCampaignRepo)(nil)

func newMockCampaignRepo() *mockCampaignRepo {
	return &mockCampaignRepo{byID: map[string]*models.Campaign{}}
}

func (m *mockCampaignRepo) Create(ctx context.Context, campaign *models.Campaign) error {
	if m.createErr != nil {
		return m.createErr
	}
	if campaign.ID == "" {
		campaign.ID = "camp-1"
	}
	m.created = append(m.created, campaign)
	m.byID[campaign.ID] = campaign
	return nil
}

func (m *mockCampaignRepo) GetByID(ctx context.Context, id string) (*models.Campaign, error) {
	c, ok := m.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return c, nil
}

func (m *mockCampaignRepo) GetByChainID(ctx context.Context, chainID int64) (*models.Campaign, error) {
	for _, c := range m.byID {
		if c.ChainID == chainID {
			return c, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockCampaignRepo) List(ctx context.Context, filter interfaces.CampaignFilter) ([]*models.Campaign, error) {
	out := []*models.Campaign{}
	for _, c := range m.byID {
		if filter.AdvertiserID != "" && c.AdvertiserID != filter.AdvertiserID {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (m *mockCampaignRepo) Summary(ctx context.Context, filter interfaces.CampaignFilter) (*models.CampaignSummary, error) {
	return &models.CampaignSummary{}, nil
}

func (m *mockCampaignRepo) UpdateBookedLocations(ctx context.Context, chainID int64, locations []int64) error {
	if m.updateBookedFn != nil {
		return m.updateBookedFn(chainID, locations)
	}
	return nil
}

func (m *mockCampaignRepo) Update(ctx context.Context, id string, campaign *models.Campaign) error {
	return nil
}

func TestListCampaignsReturnsEmptyArray(t *testing.T) {
	h := NewCampaignHandler(newMockCampaignRepo())

	req := httptest.NewRequest(http.MethodGet, "/campaigns", nil)
	w := httptest.NewRecorder()
	h.ListCampaigns(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	var campaigns []*models.Campaign
	if err := json.Unmarshal(w.Body.Bytes(), &campaigns); err != nil {
		t.Fatalf("expected array, got %s", w.Body.String())
	}
	if campaigns == nil {
		t.Fatalf("expected empty array, got null")
	}
}

func TestGetCampaignNotFoundReturnsJSON(t *testing.T) {
	h := NewCampaignHandler(newMockCampaignRepo())
	r := chi.NewRouter()
	r.Get("/campaigns/{id}", h.GetCampaign)

	req := httptest.NewRequest(http.MethodGet, "/campaigns/c1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d (%s)", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected application/json got %q", ct)
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["error"] == nil {
		t.Fatalf("expected error field, got %v", resp)
	}
}

func TestListByAdvertiserFilters(t *testing.T) {
	repo := newMockCampaignRepo()
	repo.byID["camp-1"] = &models.Campaign{ID: "camp-1", AdvertiserID: testOwnerID}
	repo.byID["camp-2"] = &models.Campaign{ID: "camp-2", AdvertiserID: "other"}

	h := NewCampaignHandler(repo)
	r := chi.NewRouter()
	r.Get("/campaigns/advertiser/{advertiserID}", h.ListByAdvertiser)

	req := httptest.NewRequest(http.MethodGet, "/campaigns/advertiser/"+testOwnerID, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	var campaigns []*models.Campaign
	if err := json.Unmarshal(w.Body.Bytes(), &campaigns); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(campaigns) != 1 || campaigns[0].ID != "camp-1" {
		t.Fatalf("expected only the advertiser's campaign, got %+v", campaigns)
	}
}
